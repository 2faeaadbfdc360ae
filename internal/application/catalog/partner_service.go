package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
)

// PartnerService handles the supplier's own shop settings
type PartnerService struct {
	userRepo identity.UserRepository
	shopRepo catalog.ShopRepository
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(userRepo identity.UserRepository, shopRepo catalog.ShopRepository) *PartnerService {
	return &PartnerService{
		userRepo: userRepo,
		shopRepo: shopRepo,
	}
}

// GetState returns the supplier's shop and whether it accepts orders
func (s *PartnerService) GetState(ctx context.Context, ownerID uuid.UUID) (*ShopStateResponse, error) {
	shop, err := s.requireShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &ShopStateResponse{ID: shop.ID, Name: shop.Name, State: shop.State}, nil
}

// SetState toggles whether the supplier's shop accepts orders
func (s *PartnerService) SetState(ctx context.Context, ownerID uuid.UUID, accepting bool) (*ShopStateResponse, error) {
	shop, err := s.requireShop(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	shop.SetState(accepting)
	if err := s.shopRepo.Save(ctx, shop); err != nil {
		return nil, err
	}
	return &ShopStateResponse{ID: shop.ID, Name: shop.Name, State: shop.State}, nil
}

// SetAdminEmail changes the address order notifications are sent to
func (s *PartnerService) SetAdminEmail(ctx context.Context, ownerID uuid.UUID, email string) error {
	shop, err := s.requireShop(ctx, ownerID)
	if err != nil {
		return err
	}
	shop.SetAdminEmail(email)
	return s.shopRepo.Save(ctx, shop)
}

// requireShop loads the caller's shop, enforcing the shop account type
func (s *PartnerService) requireShop(ctx context.Context, ownerID uuid.UUID) (*catalog.Shop, error) {
	user, err := s.userRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !user.IsShop() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only shop accounts have a storefront")
	}

	shop, err := s.shopRepo.FindByUser(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "No catalog imported yet")
		}
		return nil, err
	}
	return shop, nil
}
