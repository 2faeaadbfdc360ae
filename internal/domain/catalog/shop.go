package catalog

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Shop is a supplier account's storefront. Each shop-type user owns exactly
// one shop; State gates whether the shop is currently accepting orders.
type Shop struct {
	shared.BaseEntity
	UserID     uuid.UUID
	Name       string
	State      bool
	AdminEmail string
}

// NewShop creates a shop owned by the given user
func NewShop(userID uuid.UUID, name string) (*Shop, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Shop must have an owner")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Shop name is required")
	}

	return &Shop{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       name,
		State:      true,
	}, nil
}

// SetState toggles whether the shop accepts orders
func (s *Shop) SetState(accepting bool) {
	s.State = accepting
}

// SetAdminEmail sets the address order notifications are sent to
func (s *Shop) SetAdminEmail(email string) {
	s.AdminEmail = email
}
