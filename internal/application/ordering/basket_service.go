package ordering

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
)

// BasketService handles the customer's pre-checkout basket
type BasketService struct {
	orders    ordering.OrderRepository
	products  catalog.ProductInfoRepository
	contacts  identity.ContactRepository
	validate  *validator.Validate
	presenter *presenter
}

// NewBasketService creates a new BasketService
func NewBasketService(
	orders ordering.OrderRepository,
	products catalog.ProductInfoRepository,
	productNames catalog.ProductRepository,
	contacts identity.ContactRepository,
) *BasketService {
	return &BasketService{
		orders:   orders,
		products: products,
		contacts: contacts,
		validate: validator.New(),
		presenter: &presenter{
			orders:       orders,
			products:     products,
			productNames: productNames,
		},
	}
}

// Get returns the user's basket. A user who has never put anything in the
// basket gets an empty one back, not an error.
func (s *BasketService) Get(ctx context.Context, userID uuid.UUID) (*OrderResponse, error) {
	basket, err := s.orders.FindBasket(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &OrderResponse{
				Status: ordering.OrderStatusBasket.String(),
				Items:  []OrderItemResponse{},
			}, nil
		}
		return nil, err
	}
	return s.presenter.Order(ctx, basket)
}

// AddItems adds lines to the basket, creating the basket on first use.
// Items name products; each name resolves to a SKU the same way checkout
// does. Repeating a product merges into the existing line. Lines are
// persisted one by one: when a name in the middle of the list does not
// resolve, the lines before it stay in the basket and the call fails.
func (s *BasketService) AddItems(ctx context.Context, userID uuid.UUID, items []BasketItemInput) (*BasketMutationResult, error) {
	if err := s.validateItems(items); err != nil {
		return nil, err
	}

	basket, err := s.obtainBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &BasketMutationResult{}
	for _, input := range items {
		info, err := s.resolveProduct(ctx, input.Product)
		if err != nil {
			return nil, err
		}

		created, err := basket.MergeItem(info.ID, input.Quantity)
		if err != nil {
			return nil, err
		}
		if err := s.orders.Save(ctx, basket); err != nil {
			return nil, err
		}
		if created {
			result.Created++
		}
	}
	return result, nil
}

// UpdateItems sets line quantities, adding lines for products not yet in
// the basket. Same partial-failure behavior as AddItems.
func (s *BasketService) UpdateItems(ctx context.Context, userID uuid.UUID, items []BasketItemInput) (*BasketMutationResult, error) {
	if err := s.validateItems(items); err != nil {
		return nil, err
	}

	basket, err := s.obtainBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &BasketMutationResult{}
	for _, input := range items {
		info, err := s.resolveProduct(ctx, input.Product)
		if err != nil {
			return nil, err
		}

		if _, err := basket.SetItemQuantity(info.ID, input.Quantity); err != nil {
			return nil, err
		}
		if err := s.orders.Save(ctx, basket); err != nil {
			return nil, err
		}
		result.Updated++
	}
	return result, nil
}

// RemoveItems deletes the basket lines for the named products and reports
// how many lines were removed. Every name is resolved before anything is
// touched: one unresolvable name aborts the whole call and the basket is
// left as it was.
func (s *BasketService) RemoveItems(ctx context.Context, userID uuid.UUID, names []string) (*BasketMutationResult, error) {
	if len(names) == 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "No items given")
	}

	skuIDs := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		info, err := s.resolveProduct(ctx, name)
		if err != nil {
			return nil, err
		}
		skuIDs = append(skuIDs, info.ID)
	}

	basket, err := s.orders.FindBasket(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &BasketMutationResult{}, nil
		}
		return nil, err
	}

	result := &BasketMutationResult{}
	for _, id := range skuIDs {
		result.Deleted += basket.RemoveItem(id)
	}
	if result.Deleted > 0 {
		if err := s.orders.Save(ctx, basket); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// resolveProduct maps an exact product name to the SKU checkout would pick.
func (s *BasketService) resolveProduct(ctx context.Context, name string) (*catalog.ProductInfo, error) {
	info, err := s.products.FindByProductName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product "+name+" is not available")
		}
		return nil, err
	}
	return info, nil
}

// obtainBasket returns the user's basket, creating it bound to the oldest
// contact on file. A user without any contact cannot have a basket.
func (s *BasketService) obtainBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	contact, err := s.contacts.FindFirstByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NO_CONTACT", "Add a delivery contact before using the basket")
		}
		return nil, err
	}

	basket, _, err := s.orders.GetOrCreateBasket(ctx, userID, contact.ID)
	return basket, err
}

func (s *BasketService) validateItems(items []BasketItemInput) error {
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_FAILED", "No items given")
	}
	for _, item := range items {
		if err := s.validate.Struct(item); err != nil {
			return shared.NewDomainError("VALIDATION_FAILED", err.Error())
		}
	}
	return nil
}
