package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderRepository provides access to orders and their items. Save persists
// the whole aggregate (order plus item diff) in one transaction.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindBasket returns the user's basket order with items, or
	// shared.ErrNotFound when the user has no basket. It never creates one.
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)
	// GetOrCreateBasket returns the user's basket, creating it bound to the
	// given contact when absent. A unique index on (user_id) for basket-state
	// rows plus retry-on-conflict keeps the basket a singleton under
	// concurrent calls. The bool reports whether a new basket was created.
	GetOrCreateBasket(ctx context.Context, userID, contactID uuid.UUID) (*Order, bool, error)
	Save(ctx context.Context, order *Order) error
	// FindAllForUser lists the user's placed orders (basket excluded).
	// Keyword matches product and category names of the ordered items;
	// exact filter: "state". OrderBy "total_sum" is supported.
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	// FindForShopOwner lists placed orders containing SKUs sold by the
	// shop owned by ownerID.
	FindForShopOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountForShopOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
	// ContainsShopOwner reports whether the order has at least one SKU sold
	// by the shop owned by ownerID.
	ContainsShopOwner(ctx context.Context, orderID, ownerID uuid.UUID) (bool, error)
	// DeleteForUser removes the given orders and their items, skipping ids
	// the user does not own, and returns the number of orders deleted.
	DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
	// TotalSum computes the order total as the sum of quantity times the
	// current SKU price over the order's items. Valid is false when the
	// order has no items.
	TotalSum(ctx context.Context, orderID uuid.UUID) (decimal.NullDecimal, error)
}
