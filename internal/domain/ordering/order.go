package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of an order. "basket" is the
// special pre-checkout state: at most one basket order exists per user.
type OrderStatus string

const (
	OrderStatusBasket    OrderStatus = "basket"
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssembled OrderStatus = "assembled"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusBasket, OrderStatusNew, OrderStatusConfirmed,
		OrderStatusAssembled, OrderStatusSent, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// Fulfilment advances one step at a time; cancellation is allowed from any
// non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCanceled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusBasket:
		return target == OrderStatusNew
	case OrderStatusNew:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusAssembled
	case OrderStatusAssembled:
		return target == OrderStatusSent
	case OrderStatusSent:
		return target == OrderStatusDelivered
	}
	return false
}

// OrderItem is a line of an order: a quantity of one shop SKU. Uniqueness of
// (order, product_info) is maintained by the aggregate's merge semantics.
type OrderItem struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductInfoID uuid.UUID
	Quantity      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Order is the aggregate root for both baskets and placed orders.
type Order struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ContactID *uuid.UUID
	Status    OrderStatus
	Items     []OrderItem
}

// NewBasket creates the user's basket order bound to a contact
func NewBasket(userID uuid.UUID, contactID uuid.UUID) (*Order, error) {
	return newOrder(userID, contactID, OrderStatusBasket)
}

// NewOrder creates a placed order in state "new". Checkout builds a fresh
// order from the submitted items; it does not consume the basket row.
func NewOrder(userID uuid.UUID, contactID uuid.UUID) (*Order, error) {
	return newOrder(userID, contactID, OrderStatusNew)
}

func newOrder(userID, contactID uuid.UUID, status OrderStatus) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Order must belong to a user")
	}
	if contactID == uuid.Nil {
		return nil, shared.NewDomainError("NO_CONTACT", "Order requires a contact on file")
	}

	return &Order{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ContactID:  &contactID,
		Status:     status,
	}, nil
}

// MergeItem adds quantity of a SKU to the order. A repeated SKU increments
// the existing line instead of creating a duplicate row. Returns true when a
// new line was created.
func (o *Order) MergeItem(productInfoID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, shared.NewDomainError("VALIDATION_FAILED", "Quantity must be positive")
	}
	for i := range o.Items {
		if o.Items[i].ProductInfoID == productInfoID {
			o.Items[i].Quantity += quantity
			o.Items[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return false, nil
		}
	}
	o.appendItem(productInfoID, quantity)
	return true, nil
}

// SetItemQuantity sets the quantity of a SKU line, creating it when absent.
// Returns true when a new line was created.
func (o *Order) SetItemQuantity(productInfoID uuid.UUID, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, shared.NewDomainError("VALIDATION_FAILED", "Quantity must be positive")
	}
	for i := range o.Items {
		if o.Items[i].ProductInfoID == productInfoID {
			o.Items[i].Quantity = quantity
			o.Items[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return false, nil
		}
	}
	o.appendItem(productInfoID, quantity)
	return true, nil
}

func (o *Order) appendItem(productInfoID uuid.UUID, quantity int) {
	now := time.Now()
	o.Items = append(o.Items, OrderItem{
		ID:            uuid.New(),
		OrderID:       o.ID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	o.UpdatedAt = now
}

// RemoveItem deletes the line for a SKU and returns the number of rows
// removed (0 when the SKU is not in the order).
func (o *Order) RemoveItem(productInfoID uuid.UUID) int {
	kept := o.Items[:0]
	removed := 0
	for _, item := range o.Items {
		if item.ProductInfoID == productInfoID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	o.Items = kept
	if removed > 0 {
		o.UpdatedAt = time.Now()
	}
	return removed
}

// BindContact rebinds the order to another contact
func (o *Order) BindContact(contactID uuid.UUID) error {
	if contactID == uuid.Nil {
		return shared.NewDomainError("NO_CONTACT", "Order requires a contact on file")
	}
	o.ContactID = &contactID
	o.UpdatedAt = time.Now()
	return nil
}

// TransitionTo moves the order to the target status, enforcing the
// transition table.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("VALIDATION_FAILED", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Order cannot move from "+o.Status.String()+" to "+target.String())
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Reopen returns an amended order to the "new" state so the operator
// re-confirms it. Amendment is not allowed for baskets or finished orders.
func (o *Order) Reopen() error {
	if o.IsBasket() || o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE",
			"Order in state "+o.Status.String()+" cannot be amended")
	}
	o.Status = OrderStatusNew
	o.UpdatedAt = time.Now()
	return nil
}

// IsBasket reports whether the order is the pre-checkout basket
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}
