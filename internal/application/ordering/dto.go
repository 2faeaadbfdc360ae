package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BasketItemInput adds or updates one basket line. Products are addressed by
// exact name and resolved to a SKU the same way checkout resolves them.
type BasketItemInput struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// BasketMutationResult reports how many lines a basket call touched
type BasketMutationResult struct {
	Created int `json:"created,omitempty"`
	Updated int `json:"updated,omitempty"`
	Deleted int `json:"deleted,omitempty"`
}

// PlaceOrderItem names a product and quantity for checkout. Products are
// resolved by exact name; the oldest listing of shops accepting orders wins.
type PlaceOrderItem struct {
	Product  string `json:"product" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// PlaceOrderContact is the delivery address submitted at checkout. An
// existing contact with exactly these fields is reused; otherwise a new
// one is stored.
type PlaceOrderContact struct {
	City      string `json:"city" validate:"required"`
	Street    string `json:"street" validate:"required"`
	House     string `json:"house"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" validate:"required"`
}

// PlaceOrderInput contains the input for placing an order
type PlaceOrderInput struct {
	Items   []PlaceOrderItem  `json:"items" validate:"required,min=1,dive"`
	Contact PlaceOrderContact `json:"contact"`
}

// AmendOrderInput contains the input for amending a placed order. Items
// update existing lines or add new ones; ContactPhone is mandatory and
// rebinds the order to the contact on file with that phone number.
type AmendOrderInput struct {
	Items        []PlaceOrderItem `json:"items" validate:"omitempty,dive"`
	ContactPhone string           `json:"contact_phone" validate:"required"`
}

// DeleteOrdersInput names the orders to delete
type DeleteOrdersInput struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1"`
}

// OrderItemResponse is the API representation of one order line
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductInfoID uuid.UUID       `json:"product_info"`
	Product       string          `json:"product,omitempty"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Sum           decimal.Decimal `json:"sum"`
}

// OrderResponse is the API representation of an order. TotalSum is computed
// at read time over current SKU prices and is null for an empty order.
type OrderResponse struct {
	ID        uuid.UUID           `json:"id"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	ContactID *uuid.UUID          `json:"contact_id,omitempty"`
	Items     []OrderItemResponse `json:"items"`
	TotalSum  *decimal.Decimal    `json:"total_sum"`
}
