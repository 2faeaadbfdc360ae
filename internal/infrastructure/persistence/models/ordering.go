package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/ordering"
)

// Order is the persistence model for ordering.Order. A partial unique index
// on (user_id) for rows in the basket state keeps the basket a singleton;
// it is created by the migrations, not by a gorm tag, because gorm cannot
// express partial indexes portably.
type Order struct {
	BaseModel
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	ContactID *uuid.UUID  `gorm:"type:uuid"`
	Status    string      `gorm:"size:15;not null;index"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for Order
func (Order) TableName() string { return "orders" }

// ToDomain converts the persistence model to a domain order
func (m *Order) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ContactID:  m.ContactID,
		Status:     ordering.OrderStatus(m.Status),
	}
	for _, item := range m.Items {
		order.Items = append(order.Items, ordering.OrderItem{
			ID:            item.ID,
			OrderID:       item.OrderID,
			ProductInfoID: item.ProductInfoID,
			Quantity:      item.Quantity,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		})
	}
	return order
}

// OrderFromDomain builds the persistence model from a domain order
func OrderFromDomain(o *ordering.Order) *Order {
	m := &Order{
		UserID:    o.UserID,
		ContactID: o.ContactID,
		Status:    o.Status.String(),
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	for _, item := range o.Items {
		m.Items = append(m.Items, OrderItem{
			ID:            item.ID,
			OrderID:       item.OrderID,
			ProductInfoID: item.ProductInfoID,
			Quantity:      item.Quantity,
			CreatedAt:     item.CreatedAt,
			UpdatedAt:     item.UpdatedAt,
		})
	}
	return m
}

// OrderItem is the persistence model for one order line. The composite
// unique index keeps one line per SKU within an order.
type OrderItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_order_items_order_sku"`
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_order_items_order_sku"`
	Quantity      int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for OrderItem
func (OrderItem) TableName() string { return "order_items" }
