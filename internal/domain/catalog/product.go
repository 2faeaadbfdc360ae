package catalog

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a catalog-wide article bound to a category. It carries no
// price: shops sell a product through their own ProductInfo records.
type Product struct {
	shared.BaseEntity
	Name       string
	CategoryID uuid.UUID
}

// NewProduct creates a product under a category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Product name is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Product must belong to a category")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}

// ProductInfo is the sellable unit: one shop's offer of a product, with the
// supplier's external id, model string, pricing and stock quantity. A shop
// has at most one ProductInfo per (product, external_id) after an import
// cycle, because imports replace the shop's rows wholesale.
type ProductInfo struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	ShopID     uuid.UUID
	ExternalID int64
	Model      string
	Price      decimal.Decimal
	PriceRRC   decimal.Decimal
	Quantity   int
	Parameters []ProductParameter
}

// NewProductInfo creates a shop-specific SKU record
func NewProductInfo(productID, shopID uuid.UUID, externalID int64, model string, price, priceRRC decimal.Decimal, quantity int) (*ProductInfo, error) {
	if productID == uuid.Nil || shopID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "SKU must reference a product and a shop")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Prices cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Quantity cannot be negative")
	}

	return &ProductInfo{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		ShopID:     shopID,
		ExternalID: externalID,
		Model:      model,
		Price:      price,
		PriceRRC:   priceRRC,
		Quantity:   quantity,
	}, nil
}

// AddParameter appends an attribute value to the SKU
func (p *ProductInfo) AddParameter(parameterID uuid.UUID, value string) {
	p.Parameters = append(p.Parameters, ProductParameter{
		ID:            uuid.New(),
		ProductInfoID: p.ID,
		ParameterID:   parameterID,
		Value:         value,
	})
}

// Parameter is a named product attribute, e.g. "color"
type Parameter struct {
	shared.BaseEntity
	Name string
}

// NewParameter creates a named attribute
func NewParameter(name string) (*Parameter, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Parameter name is required")
	}
	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ProductParameter is a denormalized attribute value on one SKU
type ProductParameter struct {
	ID            uuid.UUID
	ProductInfoID uuid.UUID
	ParameterID   uuid.UUID
	Value         string
}
