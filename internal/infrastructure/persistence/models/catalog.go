package models

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// Shop is the persistence model for catalog.Shop
type Shop struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name       string    `gorm:"size:50;not null;uniqueIndex"`
	State      bool      `gorm:"not null;default:true"`
	AdminEmail string    `gorm:"size:254"`
}

// TableName returns the table name for Shop
func (Shop) TableName() string { return "shops" }

// ToDomain converts the persistence model to a domain shop
func (m *Shop) ToDomain() *catalog.Shop {
	return &catalog.Shop{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Name:       m.Name,
		State:      m.State,
		AdminEmail: m.AdminEmail,
	}
}

// ShopFromDomain builds the persistence model from a domain shop
func ShopFromDomain(s *catalog.Shop) *Shop {
	m := &Shop{
		UserID:     s.UserID,
		Name:       s.Name,
		State:      s.State,
		AdminEmail: s.AdminEmail,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// Category is the persistence model for catalog.Category. ExternalID is the
// supplier-side numeric id shared across shops.
type Category struct {
	BaseModel
	ExternalID int64  `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"size:40;not null"`
}

// TableName returns the table name for Category
func (Category) TableName() string { return "categories" }

// ToDomain converts the persistence model to a domain category
func (m *Category) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		ExternalID: m.ExternalID,
		Name:       m.Name,
	}
}

// CategoryFromDomain builds the persistence model from a domain category
func CategoryFromDomain(c *catalog.Category) *Category {
	m := &Category{
		ExternalID: c.ExternalID,
		Name:       c.Name,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ShopCategory links a shop to the categories its current price list carries
type ShopCategory struct {
	ShopID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for ShopCategory
func (ShopCategory) TableName() string { return "shop_categories" }

// Product is the persistence model for catalog.Product
type Product struct {
	BaseModel
	Name       string    `gorm:"size:80;not null;index"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for Product
func (Product) TableName() string { return "products" }

// ToDomain converts the persistence model to a domain product
func (m *Product) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		CategoryID: m.CategoryID,
	}
}

// ProductFromDomain builds the persistence model from a domain product
func ProductFromDomain(p *catalog.Product) *Product {
	m := &Product{
		Name:       p.Name,
		CategoryID: p.CategoryID,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductInfo is the persistence model for catalog.ProductInfo, one shop's
// offer of a product.
type ProductInfo struct {
	BaseModel
	ProductID  uuid.UUID          `gorm:"type:uuid;not null;index"`
	ShopID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	ExternalID int64              `gorm:"not null"`
	Model      string             `gorm:"size:80"`
	Price      decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PriceRRC   decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	Quantity   int                `gorm:"not null"`
	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID"`
}

// TableName returns the table name for ProductInfo
func (ProductInfo) TableName() string { return "product_infos" }

// ToDomain converts the persistence model to a domain SKU
func (m *ProductInfo) ToDomain() *catalog.ProductInfo {
	info := &catalog.ProductInfo{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		ShopID:     m.ShopID,
		ExternalID: m.ExternalID,
		Model:      m.Model,
		Price:      m.Price,
		PriceRRC:   m.PriceRRC,
		Quantity:   m.Quantity,
	}
	for _, p := range m.Parameters {
		info.Parameters = append(info.Parameters, catalog.ProductParameter{
			ID:            p.ID,
			ProductInfoID: p.ProductInfoID,
			ParameterID:   p.ParameterID,
			Value:         p.Value,
		})
	}
	return info
}

// ProductInfoFromDomain builds the persistence model from a domain SKU
func ProductInfoFromDomain(p *catalog.ProductInfo) *ProductInfo {
	m := &ProductInfo{
		ProductID:  p.ProductID,
		ShopID:     p.ShopID,
		ExternalID: p.ExternalID,
		Model:      p.Model,
		Price:      p.Price,
		PriceRRC:   p.PriceRRC,
		Quantity:   p.Quantity,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	for _, par := range p.Parameters {
		m.Parameters = append(m.Parameters, ProductParameter{
			ID:            par.ID,
			ProductInfoID: par.ProductInfoID,
			ParameterID:   par.ParameterID,
			Value:         par.Value,
		})
	}
	return m
}

// Parameter is the persistence model for catalog.Parameter
type Parameter struct {
	BaseModel
	Name string `gorm:"size:40;not null;uniqueIndex"`
}

// TableName returns the table name for Parameter
func (Parameter) TableName() string { return "parameters" }

// ToDomain converts the persistence model to a domain parameter
func (m *Parameter) ToDomain() *catalog.Parameter {
	return &catalog.Parameter{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
	}
}

// ParameterFromDomain builds the persistence model from a domain parameter
func ParameterFromDomain(p *catalog.Parameter) *Parameter {
	m := &Parameter{Name: p.Name}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// ProductParameter is the persistence model for one attribute value on a SKU
type ProductParameter struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;index"`
	ParameterID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Value         string    `gorm:"size:100;not null"`
}

// TableName returns the table name for ProductParameter
func (ProductParameter) TableName() string { return "product_parameters" }
