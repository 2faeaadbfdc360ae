package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ShopRepository provides access to shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*Shop, error)
	// FindAll lists shops. Keyword matches shop name and admin e-mail;
	// supported exact filters: "state".
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, shop *Shop) error
}

// CategoryRepository provides access to categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	// FindAll lists categories. Keyword matches category and shop names.
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductInfoRepository provides access to shop SKUs
type ProductInfoRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductInfo, error)
	// FindByProductName resolves a product by its exact name to a sellable
	// SKU. When several shops offer the product the oldest listing wins.
	FindByProductName(ctx context.Context, name string) (*ProductInfo, error)
	// Search lists SKUs of shops that are accepting orders. Keyword matches
	// product and category names; exact filters: "shop_id", "category_id",
	// "product_id"; OrderBy "price" is supported.
	Search(ctx context.Context, filter shared.Filter) ([]ProductInfo, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ProductRepository resolves product ids to their names
type ProductRepository interface {
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ParameterRepository resolves attribute ids to their names
type ParameterRepository interface {
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

// ImportStats summarizes one import cycle
type ImportStats struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Parameters int `json:"parameters"`
}

// CatalogWriter atomically replaces a shop's catalog from a validated price
// list. The whole replace runs in a single transaction: either every
// category link, SKU and parameter from the document is persisted, or the
// shop's catalog is left exactly as it was.
type CatalogWriter interface {
	ReplaceShopCatalog(ctx context.Context, ownerID uuid.UUID, doc *PriceList) (*ImportStats, error)
}
