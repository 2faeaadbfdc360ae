package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormProductInfoRepository implements catalog.ProductInfoRepository using GORM
type GormProductInfoRepository struct {
	db *gorm.DB
}

// NewGormProductInfoRepository creates a new GormProductInfoRepository
func NewGormProductInfoRepository(db *gorm.DB) *GormProductInfoRepository {
	return &GormProductInfoRepository{db: db}
}

// FindByID finds a SKU by its ID, with parameters
func (r *GormProductInfoRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	var model models.ProductInfo
	if err := r.db.WithContext(ctx).
		Preload("Parameters").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductName resolves a product by its exact name to a sellable SKU.
// Only shops accepting orders are considered; when several shops offer the
// product the oldest listing wins.
func (r *GormProductInfoRepository) FindByProductName(ctx context.Context, name string) (*catalog.ProductInfo, error) {
	var model models.ProductInfo
	if err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = product_infos.product_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("products.name = ? AND shops.state = ?", name, true).
		Order("product_infos.created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search lists SKUs of shops that are accepting orders
func (r *GormProductInfoRepository) Search(ctx context.Context, filter shared.Filter) ([]catalog.ProductInfo, error) {
	filter.Normalize()

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductInfo{}), filter)
	query = query.Offset(filter.Offset()).Limit(filter.PageSize)

	if filter.OrderBy == "price" {
		query = query.Order("product_infos.price " + orderDir(filter.OrderDir))
	} else {
		query = query.Order("product_infos.created_at ASC")
	}

	var rows []models.ProductInfo
	if err := query.Preload("Parameters").Find(&rows).Error; err != nil {
		return nil, err
	}

	infos := make([]catalog.ProductInfo, 0, len(rows))
	for i := range rows {
		infos = append(infos, *rows[i].ToDomain())
	}
	return infos, nil
}

// Count counts SKUs matching the filter
func (r *GormProductInfoRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	filter.Normalize()

	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductInfo{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductInfoRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.
		Joins("JOIN products ON products.id = product_infos.product_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("shops.state = ?", true)

	if filter.Keyword != "" {
		pattern := keywordPattern(filter.Keyword)
		query = query.
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?", pattern, pattern)
	}

	if shopID, ok := filter.Filters["shop_id"]; ok {
		query = query.Where("product_infos.shop_id = ?", shopID)
	}
	if categoryID, ok := filter.Filters["category_id"]; ok {
		query = query.Where("products.category_id = ?", categoryID)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_infos.product_id = ?", productID)
	}

	return query
}

// Ensure GormProductInfoRepository implements ProductInfoRepository
var _ catalog.ProductInfoRepository = (*GormProductInfoRepository)(nil)
