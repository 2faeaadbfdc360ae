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

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var model models.Category
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists categories matching the filter. Keyword matches category
// names and the names of shops currently carrying the category.
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	filter.Normalize()

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Category{}), filter)
	query = query.
		Offset(filter.Offset()).Limit(filter.PageSize).
		Order("categories.external_id ASC")

	var rows []models.Category
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, *rows[i].ToDomain())
	}
	return categories, nil
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	filter.Normalize()

	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Category{}), filter)
	if err := query.Distinct("categories.id").Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Keyword != "" {
		pattern := keywordPattern(filter.Keyword)
		query = query.
			Joins("LEFT JOIN shop_categories ON shop_categories.category_id = categories.id").
			Joins("LEFT JOIN shops ON shops.id = shop_categories.shop_id").
			Where("LOWER(categories.name) LIKE ? OR LOWER(shops.name) LIKE ?", pattern, pattern).
			Distinct()
	}
	return query
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
