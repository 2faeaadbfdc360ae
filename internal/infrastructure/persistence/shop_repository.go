package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShopRepository implements catalog.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var model models.Shop
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds the shop owned by the given user
func (r *GormShopRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var model models.Shop
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists shops matching the filter
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Shop, error) {
	filter.Normalize()

	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Shop{}), filter)
	query = query.Offset(filter.Offset()).Limit(filter.PageSize)

	if filter.OrderBy == "name" {
		query = query.Order("name " + orderDir(filter.OrderDir))
	} else {
		query = query.Order("created_at ASC")
	}

	var rows []models.Shop
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	shops := make([]catalog.Shop, 0, len(rows))
	for i := range rows {
		shops = append(shops, *rows[i].ToDomain())
	}
	return shops, nil
}

// Count counts shops matching the filter
func (r *GormShopRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	filter.Normalize()

	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Shop{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	if err := r.db.WithContext(ctx).Save(models.ShopFromDomain(shop)).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.NewDomainError("ALREADY_EXISTS", "A shop with this name already exists")
		}
		return err
	}
	return nil
}

func (r *GormShopRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Keyword != "" {
		pattern := keywordPattern(filter.Keyword)
		query = query.Where("LOWER(name) LIKE ? OR LOWER(admin_email) LIKE ?", pattern, pattern)
	}
	if state, ok := filter.Filters["state"]; ok {
		query = query.Where("state = ?", state)
	}
	return query
}

// keywordPattern builds a case-insensitive LIKE pattern. LOWER/LIKE instead
// of ILIKE keeps the query portable between postgres and sqlite.
func keywordPattern(keyword string) string {
	return "%" + strings.ToLower(keyword) + "%"
}

// orderDir sanitizes a caller-supplied sort direction
func orderDir(dir string) string {
	if strings.EqualFold(dir, "desc") {
		return "DESC"
	}
	return "ASC"
}

// Ensure GormShopRepository implements ShopRepository
var _ catalog.ShopRepository = (*GormShopRepository)(nil)
