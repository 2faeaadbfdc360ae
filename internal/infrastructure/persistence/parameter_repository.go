package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormParameterRepository implements catalog.ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// FindNamesByIDs resolves attribute ids to their names
func (r *GormParameterRepository) FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []models.Parameter
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		names[rows[i].ID] = rows[i].Name
	}
	return names, nil
}

// Ensure GormParameterRepository implements ParameterRepository
var _ catalog.ParameterRepository = (*GormParameterRepository)(nil)
