package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContactRepository implements identity.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Contact, error) {
	var model models.Contact
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser lists all contacts on file for a user, oldest first
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]identity.Contact, error) {
	var rows []models.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	contacts := make([]identity.Contact, 0, len(rows))
	for i := range rows {
		contacts = append(contacts, *rows[i].ToDomain())
	}
	return contacts, nil
}

// FindFirstByUser returns the oldest contact on file for the user
func (r *GormContactRepository) FindFirstByUser(ctx context.Context, userID uuid.UUID) (*identity.Contact, error) {
	var model models.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPhone finds the user's contact with the given phone number
func (r *GormContactRepository) FindByPhone(ctx context.Context, userID uuid.UUID, phone string) (*identity.Contact, error) {
	var model models.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND phone = ?", userID, phone).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *identity.Contact) error {
	return r.db.WithContext(ctx).Save(models.ContactFromDomain(contact)).Error
}

// DeleteForUser removes the given contacts, skipping ids the user does not
// own, and returns the number of rows deleted.
func (r *GormContactRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&models.Contact{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormContactRepository implements ContactRepository
var _ identity.ContactRepository = (*GormContactRepository)(nil)
