package catalog

import (
	"github.com/orderhub/backend/internal/domain/shared"
)

// Category groups products catalog-wide. Suppliers reference categories by
// the numeric id carried in their price lists (ExternalID), so two shops
// importing the same id share one category row.
type Category struct {
	shared.BaseEntity
	ExternalID int64
	Name       string
}

// NewCategory creates a category from a price-list entry
func NewCategory(externalID int64, name string) (*Category, error) {
	if externalID <= 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Category id must be positive")
	}
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Category name is required")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		ExternalID: externalID,
		Name:       name,
	}, nil
}
