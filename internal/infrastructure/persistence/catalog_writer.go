package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCatalogWriter implements catalog.CatalogWriter using GORM. The whole
// replace runs in one transaction: any failure rolls the shop's catalog back
// to its pre-import state.
type GormCatalogWriter struct {
	db *gorm.DB
}

// NewGormCatalogWriter creates a new GormCatalogWriter
func NewGormCatalogWriter(db *gorm.DB) *GormCatalogWriter {
	return &GormCatalogWriter{db: db}
}

// ReplaceShopCatalog atomically replaces the catalog of the shop owned by
// ownerID with the contents of a validated price list.
func (w *GormCatalogWriter) ReplaceShopCatalog(ctx context.Context, ownerID uuid.UUID, doc *catalog.PriceList) (*catalog.ImportStats, error) {
	stats := &catalog.ImportStats{}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shop, err := w.upsertShop(tx, ownerID, doc.Shop)
		if err != nil {
			return err
		}

		categoryIDs, err := w.replaceCategories(tx, shop.ID, doc.Categories)
		if err != nil {
			return err
		}
		stats.Categories = len(doc.Categories)

		if err := w.clearShopGoods(tx, shop.ID); err != nil {
			return err
		}

		for i := range doc.Goods {
			params, err := w.createGood(tx, shop.ID, categoryIDs, &doc.Goods[i])
			if err != nil {
				return err
			}
			stats.Products++
			stats.Parameters += params
		}

		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrTransactionAborted, err)
	}

	return stats, nil
}

// upsertShop finds the owner's shop, renaming it to the document's shop
// name, or creates it on first import.
func (w *GormCatalogWriter) upsertShop(tx *gorm.DB, ownerID uuid.UUID, name string) (*models.Shop, error) {
	var shop models.Shop
	err := tx.First(&shop, "user_id = ?", ownerID).Error
	switch {
	case err == nil:
		if shop.Name != name {
			shop.Name = name
			if err := tx.Save(&shop).Error; err != nil {
				if isUniqueViolation(err) {
					return nil, shared.NewDomainError("ALREADY_EXISTS", "A shop with this name already exists")
				}
				return nil, err
			}
		}
		return &shop, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		created, derr := catalog.NewShop(ownerID, name)
		if derr != nil {
			return nil, derr
		}
		shop = *models.ShopFromDomain(created)
		if err := tx.Create(&shop).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A shop with this name already exists")
			}
			return nil, err
		}
		return &shop, nil
	default:
		return nil, err
	}
}

// replaceCategories re-links the shop to the document's categories, creating
// catalog-wide category rows for external ids seen for the first time.
// Returns the mapping of external id to category row id.
func (w *GormCatalogWriter) replaceCategories(tx *gorm.DB, shopID uuid.UUID, entries []catalog.PriceListCategory) (map[int64]uuid.UUID, error) {
	if err := tx.Where("shop_id = ?", shopID).Delete(&models.ShopCategory{}).Error; err != nil {
		return nil, err
	}

	ids := make(map[int64]uuid.UUID, len(entries))
	for _, entry := range entries {
		var row models.Category
		err := tx.First(&row, "external_id = ?", entry.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, derr := catalog.NewCategory(entry.ID, entry.Name)
			if derr != nil {
				return nil, derr
			}
			row = *models.CategoryFromDomain(created)
			if err := tx.Create(&row).Error; err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		}

		if err := tx.Create(&models.ShopCategory{ShopID: shopID, CategoryID: row.ID}).Error; err != nil {
			return nil, err
		}
		ids[entry.ID] = row.ID
	}
	return ids, nil
}

// clearShopGoods deletes the shop's SKUs and their parameter values
func (w *GormCatalogWriter) clearShopGoods(tx *gorm.DB, shopID uuid.UUID) error {
	sub := tx.Model(&models.ProductInfo{}).Select("id").Where("shop_id = ?", shopID)
	if err := tx.Where("product_info_id IN (?)", sub).Delete(&models.ProductParameter{}).Error; err != nil {
		return err
	}
	return tx.Where("shop_id = ?", shopID).Delete(&models.ProductInfo{}).Error
}

// createGood persists one price-list line: the catalog-wide product row
// (created on first sight), the shop's SKU and its parameter values.
// Returns the number of parameter values written.
func (w *GormCatalogWriter) createGood(tx *gorm.DB, shopID uuid.UUID, categoryIDs map[int64]uuid.UUID, good *catalog.PriceListGood) (int, error) {
	categoryID, ok := categoryIDs[good.Category]
	if !ok {
		return 0, shared.NewDomainError("VALIDATION_FAILED",
			fmt.Sprintf("Good %q references unknown category %d", good.Name, good.Category))
	}

	product, err := w.getOrCreateProduct(tx, good.Name, categoryID)
	if err != nil {
		return 0, err
	}

	info, err := catalog.NewProductInfo(
		product.ID, shopID, good.ID, good.Model,
		decimal.NewFromFloat(good.Price), decimal.NewFromFloat(good.PriceRRC),
		good.Quantity,
	)
	if err != nil {
		return 0, err
	}
	if err := tx.Omit("Parameters").Create(models.ProductInfoFromDomain(info)).Error; err != nil {
		return 0, err
	}

	written := 0
	for name, value := range good.Parameters {
		parameter, err := w.getOrCreateParameter(tx, name)
		if err != nil {
			return 0, err
		}
		row := models.ProductParameter{
			ID:            uuid.New(),
			ProductInfoID: info.ID,
			ParameterID:   parameter.ID,
			Value:         value,
		}
		if err := tx.Create(&row).Error; err != nil {
			return 0, err
		}
		written++
	}
	return written, nil
}

func (w *GormCatalogWriter) getOrCreateProduct(tx *gorm.DB, name string, categoryID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := tx.First(&product, "name = ? AND category_id = ?", name, categoryID).Error
	if err == nil {
		return &product, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, derr := catalog.NewProduct(name, categoryID)
	if derr != nil {
		return nil, derr
	}
	product = *models.ProductFromDomain(created)
	if err := tx.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (w *GormCatalogWriter) getOrCreateParameter(tx *gorm.DB, name string) (*models.Parameter, error) {
	var parameter models.Parameter
	err := tx.First(&parameter, "name = ?", name).Error
	if err == nil {
		return &parameter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, derr := catalog.NewParameter(name)
	if derr != nil {
		return nil, derr
	}
	parameter = *models.ParameterFromDomain(created)
	if err := tx.Create(&parameter).Error; err != nil {
		return nil, err
	}
	return &parameter, nil
}

// Ensure GormCatalogWriter implements CatalogWriter
var _ catalog.CatalogWriter = (*GormCatalogWriter)(nil)
