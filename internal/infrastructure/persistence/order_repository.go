package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// totalSumExpr computes an order's total as the sum of line quantity times
// the current SKU price. Evaluated per row so listings can sort on it.
const totalSumExpr = "(SELECT COALESCE(SUM(oi.quantity * pi.price), 0) " +
	"FROM order_items oi JOIN product_infos pi ON pi.id = oi.product_info_id " +
	"WHERE oi.order_id = orders.id)"

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, with items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBasket returns the user's basket order with items. It never creates one.
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	var model models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, ordering.OrderStatusBasket.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetOrCreateBasket returns the user's basket, creating it bound to the given
// contact when absent. The partial unique index on basket rows makes the
// create race-safe: a concurrent loser re-reads the winner's row.
func (r *GormOrderRepository) GetOrCreateBasket(ctx context.Context, userID, contactID uuid.UUID) (*ordering.Order, bool, error) {
	basket, err := r.FindBasket(ctx, userID)
	if err == nil {
		return basket, false, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, false, err
	}

	basket, err = ordering.NewBasket(userID, contactID)
	if err != nil {
		return nil, false, err
	}
	if err := r.db.WithContext(ctx).
		Omit("Items").
		Create(models.OrderFromDomain(basket)).Error; err != nil {
		if isUniqueViolation(err) {
			existing, findErr := r.FindBasket(ctx, userID)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return basket, true, nil
}

// Save persists the whole order aggregate in one transaction: the order row,
// upserts for current items and deletes for removed ones.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	model := models.OrderFromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(&models.Order{
			BaseModel: model.BaseModel,
			UserID:    model.UserID,
			ContactID: model.ContactID,
			Status:    model.Status,
		}).Error; err != nil {
			if isUniqueViolation(err) {
				return shared.ErrIntegrityConflict
			}
			return err
		}

		if len(model.Items) == 0 {
			return tx.Where("order_id = ?", model.ID).Delete(&models.OrderItem{}).Error
		}

		keep := make([]uuid.UUID, 0, len(model.Items))
		for _, item := range model.Items {
			keep = append(keep, item.ID)
		}
		if err := tx.Where("order_id = ? AND id NOT IN ?", model.ID, keep).
			Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		// Save on a slice upserts by primary key
		return tx.Save(model.Items).Error
	})
}

// FindAllForUser lists the user's placed orders, basket excluded
func (r *GormOrderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	filter.Normalize()

	query := r.applyUserFilter(r.db.WithContext(ctx).Model(&models.Order{}), userID, filter)
	query = query.Offset(filter.Offset()).Limit(filter.PageSize)

	if filter.OrderBy == "total_sum" {
		query = query.Order(totalSumExpr + " " + orderDir(filter.OrderDir))
	} else {
		query = query.Order("orders.created_at DESC")
	}

	var rows []models.Order
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// CountForUser counts the user's placed orders matching the filter
func (r *GormOrderRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	filter.Normalize()

	var count int64
	query := r.applyUserFilter(r.db.WithContext(ctx).Model(&models.Order{}), userID, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindForShopOwner lists placed orders containing SKUs sold by the shop
// owned by ownerID.
func (r *GormOrderRepository) FindForShopOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	filter.Normalize()

	query := r.applyShopOwnerFilter(r.db.WithContext(ctx).Model(&models.Order{}), ownerID, filter)
	query = query.
		Offset(filter.Offset()).Limit(filter.PageSize).
		Order("orders.created_at DESC")

	var rows []models.Order
	if err := query.Preload("Items").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows), nil
}

// CountForShopOwner counts placed orders containing SKUs sold by the shop
// owned by ownerID.
func (r *GormOrderRepository) CountForShopOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	filter.Normalize()

	var count int64
	query := r.applyShopOwnerFilter(r.db.WithContext(ctx).Model(&models.Order{}), ownerID, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ContainsShopOwner reports whether the order has at least one SKU sold by
// the shop owned by ownerID.
func (r *GormOrderRepository) ContainsShopOwner(ctx context.Context, orderID, ownerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("order_items.order_id = ? AND shops.user_id = ?", orderID, ownerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormOrderRepository) applyShopOwnerFilter(query *gorm.DB, ownerID uuid.UUID, filter shared.Filter) *gorm.DB {
	sub := r.db.Model(&models.OrderItem{}).
		Select("1").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Joins("JOIN shops ON shops.id = product_infos.shop_id").
		Where("order_items.order_id = orders.id").
		Where("shops.user_id = ?", ownerID)

	query = query.
		Where("orders.status <> ?", ordering.OrderStatusBasket.String()).
		Where("EXISTS (?)", sub)
	if state, ok := filter.Filters["state"]; ok {
		query = query.Where("orders.status = ?", state)
	}
	return query
}

// DeleteForUser removes the given placed orders and their items, skipping
// ids the user does not own and the basket, and returns the number of
// orders deleted.
func (r *GormOrderRepository) DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []uuid.UUID
		if err := tx.Model(&models.Order{}).
			Where("user_id = ? AND id IN ? AND status <> ?", userID, ids, ordering.OrderStatusBasket.String()).
			Pluck("id", &owned).Error; err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}

		if err := tx.Where("order_id IN ?", owned).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", owned).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// TotalSum computes the order total over current SKU prices. Valid is false
// when the order has no items.
func (r *GormOrderRepository) TotalSum(ctx context.Context, orderID uuid.UUID) (decimal.NullDecimal, error) {
	var row struct {
		Total decimal.NullDecimal
	}
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("SUM(order_items.quantity * product_infos.price) AS total").
		Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
		Where("order_items.order_id = ?", orderID).
		Scan(&row).Error
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return row.Total, nil
}

func (r *GormOrderRepository) applyUserFilter(query *gorm.DB, userID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("orders.user_id = ? AND orders.status <> ?",
		userID, ordering.OrderStatusBasket.String())

	if state, ok := filter.Filters["state"]; ok {
		query = query.Where("orders.status = ?", state)
	}

	if filter.Keyword != "" {
		pattern := keywordPattern(filter.Keyword)
		sub := r.db.Model(&models.OrderItem{}).
			Select("1").
			Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
			Joins("JOIN products ON products.id = product_infos.product_id").
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("order_items.order_id = orders.id").
			Where("LOWER(products.name) LIKE ? OR LOWER(categories.name) LIKE ?", pattern, pattern)
		query = query.Where("EXISTS (?)", sub)
	}

	return query
}

func toDomainOrders(rows []models.Order) []ordering.Order {
	orders := make([]ordering.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *rows[i].ToDomain())
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
