package persistence

import (
	"fmt"
	"strings"
	"testing"

	"github.com/orderhub/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database migrated to the full schema.
// Behavioral repository tests run against it; SQL-shape tests use sqlmock
// with the postgres dialector instead.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// a named shared-cache memory db survives across pooled connections
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Contact{},
		&models.Shop{}, &models.Category{}, &models.ShopCategory{},
		&models.Product{}, &models.ProductInfo{}, &models.Parameter{}, &models.ProductParameter{},
		&models.Order{}, &models.OrderItem{},
	))

	// the basket singleton index lives in the SQL migrations; mirror it here
	require.NoError(t, db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS uq_orders_user_basket ON orders(user_id) WHERE status = 'basket'",
	).Error)

	return db
}
