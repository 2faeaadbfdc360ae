package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/catalog"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const validPriceList = `
shop: Connect
categories:
  - id: 224
    name: Phones
goods:
  - id: 4216292
    category: 224
    model: apple/iphone/xr
    name: iPhone XR 256GB (red)
    price: 65000
    price_rrc: 67000
    quantity: 7
    parameters:
      "Color": "red"
`

func testShopUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("admin@connect.example.com", "Anna", "Ivanova", "Connect", "manager")
	require.NoError(t, err)
	require.NoError(t, user.ChangeType(identity.UserTypeShop))
	return user
}

func TestImportService_ImportPriceList(t *testing.T) {
	users := new(MockUserRepository)
	writer := new(MockCatalogWriter)
	svc := NewImportService(users, writer, zap.NewNop())
	ctx := context.Background()

	user := testShopUser(t)
	users.On("FindByID", ctx, user.ID).Return(user, nil)
	writer.On("ReplaceShopCatalog", ctx, user.ID, mock.MatchedBy(func(doc *catalog.PriceList) bool {
		return doc.Shop == "Connect" && len(doc.Goods) == 1
	})).Return(&catalog.ImportStats{Categories: 1, Products: 1, Parameters: 1}, nil)

	result, err := svc.ImportPriceList(ctx, user.ID, strings.NewReader(validPriceList))
	require.NoError(t, err)
	assert.Equal(t, "Connect", result.Shop)
	assert.Equal(t, 1, result.Categories)
	assert.Equal(t, 1, result.Products)
	assert.Equal(t, 1, result.Parameters)
}

func TestImportService_ImportPriceList_CustomerForbidden(t *testing.T) {
	users := new(MockUserRepository)
	writer := new(MockCatalogWriter)
	svc := NewImportService(users, writer, zap.NewNop())
	ctx := context.Background()

	user, err := identity.NewUser("buyer@example.com", "Ivan", "Petrov", "", "")
	require.NoError(t, err)
	users.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err = svc.ImportPriceList(ctx, user.ID, strings.NewReader(validPriceList))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
	writer.AssertNotCalled(t, "ReplaceShopCatalog", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportService_ImportPriceList_MalformedDocument(t *testing.T) {
	users := new(MockUserRepository)
	writer := new(MockCatalogWriter)
	svc := NewImportService(users, writer, zap.NewNop())
	ctx := context.Background()

	user := testShopUser(t)
	users.On("FindByID", ctx, user.ID).Return(user, nil)

	_, err := svc.ImportPriceList(ctx, user.ID, strings.NewReader("shop: [broken"))

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	writer.AssertNotCalled(t, "ReplaceShopCatalog", mock.Anything, mock.Anything, mock.Anything)
}

func TestImportService_ImportPriceList_UnknownUser(t *testing.T) {
	users := new(MockUserRepository)
	writer := new(MockCatalogWriter)
	svc := NewImportService(users, writer, zap.NewNop())
	ctx := context.Background()

	userID := uuid.New()
	users.On("FindByID", ctx, userID).Return(nil, shared.ErrNotFound)

	_, err := svc.ImportPriceList(ctx, userID, strings.NewReader(validPriceList))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
