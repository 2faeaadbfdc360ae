package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type basketServiceMocks struct {
	orders       *MockOrderRepository
	products     *MockProductInfoRepository
	productNames *MockProductRepository
	contacts     *MockContactRepository
}

func newBasketService(t *testing.T) (*BasketService, *basketServiceMocks) {
	t.Helper()
	m := &basketServiceMocks{
		orders:       new(MockOrderRepository),
		products:     new(MockProductInfoRepository),
		productNames: new(MockProductRepository),
		contacts:     new(MockContactRepository),
	}
	return NewBasketService(m.orders, m.products, m.productNames, m.contacts), m
}

func TestBasketService_Get_EmptyWhenNoBasket(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.orders.On("FindBasket", ctx, userID).Return(nil, shared.ErrNotFound)

	basket, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, basket.ID)
	assert.Empty(t, basket.Items)
	assert.Nil(t, basket.TotalSum)
}

func TestBasketService_AddItems_RequiresContact(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.contacts.On("FindFirstByUser", ctx, userID).Return(nil, shared.ErrNotFound)

	_, err := svc.AddItems(ctx, userID, []BasketItemInput{
		{Product: "USB-C charger", Quantity: 1},
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_CONTACT", domainErr.Code)
	m.orders.AssertNotCalled(t, "GetOrCreateBasket", mock.Anything, mock.Anything, mock.Anything)
}

func TestBasketService_AddItems_MergesRepeatedProduct(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	contact := testContact(t, userID)
	basket, err := ordering.NewBasket(userID, contact.ID)
	require.NoError(t, err)
	sku := testSKU(t, uuid.New(), 1500)

	m.contacts.On("FindFirstByUser", ctx, userID).Return(contact, nil)
	m.orders.On("GetOrCreateBasket", ctx, userID, contact.ID).Return(basket, true, nil)
	m.products.On("FindByProductName", ctx, "USB-C charger").Return(sku, nil)
	m.orders.On("Save", ctx, basket).Return(nil)

	result, err := svc.AddItems(ctx, userID, []BasketItemInput{
		{Product: "USB-C charger", Quantity: 2},
		{Product: "USB-C charger", Quantity: 3},
	})
	require.NoError(t, err)

	// one line created, quantities merged
	assert.Equal(t, 1, result.Created)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, 5, basket.Items[0].Quantity)
}

func TestBasketService_AddItems_FailFastKeepsEarlierLines(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	contact := testContact(t, userID)
	basket, err := ordering.NewBasket(userID, contact.ID)
	require.NoError(t, err)
	known := testSKU(t, uuid.New(), 1500)

	m.contacts.On("FindFirstByUser", ctx, userID).Return(contact, nil)
	m.orders.On("GetOrCreateBasket", ctx, userID, contact.ID).Return(basket, true, nil)
	m.products.On("FindByProductName", ctx, "USB-C charger").Return(known, nil)
	m.products.On("FindByProductName", ctx, "Discontinued phone").Return(nil, shared.ErrNotFound)
	m.orders.On("Save", ctx, basket).Return(nil)

	_, err = svc.AddItems(ctx, userID, []BasketItemInput{
		{Product: "USB-C charger", Quantity: 1},
		{Product: "Discontinued phone", Quantity: 1},
	})

	// the call fails naming the product, but the first line was already persisted
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Discontinued phone")
	m.orders.AssertNumberOfCalls(t, "Save", 1)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, known.ID, basket.Items[0].ProductInfoID)
}

func TestBasketService_RemoveItems(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	contact := testContact(t, userID)
	basket, err := ordering.NewBasket(userID, contact.ID)
	require.NoError(t, err)
	skuA := testSKU(t, uuid.New(), 1500)
	skuB := testSKU(t, uuid.New(), 900)
	skuC := testSKU(t, uuid.New(), 400)
	_, err = basket.MergeItem(skuA.ID, 1)
	require.NoError(t, err)
	_, err = basket.MergeItem(skuB.ID, 2)
	require.NoError(t, err)

	m.products.On("FindByProductName", ctx, "Phone A").Return(skuA, nil)
	m.products.On("FindByProductName", ctx, "Cable C").Return(skuC, nil)
	m.orders.On("FindBasket", ctx, userID).Return(basket, nil)
	m.orders.On("Save", ctx, basket).Return(nil)

	// Cable C is in the catalog but not in the basket, so only one line goes
	result, err := svc.RemoveItems(ctx, userID, []string{"Phone A", "Cable C"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	require.Len(t, basket.Items, 1)
	assert.Equal(t, skuB.ID, basket.Items[0].ProductInfoID)
}

func TestBasketService_RemoveItems_UnknownProductAborts(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	contact := testContact(t, userID)
	basket, err := ordering.NewBasket(userID, contact.ID)
	require.NoError(t, err)
	skuA := testSKU(t, uuid.New(), 1500)
	_, err = basket.MergeItem(skuA.ID, 1)
	require.NoError(t, err)

	m.products.On("FindByProductName", ctx, "Phone A").Return(skuA, nil)
	m.products.On("FindByProductName", ctx, "Ghost phone").Return(nil, shared.ErrNotFound)

	_, err = svc.RemoveItems(ctx, userID, []string{"Phone A", "Ghost phone"})

	// one bad name aborts the whole call before the basket is even loaded
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Contains(t, domainErr.Message, "Ghost phone")
	require.Len(t, basket.Items, 1)
	m.orders.AssertNotCalled(t, "FindBasket", mock.Anything, mock.Anything)
	m.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestBasketService_Get_WithItems(t *testing.T) {
	svc, m := newBasketService(t)
	ctx := context.Background()
	userID := uuid.New()

	contact := testContact(t, userID)
	basket, err := ordering.NewBasket(userID, contact.ID)
	require.NoError(t, err)
	sku := testSKU(t, uuid.New(), 1500)
	_, err = basket.MergeItem(sku.ID, 2)
	require.NoError(t, err)

	m.orders.On("FindBasket", ctx, userID).Return(basket, nil)
	m.products.On("FindByID", ctx, sku.ID).Return(sku, nil)
	m.productNames.On("FindNamesByIDs", ctx, mock.Anything).Return(map[uuid.UUID]string{
		sku.ProductID: "USB-C charger",
	}, nil)
	m.orders.On("TotalSum", ctx, basket.ID).Return(
		decimal.NewNullDecimal(decimal.NewFromInt(3000)), nil)

	response, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	assert.Equal(t, "USB-C charger", response.Items[0].Product)
	assert.True(t, response.Items[0].Sum.Equal(decimal.NewFromInt(3000)))
	require.NotNil(t, response.TotalSum)
	assert.True(t, response.TotalSum.Equal(decimal.NewFromInt(3000)))
}
