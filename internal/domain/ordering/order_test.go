package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, status OrderStatus) *Order {
	t.Helper()
	order, err := newOrder(uuid.New(), uuid.New(), status)
	require.NoError(t, err)
	return order
}

func TestNewBasket(t *testing.T) {
	basket, err := NewBasket(uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, OrderStatusBasket, basket.Status)
	assert.True(t, basket.IsBasket())
	assert.Empty(t, basket.Items)
}

func TestNewOrder_RequiresContact(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.Nil)
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_CONTACT", domainErr.Code)
}

func TestNewOrder_RequiresUser(t *testing.T) {
	_, err := NewOrder(uuid.Nil, uuid.New())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusBasket, OrderStatusNew, true},
		{OrderStatusNew, OrderStatusConfirmed, true},
		{OrderStatusConfirmed, OrderStatusAssembled, true},
		{OrderStatusAssembled, OrderStatusSent, true},
		{OrderStatusSent, OrderStatusDelivered, true},

		// cancellation is allowed from any non-terminal state
		{OrderStatusBasket, OrderStatusCanceled, true},
		{OrderStatusNew, OrderStatusCanceled, true},
		{OrderStatusSent, OrderStatusCanceled, true},
		{OrderStatusDelivered, OrderStatusCanceled, false},
		{OrderStatusCanceled, OrderStatusCanceled, false},

		// no skipping or going backwards
		{OrderStatusNew, OrderStatusAssembled, false},
		{OrderStatusBasket, OrderStatusConfirmed, false},
		{OrderStatusConfirmed, OrderStatusNew, false},
		{OrderStatusDelivered, OrderStatusNew, false},
		{OrderStatusCanceled, OrderStatusNew, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_TransitionTo(t *testing.T) {
	order := newTestOrder(t, OrderStatusNew)

	require.NoError(t, order.TransitionTo(OrderStatusConfirmed))
	assert.Equal(t, OrderStatusConfirmed, order.Status)

	err := order.TransitionTo(OrderStatusDelivered)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, OrderStatusConfirmed, order.Status)
}

func TestOrder_TransitionTo_UnknownStatus(t *testing.T) {
	order := newTestOrder(t, OrderStatusNew)

	err := order.TransitionTo(OrderStatus("shipped"))
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestOrder_MergeItem(t *testing.T) {
	order := newTestOrder(t, OrderStatusBasket)
	sku := uuid.New()

	created, err := order.MergeItem(sku, 2)
	require.NoError(t, err)
	assert.True(t, created)

	// repeated SKU increments the existing line
	created, err = order.MergeItem(sku, 3)
	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.Items[0].Quantity)

	_, err = order.MergeItem(uuid.New(), 0)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestOrder_SetItemQuantity(t *testing.T) {
	order := newTestOrder(t, OrderStatusBasket)
	sku := uuid.New()

	created, err := order.SetItemQuantity(sku, 4)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = order.SetItemQuantity(sku, 1)
	require.NoError(t, err)
	assert.False(t, created)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)
}

func TestOrder_RemoveItem(t *testing.T) {
	order := newTestOrder(t, OrderStatusBasket)
	keep := uuid.New()
	drop := uuid.New()
	_, err := order.MergeItem(keep, 1)
	require.NoError(t, err)
	_, err = order.MergeItem(drop, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, order.RemoveItem(drop))
	assert.Equal(t, 0, order.RemoveItem(drop))
	require.Len(t, order.Items, 1)
	assert.Equal(t, keep, order.Items[0].ProductInfoID)
}

func TestOrder_Reopen(t *testing.T) {
	order := newTestOrder(t, OrderStatusConfirmed)
	require.NoError(t, order.Reopen())
	assert.Equal(t, OrderStatusNew, order.Status)

	for _, status := range []OrderStatus{OrderStatusBasket, OrderStatusDelivered, OrderStatusCanceled} {
		order := newTestOrder(t, status)
		err := order.Reopen()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr, "status %s", status)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	}
}

func TestOrder_BindContact(t *testing.T) {
	order := newTestOrder(t, OrderStatusBasket)
	contactID := uuid.New()

	require.NoError(t, order.BindContact(contactID))
	require.NotNil(t, order.ContactID)
	assert.Equal(t, contactID, *order.ContactID)

	err := order.BindContact(uuid.Nil)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_CONTACT", domainErr.Code)
}
