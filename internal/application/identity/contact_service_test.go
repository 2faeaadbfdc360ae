package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestContactService_Create(t *testing.T) {
	contacts := new(MockContactRepository)
	svc := NewContactService(contacts)
	ctx := context.Background()
	userID := uuid.New()

	contacts.On("Save", ctx, mock.AnythingOfType("*identity.Contact")).Return(nil)

	response, err := svc.Create(ctx, userID, ContactInput{
		City: "Moscow", Street: "Tverskaya", House: "1", Phone: "+79990001122",
	})
	require.NoError(t, err)
	assert.Equal(t, "Moscow", response.City)
	assert.NotEqual(t, uuid.Nil, response.ID)
}

func TestContactService_Create_MissingCity(t *testing.T) {
	contacts := new(MockContactRepository)
	svc := NewContactService(contacts)

	_, err := svc.Create(context.Background(), uuid.New(), ContactInput{
		Street: "Tverskaya", Phone: "+79990001122",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	contacts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactService_Update_ForeignContactLooksMissing(t *testing.T) {
	contacts := new(MockContactRepository)
	svc := NewContactService(contacts)
	ctx := context.Background()

	other, err := identity.NewContact(uuid.New(), "Moscow", "Arbat", "2", "", "", "", "+79990003344")
	require.NoError(t, err)
	contacts.On("FindByID", ctx, other.ID).Return(other, nil)

	_, err = svc.Update(ctx, uuid.New(), other.ID, ContactInput{
		City: "Moscow", Street: "Arbat", Phone: "+79990003344",
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	contacts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestContactService_Delete(t *testing.T) {
	contacts := new(MockContactRepository)
	svc := NewContactService(contacts)
	ctx := context.Background()
	userID := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	contacts.On("DeleteForUser", ctx, userID, ids).Return(int64(2), nil)

	deleted, err := svc.Delete(ctx, userID, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = svc.Delete(ctx, userID, nil)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}
