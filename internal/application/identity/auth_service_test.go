package identity

import (
	"context"
	"testing"
	"time"

	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type authServiceMocks struct {
	users         *MockUserRepository
	notifier      *MockNotifier
	tokens        *auth.TokenService
	blacklist     *auth.InMemoryTokenBlacklist
	confirmations *auth.InMemoryConfirmationStore
}

func newAuthService(t *testing.T) (*AuthService, *authServiceMocks) {
	t.Helper()
	m := &authServiceMocks{
		users:    new(MockUserRepository),
		notifier: new(MockNotifier),
		tokens: auth.NewTokenService(config.JWTConfig{
			Secret:     "test-secret-key-32-characters-ok",
			Expiration: time.Hour,
			Issuer:     "orderhub-test",
		}),
		blacklist:     auth.NewInMemoryTokenBlacklist(),
		confirmations: auth.NewInMemoryConfirmationStore(),
	}
	svc := NewAuthService(m.users, m.tokens, m.blacklist, m.confirmations, m.notifier, zap.NewNop())
	return svc, m
}

func activeUser(t *testing.T, email, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "Ivan", "Petrov", "", "")
	require.NoError(t, err)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user.PasswordHash = string(hash)
	user.Activate()
	return user
}

func TestAuthService_Register(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	var saved *identity.User
	m.users.On("Save", ctx, mock.AnythingOfType("*identity.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*identity.User) }).
		Return(nil)
	m.notifier.On("Notify", ctx, mock.MatchedBy(func(n ordering.Notification) bool {
		return n.Kind == ordering.NotificationUserRegistered &&
			len(n.Recipients) == 1 && n.Recipients[0] == "new@example.com" &&
			n.Context["token"] != ""
	})).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		Email:     "New@Example.com",
		Password:  "correct horse",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	// stored inactive, with a hashed password
	require.NotNil(t, saved)
	assert.False(t, saved.IsActive)
	assert.NotEqual(t, "correct horse", saved.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("correct horse")))

	assert.Equal(t, "new@example.com", result.User.Email)
	assert.NotEmpty(t, result.ConfirmationToken)
	m.notifier.AssertExpectations(t)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc, m := newAuthService(t)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "new@example.com",
		Password:  "short",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	m.users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Confirm(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user, err := identity.NewUser("new@example.com", "Ivan", "Petrov", "", "")
	require.NoError(t, err)
	token, err := m.confirmations.Issue(ctx, user.ID)
	require.NoError(t, err)

	m.users.On("FindByID", ctx, user.ID).Return(user, nil)
	m.users.On("Save", ctx, user).Return(nil)

	require.NoError(t, svc.Confirm(ctx, token))
	assert.True(t, user.IsActive)

	// tokens are single use
	err = svc.Confirm(ctx, token)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestAuthService_Login(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := activeUser(t, "user@example.com", "correct horse")
	m.users.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

	result, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := m.tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := activeUser(t, "user@example.com", "correct horse")
	m.users.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "wrong"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthService_Login_UnknownEmailLooksTheSame(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	assert.Equal(t, "Invalid e-mail or password", domainErr.Message)
}

func TestAuthService_Login_UnconfirmedAccount(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := activeUser(t, "user@example.com", "correct horse")
	user.IsActive = false
	m.users.On("FindByEmail", ctx, "user@example.com").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "user@example.com", Password: "correct horse"})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestAuthService_Logout(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := activeUser(t, "user@example.com", "correct horse")
	token, _, err := m.tokens.Issue(user)
	require.NoError(t, err)
	claims, err := m.tokens.Verify(token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	revoked, err := m.blacklist.Contains(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)
}
