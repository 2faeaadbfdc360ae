package identity

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/ordering"
	"github.com/orderhub/backend/internal/domain/shared"
	"github.com/orderhub/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, account confirmation and sessions
type AuthService struct {
	userRepo      identity.UserRepository
	tokens        *auth.TokenService
	blacklist     auth.TokenBlacklist
	confirmations auth.ConfirmationStore
	notifier      ordering.Notifier
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	tokens *auth.TokenService,
	blacklist auth.TokenBlacklist,
	confirmations auth.ConfirmationStore,
	notifier ordering.Notifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		tokens:        tokens,
		blacklist:     blacklist,
		confirmations: confirmations,
		notifier:      notifier,
		validate:      validator.New(),
		logger:        logger,
	}
}

// Register creates a new inactive account and mails a confirmation token
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	user, err := identity.NewUser(input.Email, input.FirstName, input.LastName, input.Company, input.Position)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.confirmations.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	_ = s.notifier.Notify(ctx, ordering.Notification{
		Kind:       ordering.NotificationUserRegistered,
		Recipients: []string{user.Email},
		Context:    map[string]string{"token": token},
	})

	s.logger.Info("user registered", zap.String("email", user.Email))
	return &RegisterResult{
		User:              ToUserResponse(user),
		ConfirmationToken: token,
	}, nil
}

// Confirm activates the account the token was issued for
func (s *AuthService) Confirm(ctx context.Context, token string) error {
	userID, err := s.confirmations.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return shared.NewDomainError("VALIDATION_FAILED", "Unknown or expired confirmation token")
		}
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Activate()
	return s.userRepo.Save(ctx, user)
}

// Login verifies credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid e-mail or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid e-mail or password")
	}
	if !user.IsActive {
		return nil, shared.NewDomainError("FORBIDDEN", "Account is not confirmed yet")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.blacklist.Add(ctx, claims.ID, claims.RemainingTTL())
}
