package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents the custom JWT claims carried by a bearer token. The
// UserType claim lets the edge distinguish customers from shop accounts
// without a database round trip.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string            `json:"user_id"`
	Email    string            `json:"email"`
	UserType identity.UserType `json:"type"`
}

// Identity is the resolved caller identity attached to a request
type Identity struct {
	UserID uuid.UUID
	Email  string
	Type   identity.UserType
}

// TokenService issues and verifies bearer tokens
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewTokenService creates a token service from JWT configuration
func NewTokenService(cfg config.JWTConfig) *TokenService {
	return &TokenService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// Issue generates a signed token for the given user
func (s *TokenService) Issue(user *identity.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiration)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   user.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   user.ID.String(),
		Email:    user.Email,
		UserType: user.Type,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a bearer token, returning its claims
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}
	return claims, nil
}

// ResolveIdentity converts verified claims into a caller identity
func (c *Claims) ResolveIdentity() (*Identity, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}
	if !c.UserType.IsValid() {
		return nil, ErrInvalidClaims
	}
	return &Identity{
		UserID: userID,
		Email:  c.Email,
		Type:   c.UserType,
	}, nil
}

// RemainingTTL returns how long until the token expires, used when
// blacklisting on logout.
func (c *Claims) RemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}
