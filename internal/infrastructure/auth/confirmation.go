package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTokenNotFound is returned when a confirmation token is unknown or expired
var ErrTokenNotFound = errors.New("confirmation token not found")

// confirmationTTL bounds how long an account confirmation link stays valid
const confirmationTTL = 48 * time.Hour

// ConfirmationStore issues and redeems one-time account confirmation tokens
type ConfirmationStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	// Consume redeems a token, invalidating it, and returns the user it
	// was issued for.
	Consume(ctx context.Context, token string) (uuid.UUID, error)
}

// RedisConfirmationStore implements ConfirmationStore using Redis
type RedisConfirmationStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisConfirmationStore creates a confirmation store backed by an
// existing Redis client.
func NewRedisConfirmationStore(client *redis.Client) *RedisConfirmationStore {
	return &RedisConfirmationStore{
		client:    client,
		keyPrefix: "account:confirm:",
	}
}

// Issue creates a confirmation token for the user
func (s *RedisConfirmationStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()
	key := s.keyPrefix + token
	if err := s.client.Set(ctx, key, userID.String(), confirmationTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store confirmation token: %w", err)
	}
	return token, nil
}

// Consume redeems a confirmation token
func (s *RedisConfirmationStore) Consume(ctx context.Context, token string) (uuid.UUID, error) {
	key := s.keyPrefix + token
	value, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrTokenNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to read confirmation token: %w", err)
	}
	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrTokenNotFound
	}
	return userID, nil
}

// InMemoryConfirmationStore is a process-local ConfirmationStore for
// development and tests.
type InMemoryConfirmationStore struct {
	mu      sync.Mutex
	entries map[string]confirmationEntry
}

type confirmationEntry struct {
	userID uuid.UUID
	expiry time.Time
}

// NewInMemoryConfirmationStore creates an empty in-memory store
func NewInMemoryConfirmationStore() *InMemoryConfirmationStore {
	return &InMemoryConfirmationStore{entries: make(map[string]confirmationEntry)}
}

// Issue creates a confirmation token for the user
func (s *InMemoryConfirmationStore) Issue(_ context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = confirmationEntry{userID: userID, expiry: time.Now().Add(confirmationTTL)}
	return token, nil
}

// Consume redeems a confirmation token
func (s *InMemoryConfirmationStore) Consume(_ context.Context, token string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok || time.Now().After(entry.expiry) {
		delete(s.entries, token)
		return uuid.Nil, ErrTokenNotFound
	}
	delete(s.entries, token)
	return entry.userID, nil
}
