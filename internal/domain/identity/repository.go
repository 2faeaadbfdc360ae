package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository provides access to user accounts
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ContactRepository provides access to customer contacts
type ContactRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Contact, error)
	// FindFirstByUser returns the oldest contact on file for the user, or
	// shared.ErrNotFound when the user has none.
	FindFirstByUser(ctx context.Context, userID uuid.UUID) (*Contact, error)
	FindByPhone(ctx context.Context, userID uuid.UUID, phone string) (*Contact, error)
	Save(ctx context.Context, contact *Contact) error
	// DeleteForUser removes the given contacts, skipping ids the user does
	// not own, and returns the number of rows deleted.
	DeleteForUser(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)
}
