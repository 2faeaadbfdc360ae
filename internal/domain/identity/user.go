package identity

import (
	"strings"

	"github.com/orderhub/backend/internal/domain/shared"
)

// UserType discriminates buyers from suppliers
type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeShop     UserType = "shop"
)

// IsValid checks if the type is a valid UserType
func (t UserType) IsValid() bool {
	return t == UserTypeCustomer || t == UserTypeShop
}

// String returns the string representation of UserType
func (t UserType) String() string {
	return string(t)
}

// User is an account in the system. A shop-type user owns exactly one Shop.
type User struct {
	shared.BaseEntity
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Company      string
	Position     string
	Type         UserType
	IsActive     bool
}

// NewUser creates a new user account. Accounts start as customers and
// inactive until e-mail confirmation.
func NewUser(email, firstName, lastName, company, position string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid e-mail address is required")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "First and last name are required")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		FirstName:  firstName,
		LastName:   lastName,
		Company:    company,
		Position:   position,
		Type:       UserTypeCustomer,
		IsActive:   false,
	}, nil
}

// Activate marks the account as active
func (u *User) Activate() {
	u.IsActive = true
}

// ChangeType switches the account between customer and shop
func (u *User) ChangeType(t UserType) error {
	if !t.IsValid() {
		return shared.NewDomainError("VALIDATION_FAILED", "Unknown user type")
	}
	u.Type = t
	return nil
}

// IsShop reports whether the account is a supplier account
func (u *User) IsShop() bool {
	return u.Type == UserTypeShop
}
