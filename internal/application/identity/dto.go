package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
)

// RegisterInput contains the input for account registration
type RegisterInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Company   string `json:"company"`
	Position  string `json:"position"`
}

// RegisterResult reports a successful registration. The confirmation token
// is also delivered by e-mail; it is returned here for clients that poll.
type RegisterResult struct {
	User              UserResponse `json:"user"`
	ConfirmationToken string       `json:"confirmation_token,omitempty"`
}

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UpdateAccountInput contains the mutable account fields. Nil pointers leave
// the current value untouched.
type UpdateAccountInput struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Company   *string `json:"company,omitempty"`
	Position  *string `json:"position,omitempty"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Type      *string `json:"type,omitempty" validate:"omitempty,oneof=customer shop"`
}

// ContactInput contains the input for creating or updating a contact
type ContactInput struct {
	City      string `json:"city" validate:"required"`
	Street    string `json:"street" validate:"required"`
	House     string `json:"house"`
	Structure string `json:"structure"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone" validate:"required"`
}

// UserResponse is the API representation of a user account
type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Company   string            `json:"company,omitempty"`
	Position  string            `json:"position,omitempty"`
	Type      string            `json:"type"`
	IsActive  bool              `json:"is_active"`
	Contacts  []ContactResponse `json:"contacts,omitempty"`
}

// ContactResponse is the API representation of a contact
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Structure string    `json:"structure,omitempty"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Company:   u.Company,
		Position:  u.Position,
		Type:      u.Type.String(),
		IsActive:  u.IsActive,
	}
}

// ToContactResponse converts a domain contact to its API representation
func ToContactResponse(c *identity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Structure: c.Structure,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
}
