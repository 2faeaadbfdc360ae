package identity

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/shared"
)

// Contact holds a customer's delivery address and phone number. Contacts are
// reusable across orders.
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID
	City      string
	Street    string
	House     string
	Structure string
	Building  string
	Apartment string
	Phone     string
}

// NewContact creates a contact for a user. City, street and phone are the
// minimum a courier needs.
func NewContact(userID uuid.UUID, city, street, house, structure, building, apartment, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "Contact must belong to a user")
	}
	if city == "" || street == "" || phone == "" {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "City, street and phone are required")
	}

	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       city,
		Street:     street,
		House:      house,
		Structure:  structure,
		Building:   building,
		Apartment:  apartment,
		Phone:      phone,
	}, nil
}

// Matches reports whether the contact has exactly the given address fields.
// Used by checkout to reuse an existing contact instead of creating one.
func (c *Contact) Matches(city, street, house, apartment, phone string) bool {
	return c.City == city &&
		c.Street == street &&
		c.House == house &&
		c.Apartment == apartment &&
		c.Phone == phone
}
