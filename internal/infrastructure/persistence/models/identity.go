package models

import (
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
)

// User is the persistence model for identity.User
type User struct {
	BaseModel
	Email        string `gorm:"size:254;not null;uniqueIndex"`
	PasswordHash string `gorm:"size:128;not null"`
	FirstName    string `gorm:"size:150;not null"`
	LastName     string `gorm:"size:150;not null"`
	Company      string `gorm:"size:100"`
	Position     string `gorm:"size:100"`
	Type         string `gorm:"size:10;not null;default:customer"`
	IsActive     bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for User
func (User) TableName() string { return "users" }

// ToDomain converts the persistence model to a domain user
func (m *User) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.BaseModel.ToDomain(),
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Company:      m.Company,
		Position:     m.Position,
		Type:         identity.UserType(m.Type),
		IsActive:     m.IsActive,
	}
}

// UserFromDomain builds the persistence model from a domain user
func UserFromDomain(u *identity.User) *User {
	m := &User{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Company:      u.Company,
		Position:     u.Position,
		Type:         u.Type.String(),
		IsActive:     u.IsActive,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// Contact is the persistence model for identity.Contact
type Contact struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"size:50;not null"`
	Street    string    `gorm:"size:100;not null"`
	House     string    `gorm:"size:15"`
	Structure string    `gorm:"size:15"`
	Building  string    `gorm:"size:15"`
	Apartment string    `gorm:"size:15"`
	Phone     string    `gorm:"size:20;not null;index"`
}

// TableName returns the table name for Contact
func (Contact) TableName() string { return "contacts" }

// ToDomain converts the persistence model to a domain contact
func (m *Contact) ToDomain() *identity.Contact {
	return &identity.Contact{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		City:       m.City,
		Street:     m.Street,
		House:      m.House,
		Structure:  m.Structure,
		Building:   m.Building,
		Apartment:  m.Apartment,
		Phone:      m.Phone,
	}
}

// ContactFromDomain builds the persistence model from a domain contact
func ContactFromDomain(c *identity.Contact) *Contact {
	m := &Contact{
		UserID:    c.UserID,
		City:      c.City,
		Street:    c.Street,
		House:     c.House,
		Structure: c.Structure,
		Building:  c.Building,
		Apartment: c.Apartment,
		Phone:     c.Phone,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
