package identity

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
)

// ContactService handles a user's delivery contacts
type ContactService struct {
	contactRepo identity.ContactRepository
	validate    *validator.Validate
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo identity.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		validate:    validator.New(),
	}
}

// List returns the user's contacts, oldest first
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		responses = append(responses, ToContactResponse(&contacts[i]))
	}
	return responses, nil
}

// Create adds a contact for the user
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, input ContactInput) (*ContactResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	contact, err := identity.NewContact(userID,
		input.City, input.Street, input.House, input.Structure,
		input.Building, input.Apartment, input.Phone)
	if err != nil {
		return nil, err
	}
	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Update replaces the fields of a contact the user owns
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, input ContactInput) (*ContactResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	contact, err := s.contactRepo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contact.UserID != userID {
		return nil, shared.ErrNotFound
	}

	contact.City = input.City
	contact.Street = input.Street
	contact.House = input.House
	contact.Structure = input.Structure
	contact.Building = input.Building
	contact.Apartment = input.Apartment
	contact.Phone = input.Phone

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete removes the given contacts, skipping ids the user does not own,
// and returns the number of contacts deleted.
func (s *ContactService) Delete(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, shared.NewDomainError("VALIDATION_FAILED", "No contact ids given")
	}
	return s.contactRepo.DeleteForUser(ctx, userID, ids)
}
