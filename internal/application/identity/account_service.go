package identity

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain/identity"
	"github.com/orderhub/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// AccountService handles the authenticated user's own account
type AccountService struct {
	userRepo    identity.UserRepository
	contactRepo identity.ContactRepository
	validate    *validator.Validate
}

// NewAccountService creates a new AccountService
func NewAccountService(userRepo identity.UserRepository, contactRepo identity.ContactRepository) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		contactRepo: contactRepo,
		validate:    validator.New(),
	}
}

// Get returns the account with its contacts
func (s *AccountService) Get(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contactRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	for i := range contacts {
		response.Contacts = append(response.Contacts, ToContactResponse(&contacts[i]))
	}
	return &response, nil
}

// Update applies partial changes to the account
func (s *AccountService) Update(ctx context.Context, userID uuid.UUID, input UpdateAccountInput) (*UserResponse, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, shared.NewDomainError("VALIDATION_FAILED", err.Error())
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Company != nil {
		user.Company = *input.Company
	}
	if input.Position != nil {
		user.Position = *input.Position
	}
	if input.Type != nil {
		if err := user.ChangeType(identity.UserType(*input.Type)); err != nil {
			return nil, err
		}
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// Delete removes the account. Contacts, the basket and placed orders go
// with it via the schema's cascading foreign keys.
func (s *AccountService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
