package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewhq/crew-backend/internal/apperrors"
	"github.com/crewhq/crew-backend/internal/constants"
	"github.com/crewhq/crew-backend/internal/models"
	"github.com/crewhq/crew-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// UserService governs the user lifecycle: creation with email recycling,
// profile updates, and soft deletion.
type UserService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUserInput represents the required information to create a new user.
type CreateUserInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
	// Role is the requested role name; empty means Employee.
	Role string
}

// Create validates the input and inserts the user. An email held by an
// active user is a validation failure; an email held only by a soft-deleted
// user is recycled, hard-removing the predecessor and its memberships.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	details := map[string][]string{}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		details["name"] = append(details["name"], "The name is required.")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		details["email"] = append(details["email"], "The email is required.")
	}
	if len(input.Password) < constants.MinPasswordLength {
		details["password"] = append(details["password"],
			fmt.Sprintf("The password must be at least %d characters.", constants.MinPasswordLength))
	}
	if input.Password != input.PasswordConfirmation {
		details["password_confirmation"] = append(details["password_confirmation"],
			"The password confirmation does not match.")
	}

	role := models.DefaultRole
	if input.Role != "" {
		parsed, ok := models.ParseRole(input.Role)
		if !ok {
			details["role"] = append(details["role"], "The selected role is invalid.")
		} else {
			role = parsed
		}
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationDetails(details)
	}

	roleRow, err := s.roleRepo.FindByName(role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewValidation("role", "Unable to assign role. Please contact administrator.")
		}
		return nil, fmt.Errorf("failed to look up role: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       roleRow.ID,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewValidation("email", "The email has already been taken.")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Role = *roleRow
	return user, nil
}

// UpdateUserInput represents a profile update. Password is optional; when
// present it must match its confirmation.
type UpdateUserInput struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Update applies a profile update to an active user.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if input.Password != "" {
		if input.Password != input.PasswordConfirmation {
			return nil, apperrors.NewValidation("password_confirmation", "The password confirmation does not match.")
		}
		if len(input.Password) < constants.MinPasswordLength {
			return nil, apperrors.NewValidation("password",
				fmt.Sprintf("The password must be at least %d characters.", constants.MinPasswordLength))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		user.PasswordHash = string(hash)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		user.Email = email
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, apperrors.NewValidation("email", "The email has already been taken.")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Delete soft-deletes the user and its active memberships, stamping the
// acting user. A user that is absent or already soft-deleted is a not-found
// condition, never a silent no-op.
func (s *UserService) Delete(id, actorID uint64) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NewNotFound("User", id)
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if err := s.userRepo.SoftDelete(id, actorID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// Get retrieves an active user by ID.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("User", id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// List retrieves active users matching the filter.
func (s *UserService) List(filter repository.UserFilter) ([]models.User, int64, error) {
	return s.userRepo.List(filter)
}

// GetByIDs retrieves the active users among the given IDs.
func (s *UserService) GetByIDs(ids []uint64) ([]models.User, error) {
	return s.userRepo.FindByIDs(ids)
}

// Authenticate verifies credentials and returns the authenticated user.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindActiveByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
