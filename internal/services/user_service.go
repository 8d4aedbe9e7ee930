package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
)

// Injectable clock for the services package
var timeNow = time.Now

var (
	ErrNotPlainUser  = errors.New("user is not a regular user or is already a moderator/administrator")
	ErrNotModerator  = errors.New("user is not a moderator")
	ErrAlreadyBanned = errors.New("user is already banned")
)

// UserService handles profile management and administrative account
// operations.
type UserService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput carries the editable profile fields. Nil means
// "leave unchanged".
type UpdateProfileInput struct {
	Name       *string
	Surname    *string
	Patronym   *string
	BirthDate  *time.Time
	BirthPlace *string
}

// UpdateProfile applies partial profile changes. The composed full name
// is recomputed on save.
func (s *UserService) UpdateProfile(user *models.User, input UpdateProfileInput) (*models.User, error) {
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Surname != nil {
		user.Surname = *input.Surname
	}
	if input.Patronym != nil {
		user.Patronym = *input.Patronym
	}
	if input.BirthDate != nil {
		user.BirthDate = input.BirthDate
	}
	if input.BirthPlace != nil {
		user.BirthPlace = *input.BirthPlace
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// SoftDeleteAccount marks the account deleted, logs the user out and
// clears their session ledger. The row is never removed.
func (s *UserService) SoftDeleteAccount(user *models.User) error {
	user.AccountStatus = models.AccountStatusDeleted
	user.IsActive = false
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.sessionRepo.DeleteByUser(user.ID); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}

// ListUsers returns every account, including banned and deleted ones.
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Promote raises a plain user to moderator.
func (s *UserService) Promote(userID uint64) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if !user.IsPlainUser() {
		return nil, ErrNotPlainUser
	}

	role := models.RoleModerator
	user.Role = &role
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}
	return user, nil
}

// Demote lowers a moderator back to plain user. The staff flag is
// dropped along with the role.
func (s *UserService) Demote(userID uint64) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if !user.IsModerator() {
		return nil, ErrNotModerator
	}

	role := models.RoleUser
	user.Role = &role
	user.IsStaff = false
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to demote user: %w", err)
	}
	return user, nil
}

// Ban marks the account banned and logs the user out everywhere.
func (s *UserService) Ban(userID uint64) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if user.AccountStatus == models.AccountStatusBanned {
		return nil, ErrAlreadyBanned
	}

	user.AccountStatus = models.AccountStatusBanned
	user.IsActive = false
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to ban user: %w", err)
	}

	if err := s.sessionRepo.DeleteByUser(user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear sessions: %w", err)
	}
	return user, nil
}
