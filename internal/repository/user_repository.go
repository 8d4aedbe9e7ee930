package repository

import (
	"errors"

	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID, regardless of account status
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail resolves an email to its account. The active row wins, so
// an address freed by a soft-deleted account and registered again never
// resolves to the old row. Without an active row the newest match is
// returned so login can produce its status-specific errors.
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ? AND account_status = ?", email, models.AccountStatusActive).
		Order("id DESC").
		First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.Where("email = ?", email).Order("id DESC").First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ActiveEmailExists reports whether an active account other than excludeID
// already uses the email. Deleted accounts do not block re-registration.
func (r *GormUserRepository) ActiveEmailExists(email string, excludeID uint64) (bool, error) {
	var count int64
	query := r.db.Model(&models.User{}).
		Where("email = ? AND account_status = ?", email, models.AccountStatusActive)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List returns all users, including banned and deleted accounts
func (r *GormUserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
