package database

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/models"
)

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.Task{},
		&models.RevokedToken{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

// SeedBootstrapAdmin makes sure the bootstrap administrator account exists.
// The dedicated admin login path still requires this row to be present and
// active; seeding is skipped when no bootstrap password is configured.
func SeedBootstrapAdmin(cfg *config.Config) error {
	if cfg.BootstrapAdminPassword == "" {
		return nil
	}

	var existing models.User
	err := DB.Where("email = ?", cfg.BootstrapAdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
	}

	role := models.RoleAdministrator
	admin := &models.User{
		Email:         cfg.BootstrapAdminEmail,
		Name:          "Admin",
		Surname:       "Taskboard",
		PasswordHash:  string(hash),
		Role:          &role,
		AccountStatus: models.AccountStatusActive,
		IsStaff:       true,
		DateJoined:    time.Now(),
	}
	if err := DB.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}

	log.Printf("Created bootstrap admin account %s", cfg.BootstrapAdminEmail)
	return nil
}
