package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/utils"
)

var (
	ErrEmailTaken           = errors.New("a user with this email already exists")
	ErrPasswordMismatch     = errors.New("password fields didn't match")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDeleted       = errors.New("this account has been deleted")
	ErrAccountBanned        = errors.New("this account has been banned")
	ErrAccountNotActive     = errors.New("this account is not active")
	ErrWrongPassword        = errors.New("password is incorrect")
	ErrSameEmail            = errors.New("new email must be different from current email")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, credential checks and the session
// side effects of logging in and out. Token minting is delegated to
// TokenService.
type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      *TokenService
	cfg         *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens *TokenService, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokens:      tokens,
		cfg:         cfg,
	}
}

// RegisterInput represents the required information to create an account.
type RegisterInput struct {
	Email          string
	Name           string
	Surname        string
	Patronym       string
	Password       string
	PasswordRepeat string
}

// Register creates a user with the default role and logs them in by
// issuing a token pair.
func (s *AuthService) Register(input RegisterInput) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.Password != input.PasswordRepeat {
		return nil, nil, ErrPasswordMismatch
	}
	if err := utils.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	taken, err := s.userRepo.ActiveEmailExists(email, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, ErrFailedToHashPassword
	}

	role := models.RoleUser
	user := &models.User{
		Email:         email,
		Name:          strings.TrimSpace(input.Name),
		Surname:       strings.TrimSpace(input.Surname),
		Patronym:      strings.TrimSpace(input.Patronym),
		PasswordHash:  string(hashed),
		Role:          &role,
		AccountStatus: models.AccountStatusActive,
		IsActive:      true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// LoginInput holds the credentials plus client metadata for the session
// ledger.
type LoginInput struct {
	Email    string
	Password string

	IPAddress     string
	UserAgent     string
	ScreenSize    string
	Timezone      string
	Language      string
	ExtraMetadata map[string]interface{}
}

// Login verifies credentials, records the session and issues a token pair.
func (s *AuthService) Login(input LoginInput) (*models.User, *TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.bootstrapAdminLogin(email, input.Password)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		user, err = s.passwordLogin(email, input.Password)
		if err != nil {
			return nil, nil, err
		}
	}

	now := timeNow()
	user.LastLogin = &now
	user.IsActive = true
	if err := s.userRepo.Update(user); err != nil {
		return nil, nil, fmt.Errorf("failed to update login state: %w", err)
	}

	session := &models.UserSession{
		UserID:        user.ID,
		IPAddress:     input.IPAddress,
		UserAgent:     input.UserAgent,
		ScreenSize:    input.ScreenSize,
		Timezone:      defaultString(input.Timezone, "UTC"),
		Language:      defaultString(input.Language, "en-US"),
		ExtraMetadata: input.ExtraMetadata,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		return nil, nil, fmt.Errorf("failed to record session: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// bootstrapAdminLogin handles the configured admin credentials without
// touching the password hash. Returns (nil, nil) when the input does not
// match the bootstrap pair, so the general path takes over.
func (s *AuthService) bootstrapAdminLogin(email, password string) (*models.User, error) {
	if s.cfg.BootstrapAdminPassword == "" {
		return nil, nil
	}
	if email != s.cfg.BootstrapAdminEmail || password != s.cfg.BootstrapAdminPassword {
		return nil, nil
	}

	admin, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find bootstrap admin: %w", err)
	}
	if admin.AccountStatus != models.AccountStatusActive {
		return nil, ErrAccountNotActive
	}
	return admin, nil
}

// passwordLogin is the general credential check. Account status is
// reported before the password is verified so a banned or deleted account
// always gets its status-specific error.
func (s *AuthService) passwordLogin(email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	switch user.AccountStatus {
	case models.AccountStatusDeleted:
		return nil, ErrAccountDeleted
	case models.AccountStatusBanned:
		return nil, ErrAccountBanned
	case models.AccountStatusActive:
	default:
		return nil, ErrAccountNotActive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Refresh rotates a refresh token and returns the new pair with its user.
func (s *AuthService) Refresh(refreshToken string) (*models.User, *TokenPair, error) {
	pair, userID, err := s.tokens.Rotate(refreshToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, pair, nil
}

// Logout clears the session ledger, best-effort revokes the presented
// refresh token and marks the user logged out.
func (s *AuthService) Logout(user *models.User, refreshToken string) error {
	if err := s.sessionRepo.DeleteByUser(user.ID); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	if refreshToken != "" {
		// A bad token here never blocks logout
		_ = s.tokens.Revoke(refreshToken)
	}

	user.IsActive = false
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update login state: %w", err)
	}

	return nil
}

// ChangePasswordInput holds the re-verification and replacement fields.
type ChangePasswordInput struct {
	OldPassword       string
	NewPassword       string
	NewPasswordRepeat string
}

// ChangePassword replaces the password after verifying the current one.
func (s *AuthService) ChangePassword(user *models.User, input ChangePasswordInput) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return ErrWrongPassword
	}
	if input.NewPassword != input.NewPasswordRepeat {
		return ErrPasswordMismatch
	}
	if err := utils.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// ChangeEmailInput holds the new address and the password re-check.
type ChangeEmailInput struct {
	NewEmail string
	Password string
}

// ChangeEmail updates the address after verifying the password and the
// uniqueness of the new address among active accounts.
func (s *AuthService) ChangeEmail(user *models.User, input ChangeEmailInput) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return ErrWrongPassword
	}

	newEmail := strings.ToLower(strings.TrimSpace(input.NewEmail))
	if newEmail == user.Email {
		return ErrSameEmail
	}

	taken, err := s.userRepo.ActiveEmailExists(newEmail, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	user.Email = newEmail
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update email: %w", err)
	}
	return nil
}

// ListSessions returns the caller's session ledger.
func (s *AuthService) ListSessions(userID uint64) ([]models.UserSession, error) {
	return s.sessionRepo.ListByUser(userID)
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
