package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// UserDTO is the compact owner view embedded in task responses.
type UserDTO struct {
	ID       uint64           `json:"id"`
	Email    string           `json:"email"`
	FullName string           `json:"full_name"`
	Role     *models.RoleName `json:"role"`
}

// ProfileDTO is the full self view of an account.
type ProfileDTO struct {
	ID            uint64               `json:"id"`
	Email         string               `json:"email"`
	Name          string               `json:"name"`
	Surname       string               `json:"surname"`
	Patronym      string               `json:"patronym"`
	FullName      string               `json:"full_name"`
	Role          *models.RoleName     `json:"role"`
	BirthDate     *time.Time           `json:"birth_date"`
	BirthPlace    string               `json:"birth_place"`
	IsActive      bool                 `json:"is_active"`
	AccountStatus models.AccountStatus `json:"account_status"`
	DateJoined    time.Time            `json:"date_joined"`
	LastLogin     *time.Time           `json:"last_login"`
}

// UserListItemDTO is the administrative listing view.
type UserListItemDTO struct {
	ID            uint64               `json:"id"`
	Email         string               `json:"email"`
	FullName      string               `json:"full_name"`
	Role          *models.RoleName     `json:"role"`
	IsActive      bool                 `json:"is_active"`
	AccountStatus models.AccountStatus `json:"account_status"`
	DateJoined    time.Time            `json:"date_joined"`
}

// SessionDTO represents one login-ledger entry.
type SessionDTO struct {
	ID               uint64    `json:"id"`
	IPAddress        string    `json:"ip_address"`
	UserAgent        string    `json:"user_agent"`
	ScreenSize       string    `json:"screen_size"`
	Timezone         string    `json:"timezone"`
	Language         string    `json:"language"`
	ConnectionNumber int       `json:"connection_number"`
	CreatedAt        time.Time `json:"created_at"`
	LastActivityAt   time.Time `json:"last_activity_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

// ToProfileDTO converts a User model to ProfileDTO
func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Surname:       user.Surname,
		Patronym:      user.Patronym,
		FullName:      user.FullName,
		Role:          user.Role,
		BirthDate:     user.BirthDate,
		BirthPlace:    user.BirthPlace,
		IsActive:      user.IsActive,
		AccountStatus: user.AccountStatus,
		DateJoined:    user.DateJoined,
		LastLogin:     user.LastLogin,
	}
}

// ToUserListItemDTO converts a User model to UserListItemDTO
func ToUserListItemDTO(user models.User) UserListItemDTO {
	return UserListItemDTO{
		ID:            user.ID,
		Email:         user.Email,
		FullName:      user.FullName,
		Role:          user.Role,
		IsActive:      user.IsActive,
		AccountStatus: user.AccountStatus,
		DateJoined:    user.DateJoined,
	}
}

// ToSessionDTO converts a UserSession model to SessionDTO
func ToSessionDTO(session models.UserSession) SessionDTO {
	return SessionDTO{
		ID:               session.ID,
		IPAddress:        session.IPAddress,
		UserAgent:        session.UserAgent,
		ScreenSize:       session.ScreenSize,
		Timezone:         session.Timezone,
		Language:         session.Language,
		ConnectionNumber: session.ConnectionNumber,
		CreatedAt:        session.CreatedAt,
		LastActivityAt:   session.LastActivityAt,
	}
}

// ToSessionDTOs converts a slice of sessions
func ToSessionDTOs(sessions []models.UserSession) []SessionDTO {
	items := make([]SessionDTO, len(sessions))
	for i, s := range sessions {
		items[i] = ToSessionDTO(s)
	}
	return items
}
