package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/services"
)

// AuthResponse is the dual-channel token payload. The same values are
// mirrored into cookies for browser clients; expires_at is the explicit
// access-token expiry so clients never decode the token themselves.
type AuthResponse struct {
	User         *ProfileDTO `json:"user,omitempty"`
	Message      string      `json:"message"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresAt    time.Time   `json:"expires_at"`
	Email        string      `json:"email"`
}

// ToAuthResponse builds an AuthResponse from a user and a token pair
func ToAuthResponse(profile ProfileDTO, pair *services.TokenPair, message string) AuthResponse {
	return AuthResponse{
		User:         &profile,
		Message:      message,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		Email:        profile.Email,
	}
}
