package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/utils"
)

// AuthHandler coordinates authentication and account HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		cfg:         cfg,
	}
}

// Register creates an account and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email          string `json:"email" binding:"required,email"`
		Name           string `json:"name" binding:"required,max=100"`
		Surname        string `json:"surname" binding:"required,max=100"`
		Patronym       string `json:"patronym" binding:"max=100"`
		Password       string `json:"password" binding:"required"`
		PasswordRepeat string `json:"password_repeat" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, pair, err := h.authService.Register(services.RegisterInput{
		Email:          req.Email,
		Name:           req.Name,
		Surname:        req.Surname,
		Patronym:       req.Patronym,
		Password:       req.Password,
		PasswordRepeat: req.PasswordRepeat,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response := dto.ToAuthResponse(dto.ToProfileDTO(*user), pair, "User registered successfully")
	c.JSON(http.StatusCreated, response)
}

// Login authenticates a user and records the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email         string                 `json:"email" binding:"required,email"`
		Password      string                 `json:"password" binding:"required"`
		ScreenSize    string                 `json:"screen_size"`
		Timezone      string                 `json:"timezone"`
		Language      string                 `json:"language"`
		ExtraMetadata map[string]interface{} `json:"extra_metadata"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, pair, err := h.authService.Login(services.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		IPAddress:     utils.GetClientIP(c),
		UserAgent:     c.GetHeader("User-Agent"),
		ScreenSize:    req.ScreenSize,
		Timezone:      req.Timezone,
		Language:      req.Language,
		ExtraMetadata: req.ExtraMetadata,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response := dto.ToAuthResponse(dto.ToProfileDTO(*user), pair, "Login successful")
	c.JSON(http.StatusOK, response)
}

// Refresh rotates a refresh token into a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := refreshTokenFromRequest(c)
	if refreshToken == "" {
		apierrors.BadRequest(c, "Refresh token is required")
		return
	}

	user, pair, err := h.authService.Refresh(refreshToken)
	if err != nil {
		apierrors.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	setAuthCookies(c, h.cfg, pair)
	response := dto.ToAuthResponse(dto.ToProfileDTO(*user), pair, "Token refreshed successfully")
	response.User = nil
	c.JSON(http.StatusOK, response)
}

// Logout clears the caller's sessions, revokes the refresh token and
// clears cookies.
func (h *AuthHandler) Logout(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	refreshToken := refreshTokenFromRequest(c)

	if err := h.authService.Logout(user, refreshToken); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	clearAuthCookies(c, h.cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// ListSessions returns the caller's login ledger.
func (h *AuthHandler) ListSessions(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	sessions, err := h.authService.ListSessions(user.ID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": dto.ToSessionDTOs(sessions)})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		apierrors.BadRequestWithFields(c, "Validation failed", map[string]string{"password": err.Error()})
	case errors.Is(err, utils.ErrPasswordTooShort), errors.Is(err, utils.ErrPasswordNumeric):
		apierrors.BadRequestWithFields(c, "Validation failed", map[string]string{"password": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.BadRequestWithFields(c, "Validation failed", map[string]string{"email": err.Error()})
	case errors.Is(err, services.ErrSameEmail):
		apierrors.BadRequestWithFields(c, "Validation failed", map[string]string{"new_email": err.Error()})
	case errors.Is(err, services.ErrWrongPassword):
		apierrors.BadRequestWithFields(c, "Validation failed", map[string]string{"password": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDeleted),
		errors.Is(err, services.ErrAccountBanned),
		errors.Is(err, services.ErrAccountNotActive):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
