package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/services"
)

// GetProfile returns the caller's account.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*user))
}

// UpdateProfile applies partial changes to the caller's profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateProfileRequest struct {
		Name       *string    `json:"name" binding:"omitempty,max=100"`
		Surname    *string    `json:"surname" binding:"omitempty,max=100"`
		Patronym   *string    `json:"patronym" binding:"omitempty,max=100"`
		BirthDate  *time.Time `json:"birth_date"`
		BirthPlace *string    `json:"birth_place" binding:"omitempty,max=200"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.userService.UpdateProfile(user, services.UpdateProfileInput{
		Name:       req.Name,
		Surname:    req.Surname,
		Patronym:   req.Patronym,
		BirthDate:  req.BirthDate,
		BirthPlace: req.BirthPlace,
	})
	if err != nil {
		apierrors.InternalError(c, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    dto.ToProfileDTO(*updated),
		"message": "Profile updated successfully",
	})
}

// DeleteAccount soft-deletes the caller's own account and clears cookies.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.userService.SoftDeleteAccount(user); err != nil {
		apierrors.InternalError(c, "Failed to delete account")
		return
	}

	clearAuthCookies(c, h.cfg)
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// ChangePassword replaces the caller's password after re-verification.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangePasswordRequest struct {
		OldPassword       string `json:"old_password" binding:"required"`
		NewPassword       string `json:"new_password" binding:"required"`
		NewPasswordRepeat string `json:"new_password_repeat" binding:"required"`
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(user, services.ChangePasswordInput{
		OldPassword:       req.OldPassword,
		NewPassword:       req.NewPassword,
		NewPasswordRepeat: req.NewPasswordRepeat,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// ChangeEmail replaces the caller's email after re-verification.
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ChangeEmailRequest struct {
		NewEmail string `json:"new_email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	oldEmail := user.Email
	err := h.authService.ChangeEmail(user, services.ChangeEmailInput{
		NewEmail: req.NewEmail,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email changed successfully",
		"old_email": oldEmail,
		"new_email": user.Email,
	})
}
