package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/dto"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/services"
)

// UserHandler coordinates the administrator-only user management handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns every account, including banned and deleted ones.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to list users")
		return
	}

	items := make([]dto.UserListItemDTO, len(users))
	for i, user := range users {
		items[i] = dto.ToUserListItemDTO(user)
	}
	c.JSON(http.StatusOK, items)
}

// PromoteUser raises a plain user to moderator.
func (h *UserHandler) PromoteUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Promote(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s promoted to moderator", user.Email),
		"user":    dto.ToUserListItemDTO(*user),
	})
}

// DemoteUser lowers a moderator to plain user.
func (h *UserHandler) DemoteUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Demote(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Moderator %s demoted to user", user.Email),
		"user":    dto.ToUserListItemDTO(*user),
	})
}

// BanUser marks an account banned.
func (h *UserHandler) BanUser(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.Ban(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("User %s banned", user.Email),
		"user":    dto.ToUserListItemDTO(*user),
	})
}

func userIDParam(c *gin.Context) (uint64, bool) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return 0, false
	}
	return userID, true
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotPlainUser),
		errors.Is(err, services.ErrNotModerator),
		errors.Is(err, services.ErrAlreadyBanned):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
