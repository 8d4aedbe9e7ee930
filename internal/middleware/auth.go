package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/constants"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
)

// RequireAuth validates the access token from the Authorization header or
// the access-token cookie, loads the account and stashes it in the
// context. Requests from non-active accounts are rejected even when the
// token itself is still valid.
func RequireAuth(tokens *services.TokenService, userRepo repository.UserRepository, sessionRepo repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateAccess(tokenString)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			apierrors.Unauthorized(c, "Account not found")
			c.Abort()
			return
		}
		if user.AccountStatus != models.AccountStatusActive {
			apierrors.Unauthorized(c, "Account is not active")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()

		// Activity tracking on the newest ledger entry; failures here
		// never affect the response.
		_ = sessionRepo.TouchLatest(user.ID)
	}
}

// RequireAdministrator rejects non-administrator callers. Must run after
// RequireAuth.
func RequireAdministrator() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := GetUser(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !user.IsAdministrator() {
			apierrors.Forbidden(c, "Administrator role required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUser retrieves the authenticated user from context
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := c.Cookie(constants.CookieAccessToken)
	if err == nil {
		return cookie
	}
	return ""
}
