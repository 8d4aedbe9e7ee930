package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskboard/taskboard-api/internal/config"
	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/services"
)

// setAuthCookies mirrors the token pair into cookies for browser clients.
// The expiry cookie carries the issuance-time timestamp; it is never
// re-derived by decoding the token.
func setAuthCookies(c *gin.Context, cfg *config.Config, pair *services.TokenPair) {
	c.SetSameSite(cfg.CookieSameSite)

	accessMaxAge := int(time.Until(pair.ExpiresAt).Seconds())
	refreshMaxAge := int(time.Until(pair.RefreshExpiresAt).Seconds())

	setCookie(c, cfg, constants.CookieAccessToken, pair.AccessToken, accessMaxAge)
	setCookie(c, cfg, constants.CookieAccessTokenExpiresAt, pair.ExpiresAt.UTC().Format(time.RFC3339), accessMaxAge)
	setCookie(c, cfg, constants.CookieRefreshToken, pair.RefreshToken, refreshMaxAge)
}

// clearAuthCookies removes the auth cookies on logout and account deletion.
func clearAuthCookies(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(cfg.CookieSameSite)

	setCookie(c, cfg, constants.CookieAccessToken, "", -1)
	setCookie(c, cfg, constants.CookieAccessTokenExpiresAt, "", -1)
	setCookie(c, cfg, constants.CookieRefreshToken, "", -1)
}

func setCookie(c *gin.Context, cfg *config.Config, name, value string, maxAge int) {
	c.SetCookie(name, value, maxAge, "/", "", cfg.CookieSecure, cfg.CookieHTTPOnly)
}

// refreshTokenFromRequest reads the refresh token from the JSON body or
// falls back to the cookie channel.
func refreshTokenFromRequest(c *gin.Context) string {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.ShouldBindJSON(&body); err == nil && body.RefreshToken != "" {
		return body.RefreshToken
	}

	cookie, err := c.Cookie(constants.CookieRefreshToken)
	if err == nil {
		return cookie
	}
	return ""
}
