package constants

// Context keys
const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "user_id"
)

// Cookie names for the browser auth channel
const (
	CookieAccessToken          = "access_token"
	CookieAccessTokenExpiresAt = "access_token_expires_at"
	CookieRefreshToken         = "refresh_token"
)

// Password rules
const MinPasswordLength = 8

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
