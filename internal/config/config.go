package config

import (
	"net/http"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerAddr string
	GinMode    string

	JWTSecret               string
	AccessTokenLifetimeMin  int
	RefreshTokenLifetimeMin int

	CookieSecure   bool
	CookieHTTPOnly bool
	CookieSameSite http.SameSite

	// Bootstrap admin credentials checked by the dedicated admin login
	// path. The account row must still exist and be active.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "taskboard"),
		DBPassword: getEnv("DB_PASSWORD", "taskboard"),
		DBName:     getEnv("DB_NAME", "taskboard"),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),

		JWTSecret:               getEnv("JWT_SECRET", "default-secret-key-change-me"),
		AccessTokenLifetimeMin:  getEnvInt("ACCESS_TOKEN_LIFETIME_MIN", 60),
		RefreshTokenLifetimeMin: getEnvInt("REFRESH_TOKEN_LIFETIME_MIN", 1440),

		CookieSecure:   getEnvBool("COOKIE_SECURE", false),
		CookieHTTPOnly: getEnvBool("COOKIE_HTTPONLY", true),
		CookieSameSite: parseSameSite(getEnv("COOKIE_SAMESITE", "lax")),

		BootstrapAdminEmail:    getEnv("BOOTSTRAP_ADMIN_EMAIL", "admin@taskboard.local"),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(value) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
