package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetClientIP extracts the originating client address, preferring the
// first entry of X-Forwarded-For when a proxy added one.
func GetClientIP(c *gin.Context) string {
	forwarded := c.GetHeader("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
