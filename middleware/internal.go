package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InternalAuth guards endpoints meant for trusted backend callers (the cron
// worker, ops scripts) with a shared API key.
func InternalAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" || c.Request.Header.Get("X-API-Key") != apiKey {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
