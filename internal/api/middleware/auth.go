package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppKeyHeader is the shared-secret header gating mutating endpoints.
const AppKeyHeader = "X-APP-KEY"

// AppKey returns a middleware that checks the shared-secret header. With an
// empty key the check is disabled. Apply per route group; /health stays open.
func AppKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(AppKeyHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
