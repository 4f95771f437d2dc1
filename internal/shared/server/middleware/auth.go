package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"content-backend/internal/shared/server/respond"
)

// AdminAuth guards admin routes with a shared token.
//
// The token is compared in constant time against the X-Admin-Token header or
// an "Authorization: Bearer" header. An empty configured token locks the
// admin surface outside dev-like environments.
func AdminAuth(token, env string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if token == "" {
			if isDevLike(env) {
				c.Next()
				return
			}
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "admin access not configured", nil)
			return
		}

		presented := strings.TrimSpace(c.GetHeader("X-Admin-Token"))
		if presented == "" {
			authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
			if strings.HasPrefix(authHeader, "Bearer ") {
				presented = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			}
		}

		if presented == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid admin token", nil)
			return
		}

		c.Next()
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
