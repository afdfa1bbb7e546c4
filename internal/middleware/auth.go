package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"parking-be-svc/internal/service"
	"parking-be-svc/pkg/utils"
)

// Context keys set by the auth guards
const (
	ContextUsername = "username"
	ContextIsMaster = "is_master"
)

// RequireAuth verifies the Bearer token and stores the caller identity on
// the request context
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := service.ParseToken(strings.TrimPrefix(header, "Bearer "), jwtSecret)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextIsMaster, claims.Master)
		c.Next()
	}
}

// RequireMaster rejects callers without the master flag. Must run after
// RequireAuth.
func RequireMaster() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsMaster) {
			utils.ForbiddenResponse(c, "Access denied. Master privileges required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CallerUsername returns the authenticated username from the context
func CallerUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}
