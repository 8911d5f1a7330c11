package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smartsupplypro/inventory/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Identity context keys
const (
	ActorKey      = "actor"
	ClaimsKey     = "claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// Identity resolves the acting user from a bearer token when one is
// presented. Anonymous requests pass through; mutations they cause are
// attributed to the system actor downstream. An invalid token is rejected
// rather than silently downgraded to anonymous.
func Identity(tokens *auth.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Missing token")
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			if logger != nil {
				logger.Warn("Token validation failed",
					zap.Error(err),
					zap.String("path", c.Request.URL.Path),
				)
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, claims.Actor())
		c.Next()
	}
}

// Actor returns the authenticated actor, or "" for anonymous requests
func Actor(c *gin.Context) string {
	if actor, exists := c.Get(ActorKey); exists {
		if s, ok := actor.(string); ok {
			return s
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(401, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
