package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	config "github.com/lounyevents/event-calendar-go/config"
	utils "github.com/lounyevents/event-calendar-go/utils"
)

// AuthMiddleware rejects requests without a valid Bearer token and exposes
// the caller's identity as "user_id" and "role" on the gin context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, cfg)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches identity when a valid token is present and
// lets the request through anonymously otherwise. Public submission uses
// this so signed-in hosts get their events attributed.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, cfg); ok {
			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, cfg *config.Config) (*utils.TokenClaims, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}
	claims, err := utils.ParseToken(token, cfg.JWTSecret)
	if err != nil || claims.Kind != "access" {
		// Refresh tokens only buy new tokens, never API access.
		return nil, false
	}
	return claims, true
}
