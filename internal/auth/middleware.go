package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/highshore/rumi-talk/pkg/jwt"
)

// AuthMiddleware requires a valid Bearer token and injects the caller's uid
// into the context as "userID". Everything past this middleware can trust
// that identifier.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be 'Bearer {token}'"})
			return
		}

		uid, err := jwt.ParseToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("userID", uid)
		c.Next()
	}
}
