package middleware

import (
	"net/http"
	"strings"

	"github.com/avelin/flightstore/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
)

// RequireAuth rejects requests without a valid bearer token and exposes the
// caller's identity via the gin context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(ContextUserID)
	v, _ := id.(int64)
	return v
}

// Email returns the authenticated user's email set by RequireAuth.
func Email(c *gin.Context) string {
	e, _ := c.Get(ContextEmail)
	v, _ := e.(string)
	return v
}
