package auth

import (
	"net/http"
	"strings"

	"github.com/avelichko/study-backend/internal/token"

	"github.com/gin-gonic/gin"
)

// UserIDKey is the context key the middleware stores the authenticated
// user id under.
const UserIDKey = "userID"

// RequireAuth gates protected routes. The credential is the second
// whitespace-separated part of the Authorization header; the scheme label
// itself is not checked.
func RequireAuth(issuer *token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Access Denied"})
			return
		}

		parts := strings.Fields(header)
		if len(parts) < 2 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid Token"})
			return
		}

		userID, err := issuer.VerifyAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid Token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
