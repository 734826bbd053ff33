package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/opentocoder/storefront/internal/auth"
)

const userIDKey = "user_id"

// authMiddleware verifies the Bearer token and stores the caller's user ID
// in the request context
func authMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "Missing or invalid authorization header"})
			return
		}

		claims, err := auth.VerifyToken(token, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// currentUserID returns the authenticated user's ID. Only valid on routes
// behind authMiddleware.
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(uuid.UUID)
	return userID
}
