package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextUserIDKey   = "userID"   // Key to store user ID in context
	ContextUserRoleKey = "userRole" // Key to store the token role in context
)

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userIDInterface, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", errors.New("user ID not found in context")
	}
	userID, ok := userIDInterface.(string)
	if !ok || userID == "" {
		return "", errors.New("user ID in context is not a string")
	}
	return userID, nil
}

// GetUserRoleFromContext returns the role claim of the token, or "" when
// the token carried none.
func GetUserRoleFromContext(c *gin.Context) string {
	role, _ := c.Get(ContextUserRoleKey)
	s, _ := role.(string)
	return s
}
