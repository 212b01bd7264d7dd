package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crease/internal/common"
	"github.com/DhavalSuthar-24/crease/pkg/responses"
	"github.com/DhavalSuthar-24/crease/pkg/token"
)

// AuthMiddleware requires a valid bearer token and stores its user id in
// the context under common.ContextUserIDKey.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			responses.Unauthorized(c, "Authorization header is required")
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			responses.Unauthorized(c, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token: "+err.Error())
			return
		}

		c.Set(common.ContextUserIDKey, claims.UserID)
		c.Set(common.ContextUserRoleKey, claims.Role)
		c.Next()
	}
}
