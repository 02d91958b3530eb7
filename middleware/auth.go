package middleware

import (
	"strings"

	"splitledger-backend/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired verifies the Bearer token and stores the authenticated user
// ID in the gin context under "user_id".
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			utils.Unauthorized(c, "Authorization header must be a Bearer token")
			c.Abort()
			return
		}

		userID, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
