package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"splitledger-backend/database"
	"splitledger-backend/utils"

	"github.com/gin-gonic/gin"
)

// RateLimit is a Redis-backed fixed-window limiter keyed by route and client
// IP. When Redis is unavailable the limiter is a no-op, matching how the rest
// of the app treats Redis as optional.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if database.Redis == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.FullPath(), c.ClientIP())
		ctx := c.Request.Context()

		count, err := database.Redis.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("⚠️  Rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			database.Redis.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
