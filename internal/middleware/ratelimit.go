package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// RateLimit applies the blanket request ceiling with a shared token
// bucket. Per-route limits do not exist; this is the whole policy.
func RateLimit(ratePerSecond float64, capacity int64) gin.HandlerFunc {
	bucket := ratelimit.NewBucketWithRate(ratePerSecond, capacity)
	return func(c *gin.Context) {
		if bucket.TakeAvailable(1) == 0 {
			c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
			c.Abort()
			return
		}
		c.Next()
	}
}
