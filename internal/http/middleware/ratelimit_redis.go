package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

// RedisRateLimit implements a fixed-window rate limiter using Redis
// INCR/EXPIRE, shared by every instance pointing at the same Redis.
// key format: todo:rl:<window_seconds>:<identifier>
// A nil client or a Redis error lets the request through.
func RedisRateLimit(client *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		key := "todo:rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + clientKey(c)
		ctx := c.Request.Context()

		val, err := client.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}
		if val == 1 {
			// first hit of the window sets its expiry
			client.Expire(ctx, key, window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.Header("X-RateLimit-Remaining", "0")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody("rate limit exceeded"))
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(int64(maxRequests)-val, 10))
		c.Next()
	}
}

// clientKey identifies the caller: the X-Username header when present,
// the client IP otherwise.
func clientKey(c *gin.Context) string {
	if u := c.GetHeader("X-Username"); u != "" {
		return "u:" + u
	}
	return "ip:" + c.ClientIP()
}

func errorBody(msg string) gin.H {
	return gin.H{"error": gin.H{"message": msg}}
}
