package middleware

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/aurumascend/raisesignal-backend/errors"
	"github.com/aurumascend/raisesignal-backend/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SubmissionRateLimiter creates a rate limiter middleware for the public
// submission endpoints. It uses Redis for distributed rate limiting keyed by
// client IP, with INCR and EXPIRE in a transaction pipeline so the counter
// and its window expire together.
//
// Redis failures never block a submission: the limiter fails open so the
// pipeline stays available when Redis is down.
func SubmissionRateLimiter(redisClient *redis.Client, submissionsPerWindow int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := getClientIP(c)
		key := fmt.Sprintf("ratelimit:submission:%s", ip)

		pipe := redisClient.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, window)

		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request",
				"error", err,
				"client_ip", ip)
			c.Next()
			return
		}

		count := incr.Val()

		if count > int64(submissionsPerWindow) {
			ttl, err := redisClient.TTL(c.Request.Context(), key).Result()
			if err != nil || ttl < 0 {
				ttl = window
			}

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", submissionsPerWindow))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(ttl).Unix()))

			_ = c.Error(apperrors.RateLimitExceeded("Too many submissions. Please try again later.", int(ttl.Seconds())))
			c.Abort()
			return
		}

		remaining := submissionsPerWindow - int(count)
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", submissionsPerWindow))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(window).Unix()))

		c.Next()
	}
}

// getClientIP extracts the real client IP from the request.
// It checks X-Forwarded-For and X-Real-IP headers first (for proxies/load
// balancers), then falls back to RemoteAddr.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}
