package ratelimit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"studyhall/pkg/logger"
)

// Middleware returns a gin middleware enforcing per-IP rate limits. The limit
// tier is derived from the request path. A limiter backend failure never
// rejects the request.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		limitType := classify(c.Request.URL.Path)

		result, err := limiter.IsAllowed(c.Request.Context(), c.ClientIP(), limitType)
		if err != nil {
			logger.GetDefault().WithError(err).Warn("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "rate limit exceeded, try again later",
			})
			return
		}

		c.Next()
	}
}

func classify(path string) RateLimitType {
	switch {
	case strings.Contains(path, "/health"):
		return RateLimitTypeHealth
	case strings.Contains(path, "/bookings"):
		return RateLimitTypeBooking
	case strings.Contains(path, "/admin") || strings.Contains(path, "/internal"):
		return RateLimitTypeAdmin
	default:
		return RateLimitTypeDefault
	}
}
