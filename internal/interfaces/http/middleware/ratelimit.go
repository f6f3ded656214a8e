package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/modorifa/rifas/internal/infrastructure/ratelimit"
	"github.com/modorifa/rifas/internal/shared/logger"
	"github.com/modorifa/rifas/internal/shared/utils"
)

// RateLimiter limits one route per client IP. A nil backend or a
// non-positive limit disables it.
type RateLimiter struct {
	backend ratelimit.RateLimiter
	name    string
	limit   int
	window  time.Duration
	logger  logger.Interface
}

func NewRateLimiter(backend ratelimit.RateLimiter, name string, limit int, window time.Duration, log logger.Interface) *RateLimiter {
	return &RateLimiter{
		backend: backend,
		name:    name,
		limit:   limit,
		window:  window,
		logger:  log,
	}
}

func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.backend == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + rl.name + ":" + c.ClientIP()
		allowed, err := rl.backend.Allow(c.Request.Context(), key, rl.limit, rl.window)
		if err != nil {
			// fail open: a redis outage must not stop sales
			rl.logger.Warnw("rate limiter unavailable", "route", rl.name, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.Header("X-RateLimit-Remaining", "0")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			c.Abort()
			return
		}

		if remaining, err := rl.backend.Remaining(c.Request.Context(), key, rl.limit, rl.window); err == nil {
			c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		}
		c.Next()
	}
}
