package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sonar/internal/infrastructure/ratelimit"
	"sonar/internal/shared/config"
	"sonar/internal/shared/logger"
	"sonar/internal/shared/utils"
)

// RateLimit enforces per-client-IP quotas over rolling minute and hour
// windows. Scans are expensive, so the windows are checked before the
// handler runs.
func RateLimit(limiter ratelimit.RateLimiter, cfg config.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	windows := []struct {
		window time.Duration
		limit  int
	}{
		{time.Minute, cfg.RequestsPerMinute},
		{time.Hour, cfg.RequestsPerHour},
	}

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()

		for _, w := range windows {
			if w.limit <= 0 {
				continue
			}

			allowed, err := limiter.Allow(c.Request.Context(), key, w.window, w.limit)
			if err != nil {
				// If Redis is unavailable, allow the request to avoid
				// blocking all traffic.
				log.Warnw("rate limiter unavailable, allowing request",
					"client_ip", c.ClientIP(),
					"error", err.Error(),
				)
				continue
			}
			if !allowed {
				utils.ErrorResponse(c, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
