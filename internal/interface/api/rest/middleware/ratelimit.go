package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laudos-api/internal/application/apperr"
	"laudos-api/internal/application/ports"
	"laudos-api/internal/infrastructure/metrics"
)

// LoginRateLimit throttles by client ip. A nil limiter disables it.
func LoginRateLimit(limiter ports.RateLimiter, logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, retry, err := limiter.Allow(c.Request.Context(), "login:"+c.ClientIP())
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
		}
		if !allowed {
			if mCounter != nil {
				mCounter.WithLabelValues(metrics.LoginRateLimited).Inc()
			}
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
			Abort(c, apperr.ErrRateLimited, nil)
			return
		}

		c.Next()
	}
}
