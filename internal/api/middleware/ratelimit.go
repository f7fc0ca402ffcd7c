package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/storefront-api/internal/api/metrics"
)

// Limiter decides whether another hit for key fits in the current window.
// Implementations that cannot reach their backing store should return true.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit caps requests per client IP under the given scope. Exceeding the
// cap answers 429 with a Retry-After header. Limiter errors are logged and
// the request proceeds.
func RateLimit(l Limiter, scope string, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(int(window.Round(time.Second) / time.Second))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, err := l.Allow(c.Request().Context(), scope+":"+ip, limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				log.Warn().Str("scope", scope).Str("remote_ip", ip).Msg("rate limit exceeded")
				c.Response().Header().Set(echo.HeaderRetryAfter, retryAfter)
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			}
			return next(c)
		}
	}
}
