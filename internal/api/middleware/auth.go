package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/storefront-api/internal/api/metrics"
	"github.com/sirpyerre/storefront-api/internal/core/domain"
	"github.com/sirpyerre/storefront-api/internal/core/ports"
)

// UserKey is the echo.Context key under which Auth stores the *domain.User.
const UserKey = "user"

// Auth resolves the bearer token to a stored user and attaches it to the
// context. Every failure answers the same 401 body; the reason only reaches
// the logs and the auth_rejections_total counter.
func Auth(authn ports.Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return reject(c, log, err)
			}

			user, err := authn.Authenticate(c.Request().Context(), raw)
			if err != nil {
				return reject(c, log, err)
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// UserFrom returns the user stored by Auth, if any.
func UserFrom(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserKey).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", domain.ErrMissingAuthHeader
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrMalformedAuthHeader
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrMalformedAuthHeader
	}
	return token, nil
}

func reject(c echo.Context, log zerolog.Logger, err error) error {
	reason := domain.AuthFailureReason(err)
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()

	ev := log.Warn()
	if !isAuthError(err) {
		ev = log.Error().Err(err)
	}
	ev.Str("reason", reason).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("remote_ip", c.RealIP()).
		Msg("request rejected")

	return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrMissingAuthHeader) ||
		errors.Is(err, domain.ErrMalformedAuthHeader) ||
		errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrUserNotFound)
}
