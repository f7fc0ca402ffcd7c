package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/storefront-api/internal/api/middleware"
	"github.com/sirpyerre/storefront-api/internal/core/domain"
)

// ctxUser returns the user resolved by the Auth middleware. A missing user
// means the route was mounted without Auth; answer 401 rather than proceed
// anonymously.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return user, nil
}
