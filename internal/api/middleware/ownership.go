package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// OwnerOrRole lets the request through when the authenticated user's id
// equals the named path parameter or the user holds one of roles.
// It must run after Auth.
func OwnerOrRole(param string, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			if user.ID == c.Param(param) {
				return next(c)
			}
			if _, ok := allowed[user.Role]; ok {
				return next(c)
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
