package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// RequireRole restricts a route to identities whose role name is in
// allowedRoles. Must run after Auth.
func RequireRole(roles ports.RoleRepository, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
			}

			role, err := roles.FindByID(c.Request().Context(), user.RoleID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			if _, ok := allowed[role.Name]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
