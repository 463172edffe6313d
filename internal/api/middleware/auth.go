package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/api/metrics"
	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// UserContextKey is where the auth middleware stores the resolved identity.
const UserContextKey = "user"

// Auth gates a route behind the access guard: it extracts the bearer token,
// authorizes it, and injects the resolved identity into the request context.
// Missing, malformed, and invalid tokens all answer 401 with the same
// generic detail; only a disabled account is distinguishable (400).
func Auth(guard ports.AccessGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c)
			}

			user, err := guard.Authorize(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInactiveUser) {
					metrics.TokenRejectionsTotal.WithLabelValues("inactive_user").Inc()
					return echo.NewHTTPError(http.StatusBadRequest, "Inactive user")
				}
				return unauthorized(c)
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// unauthorized answers every token failure identically so callers cannot
// distinguish a bad signature from an expired token or a deleted account.
func unauthorized(c echo.Context) error {
	metrics.TokenRejectionsTotal.WithLabelValues("invalid_token").Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
}
