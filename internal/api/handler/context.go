package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/api/middleware"
	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// currentUser extracts the identity injected by the Auth middleware.
// Its presence proves the middleware ran; absence on a protected route is a
// wiring bug and fails closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	}
	return user, nil
}
