package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/api/metrics"
	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// AuthHandler owns the login endpoint and the admin user listing.
type AuthHandler struct {
	auth  ports.AuthService
	users ports.UserRepository
}

func NewAuthHandler(auth ports.AuthService, users ports.UserRepository) *AuthHandler {
	return &AuthHandler{auth: auth, users: users}
}

// Token handles POST /api/v1/token, the OAuth2-style password login.
//
// @Summary      Obtain an access token
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/v1/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, err := h.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			return err
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect username or password")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// ListUsers handles GET /api/v1/users, admin only.
//
// @Summary      List all users
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  detailResponse
// @Failure      403  {object}  detailResponse
// @Router       /api/v1/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			RoleID:    u.RoleID,
			Disabled:  u.Disabled,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
