package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

type stubUserRepo struct {
	users []*domain.User
	err   error
}

func (s *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	s.users = append(s.users, u)
	return u, nil
}

func (s *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func loginRequest(e *echo.Echo, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/token", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Token_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "admin" || password != "s3cret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub, &stubUserRepo{})

	c, rec := loginRequest(e, url.Values{"username": {"admin"}, "password": {"s3cret"}})
	if err := h.Token(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" {
		t.Fatalf("expected access_token, got %v", resp["access_token"])
	}
	if resp["token_type"] != "bearer" {
		t.Fatalf("expected token_type bearer, got %v", resp["token_type"])
	}
}

func TestAuthHandler_Token_InvalidCredentials(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, &stubUserRepo{})

	c, rec := loginRequest(e, url.Values{"username": {"admin"}, "password": {"wrong"}})
	err := h.Token(c)
	if err == nil {
		t.Fatalf("expected an error")
	}

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
	if he.Message != "Incorrect username or password" {
		t.Fatalf("unexpected detail: %v", he.Message)
	}
	if got := rec.Header().Get(echo.HeaderWWWAuthenticate); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate: Bearer, got %q", got)
	}
}

func TestAuthHandler_Token_MissingForm(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "" || password != "" {
				t.Fatalf("expected empty credentials, got %q %q", username, password)
			}
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, &stubUserRepo{})

	c, _ := loginRequest(e, url.Values{})
	err := h.Token(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Token_ServiceError(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", context.DeadlineExceeded
		},
	}
	h := NewAuthHandler(stub, &stubUserRepo{})

	c, _ := loginRequest(e, url.Values{"username": {"admin"}, "password": {"s3cret"}})
	err := h.Token(c)
	if err != context.DeadlineExceeded {
		t.Fatalf("infrastructure errors must pass through, got %v", err)
	}
}

func TestAuthHandler_ListUsers(t *testing.T) {
	e := echo.New()
	repo := &stubUserRepo{users: []*domain.User{
		{ID: "u1", Username: "admin", Email: "admin@localhost"},
		{ID: "u2", Username: "bob", Disabled: true},
	}}
	h := NewAuthHandler(&stubAuthService{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
	if resp[0]["username"] != "admin" {
		t.Fatalf("unexpected payload: %+v", resp[0])
	}
	for _, u := range resp {
		if _, leaked := u["password_hash"]; leaked {
			t.Fatalf("password hash must never be serialized")
		}
	}
}
