package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

type stubCategoryService struct {
	listFn   func(ctx context.Context, limit int) ([]*domain.Category, error)
	createFn func(ctx context.Context, name string) (*domain.Category, error)
}

func (s *stubCategoryService) ListCategories(ctx context.Context, limit int) ([]*domain.Category, error) {
	return s.listFn(ctx, limit)
}

func (s *stubCategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	return s.createFn(ctx, name)
}

func TestCategoryHandler_List(t *testing.T) {
	e := echo.New()
	svc := &stubCategoryService{
		listFn: func(ctx context.Context, limit int) ([]*domain.Category, error) {
			return []*domain.Category{
				{ID: "c1", Name: "laptops"},
				{ID: "c2", Name: "phones"},
			}, nil
		},
	}
	h := NewCategoryHandler(svc)

	c, rec := jsonContext(e, http.MethodGet, "/api/v1/categories", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["name"] != "laptops" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCategoryHandler_Create(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubCategoryService{
		createFn: func(ctx context.Context, name string) (*domain.Category, error) {
			if name != "Laptops" {
				t.Fatalf("unexpected name: %q", name)
			}
			return &domain.Category{ID: "c1", Name: "laptops"}, nil
		},
	}
	h := NewCategoryHandler(svc)

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/categories", `{"name":"Laptops"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestCategoryHandler_Create_MissingName(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubCategoryService{
		createFn: func(ctx context.Context, name string) (*domain.Category, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewCategoryHandler(svc)

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/categories", `{}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCategoryHandler_Create_Duplicate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubCategoryService{
		createFn: func(ctx context.Context, name string) (*domain.Category, error) {
			return nil, domain.ErrCategoryExists
		},
	}
	h := NewCategoryHandler(svc)

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/categories", `{"name":"laptops"}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists to pass through, got %v", err)
	}
}
