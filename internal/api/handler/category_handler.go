package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /api/v1/categories.
//
// @Summary      List all categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum rows to return (default 100)"
// @Success      200  {array}   categoryResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/v1/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	categories, err := h.service.ListCategories(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, cat := range categories {
		resp = append(resp, toCategoryResponse(cat))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/v1/categories.
//
// @Summary      Create a new category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCategoryRequest  true  "Category"
// @Success      201  {object}  categoryResponse
// @Failure      400  {object}  detailResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/v1/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.CreateCategory(c.Request().Context(), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(created))
}
