package handler

import (
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// ModelHandler exposes training and prediction for the price model.
type ModelHandler struct {
	service ports.ModelService
}

func NewModelHandler(service ports.ModelService) *ModelHandler {
	return &ModelHandler{service: service}
}

// Train handles POST /api/v1/model/train, admin only.
//
// @Summary      Train the price regression model
// @Tags         model
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  trainResponse
// @Failure      400  {object}  detailResponse
// @Failure      401  {object}  detailResponse
// @Failure      403  {object}  detailResponse
// @Router       /api/v1/model/train [post]
func (h *ModelHandler) Train(c echo.Context) error {
	result, err := h.service.Train(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, trainResponse{
		Message:  "model trained successfully",
		Samples:  result.Samples,
		Features: result.Features,
	})
}

// Predict handles POST /api/v1/model/predict.
//
// @Summary      Predict a price from a feature map
// @Tags         model
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      predictRequest  true  "Numeric feature map"
// @Success      200  {object}  predictResponse
// @Failure      400  {object}  detailResponse
// @Failure      401  {object}  detailResponse
// @Failure      500  {object}  detailResponse
// @Router       /api/v1/model/predict [post]
func (h *ModelHandler) Predict(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(req.Features) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "features are required")
	}

	result, err := h.service.Predict(c.Request().Context(), req.Features)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, predictResponse{
		PredictedPrice: math.Round(result.Price*100) / 100,
		PriceBand:      result.Band,
	})
}
