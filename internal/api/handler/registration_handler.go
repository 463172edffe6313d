package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// IngestDispatcher is the interface the handler uses to enqueue batch records.
type IngestDispatcher interface {
	Enqueue(input ports.RegistrationInput)
	EnqueueBatch(inputs []ports.RegistrationInput)
}

// RegistrationHandler handles HTTP requests for registration operations.
type RegistrationHandler struct {
	service    ports.RegistrationService
	dispatcher IngestDispatcher
}

func NewRegistrationHandler(service ports.RegistrationService, dispatcher IngestDispatcher) *RegistrationHandler {
	return &RegistrationHandler{service: service, dispatcher: dispatcher}
}

// List handles GET /api/v1/registrations.
//
// @Summary      List registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum rows to return (default 3)"
// @Success      200  {array}   registrationResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/v1/registrations [get]
func (h *RegistrationHandler) List(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	regs, err := h.service.ListRegistrations(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	resp := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, toRegistrationResponse(reg))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/v1/registrations.
//
// @Summary      Create a new registration
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registrationRequest  true  "Registration"
// @Success      201  {object}  registrationResponse
// @Failure      400  {object}  detailResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/v1/registrations [post]
func (h *RegistrationHandler) Create(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var req registrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.CreateRegistration(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRegistrationResponse(created))
}

// CreateBatch handles POST /api/v1/registrations/batch. Records are
// validated up front, then processed asynchronously by the ingest workers.
//
// @Summary      Ingest a batch of registrations
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []registrationRequest  true  "Array of registrations"
// @Success      202  {object}  acceptedResponse
// @Failure      400  {object}  detailResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/v1/registrations/batch [post]
func (h *RegistrationHandler) CreateBatch(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}

	var reqs []registrationRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.RegistrationInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("record[%d]: %s", i, err.Error()))
		}
		input, err := req.toInput()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("record[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, input)
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "registrations accepted",
		Count:   len(inputs),
	})
}
