package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

type stubModelService struct {
	trainFn   func(ctx context.Context) (*ports.TrainResult, error)
	predictFn func(ctx context.Context, features map[string]float64) (*ports.PredictionResult, error)
}

func (s *stubModelService) Train(ctx context.Context) (*ports.TrainResult, error) {
	return s.trainFn(ctx)
}

func (s *stubModelService) Predict(ctx context.Context, features map[string]float64) (*ports.PredictionResult, error) {
	return s.predictFn(ctx, features)
}

func TestModelHandler_Train(t *testing.T) {
	e := echo.New()
	svc := &stubModelService{
		trainFn: func(ctx context.Context) (*ports.TrainResult, error) {
			return &ports.TrainResult{Samples: 42, Features: []string{"ram", "ssd"}}, nil
		},
	}
	h := NewModelHandler(svc)

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/model/train", "")
	if err := h.Train(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["samples"] != float64(42) {
		t.Fatalf("expected 42 samples, got %v", resp["samples"])
	}
}

func TestModelHandler_Train_NotEnoughData(t *testing.T) {
	e := echo.New()
	svc := &stubModelService{
		trainFn: func(ctx context.Context) (*ports.TrainResult, error) {
			return nil, domain.ErrNotEnoughData
		},
	}
	h := NewModelHandler(svc)

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/model/train", "")
	if err := h.Train(c); !errors.Is(err, domain.ErrNotEnoughData) {
		t.Fatalf("expected ErrNotEnoughData to pass through, got %v", err)
	}
}

func TestModelHandler_Predict(t *testing.T) {
	e := echo.New()
	svc := &stubModelService{
		predictFn: func(ctx context.Context, features map[string]float64) (*ports.PredictionResult, error) {
			if features["ram"] != 16 {
				t.Fatalf("unexpected features: %v", features)
			}
			return &ports.PredictionResult{Price: 1234.5678, Band: "cheap"}, nil
		},
	}
	h := NewModelHandler(svc)

	c, rec := jsonContext(e, http.MethodPost, "/api/v1/model/predict", `{"features":{"ram":16}}`)
	if err := h.Predict(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["predicted_price"] != 1234.57 {
		t.Fatalf("expected rounded price 1234.57, got %v", resp["predicted_price"])
	}
	if resp["price_band"] != "cheap" {
		t.Fatalf("expected band cheap, got %v", resp["price_band"])
	}
}

func TestModelHandler_Predict_MissingFeatures(t *testing.T) {
	e := echo.New()
	svc := &stubModelService{
		predictFn: func(ctx context.Context, features map[string]float64) (*ports.PredictionResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewModelHandler(svc)

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/model/predict", `{}`)
	err := h.Predict(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestModelHandler_Predict_NotTrained(t *testing.T) {
	e := echo.New()
	svc := &stubModelService{
		predictFn: func(ctx context.Context, features map[string]float64) (*ports.PredictionResult, error) {
			return nil, domain.ErrModelNotTrained
		},
	}
	h := NewModelHandler(svc)

	c, _ := jsonContext(e, http.MethodPost, "/api/v1/model/predict", `{"features":{"ram":16}}`)
	if err := h.Predict(c); !errors.Is(err, domain.ErrModelNotTrained) {
		t.Fatalf("expected ErrModelNotTrained to pass through, got %v", err)
	}
}
