package ports

import (
	"context"

	"github.com/ibovespa/catalog-api/internal/core/domain"
)

// ModelStore persists the fitted price model between process restarts.
type ModelStore interface {
	Save(ctx context.Context, model *domain.PriceModel) error
	// Load returns domain.ErrModelNotTrained when no model has been saved.
	Load(ctx context.Context) (*domain.PriceModel, error)
}

// TrainResult summarizes a completed training run.
type TrainResult struct {
	Samples  int
	Features []string
}

// PredictionResult is the outcome of a single price prediction.
type PredictionResult struct {
	Price float64
	Band  string
}

// ModelService trains and serves the price regression model.
type ModelService interface {
	// Train fails with domain.ErrNotEnoughData when no registration carries
	// a usable price.
	Train(ctx context.Context) (*TrainResult, error)
	// Predict fails with domain.ErrModelNotTrained before the first
	// successful Train.
	Predict(ctx context.Context, features map[string]float64) (*PredictionResult, error)
}
