package service

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ibovespa/catalog-api/internal/api/metrics"
	"github.com/ibovespa/catalog-api/internal/core/domain"
	"github.com/ibovespa/catalog-api/internal/core/ports"
)

// ridgeLambda damps the normal equations so the system stays solvable when
// features are collinear or constant.
const ridgeLambda = 1e-6

// Keys in a registration's data map that carry the target, never a feature.
var priceKeys = map[string]struct{}{
	"price":     {},
	"price_avg": {},
	"prices":    {},
}

// ModelService fits and serves the linear price regressor. Training reads
// every registration, takes the numeric fields of its data map as features,
// and the price fields as target.
type ModelService struct {
	repo  ports.RegistrationRepository
	store ports.ModelStore
	log   zerolog.Logger
}

func NewModelService(repo ports.RegistrationRepository, store ports.ModelStore, log zerolog.Logger) *ModelService {
	return &ModelService{repo: repo, store: store, log: log}
}

type trainingSample struct {
	features map[string]float64
	price    float64
}

func (s *ModelService) Train(ctx context.Context) (*ports.TrainResult, error) {
	start := time.Now()

	regs, err := s.repo.ListAll(ctx)
	if err != nil {
		metrics.ModelTrainingsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	samples, features := buildDataset(regs)
	if len(samples) < 2 {
		metrics.ModelTrainingsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrNotEnoughData
	}

	model := fitLinear(samples, features)
	if err := s.store.Save(ctx, model); err != nil {
		metrics.ModelTrainingsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	metrics.ModelTrainingsTotal.WithLabelValues("success").Inc()
	metrics.ModelTrainingDuration.Observe(time.Since(start).Seconds())
	s.log.Info().
		Int("samples", model.Samples).
		Int("features", len(model.Features)).
		Dur("took", time.Since(start)).
		Msg("price model trained")

	return &ports.TrainResult{Samples: model.Samples, Features: model.Features}, nil
}

func (s *ModelService) Predict(ctx context.Context, features map[string]float64) (*ports.PredictionResult, error) {
	model, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	price := model.Predict(features)
	if price < 0 {
		price = 0
	}
	return &ports.PredictionResult{Price: price, Band: domain.PriceBand(price)}, nil
}

// buildDataset extracts usable (features, price) pairs from registrations and
// returns the sorted union of feature names.
func buildDataset(regs []*domain.Registration) ([]trainingSample, []string) {
	var samples []trainingSample
	union := map[string]struct{}{}

	for _, reg := range regs {
		if reg.Data == nil {
			continue
		}
		price, ok := extractPrice(reg.Data)
		if !ok || price <= 0 {
			continue
		}
		feats := map[string]float64{}
		for key, val := range reg.Data {
			if _, isPrice := priceKeys[key]; isPrice {
				continue
			}
			if f, ok := toFloat(val); ok {
				feats[key] = f
				union[key] = struct{}{}
			}
		}
		if len(feats) == 0 {
			continue
		}
		samples = append(samples, trainingSample{features: feats, price: price})
	}

	features := make([]string, 0, len(union))
	for name := range union {
		features = append(features, name)
	}
	sort.Strings(features)
	return samples, features
}

// fitLinear solves ridge-damped ordinary least squares on mean-centered data.
func fitLinear(samples []trainingSample, features []string) *domain.PriceModel {
	n := len(samples)
	k := len(features)

	means := make(map[string]float64, k)
	for _, name := range features {
		sum, count := 0.0, 0
		for _, s := range samples {
			if v, ok := s.features[name]; ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			means[name] = sum / float64(count)
		}
	}

	meanY := 0.0
	for _, s := range samples {
		meanY += s.price
	}
	meanY /= float64(n)

	// Centered design matrix with mean imputation for missing features.
	x := make([][]float64, n)
	y := make([]float64, n)
	for i, s := range samples {
		row := make([]float64, k)
		for j, name := range features {
			v, ok := s.features[name]
			if !ok {
				v = means[name]
			}
			row[j] = v - means[name]
		}
		x[i] = row
		y[i] = s.price - meanY
	}

	// Normal equations: (XᵀX + λI) w = Xᵀy.
	a := make([][]float64, k)
	b := make([]float64, k)
	for j := 0; j < k; j++ {
		a[j] = make([]float64, k)
		for l := 0; l < k; l++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += x[i][j] * x[i][l]
			}
			a[j][l] = sum
		}
		a[j][j] += ridgeLambda
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += x[i][j] * y[i]
		}
		b[j] = sum
	}

	weights := solveLinearSystem(a, b)

	intercept := meanY
	for j, name := range features {
		intercept -= weights[j] * means[name]
	}

	return &domain.PriceModel{
		Features:  features,
		Weights:   weights,
		Intercept: intercept,
		Means:     means,
		Samples:   n,
		TrainedAt: time.Now().UTC(),
	}
}

// solveLinearSystem runs Gaussian elimination with partial pivoting.
// The ridge term keeps the matrix non-singular.
func solveLinearSystem(a [][]float64, b []float64) []float64 {
	k := len(b)
	for col := 0; col < k; col++ {
		pivot := col
		for row := col + 1; row < k; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		if a[col][col] == 0 {
			continue
		}
		for row := col + 1; row < k; row++ {
			factor := a[row][col] / a[col][col]
			for c := col; c < k; c++ {
				a[row][c] -= factor * a[col][c]
			}
			b[row] -= factor * b[col]
		}
	}

	w := make([]float64, k)
	for row := k - 1; row >= 0; row-- {
		if a[row][row] == 0 {
			continue
		}
		sum := b[row]
		for c := row + 1; c < k; c++ {
			sum -= a[row][c] * w[c]
		}
		w[row] = sum / a[row][row]
	}
	return w
}

// extractPrice pulls the target price from a registration's data map:
// "price_avg" (or "price") when numeric, otherwise the first entry of the
// "prices" list, which may be a formatted string like "R$ 1.234,56".
func extractPrice(data map[string]any) (float64, bool) {
	for _, key := range []string{"price_avg", "price"} {
		if v, ok := data[key]; ok {
			if f, ok := toFloat(v); ok {
				return f, true
			}
		}
	}
	if list, ok := data["prices"].([]any); ok && len(list) > 0 {
		if f, ok := toFloat(list[0]); ok {
			return f, true
		}
		if s, ok := list[0].(string); ok {
			return parsePriceString(s)
		}
	}
	return 0, false
}

// parsePriceString parses "R$ 1.234,56" style amounts: currency prefix
// stripped, "." as thousands separator, "," as decimal mark.
func parsePriceString(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toFloat converts the numeric types JSON decoding and BSON decoding can
// produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
