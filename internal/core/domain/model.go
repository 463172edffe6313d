package domain

import "time"

// Price band boundaries, upper-inclusive. Anything above the last boundary
// falls into the top band.
var (
	priceBins   = []float64{1000, 2000, 3000, 4000, 5000, 10000}
	priceLabels = []string{"very_cheap", "cheap", "mid", "expensive", "very_expensive", "luxury"}
)

// PriceModel is a fitted linear price regressor. Features are ordered;
// Weights[i] corresponds to Features[i]. Means hold per-feature training
// averages used to impute missing inputs at prediction time.
type PriceModel struct {
	Features  []string           `json:"features"`
	Weights   []float64          `json:"weights"`
	Intercept float64            `json:"intercept"`
	Means     map[string]float64 `json:"means"`
	Samples   int                `json:"samples"`
	TrainedAt time.Time          `json:"trained_at"`
}

// Predict returns the estimated price for the given feature map. Features
// absent from the input are imputed with their training mean.
func (m *PriceModel) Predict(features map[string]float64) float64 {
	p := m.Intercept
	for i, name := range m.Features {
		v, ok := features[name]
		if !ok {
			v = m.Means[name]
		}
		p += m.Weights[i] * v
	}
	return p
}

// PriceBand maps a predicted price to its named band.
func PriceBand(price float64) string {
	for i, upper := range priceBins {
		if price <= upper {
			return priceLabels[i]
		}
	}
	return priceLabels[len(priceLabels)-1]
}
