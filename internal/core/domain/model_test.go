package domain

import "testing"

func TestPriceBand(t *testing.T) {
	cases := []struct {
		price float64
		want  string
	}{
		{0, "very_cheap"},
		{1000, "very_cheap"},
		{1000.01, "cheap"},
		{2500, "mid"},
		{3999.99, "expensive"},
		{5000, "very_expensive"},
		{7500, "luxury"},
		{50000, "luxury"},
	}
	for _, tc := range cases {
		if got := PriceBand(tc.price); got != tc.want {
			t.Fatalf("PriceBand(%.2f) = %q, want %q", tc.price, got, tc.want)
		}
	}
}

func TestPriceModelPredict(t *testing.T) {
	m := &PriceModel{
		Features:  []string{"ram", "ssd"},
		Weights:   []float64{10, 2},
		Intercept: 100,
		Means:     map[string]float64{"ram": 8, "ssd": 256},
	}

	if got := m.Predict(map[string]float64{"ram": 16, "ssd": 512}); got != 100+160+1024 {
		t.Fatalf("expected 1284, got %.2f", got)
	}
	// Missing ssd is imputed with its training mean.
	if got := m.Predict(map[string]float64{"ram": 16}); got != 100+160+512 {
		t.Fatalf("expected 772, got %.2f", got)
	}
}
