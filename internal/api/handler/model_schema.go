package handler

type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

type predictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
	PriceBand      string  `json:"price_band"`
}

type trainResponse struct {
	Message  string   `json:"message"`
	Samples  int      `json:"samples"`
	Features []string `json:"features"`
}
