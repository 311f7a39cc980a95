package request

type CreateCoveredCallRequest struct {
	Ticker         string  `json:"ticker"`
	ExpirationDate string  `json:"expirationDate"`
	Strike         float64 `json:"strike"`
	Premium        float64 `json:"premium"`
}
