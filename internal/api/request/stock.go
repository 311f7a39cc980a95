package request

type BuyStockRequest struct {
	Ticker string  `json:"ticker"`
	Shares float64 `json:"shares"`
	Price  float64 `json:"price"`
	Date   string  `json:"date"`
}

type SellStockRequest struct {
	Ticker string  `json:"ticker"`
	Shares float64 `json:"shares"`
}

type AdjustCashRequest struct {
	Amount float64 `json:"amount"`
}
