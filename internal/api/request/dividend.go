package request

type CreateDividendRequest struct {
	Ticker   string  `json:"ticker"`
	PerShare float64 `json:"perShare"`
	ExDate   string  `json:"exDate"`
	PayDate  string  `json:"payDate"`
}
