package quote

// Response is the raw envelope of the Yahoo Finance chart API.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart holds chart results or an API-level error message.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result is one chart result: metadata, timestamps, quote indicators and
// (when requested with events=div) dividend events.
type Result struct {
	Meta       Meta                `json:"meta"`
	Timestamp  []int64             `json:"timestamp"`
	Indicators IndicatorsContainer `json:"indicators"`
	Events     Events              `json:"events"`
}

// Meta describes the instrument the chart belongs to.
type Meta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	ExchangeName       string  `json:"exchangeName"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
}

// IndicatorsContainer wraps the quote indicator arrays.
type IndicatorsContainer struct {
	Quote []Quote `json:"quote"`
}

// Quote holds the per-day OHLCV arrays. Entries are pointers because
// Yahoo returns nulls for days without trading data.
type Quote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// Events holds corporate events; only dividends are requested.
type Events struct {
	Dividends map[string]DividendEntry `json:"dividends"`
}

// DividendEntry is one dividend event keyed by its ex-date timestamp.
type DividendEntry struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}
