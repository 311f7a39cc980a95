package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DividendStatus is the lifecycle state of a dividend record.
// Paid is terminal; Pending records that never become eligible are kept
// Pending indefinitely rather than silently discarded.
type DividendStatus string

const (
	DividendPending DividendStatus = "pending"
	DividendPaid    DividendStatus = "paid"
)

// DividendRecord represents a single dividend announcement for a ticker,
// created either by detection against the market-data provider or by
// manual entry. Records are keyed logically by ticker + ex-dividend date.
type DividendRecord struct {
	ID       string          `json:"id"`
	Ticker   string          `json:"ticker"`
	ExDate   time.Time       `json:"exDate"`
	PayDate  time.Time       `json:"payDate"`
	PerShare decimal.Decimal `json:"perShare"`
	Status   DividendStatus  `json:"status"`
}
