// Package quote defines the market-data provider consumed by the engine
// and a Yahoo Finance implementation of it.
package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

// DividendEvent is one dividend announcement returned by the provider.
type DividendEvent struct {
	ExDate   time.Time
	PayDate  time.Time
	PerShare decimal.Decimal
}

// Provider supplies current prices and dividend announcements for a
// ticker. Calls are synchronous request/response; failures are surfaced
// as apperrors.ErrQuoteUnavailable and never retried internally.
type Provider interface {
	GetCurrentPrice(ticker string) (decimal.Decimal, error)
	GetDividendEvents(ticker string, since time.Time) ([]DividendEvent, error)
}
