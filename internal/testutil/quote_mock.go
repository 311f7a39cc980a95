package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
	"github.com/brokersim/Brokerage-Account-Backend/internal/quote"
)

// MockQuoteProvider is a mock implementation of quote.Provider for testing.
// It returns predefined prices and dividend events instead of making API calls.
type MockQuoteProvider struct {
	// Prices maps ticker to the price returned by GetCurrentPrice
	Prices map[string]decimal.Decimal
	// Dividends maps ticker to the events returned by GetDividendEvents
	Dividends map[string][]quote.DividendEvent
	// PriceError is the error to return from GetCurrentPrice
	PriceError error
	// DividendError is the error to return from GetDividendEvents
	DividendError error
	// QueryCount tracks how many times a query method was called.
	// Atomic because the valuation snapshot queries tickers from
	// several goroutines at once.
	QueryCount atomic.Int64
}

// NewMockQuoteProvider creates a new mock quote provider with no data configured.
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		Prices:    make(map[string]decimal.Decimal),
		Dividends: make(map[string][]quote.DividendEvent),
	}
}

// GetCurrentPrice returns the configured price for the ticker, or the
// configured error. An unconfigured ticker reports ErrQuoteUnavailable.
func (m *MockQuoteProvider) GetCurrentPrice(ticker string) (decimal.Decimal, error) {
	m.QueryCount.Add(1)
	if m.PriceError != nil {
		return decimal.Zero, m.PriceError
	}
	price, ok := m.Prices[ticker]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s: no price configured", apperrors.ErrQuoteUnavailable, ticker)
	}
	return price, nil
}

// GetDividendEvents returns the configured events for the ticker with an
// ex-date on or after since, or the configured error.
func (m *MockQuoteProvider) GetDividendEvents(ticker string, since time.Time) ([]quote.DividendEvent, error) {
	m.QueryCount.Add(1)
	if m.DividendError != nil {
		return nil, m.DividendError
	}
	var events []quote.DividendEvent
	for _, ev := range m.Dividends[ticker] {
		if ev.ExDate.Before(since) {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// WithPrice configures the mock to return price for ticker.
func (m *MockQuoteProvider) WithPrice(ticker string, price float64) *MockQuoteProvider {
	m.Prices[ticker] = decimal.NewFromFloat(price)
	return m
}

// WithDividend configures the mock to return a dividend event for ticker.
func (m *MockQuoteProvider) WithDividend(ticker string, exDate, payDate time.Time, perShare float64) *MockQuoteProvider {
	m.Dividends[ticker] = append(m.Dividends[ticker], quote.DividendEvent{
		ExDate:   exDate,
		PayDate:  payDate,
		PerShare: decimal.NewFromFloat(perShare),
	})
	return m
}

// WithPriceError configures the mock to return err from GetCurrentPrice.
func (m *MockQuoteProvider) WithPriceError(err error) *MockQuoteProvider {
	m.PriceError = err
	return m
}

// WithDividendError configures the mock to return err from GetDividendEvents.
func (m *MockQuoteProvider) WithDividendError(err error) *MockQuoteProvider {
	m.DividendError = err
	return m
}
