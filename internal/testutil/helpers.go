package testutil

import (
	"testing"
	"time"

	"github.com/brokersim/Brokerage-Account-Backend/internal/ledger"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
)

// NewTestLedger creates a ledger backed by a temporary directory that is
// cleaned up when the test finishes.
func NewTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()

	led, err := ledger.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open test ledger: %v", err)
	}
	return led
}

// NewTestAccountService creates an AccountService without audit logging.
func NewTestAccountService(t *testing.T, led *ledger.Ledger) *service.AccountService {
	t.Helper()

	return service.NewAccountService(led, nil)
}

// NewTestOptionService creates an OptionService with a mock quote provider
// and no audit logging.
func NewTestOptionService(t *testing.T, led *ledger.Ledger, quotes *MockQuoteProvider) *service.OptionService {
	t.Helper()

	return service.NewOptionService(led, quotes, nil)
}

// NewTestDividendService creates a DividendService with a mock quote
// provider and no audit logging.
func NewTestDividendService(t *testing.T, led *ledger.Ledger, quotes *MockQuoteProvider) *service.DividendService {
	t.Helper()

	return service.NewDividendService(led, quotes, nil)
}

// NewTestValuationService creates a ValuationService with a mock quote provider.
func NewTestValuationService(t *testing.T, led *ledger.Ledger, quotes *MockQuoteProvider) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(led, quotes)
}

// Date builds a UTC date at midnight for test fixtures.
//
// Example usage:
//
//	exDate := testutil.Date(2026, 3, 15)
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
