package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/testutil"
)

// TestValuationService_Snapshot tests the Snapshot method.
//
// WHY: The snapshot is the read surface the whole account is judged by.
// Its totals must reconcile with cash, the available/locked split must
// mirror the contract locks, and a single dead quote must degrade one
// row instead of the whole response.
func TestValuationService_Snapshot(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("values holdings and reconciles the totals", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		account := testutil.NewTestAccountService(t, led)
		quotes := testutil.NewMockQuoteProvider().WithPrice("AAPL", 160)
		svc := testutil.NewTestValuationService(t, led, quotes)
		if err := led.SetCash(decimal.NewFromInt(20000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}
		if _, err := account.BuyStock("AAPL", 100, decimal.NewFromInt(150), testutil.Date(2026, 1, 5)); err != nil {
			t.Fatalf("BuyStock() returned unexpected error: %v", err)
		}

		// Execute
		snapshot, err := svc.Snapshot(context.Background(), now)

		// Assert
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		if len(snapshot.Holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(snapshot.Holdings))
		}

		entry := snapshot.Holdings[0]
		if !entry.CurrentValue.Equal(decimal.NewFromInt(16000)) {
			t.Errorf("Expected current value 16000, got %s", entry.CurrentValue)
		}

		if !entry.GainLoss.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("Expected gain 1000, got %s", entry.GainLoss)
		}

		if entry.GainLossPercent == nil {
			t.Fatal("Expected gain/loss percent, got nil")
		}
		if got := *entry.GainLossPercent; got < 6.6 || got > 6.7 {
			t.Errorf("Expected gain/loss percent around 6.67, got %v", got)
		}

		// 16000 stock + 5000 cash
		if !snapshot.TotalValue.Equal(decimal.NewFromInt(21000)) {
			t.Errorf("Expected total value 21000, got %s", snapshot.TotalValue)
		}
	})

	t.Run("splits available and locked value per active contract", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		account := testutil.NewTestAccountService(t, led)
		quotes := testutil.NewMockQuoteProvider().WithPrice("AAPL", 160)
		options := testutil.NewTestOptionService(t, led, quotes)
		svc := testutil.NewTestValuationService(t, led, quotes)
		if err := led.SetCash(decimal.NewFromInt(30000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}
		if _, err := account.BuyStock("AAPL", 150, decimal.NewFromInt(150), testutil.Date(2026, 1, 5)); err != nil {
			t.Fatalf("BuyStock() returned unexpected error: %v", err)
		}
		if _, err := options.CreateCoveredCall("AAPL", testutil.Date(2026, 6, 19), decimal.NewFromInt(160), decimal.NewFromFloat(2.50)); err != nil {
			t.Fatalf("CreateCoveredCall() returned unexpected error: %v", err)
		}

		// Execute
		snapshot, err := svc.Snapshot(context.Background(), now)

		// Assert
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		entry := snapshot.Holdings[0]
		if entry.AvailableShares != 50 || entry.LockedShares != 100 {
			t.Errorf("Expected 50 available / 100 locked, got %v / %v", entry.AvailableShares, entry.LockedShares)
		}

		if !entry.LockedValue.Equal(decimal.NewFromInt(16000)) {
			t.Errorf("Expected locked value 16000, got %s", entry.LockedValue)
		}

		// 2.50 premium * 100 shares
		if !snapshot.OptionsValue.Equal(decimal.NewFromInt(250)) {
			t.Errorf("Expected options value 250, got %s", snapshot.OptionsValue)
		}
	})

	t.Run("a dead quote marks the row and drops it from the totals", func(t *testing.T) {
		// Setup: MSFT has a price, AAPL does not
		led := testutil.NewTestLedger(t)
		account := testutil.NewTestAccountService(t, led)
		quotes := testutil.NewMockQuoteProvider().WithPrice("MSFT", 300)
		svc := testutil.NewTestValuationService(t, led, quotes)
		if err := led.SetCash(decimal.NewFromInt(50000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}
		if _, err := account.BuyStock("AAPL", 100, decimal.NewFromInt(150), testutil.Date(2026, 1, 5)); err != nil {
			t.Fatalf("BuyStock() returned unexpected error: %v", err)
		}
		if _, err := account.BuyStock("MSFT", 10, decimal.NewFromInt(280), testutil.Date(2026, 1, 5)); err != nil {
			t.Fatalf("BuyStock() returned unexpected error: %v", err)
		}

		// Execute
		snapshot, err := svc.Snapshot(context.Background(), now)

		// Assert
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		var aapl, msft bool
		for _, entry := range snapshot.Holdings {
			switch entry.Ticker {
			case "AAPL":
				aapl = entry.PriceUnavailable
			case "MSFT":
				msft = entry.PriceUnavailable
			}
		}

		if !aapl {
			t.Error("Expected AAPL marked price unavailable")
		}
		if msft {
			t.Error("Expected MSFT priced normally")
		}

		// Only MSFT contributes: 10 * 300 = 3000
		if !snapshot.StockValue.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("Expected stock value 3000, got %s", snapshot.StockValue)
		}

		// Both tickers were quoted, once each, across the parallel lookups
		if got := quotes.QueryCount.Load(); got != 2 {
			t.Errorf("Expected 2 quote lookups, got %d", got)
		}
	})

	t.Run("an empty account yields a cash-only snapshot", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		svc := testutil.NewTestValuationService(t, led, testutil.NewMockQuoteProvider())
		if err := led.SetCash(decimal.NewFromInt(10000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}

		// Execute
		snapshot, err := svc.Snapshot(context.Background(), now)

		// Assert
		if err != nil {
			t.Fatalf("Snapshot() returned unexpected error: %v", err)
		}

		if len(snapshot.Holdings) != 0 {
			t.Errorf("Expected no holdings, got %d", len(snapshot.Holdings))
		}

		if !snapshot.TotalValue.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("Expected total value 10000, got %s", snapshot.TotalValue)
		}
	})
}
