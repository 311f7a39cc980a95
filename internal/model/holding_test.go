package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/model"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func threeLotHolding() *model.Holding {
	return &model.Holding{
		Ticker: "AAPL",
		Lots: []model.Lot{
			{PurchaseDate: date(2026, 1, 5), Shares: 20, PricePerShare: decimal.NewFromInt(100)},
			{PurchaseDate: date(2026, 2, 5), Shares: 30, PricePerShare: decimal.NewFromInt(120)},
			{PurchaseDate: date(2026, 3, 5), Shares: 50, PricePerShare: decimal.NewFromInt(140)},
		},
	}
}

// TestHolding_ConsumeFIFO tests FIFO lot consumption.
//
// WHY: Sells and exercise deliveries both drain lots oldest-first; the
// consumption order decides which purchase dates remain and therefore
// future dividend eligibility.
func TestHolding_ConsumeFIFO(t *testing.T) {
	t.Run("consumes whole lots oldest first", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute
		h.ConsumeFIFO(50)

		// Assert
		if len(h.Lots) != 1 {
			t.Fatalf("Expected 1 remaining lot, got %d", len(h.Lots))
		}
		if !h.Lots[0].PurchaseDate.Equal(date(2026, 3, 5)) {
			t.Errorf("Expected the newest lot to remain, got %s", h.Lots[0].PurchaseDate)
		}
	})

	t.Run("truncates a partially consumed lot", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute
		h.ConsumeFIFO(35)

		// Assert
		if len(h.Lots) != 2 {
			t.Fatalf("Expected 2 remaining lots, got %d", len(h.Lots))
		}
		if h.Lots[0].Shares != 15 {
			t.Errorf("Expected 15 shares left in the partial lot, got %v", h.Lots[0].Shares)
		}
		if h.TotalShares() != 65 {
			t.Errorf("Expected 65 total shares, got %v", h.TotalShares())
		}
	})

	t.Run("consuming everything empties the holding", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute
		h.ConsumeFIFO(100)

		// Assert
		if !h.IsEmpty() {
			t.Errorf("Expected empty holding, got %v shares", h.TotalShares())
		}
	})
}

// TestHolding_Costs tests the cost basis and average cost derivations.
//
// WHY: Gain/loss reporting hangs off these figures, and the average must
// not divide by zero for an empty holding.
func TestHolding_Costs(t *testing.T) {
	t.Run("cost basis sums all lots", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute: 2000 + 3600 + 7000
		got := h.CostBasis()

		// Assert
		if !got.Equal(decimal.NewFromInt(12600)) {
			t.Errorf("Expected cost basis 12600, got %s", got)
		}
	})

	t.Run("average cost weights by shares", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute: 12600 / 100
		got := h.AverageCost()

		// Assert
		if !got.Equal(decimal.NewFromInt(126)) {
			t.Errorf("Expected average cost 126, got %s", got)
		}
	})

	t.Run("average cost of an empty holding is zero", func(t *testing.T) {
		// Setup
		h := &model.Holding{Ticker: "AAPL"}

		// Execute / Assert
		if got := h.AverageCost(); !got.IsZero() {
			t.Errorf("Expected zero average cost, got %s", got)
		}
	})
}

// TestHolding_EligibleShares tests dividend eligibility by purchase date.
//
// WHY: Only shares bought strictly before the ex-dividend date earn the
// dividend; a lot bought on the ex-date itself does not qualify.
func TestHolding_EligibleShares(t *testing.T) {
	t.Run("counts only lots purchased before the ex-date", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute
		got := h.EligibleShares(date(2026, 3, 5))

		// Assert: the 2026-03-05 lot is excluded
		if got != 50 {
			t.Errorf("Expected 50 eligible shares, got %v", got)
		}
	})

	t.Run("an ex-date before the first purchase yields zero", func(t *testing.T) {
		// Setup
		h := threeLotHolding()

		// Execute / Assert
		if got := h.EligibleShares(date(2025, 12, 1)); got != 0 {
			t.Errorf("Expected 0 eligible shares, got %v", got)
		}
	})
}
