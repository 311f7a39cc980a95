package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/brokersim/Brokerage-Account-Backend/internal/ledger"
	"github.com/brokersim/Brokerage-Account-Backend/internal/model"
	"github.com/brokersim/Brokerage-Account-Backend/internal/quote"
)

// maxConcurrentQuotes bounds the parallel price lookups of a snapshot.
const maxConcurrentQuotes = 4

// ValuationService produces the read-only portfolio snapshot: per-ticker
// values, gain/loss against cost basis, cash and a reference mark of the
// active contracts. It never mutates the ledger.
type ValuationService struct {
	ledger *ledger.Ledger
	quotes quote.Provider
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(ledger *ledger.Ledger, quotes quote.Provider) *ValuationService {
	return &ValuationService{
		ledger: ledger,
		quotes: quotes,
	}
}

// Snapshot builds the portfolio valuation at the given timestamp. Prices
// are fetched in parallel, bounded by maxConcurrentQuotes; a ticker
// whose quote lookup fails is marked PriceUnavailable and excluded from
// the totals instead of failing the whole snapshot.
func (s *ValuationService) Snapshot(ctx context.Context, now time.Time) (*model.PortfolioSnapshot, error) {
	holdings := s.ledger.Holdings()

	// Derive the share and cost figures serially; only the quote
	// lookups run in parallel.
	entries := make([]model.HoldingValuation, len(holdings))
	for i, holding := range holdings {
		entries[i] = model.HoldingValuation{
			Ticker:          holding.Ticker,
			TotalShares:     holding.TotalShares(),
			AvailableShares: s.ledger.AvailableShares(holding.Ticker),
			LockedShares:    s.ledger.LockedShares(holding.Ticker),
			AverageCost:     holding.AverageCost(),
			CostBasis:       holding.CostBasis(),
		}
	}

	prices := make([]decimal.Decimal, len(holdings))
	failed := make([]bool, len(holdings))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQuotes)
	for i, holding := range holdings {
		i, holding := i, holding
		g.Go(func() error {
			price, err := s.quotes.GetCurrentPrice(holding.Ticker)
			if err != nil {
				log.Printf("valuation: no quote for %s: %v", holding.Ticker, err)
				failed[i] = true
				return nil
			}
			prices[i] = price
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &model.PortfolioSnapshot{
		GeneratedAt: now,
		Cash:        s.ledger.Cash(),
	}

	stockValue := decimal.Zero
	for i := range entries {
		entry := &entries[i]
		if failed[i] {
			entry.PriceUnavailable = true
			continue
		}

		price := prices[i]
		entry.CurrentPrice = price
		entry.CurrentValue = price.Mul(decimal.NewFromFloat(entry.TotalShares))
		entry.AvailableValue = price.Mul(decimal.NewFromFloat(entry.AvailableShares))
		entry.LockedValue = price.Mul(decimal.NewFromFloat(entry.LockedShares))
		entry.GainLoss = entry.CurrentValue.Sub(entry.CostBasis)
		if entry.CostBasis.IsPositive() {
			percent := entry.GainLoss.Div(entry.CostBasis).Mul(decimal.NewFromInt(100)).InexactFloat64()
			entry.GainLossPercent = &percent
		}

		stockValue = stockValue.Add(entry.CurrentValue)
	}

	// Mark active contracts at their sold premium, a reference display
	// value that is never settled.
	optionsValue := decimal.Zero
	for _, contract := range s.ledger.Contracts() {
		if contract.IsActive() {
			optionsValue = optionsValue.Add(contract.Premium.Mul(decimal.NewFromFloat(model.SharesPerContract)))
		}
	}

	snapshot.Holdings = entries
	snapshot.StockValue = stockValue
	snapshot.OptionsValue = optionsValue
	snapshot.TotalValue = stockValue.Add(snapshot.Cash).Add(optionsValue)

	return snapshot, nil
}
