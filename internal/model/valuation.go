package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingValuation is the per-ticker line of a portfolio snapshot.
// GainLossPercent is nil when the cost basis is zero (percentage
// undefined). PriceUnavailable marks tickers whose quote lookup failed;
// their values are zero and excluded from the snapshot totals.
type HoldingValuation struct {
	Ticker           string          `json:"ticker"`
	TotalShares      float64         `json:"totalShares"`
	AvailableShares  float64         `json:"availableShares"`
	LockedShares     float64         `json:"lockedShares"`
	AverageCost      decimal.Decimal `json:"averageCost"`
	CostBasis        decimal.Decimal `json:"costBasis"`
	CurrentPrice     decimal.Decimal `json:"currentPrice"`
	CurrentValue     decimal.Decimal `json:"currentValue"`
	AvailableValue   decimal.Decimal `json:"availableValue"`
	LockedValue      decimal.Decimal `json:"lockedValue"`
	GainLoss         decimal.Decimal `json:"gainLoss"`
	GainLossPercent  *float64        `json:"gainLossPercent"`
	PriceUnavailable bool            `json:"priceUnavailable,omitempty"`
}

// PortfolioSnapshot is the read-only valuation of the whole account:
// stock value plus cash plus a reference mark of the active contracts.
type PortfolioSnapshot struct {
	GeneratedAt  time.Time          `json:"generatedAt"`
	Cash         decimal.Decimal    `json:"cash"`
	StockValue   decimal.Decimal    `json:"stockValue"`
	OptionsValue decimal.Decimal    `json:"optionsValue"`
	TotalValue   decimal.Decimal    `json:"totalValue"`
	Holdings     []HoldingValuation `json:"holdings"`
}
