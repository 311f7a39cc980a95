package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot represents a single purchase of shares within a holding.
// Lots are append-only on buy and are consumed in FIFO order on sell
// and on contract exercise delivery.
type Lot struct {
	PurchaseDate  time.Time       `json:"purchaseDate"`
	Shares        float64         `json:"shares"`
	PricePerShare decimal.Decimal `json:"pricePerShare"`
}

// Cost returns the total cost of the lot (shares × price per share).
func (l Lot) Cost() decimal.Decimal {
	return l.PricePerShare.Mul(decimal.NewFromFloat(l.Shares))
}

// Holding represents the position in a single ticker as an ordered
// sequence of purchase lots.
type Holding struct {
	Ticker string `json:"ticker"`
	Lots   []Lot  `json:"lots"`
}

// TotalShares returns the sum of the share counts of all lots.
func (h *Holding) TotalShares() float64 {
	var total float64
	for _, lot := range h.Lots {
		total += lot.Shares
	}
	return total
}

// CostBasis returns the total purchase cost across all lots.
func (h *Holding) CostBasis() decimal.Decimal {
	total := decimal.Zero
	for _, lot := range h.Lots {
		total = total.Add(lot.Cost())
	}
	return total
}

// AverageCost returns the weighted mean purchase price per share.
// Returns zero for a holding with no shares.
func (h *Holding) AverageCost() decimal.Decimal {
	shares := h.TotalShares()
	if shares == 0 {
		return decimal.Zero
	}
	return h.CostBasis().DivRound(decimal.NewFromFloat(shares), 6)
}

// IsEmpty reports whether the holding has no shares left.
func (h *Holding) IsEmpty() bool {
	return h.TotalShares() == 0
}

// ConsumeFIFO removes the given number of shares from the holding,
// consuming the earliest-dated lots first. Fully consumed lots are
// deleted and a partially consumed final lot is truncated.
//
// The caller must verify beforehand that the holding has enough shares;
// any remainder that cannot be consumed is silently ignored.
func (h *Holding) ConsumeFIFO(shares float64) {
	remaining := shares
	kept := h.Lots[:0]

	for _, lot := range h.Lots {
		if remaining <= 0 {
			kept = append(kept, lot)
			continue
		}
		if lot.Shares > remaining {
			lot.Shares -= remaining
			remaining = 0
			kept = append(kept, lot)
			continue
		}
		remaining -= lot.Shares
	}

	h.Lots = kept
}

// EligibleShares returns the number of shares held in lots purchased
// strictly before the given ex-dividend date. Eligibility is evaluated
// against the current lots, not a point-in-time ownership snapshot.
func (h *Holding) EligibleShares(exDate time.Time) float64 {
	var eligible float64
	for _, lot := range h.Lots {
		if lot.PurchaseDate.Before(exDate) {
			eligible += lot.Shares
		}
	}
	return eligible
}
