package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharesPerContract is the number of shares locked by one covered call.
const SharesPerContract = 100.0

// ContractStatus is the lifecycle state of a covered call contract.
// Exercised and Expired are terminal.
type ContractStatus string

const (
	ContractActive    ContractStatus = "active"
	ContractExercised ContractStatus = "exercised"
	ContractExpired   ContractStatus = "expired"
)

// CoveredCallContract represents a covered call written against a holding.
// While the contract is active it locks SharesPerContract shares of the
// ticker; the lock is derived, not stored, so terminal contracts stop
// locking shares simply by leaving the active state.
type CoveredCallContract struct {
	ID             string          `json:"id"`
	Ticker         string          `json:"ticker"`
	DateSold       time.Time       `json:"dateSold"`
	ExpirationDate time.Time       `json:"expirationDate"`
	Strike         decimal.Decimal `json:"strike"`
	Premium        decimal.Decimal `json:"premium"`
	Status         ContractStatus  `json:"status"`
}

// IsActive reports whether the contract still locks shares.
func (c *CoveredCallContract) IsActive() bool {
	return c.Status == ContractActive
}

// ContractResponse is a contract enriched for API responses with the
// days remaining until expiration (negative once past).
type ContractResponse struct {
	CoveredCallContract
	DaysToExpiration int `json:"daysToExpiration"`
}
