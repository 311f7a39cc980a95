package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUnknownTicker indicates that no holding exists for the given ticker.
	ErrUnknownTicker = errors.New("unknown ticker")

	// ErrContractNotFound indicates that a covered call contract with the given ID does not exist.
	ErrContractNotFound = errors.New("contract not found")

	// ErrDividendNotFound indicates that a dividend record with the given ID does not exist.
	ErrDividendNotFound = errors.New("dividend not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientFunds indicates that a buy order costs more than the current cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares indicates that a sell or contract creation exceeds
	// the available (non-contracted) shares of the ticker.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrContractNotActive indicates that an exercise was attempted on a contract
	// that has already been exercised or has expired.
	ErrContractNotActive = errors.New("contract is not active")

	// ErrDuplicateDividend indicates that a dividend record for the same ticker
	// and ex-dividend date already exists.
	ErrDuplicateDividend = errors.New("dividend already recorded for ticker and ex-date")

	// ErrInvalidTicker indicates an empty or malformed ticker symbol.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrInvalidQuantity indicates a non-positive share count or amount.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrInvalidDate indicates a date that is missing or not in YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date")
)

// External interface errors represent failures of consumed collaborators.
var (
	// ErrQuoteUnavailable indicates that the market-data provider could not
	// supply a price or dividend data for a ticker. It is propagated to the
	// caller, never retried internally.
	ErrQuoteUnavailable = errors.New("quote unavailable")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveSnapshot  = errors.New("failed to build portfolio snapshot")
	ErrFailedToRetrieveContracts = errors.New("failed to retrieve contracts")
	ErrFailedToRetrieveDividends = errors.New("failed to retrieve dividends")
	ErrFailedToRetrieveEvents    = errors.New("failed to retrieve audit events")
)
