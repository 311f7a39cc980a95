package service

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
	"github.com/brokersim/Brokerage-Account-Backend/internal/ledger"
	"github.com/brokersim/Brokerage-Account-Backend/internal/model"
)

// AccountService enforces the cash and share invariants for buying and
// selling stock and for manual cash adjustments. All operations validate
// before mutating, so a rejected operation leaves the ledger untouched.
type AccountService struct {
	ledger   *ledger.Ledger
	auditLog *audit.Log
}

// NewAccountService creates a new AccountService with the provided dependencies.
// The audit log may be nil; auditing is then disabled.
func NewAccountService(ledger *ledger.Ledger, auditLog *audit.Log) *AccountService {
	return &AccountService{
		ledger:   ledger,
		auditLog: auditLog,
	}
}

// BuyStock purchases shares at the given price, debiting cash and
// appending a lot to the ticker's holding (creating the holding if
// absent). Fails with ErrInsufficientFunds if the cost exceeds the cash
// balance and with ErrInvalidQuantity for non-positive inputs.
func (s *AccountService) BuyStock(ticker string, shares float64, price decimal.Decimal, date time.Time) (*model.Holding, error) {
	if shares <= 0 {
		return nil, fmt.Errorf("%w: shares %v", apperrors.ErrInvalidQuantity, shares)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price %s", apperrors.ErrInvalidQuantity, price)
	}

	cost := price.Mul(decimal.NewFromFloat(shares))
	balance := s.ledger.Cash()
	if cost.GreaterThan(balance) {
		return nil, fmt.Errorf("%w: %s costs %s, cash balance is %s",
			apperrors.ErrInsufficientFunds, ticker, cost, balance)
	}

	holding, ok := s.ledger.Holding(ticker)
	if !ok {
		holding = &model.Holding{Ticker: ticker}
		s.ledger.PutHolding(holding)
	}
	holding.Lots = append(holding.Lots, model.Lot{
		PurchaseDate:  date,
		Shares:        shares,
		PricePerShare: price,
	})

	if err := s.ledger.SaveHoldings(); err != nil {
		return nil, err
	}
	if err := s.ledger.SetCash(balance.Sub(cost)); err != nil {
		return nil, err
	}

	s.recordEvent("buy", ticker, fmt.Sprintf("bought %v shares at %s", shares, price))

	return holding, nil
}

// SellStock sells shares at the given current price, consuming lots in
// FIFO order and crediting the proceeds to cash. Only available shares
// can be sold; shares locked by active contracts are untouchable. Fails
// with ErrUnknownTicker if no holding exists and ErrInsufficientShares
// if the request exceeds the available shares.
func (s *AccountService) SellStock(ticker string, shares float64, price decimal.Decimal) (*model.Holding, error) {
	if shares <= 0 {
		return nil, fmt.Errorf("%w: shares %v", apperrors.ErrInvalidQuantity, shares)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("%w: price %s", apperrors.ErrInvalidQuantity, price)
	}

	holding, ok := s.ledger.Holding(ticker)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, ticker)
	}

	available := s.ledger.AvailableShares(ticker)
	if shares > available {
		return nil, fmt.Errorf("%w: %s: requested %v, available %v",
			apperrors.ErrInsufficientShares, ticker, shares, available)
	}

	holding.ConsumeFIFO(shares)
	if holding.IsEmpty() {
		s.ledger.RemoveHolding(ticker)
	}

	if err := s.ledger.SaveHoldings(); err != nil {
		return nil, err
	}

	proceeds := price.Mul(decimal.NewFromFloat(shares))
	if err := s.ledger.SetCash(s.ledger.Cash().Add(proceeds)); err != nil {
		return nil, err
	}

	s.recordEvent("sell", ticker, fmt.Sprintf("sold %v shares at %s", shares, price))

	return holding, nil
}

// AdjustCash adds the amount to the cash balance, negative for a
// withdrawal. This mirrors manual bookkeeping, not a trade: there is no
// insufficient-funds check and the balance may go negative.
func (s *AccountService) AdjustCash(amount decimal.Decimal) (decimal.Decimal, error) {
	balance := s.ledger.Cash().Add(amount)
	if err := s.ledger.SetCash(balance); err != nil {
		return decimal.Zero, err
	}

	s.recordEvent("cash", "", fmt.Sprintf("adjusted cash by %s", amount))

	return balance, nil
}

// CashBalance returns the current cash balance.
func (s *AccountService) CashBalance() decimal.Decimal {
	return s.ledger.Cash()
}

func (s *AccountService) recordEvent(operation, ticker, detail string) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Record(operation, ticker, detail); err != nil {
		log.Printf("failed to record audit event: %v", err)
	}
}
