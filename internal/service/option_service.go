package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
	"github.com/brokersim/Brokerage-Account-Backend/internal/ledger"
	"github.com/brokersim/Brokerage-Account-Backend/internal/model"
	"github.com/brokersim/Brokerage-Account-Backend/internal/quote"
)

// exerciseCutoffHour is the local hour on the expiration date at or
// after which the expiration sweep settles due contracts.
const exerciseCutoffHour = 15

// itmBuffer is added to the strike before comparing against the current
// price, so an at-the-money quote does not trigger exercise on rounding.
var itmBuffer = decimal.NewFromFloat(0.01)

// OptionService manages the covered call lifecycle: creation, manual
// exercise and the automatic expiration sweep.
type OptionService struct {
	ledger   *ledger.Ledger
	quotes   quote.Provider
	auditLog *audit.Log
}

// NewOptionService creates a new OptionService with the provided dependencies.
// The audit log may be nil; auditing is then disabled.
func NewOptionService(ledger *ledger.Ledger, quotes quote.Provider, auditLog *audit.Log) *OptionService {
	return &OptionService{
		ledger:   ledger,
		quotes:   quotes,
		auditLog: auditLog,
	}
}

// ExpirationSweepResult summarises one run of the expiration sweep.
// Skipped lists tickers whose quote lookup failed; their contracts stay
// active and are retried on the next run.
type ExpirationSweepResult struct {
	Exercised int      `json:"exercised"`
	Expired   int      `json:"expired"`
	Skipped   []string `json:"skipped,omitempty"`
}

// CreateCoveredCall writes a covered call against the ticker's holding,
// locking SharesPerContract shares and crediting the premium to cash.
// Requires at least SharesPerContract available (non-locked) shares;
// fails with ErrInsufficientShares otherwise.
func (s *OptionService) CreateCoveredCall(ticker string, expiration time.Time, strike, premium decimal.Decimal) (*model.CoveredCallContract, error) {
	if !strike.IsPositive() {
		return nil, fmt.Errorf("%w: strike %s", apperrors.ErrInvalidQuantity, strike)
	}
	if !premium.IsPositive() {
		return nil, fmt.Errorf("%w: premium %s", apperrors.ErrInvalidQuantity, premium)
	}
	if _, ok := s.ledger.Holding(ticker); !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, ticker)
	}

	available := s.ledger.AvailableShares(ticker)
	if available < model.SharesPerContract {
		return nil, fmt.Errorf("%w: %s: covered call requires %v available shares, have %v",
			apperrors.ErrInsufficientShares, ticker, model.SharesPerContract, available)
	}

	contract := &model.CoveredCallContract{
		ID:             uuid.New().String(),
		Ticker:         ticker,
		DateSold:       dateOnly(time.Now()),
		ExpirationDate: expiration,
		Strike:         strike,
		Premium:        premium,
		Status:         model.ContractActive,
	}

	if err := s.ledger.AddContract(contract); err != nil {
		return nil, err
	}

	credit := premium.Mul(decimal.NewFromFloat(model.SharesPerContract))
	if err := s.ledger.SetCash(s.ledger.Cash().Add(credit)); err != nil {
		return nil, err
	}

	s.recordEvent("covered-call", ticker,
		fmt.Sprintf("sold call %s, strike %s, premium %s credited", contract.ID, strike, credit))

	return contract, nil
}

// ExerciseContract manually exercises an active contract: the strike
// price is credited for each locked share and the shares are delivered
// out of the holding FIFO, as in a sell.
func (s *OptionService) ExerciseContract(contractID string) (*model.CoveredCallContract, error) {
	contract, ok := s.ledger.ContractByID(contractID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrContractNotFound, contractID)
	}
	if !contract.IsActive() {
		return nil, fmt.Errorf("%w: %s is %s", apperrors.ErrContractNotActive, contractID, contract.Status)
	}

	if err := s.settleExercise(contract); err != nil {
		return nil, err
	}

	return contract, nil
}

// Contracts returns all contracts with their days to expiration
// relative to the given timestamp.
func (s *OptionService) Contracts(now time.Time) []model.ContractResponse {
	contracts := s.ledger.Contracts()
	out := make([]model.ContractResponse, 0, len(contracts))
	today := dateOnly(now)
	for _, c := range contracts {
		days := int(dateOnly(c.ExpirationDate).Sub(today).Hours() / 24)
		out = append(out, model.ContractResponse{
			CoveredCallContract: *c,
			DaysToExpiration:    days,
		})
	}
	return out
}

// ExpirationSweep settles every active contract whose expiration has
// been reached: past the expiration date, or on it at or after the
// 3 PM cutoff. In-the-money contracts (price ≥ strike + buffer) are
// exercised, the rest expire worthless. A failed quote lookup skips
// that contract and the sweep continues.
//
// The sweep is idempotent: transitions only apply to contracts still in
// Active status, so re-running on an unchanged ledger mutates nothing.
func (s *OptionService) ExpirationSweep(now time.Time) (ExpirationSweepResult, error) {
	var result ExpirationSweepResult

	for _, contract := range s.ledger.Contracts() {
		if !contract.IsActive() || !expirationReached(contract.ExpirationDate, now) {
			continue
		}

		price, err := s.quotes.GetCurrentPrice(contract.Ticker)
		if err != nil {
			log.Printf("expiration sweep: skipping %s (%s): %v", contract.ID, contract.Ticker, err)
			result.Skipped = append(result.Skipped, contract.Ticker)
			continue
		}

		if price.GreaterThanOrEqual(contract.Strike.Add(itmBuffer)) {
			if err := s.settleExercise(contract); err != nil {
				return result, err
			}
			result.Exercised++
			continue
		}

		contract.Status = model.ContractExpired
		if err := s.ledger.SaveContracts(); err != nil {
			return result, err
		}
		s.recordEvent("expire", contract.Ticker, fmt.Sprintf("contract %s expired worthless", contract.ID))
		result.Expired++
	}

	return result, nil
}

// settleExercise applies the Active → Exercised transition: credits
// strike × locked shares to cash, delivers the locked shares out of the
// holding FIFO, and releases the lock by leaving the active state.
func (s *OptionService) settleExercise(contract *model.CoveredCallContract) error {
	holding, ok := s.ledger.Holding(contract.Ticker)
	if !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, contract.Ticker)
	}

	contract.Status = model.ContractExercised
	holding.ConsumeFIFO(model.SharesPerContract)
	if holding.IsEmpty() {
		s.ledger.RemoveHolding(contract.Ticker)
	}

	if err := s.ledger.SaveContracts(); err != nil {
		return err
	}
	if err := s.ledger.SaveHoldings(); err != nil {
		return err
	}

	settlement := contract.Strike.Mul(decimal.NewFromFloat(model.SharesPerContract))
	if err := s.ledger.SetCash(s.ledger.Cash().Add(settlement)); err != nil {
		return err
	}

	s.recordEvent("exercise", contract.Ticker,
		fmt.Sprintf("contract %s exercised, %s settled", contract.ID, settlement))

	return nil
}

// expirationReached reports whether the contract is due for settlement:
// strictly past the expiration date, or on the expiration date at or
// after the cutoff hour.
func expirationReached(expiration, now time.Time) bool {
	today := dateOnly(now)
	expDay := dateOnly(expiration)
	if expDay.Before(today) {
		return true
	}
	return expDay.Equal(today) && now.Hour() >= exerciseCutoffHour
}

// dateOnly normalizes a timestamp to midnight UTC of its calendar day,
// so dates loaded from the ledger (UTC) and caller-supplied local
// timestamps compare by calendar day rather than by instant.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *OptionService) recordEvent(operation, ticker, detail string) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Record(operation, ticker, detail); err != nil {
		log.Printf("failed to record audit event: %v", err)
	}
}
