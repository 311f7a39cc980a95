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

// backfillMonths is the trailing window the detection sweep queries for
// missed dividend announcements.
const backfillMonths = 6

// DividendService detects dividend announcements, evaluates eligibility
// against the holding's lots and pays due dividends into cash.
type DividendService struct {
	ledger   *ledger.Ledger
	quotes   quote.Provider
	auditLog *audit.Log
}

// NewDividendService creates a new DividendService with the provided dependencies.
// The audit log may be nil; auditing is then disabled.
func NewDividendService(ledger *ledger.Ledger, quotes quote.Provider, auditLog *audit.Log) *DividendService {
	return &DividendService{
		ledger:   ledger,
		quotes:   quotes,
		auditLog: auditLog,
	}
}

// DetectResult summarises one run of the detection sweep. Skipped lists
// tickers whose dividend lookup failed; they are retried on the next run.
type DetectResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped,omitempty"`
}

// PaymentSweepResult summarises one run of the payment sweep.
type PaymentSweepResult struct {
	Paid int `json:"paid"`
}

// Dividends returns all dividend records in creation order.
func (s *DividendService) Dividends() []*model.DividendRecord {
	return s.ledger.Dividends()
}

// DetectAndBackfill queries the market-data provider for each held
// ticker's dividend announcements in the trailing six-month window and
// creates a Pending record for every announcement not yet represented
// (matched by ticker + ex-date). A failed lookup skips that ticker and
// the sweep continues.
//
// Idempotent: re-running against an unchanged ledger creates nothing,
// because every announcement is already matched by an existing record.
func (s *DividendService) DetectAndBackfill(now time.Time) (DetectResult, error) {
	var result DetectResult
	since := now.AddDate(0, -backfillMonths, 0)

	for _, holding := range s.ledger.Holdings() {
		if holding.IsEmpty() {
			continue
		}

		events, err := s.quotes.GetDividendEvents(holding.Ticker, since)
		if err != nil {
			log.Printf("dividend detection: skipping %s: %v", holding.Ticker, err)
			result.Skipped = append(result.Skipped, holding.Ticker)
			continue
		}

		for _, event := range events {
			if _, ok := s.ledger.FindDividend(holding.Ticker, event.ExDate); ok {
				continue
			}

			record := &model.DividendRecord{
				ID:       uuid.New().String(),
				Ticker:   holding.Ticker,
				ExDate:   event.ExDate,
				PayDate:  event.PayDate,
				PerShare: event.PerShare,
				Status:   model.DividendPending,
			}
			if err := s.ledger.AddDividend(record); err != nil {
				return result, err
			}
			s.recordEvent("dividend-detected", holding.Ticker,
				fmt.Sprintf("dividend %s per share, ex-date %s", event.PerShare, event.ExDate.Format("2006-01-02")))
			result.Created++
		}
	}

	return result, nil
}

// AddManualDividend creates a Pending dividend record directly,
// bypassing detection. The record is subject to the same payment sweep
// rules as detected ones.
func (s *DividendService) AddManualDividend(ticker string, perShare decimal.Decimal, exDate, payDate time.Time) (*model.DividendRecord, error) {
	if !perShare.IsPositive() {
		return nil, fmt.Errorf("%w: per-share amount %s", apperrors.ErrInvalidQuantity, perShare)
	}
	if payDate.Before(exDate) {
		return nil, fmt.Errorf("%w: payment date %s precedes ex-date %s",
			apperrors.ErrInvalidDate, payDate.Format("2006-01-02"), exDate.Format("2006-01-02"))
	}
	if _, ok := s.ledger.Holding(ticker); !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownTicker, ticker)
	}
	if _, ok := s.ledger.FindDividend(ticker, exDate); ok {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrDuplicateDividend, ticker, exDate.Format("2006-01-02"))
	}

	record := &model.DividendRecord{
		ID:       uuid.New().String(),
		Ticker:   ticker,
		ExDate:   exDate,
		PayDate:  payDate,
		PerShare: perShare,
		Status:   model.DividendPending,
	}
	if err := s.ledger.AddDividend(record); err != nil {
		return nil, err
	}

	s.recordEvent("dividend-added", ticker,
		fmt.Sprintf("manual dividend %s per share, ex-date %s", perShare, exDate.Format("2006-01-02")))

	return record, nil
}

// PaymentSweep pays every Pending record whose payment date has been
// reached and that is eligible: at least one lot of the holding was
// purchased strictly before the ex-dividend date. The credit is the
// per-share amount times the eligible shares. Ineligible records stay
// Pending indefinitely rather than being silently discarded.
//
// Idempotent: paid records are terminal, so re-running cannot
// double-credit.
func (s *DividendService) PaymentSweep(now time.Time) (PaymentSweepResult, error) {
	var result PaymentSweepResult
	today := dateOnly(now)

	for _, record := range s.ledger.Dividends() {
		if record.Status != model.DividendPending || dateOnly(record.PayDate).After(today) {
			continue
		}

		eligible := s.eligibleShares(record)
		if eligible <= 0 {
			continue
		}

		record.Status = model.DividendPaid
		if err := s.ledger.SaveDividends(); err != nil {
			return result, err
		}

		amount := record.PerShare.Mul(decimal.NewFromFloat(eligible))
		if err := s.ledger.SetCash(s.ledger.Cash().Add(amount)); err != nil {
			return result, err
		}

		s.recordEvent("dividend-paid", record.Ticker,
			fmt.Sprintf("paid %s for %v eligible shares", amount, eligible))
		result.Paid++
	}

	return result, nil
}

// eligibleShares returns the shares of the record's ticker eligible for
// the dividend: shares in lots purchased strictly before the ex-date.
// Eligibility is evaluated against the current holding lots, an accepted
// approximation of point-in-time ownership.
func (s *DividendService) eligibleShares(record *model.DividendRecord) float64 {
	holding, ok := s.ledger.Holding(record.Ticker)
	if !ok {
		return 0
	}
	return holding.EligibleShares(record.ExDate)
}

func (s *DividendService) recordEvent(operation, ticker, detail string) {
	if s.auditLog == nil {
		return
	}
	if err := s.auditLog.Record(operation, ticker, detail); err != nil {
		log.Printf("failed to record audit event: %v", err)
	}
}
