package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/model"
)

// CashStore persists the single cash balance.
// File format (cash.txt): one line holding the decimal balance.
type CashStore struct {
	path string
}

// NewCashStore creates a CashStore backed by the given file path.
func NewCashStore(path string) *CashStore {
	return &CashStore{path: path}
}

// Load returns the persisted balance, or zero if the file does not exist.
func (s *CashStore) Load() (decimal.Decimal, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return decimal.Zero, err
	}
	if len(lines) == 0 {
		return decimal.Zero, nil
	}
	balance, err := parseAmount(lines[0])
	if err != nil {
		return decimal.Zero, fmt.Errorf("cash file %s: %w", s.path, err)
	}
	return balance, nil
}

// Save persists the balance, replacing the whole file.
func (s *CashStore) Save(balance decimal.Decimal) error {
	return writeFileAtomic(s.path, []string{balance.String()})
}

// HoldingStore persists holdings keyed by ticker.
// File format (holdings.txt): one line per lot,
// ticker:purchaseDate:shares:pricePerShare.
// Lines for one ticker appear in purchase order; the loader re-sorts lots
// by purchase date so hand-edited files stay consistent.
type HoldingStore struct {
	path string
}

// NewHoldingStore creates a HoldingStore backed by the given file path.
func NewHoldingStore(path string) *HoldingStore {
	return &HoldingStore{path: path}
}

// Load reads all lots and groups them into holdings by ticker.
func (s *HoldingStore) Load() (map[string]*model.Holding, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}

	holdings := make(map[string]*model.Holding)
	for _, line := range lines {
		fields, err := splitFields(line, 4)
		if err != nil {
			return nil, fmt.Errorf("holdings file %s: %w", s.path, err)
		}

		ticker := strings.ToUpper(fields[0])
		purchaseDate, err := parseDate(fields[1])
		if err != nil {
			return nil, fmt.Errorf("holdings file %s: %w", s.path, err)
		}
		shares, err := parseShares(fields[2])
		if err != nil {
			return nil, fmt.Errorf("holdings file %s: %w", s.path, err)
		}
		price, err := parseAmount(fields[3])
		if err != nil {
			return nil, fmt.Errorf("holdings file %s: %w", s.path, err)
		}

		holding, ok := holdings[ticker]
		if !ok {
			holding = &model.Holding{Ticker: ticker}
			holdings[ticker] = holding
		}
		holding.Lots = append(holding.Lots, model.Lot{
			PurchaseDate:  purchaseDate,
			Shares:        shares,
			PricePerShare: price,
		})
	}

	for _, holding := range holdings {
		lots := holding.Lots
		sort.SliceStable(lots, func(i, j int) bool {
			return lots[i].PurchaseDate.Before(lots[j].PurchaseDate)
		})
	}

	return holdings, nil
}

// Save persists all holdings, replacing the whole file. Tickers are
// written in alphabetical order to keep the file diffable.
func (s *HoldingStore) Save(holdings map[string]*model.Holding) error {
	tickers := make([]string, 0, len(holdings))
	for ticker := range holdings {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	var lines []string
	for _, ticker := range tickers {
		for _, lot := range holdings[ticker].Lots {
			lines = append(lines, fmt.Sprintf("%s:%s:%s:%s",
				ticker,
				lot.PurchaseDate.Format(dateLayout),
				formatShares(lot.Shares),
				lot.PricePerShare.String(),
			))
		}
	}

	return writeFileAtomic(s.path, lines)
}

// ContractStore persists covered call contracts, terminal ones included.
// File format (coveredcalls.txt): one line per contract,
// id:ticker:dateSold:expirationDate:strike:premium:status.
type ContractStore struct {
	path string
}

// NewContractStore creates a ContractStore backed by the given file path.
func NewContractStore(path string) *ContractStore {
	return &ContractStore{path: path}
}

// Load reads all contracts in file order.
func (s *ContractStore) Load() ([]*model.CoveredCallContract, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}

	contracts := make([]*model.CoveredCallContract, 0, len(lines))
	for _, line := range lines {
		fields, err := splitFields(line, 7)
		if err != nil {
			return nil, fmt.Errorf("contracts file %s: %w", s.path, err)
		}

		dateSold, err := parseDate(fields[2])
		if err != nil {
			return nil, fmt.Errorf("contracts file %s: %w", s.path, err)
		}
		expiration, err := parseDate(fields[3])
		if err != nil {
			return nil, fmt.Errorf("contracts file %s: %w", s.path, err)
		}
		strike, err := parseAmount(fields[4])
		if err != nil {
			return nil, fmt.Errorf("contracts file %s: %w", s.path, err)
		}
		premium, err := parseAmount(fields[5])
		if err != nil {
			return nil, fmt.Errorf("contracts file %s: %w", s.path, err)
		}
		status, err := parseContractStatus(fields[6])
		if err != nil {
			return nil, fmt.Errorf("contracts file %s: %w", s.path, err)
		}

		contracts = append(contracts, &model.CoveredCallContract{
			ID:             fields[0],
			Ticker:         strings.ToUpper(fields[1]),
			DateSold:       dateSold,
			ExpirationDate: expiration,
			Strike:         strike,
			Premium:        premium,
			Status:         status,
		})
	}

	return contracts, nil
}

// Save persists all contracts in order, replacing the whole file.
func (s *ContractStore) Save(contracts []*model.CoveredCallContract) error {
	lines := make([]string, 0, len(contracts))
	for _, c := range contracts {
		lines = append(lines, fmt.Sprintf("%s:%s:%s:%s:%s:%s:%s",
			c.ID,
			c.Ticker,
			c.DateSold.Format(dateLayout),
			c.ExpirationDate.Format(dateLayout),
			c.Strike.String(),
			c.Premium.String(),
			c.Status,
		))
	}
	return writeFileAtomic(s.path, lines)
}

func parseContractStatus(s string) (model.ContractStatus, error) {
	switch model.ContractStatus(s) {
	case model.ContractActive, model.ContractExercised, model.ContractExpired:
		return model.ContractStatus(s), nil
	}
	return "", fmt.Errorf("unknown contract status %q", s)
}

// DividendStore persists dividend records.
// File format (dividends.txt): one line per record,
// id:ticker:exDate:payDate:perShare:status.
type DividendStore struct {
	path string
}

// NewDividendStore creates a DividendStore backed by the given file path.
func NewDividendStore(path string) *DividendStore {
	return &DividendStore{path: path}
}

// Load reads all dividend records in file order.
func (s *DividendStore) Load() ([]*model.DividendRecord, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}

	dividends := make([]*model.DividendRecord, 0, len(lines))
	for _, line := range lines {
		fields, err := splitFields(line, 6)
		if err != nil {
			return nil, fmt.Errorf("dividends file %s: %w", s.path, err)
		}

		exDate, err := parseDate(fields[2])
		if err != nil {
			return nil, fmt.Errorf("dividends file %s: %w", s.path, err)
		}
		payDate, err := parseDate(fields[3])
		if err != nil {
			return nil, fmt.Errorf("dividends file %s: %w", s.path, err)
		}
		perShare, err := parseAmount(fields[4])
		if err != nil {
			return nil, fmt.Errorf("dividends file %s: %w", s.path, err)
		}
		status, err := parseDividendStatus(fields[5])
		if err != nil {
			return nil, fmt.Errorf("dividends file %s: %w", s.path, err)
		}

		dividends = append(dividends, &model.DividendRecord{
			ID:       fields[0],
			Ticker:   strings.ToUpper(fields[1]),
			ExDate:   exDate,
			PayDate:  payDate,
			PerShare: perShare,
			Status:   status,
		})
	}

	return dividends, nil
}

// Save persists all dividend records in order, replacing the whole file.
func (s *DividendStore) Save(dividends []*model.DividendRecord) error {
	lines := make([]string, 0, len(dividends))
	for _, d := range dividends {
		lines = append(lines, fmt.Sprintf("%s:%s:%s:%s:%s:%s",
			d.ID,
			d.Ticker,
			d.ExDate.Format(dateLayout),
			d.PayDate.Format(dateLayout),
			d.PerShare.String(),
			d.Status,
		))
	}
	return writeFileAtomic(s.path, lines)
}

func parseDividendStatus(s string) (model.DividendStatus, error) {
	switch model.DividendStatus(s) {
	case model.DividendPending, model.DividendPaid:
		return model.DividendStatus(s), nil
	}
	return "", fmt.Errorf("unknown dividend status %q", s)
}
