// Package ledger implements the durable account ledger: cash, holdings,
// covered call contracts and dividend records, persisted as four
// independent line-oriented text files in a data directory.
package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/model"
)

// File names of the four record collections inside the data directory.
const (
	CashFile      = "cash.txt"
	HoldingsFile  = "holdings.txt"
	ContractsFile = "coveredcalls.txt"
	DividendsFile = "dividends.txt"
)

// Ledger is the process-wide account state together with its backing
// stores. It is not safe for concurrent use; the execution model is
// single-threaded and every mutation persists the affected collection
// before returning.
type Ledger struct {
	cashStore     *CashStore
	holdingStore  *HoldingStore
	contractStore *ContractStore
	dividendStore *DividendStore

	cash      decimal.Decimal
	holdings  map[string]*model.Holding
	contracts []*model.CoveredCallContract
	dividends []*model.DividendRecord
}

// Open loads the ledger from the given data directory, creating the
// directory if needed. Missing files start their collections empty.
func Open(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}

	l := &Ledger{
		cashStore:     NewCashStore(filepath.Join(dir, CashFile)),
		holdingStore:  NewHoldingStore(filepath.Join(dir, HoldingsFile)),
		contractStore: NewContractStore(filepath.Join(dir, ContractsFile)),
		dividendStore: NewDividendStore(filepath.Join(dir, DividendsFile)),
	}

	var err error
	if l.cash, err = l.cashStore.Load(); err != nil {
		return nil, err
	}
	if l.holdings, err = l.holdingStore.Load(); err != nil {
		return nil, err
	}
	if l.contracts, err = l.contractStore.Load(); err != nil {
		return nil, err
	}
	if l.dividends, err = l.dividendStore.Load(); err != nil {
		return nil, err
	}

	return l, nil
}

// Cash returns the current cash balance.
func (l *Ledger) Cash() decimal.Decimal {
	return l.cash
}

// SetCash replaces and persists the cash balance.
func (l *Ledger) SetCash(balance decimal.Decimal) error {
	if err := l.cashStore.Save(balance); err != nil {
		return err
	}
	l.cash = balance
	return nil
}

// Holding returns the holding for the ticker, if present.
func (l *Ledger) Holding(ticker string) (*model.Holding, bool) {
	h, ok := l.holdings[ticker]
	return h, ok
}

// Holdings returns all holdings sorted by ticker.
func (l *Ledger) Holdings() []*model.Holding {
	out := make([]*model.Holding, 0, len(l.holdings))
	for _, h := range l.holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ticker < out[j].Ticker })
	return out
}

// PutHolding adds or replaces a holding in memory. The caller persists
// via SaveHoldings once the whole mutation is assembled.
func (l *Ledger) PutHolding(h *model.Holding) {
	l.holdings[h.Ticker] = h
}

// RemoveHolding drops a holding from memory (used once a holding is
// fully divested). The caller persists via SaveHoldings.
func (l *Ledger) RemoveHolding(ticker string) {
	delete(l.holdings, ticker)
}

// SaveHoldings persists the holdings collection.
func (l *Ledger) SaveHoldings() error {
	return l.holdingStore.Save(l.holdings)
}

// Contracts returns all contracts, terminal ones included, in creation order.
func (l *Ledger) Contracts() []*model.CoveredCallContract {
	return l.contracts
}

// ContractByID returns the contract with the given ID, if present.
func (l *Ledger) ContractByID(id string) (*model.CoveredCallContract, bool) {
	for _, c := range l.contracts {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// AddContract appends a contract and persists the collection.
func (l *Ledger) AddContract(c *model.CoveredCallContract) error {
	l.contracts = append(l.contracts, c)
	if err := l.contractStore.Save(l.contracts); err != nil {
		l.contracts = l.contracts[:len(l.contracts)-1]
		return err
	}
	return nil
}

// SaveContracts persists the contracts collection.
func (l *Ledger) SaveContracts() error {
	return l.contractStore.Save(l.contracts)
}

// Dividends returns all dividend records in creation order.
func (l *Ledger) Dividends() []*model.DividendRecord {
	return l.dividends
}

// FindDividend returns the record matching ticker and ex-dividend date,
// the logical key that detection uses for dedup.
func (l *Ledger) FindDividend(ticker string, exDate time.Time) (*model.DividendRecord, bool) {
	for _, d := range l.dividends {
		if d.Ticker == ticker && sameDay(d.ExDate, exDate) {
			return d, true
		}
	}
	return nil, false
}

// sameDay compares two timestamps by calendar day, ignoring the time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddDividend appends a dividend record and persists the collection.
func (l *Ledger) AddDividend(d *model.DividendRecord) error {
	l.dividends = append(l.dividends, d)
	if err := l.dividendStore.Save(l.dividends); err != nil {
		l.dividends = l.dividends[:len(l.dividends)-1]
		return err
	}
	return nil
}

// SaveDividends persists the dividends collection.
func (l *Ledger) SaveDividends() error {
	return l.dividendStore.Save(l.dividends)
}

// LockedShares returns the number of shares of the ticker locked by
// active contracts. Derived by joining contracts against the ticker, so
// terminal contracts release their lock with no extra bookkeeping.
func (l *Ledger) LockedShares(ticker string) float64 {
	var locked float64
	for _, c := range l.contracts {
		if c.Ticker == ticker && c.IsActive() {
			locked += model.SharesPerContract
		}
	}
	return locked
}

// AvailableShares returns the freely sellable shares of the ticker:
// total held minus shares locked by active contracts.
func (l *Ledger) AvailableShares(ticker string) float64 {
	h, ok := l.holdings[ticker]
	if !ok {
		return 0
	}
	return h.TotalShares() - l.LockedShares(ticker)
}
