package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/handlers"
	"github.com/brokersim/Brokerage-Account-Backend/internal/testutil"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

// TestStockHandler_BuyStock tests the buy endpoint.
//
// WHY: The handler is the contract with API clients: valid purchases
// return 201 with the holding, while validation failures and engine
// rejections map to 400 without touching state.
func TestStockHandler_BuyStock(t *testing.T) {
	t.Run("returns 201 with the updated holding", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		account := testutil.NewTestAccountService(t, led)
		handler := handlers.NewStockHandler(account, testutil.NewMockQuoteProvider())
		if err := led.SetCash(decimal.NewFromInt(10000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}

		// Execute
		w := postJSON(t, handler.BuyStock, "/api/stock/buy", map[string]any{
			"ticker": "aapl",
			"shares": 50,
			"price":  150,
			"date":   "2026-01-05",
		})

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var holding struct {
			Ticker string `json:"ticker"`
		}
		if err := json.NewDecoder(w.Body).Decode(&holding); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if holding.Ticker != "AAPL" {
			t.Errorf("Expected normalized ticker AAPL, got %q", holding.Ticker)
		}
	})

	t.Run("returns 400 for a validation failure", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		handler := handlers.NewStockHandler(testutil.NewTestAccountService(t, led), testutil.NewMockQuoteProvider())

		// Execute
		w := postJSON(t, handler.BuyStock, "/api/stock/buy", map[string]any{
			"ticker": "AAPL",
			"shares": -5,
			"price":  150,
			"date":   "2026-01-05",
		})

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 when funds are insufficient", func(t *testing.T) {
		// Setup: zero cash
		led := testutil.NewTestLedger(t)
		handler := handlers.NewStockHandler(testutil.NewTestAccountService(t, led), testutil.NewMockQuoteProvider())

		// Execute
		w := postJSON(t, handler.BuyStock, "/api/stock/buy", map[string]any{
			"ticker": "AAPL",
			"shares": 100,
			"price":  150,
			"date":   "2026-01-05",
		})

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}

		if got := led.Cash(); !got.IsZero() {
			t.Errorf("Expected cash untouched, got %s", got)
		}
	})

	t.Run("returns 400 for a malformed body", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		handler := handlers.NewStockHandler(testutil.NewTestAccountService(t, led), testutil.NewMockQuoteProvider())

		// Execute
		req := httptest.NewRequest(http.MethodPost, "/api/stock/buy", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		handler.BuyStock(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

// TestStockHandler_SellStock tests the sell endpoint.
//
// WHY: Sells execute at the live quote, so the handler must surface a
// dead quote as 502 and an unknown ticker as 404 rather than a generic
// failure.
func TestStockHandler_SellStock(t *testing.T) {
	t.Run("sells at the quoted price and returns 200", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		account := testutil.NewTestAccountService(t, led)
		quotes := testutil.NewMockQuoteProvider().WithPrice("AAPL", 160)
		handler := handlers.NewStockHandler(account, quotes)
		if err := led.SetCash(decimal.NewFromInt(10000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}
		if _, err := account.BuyStock("AAPL", 50, decimal.NewFromInt(150), testutil.Date(2026, 1, 5)); err != nil {
			t.Fatalf("BuyStock() returned unexpected error: %v", err)
		}

		// Execute
		w := postJSON(t, handler.SellStock, "/api/stock/sell", map[string]any{
			"ticker": "AAPL",
			"shares": 20,
		})

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		// 2500 + 20*160 = 5700
		if got := led.Cash(); !got.Equal(decimal.NewFromInt(5700)) {
			t.Errorf("Expected cash balance 5700, got %s", got)
		}
	})

	t.Run("returns 404 for an unknown ticker", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		quotes := testutil.NewMockQuoteProvider().WithPrice("MSFT", 300)
		handler := handlers.NewStockHandler(testutil.NewTestAccountService(t, led), quotes)

		// Execute
		w := postJSON(t, handler.SellStock, "/api/stock/sell", map[string]any{
			"ticker": "MSFT",
			"shares": 10,
		})

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("returns 502 when the quote lookup fails", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		account := testutil.NewTestAccountService(t, led)
		handler := handlers.NewStockHandler(account, testutil.NewMockQuoteProvider())
		if err := led.SetCash(decimal.NewFromInt(10000)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}
		if _, err := account.BuyStock("AAPL", 50, decimal.NewFromInt(150), testutil.Date(2026, 1, 5)); err != nil {
			t.Fatalf("BuyStock() returned unexpected error: %v", err)
		}

		// Execute: no price configured for AAPL
		w := postJSON(t, handler.SellStock, "/api/stock/sell", map[string]any{
			"ticker": "AAPL",
			"shares": 20,
		})

		// Assert
		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d", w.Code)
		}

		holding, ok := led.Holding("AAPL")
		if !ok || holding.TotalShares() != 50 {
			t.Error("Expected holding untouched after failed quote")
		}
	})
}

// TestStockHandler_Cash tests the cash endpoints.
func TestStockHandler_Cash(t *testing.T) {
	t.Run("returns the current balance", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		handler := handlers.NewStockHandler(testutil.NewTestAccountService(t, led), testutil.NewMockQuoteProvider())
		if err := led.SetCash(decimal.NewFromFloat(1234.56)); err != nil {
			t.Fatalf("Failed to seed cash: %v", err)
		}

		// Execute
		req := httptest.NewRequest(http.MethodGet, "/api/cash", nil)
		w := httptest.NewRecorder()
		handler.Cash(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var body map[string]decimal.Decimal
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !body["balance"].Equal(decimal.NewFromFloat(1234.56)) {
			t.Errorf("Expected balance 1234.56, got %s", body["balance"])
		}
	})

	t.Run("adjusts the balance and rejects zero amounts", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		handler := handlers.NewStockHandler(testutil.NewTestAccountService(t, led), testutil.NewMockQuoteProvider())

		// Execute
		w := postJSON(t, handler.AdjustCash, "/api/cash", map[string]any{"amount": 10000})

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if !led.Cash().Equal(decimal.NewFromInt(10000)) {
			t.Errorf("Expected balance 10000, got %s", led.Cash())
		}

		if w := postJSON(t, handler.AdjustCash, "/api/cash", map[string]any{"amount": 0}); w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for zero amount, got %d", w.Code)
		}
	})
}
