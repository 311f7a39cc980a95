package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/request"
	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/quote"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
	"github.com/brokersim/Brokerage-Account-Backend/internal/validation"
)

// StockHandler handles HTTP requests for buying and selling stock and
// for cash adjustments. It parses requests and delegates to the
// AccountService; a sell first obtains the current price from the quote
// provider, since the engine sells at a caller-supplied quote.
type StockHandler struct {
	accountService *service.AccountService
	quotes         quote.Provider
}

// NewStockHandler creates a new StockHandler with the provided dependencies.
func NewStockHandler(accountService *service.AccountService, quotes quote.Provider) *StockHandler {
	return &StockHandler{
		accountService: accountService,
		quotes:         quotes,
	}
}

// BuyStock handles POST requests to purchase shares.
//
// Endpoint: POST /api/stock/buy
// Request Body: BuyStockRequest (ticker, shares, price, date)
// Response: 201 Created with the updated holding
// Error: 400 Bad Request if validation fails or funds are insufficient
func (h *StockHandler) BuyStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.BuyStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateBuyStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	date, err := validation.ParseDate(req.Date)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	holding, err := h.accountService.BuyStock(
		validation.NormalizeTicker(req.Ticker),
		req.Shares,
		decimal.NewFromFloat(req.Price),
		date,
	)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// SellStock handles POST requests to sell shares at the current quoted
// price. Shares locked by active covered calls cannot be sold.
//
// Endpoint: POST /api/stock/sell
// Request Body: SellStockRequest (ticker, shares)
// Response: 200 OK with the updated holding
// Error: 400 Bad Request if validation fails or shares are insufficient
// Error: 404 Not Found if the ticker is not held
// Error: 502 Bad Gateway if the quote lookup fails
func (h *StockHandler) SellStock(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SellStockRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSellStock(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	ticker := validation.NormalizeTicker(req.Ticker)
	price, err := h.quotes.GetCurrentPrice(ticker)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	holding, err := h.accountService.SellStock(ticker, req.Shares, price)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// Cash handles GET requests for the current cash balance.
//
// Endpoint: GET /api/cash
// Response: 200 OK with {"balance": <decimal>}
func (h *StockHandler) Cash(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]decimal.Decimal{
		"balance": h.accountService.CashBalance(),
	})
}

// AdjustCash handles POST requests for manual deposits and withdrawals.
// The amount may be negative; there is no insufficient-funds check.
//
// Endpoint: POST /api/cash
// Request Body: AdjustCashRequest (amount)
// Response: 200 OK with {"balance": <decimal>}
// Error: 400 Bad Request if the amount is zero
func (h *StockHandler) AdjustCash(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AdjustCashRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAdjustCash(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	balance, err := h.accountService.AdjustCash(decimal.NewFromFloat(req.Amount))
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]decimal.Decimal{
		"balance": balance,
	})
}
