package handlers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/request"
	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
	"github.com/brokersim/Brokerage-Account-Backend/internal/validation"
)

// DividendHandler handles HTTP requests for dividend records and sweeps.
type DividendHandler struct {
	dividendService *service.DividendService
}

// NewDividendHandler creates a new DividendHandler with the provided service dependency.
func NewDividendHandler(dividendService *service.DividendService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
	}
}

// Dividends handles GET requests to list all dividend records.
//
// Endpoint: GET /api/dividend
// Response: 200 OK with array of DividendRecord
func (h *DividendHandler) Dividends(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.dividendService.Dividends())
}

// CreateDividend handles POST requests to record a dividend manually,
// bypassing detection. The record starts Pending and follows the normal
// payment sweep rules.
//
// Endpoint: POST /api/dividend
// Request Body: CreateDividendRequest (ticker, perShare, exDate, payDate)
// Response: 201 Created with the record
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the ticker is not held
// Error: 409 Conflict if a record for the ticker and ex-date exists
func (h *DividendHandler) CreateDividend(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateDividendRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateDividend(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	exDate, err := validation.ParseDate(req.ExDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}
	payDate, err := validation.ParseDate(req.PayDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	record, err := h.dividendService.AddManualDividend(
		validation.NormalizeTicker(req.Ticker),
		decimal.NewFromFloat(req.PerShare),
		exDate,
		payDate,
	)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, record)
}

// DetectAndBackfill handles POST requests to run dividend detection for
// all held tickers over the trailing six months. Safe to call repeatedly.
//
// Endpoint: POST /api/dividend/detect
// Response: 200 OK with DetectResult
func (h *DividendHandler) DetectAndBackfill(w http.ResponseWriter, _ *http.Request) {
	result, err := h.dividendService.DetectAndBackfill(time.Now())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// PaymentSweep handles POST requests to pay all due eligible dividends.
// Safe to call repeatedly.
//
// Endpoint: POST /api/dividend/sweep
// Response: 200 OK with PaymentSweepResult
func (h *DividendHandler) PaymentSweep(w http.ResponseWriter, _ *http.Request) {
	result, err := h.dividendService.PaymentSweep(time.Now())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
