package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/request"
	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
	"github.com/brokersim/Brokerage-Account-Backend/internal/validation"
)

// OptionHandler handles HTTP requests for the covered call lifecycle.
type OptionHandler struct {
	optionService *service.OptionService
}

// NewOptionHandler creates a new OptionHandler with the provided service dependency.
func NewOptionHandler(optionService *service.OptionService) *OptionHandler {
	return &OptionHandler{
		optionService: optionService,
	}
}

// Contracts handles GET requests to list all covered call contracts,
// terminal ones included, with days to expiration.
//
// Endpoint: GET /api/option
// Response: 200 OK with array of ContractResponse
func (h *OptionHandler) Contracts(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.optionService.Contracts(time.Now()))
}

// CreateCoveredCall handles POST requests to write a covered call.
// Requires 100 available shares of the ticker; credits the premium.
//
// Endpoint: POST /api/option
// Request Body: CreateCoveredCallRequest (ticker, expirationDate, strike, premium)
// Response: 201 Created with the contract
// Error: 400 Bad Request if validation fails or available shares are insufficient
// Error: 404 Not Found if the ticker is not held
func (h *OptionHandler) CreateCoveredCall(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateCoveredCallRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateCoveredCall(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	expiration, err := validation.ParseDate(req.ExpirationDate)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	contract, err := h.optionService.CreateCoveredCall(
		validation.NormalizeTicker(req.Ticker),
		expiration,
		decimal.NewFromFloat(req.Strike),
		decimal.NewFromFloat(req.Premium),
	)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, contract)
}

// ExerciseContract handles POST requests to manually exercise an active
// contract: strike × 100 is credited and 100 shares are delivered FIFO.
//
// Endpoint: POST /api/option/{id}/exercise
// Response: 200 OK with the exercised contract
// Error: 400 Bad Request if the contract is no longer active
// Error: 404 Not Found if the contract does not exist
func (h *OptionHandler) ExerciseContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "id")

	contract, err := h.optionService.ExerciseContract(contractID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, contract)
}

// ExpirationSweep handles POST requests to run the expiration sweep at
// the current time. Safe to call repeatedly.
//
// Endpoint: POST /api/option/sweep
// Response: 200 OK with ExpirationSweepResult
func (h *OptionHandler) ExpirationSweep(w http.ResponseWriter, _ *http.Request) {
	result, err := h.optionService.ExpirationSweep(time.Now())
	if err != nil {
		respondEngineError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
