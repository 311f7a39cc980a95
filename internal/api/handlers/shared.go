package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
)

// parseJSON decodes the request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// respondEngineError maps engine errors to HTTP status codes and sends
// the standard error envelope. Business rejections are client errors,
// missing entities are 404, and a failed market-data lookup is a bad
// gateway so callers know a retry may succeed.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnknownTicker),
		errors.Is(err, apperrors.ErrContractNotFound),
		errors.Is(err, apperrors.ErrDividendNotFound):
		response.RespondError(w, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInsufficientShares),
		errors.Is(err, apperrors.ErrContractNotActive),
		errors.Is(err, apperrors.ErrInvalidQuantity),
		errors.Is(err, apperrors.ErrInvalidTicker),
		errors.Is(err, apperrors.ErrInvalidDate):
		response.RespondError(w, http.StatusBadRequest, "operation rejected", err.Error())

	case errors.Is(err, apperrors.ErrDuplicateDividend):
		response.RespondError(w, http.StatusConflict, "duplicate entry", err.Error())

	case errors.Is(err, apperrors.ErrQuoteUnavailable):
		response.RespondError(w, http.StatusBadGateway, "quote unavailable", err.Error())

	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
