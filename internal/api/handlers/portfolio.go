package handlers

import (
	"net/http"
	"time"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
	"github.com/brokersim/Brokerage-Account-Backend/internal/service"
)

// PortfolioHandler handles HTTP requests for the portfolio snapshot.
type PortfolioHandler struct {
	valuationService *service.ValuationService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(valuationService *service.ValuationService) *PortfolioHandler {
	return &PortfolioHandler{
		valuationService: valuationService,
	}
}

// Snapshot handles GET requests for the portfolio valuation: per-ticker
// breakdown with available/locked split and gain/loss, cash and the
// options reference value. Tickers without a quote are marked
// priceUnavailable and excluded from the totals.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with PortfolioSnapshot
// Error: 500 Internal Server Error if the snapshot cannot be built
func (h *PortfolioHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.valuationService.Snapshot(r.Context(), time.Now())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshot.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
