package handlers

import (
	"net/http"
	"strconv"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
)

// EventHandler handles HTTP requests for the audit event log.
type EventHandler struct {
	auditLog *audit.Log
}

// NewEventHandler creates a new EventHandler with the provided audit log.
func NewEventHandler(auditLog *audit.Log) *EventHandler {
	return &EventHandler{
		auditLog: auditLog,
	}
}

// Events handles GET requests for recent audit events, newest first.
//
// Endpoint: GET /api/events?limit=N (default 100)
// Response: 200 OK with array of Event
// Error: 500 Internal Server Error if retrieval fails
func (h *EventHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.RespondError(w, http.StatusBadRequest, "invalid limit", raw)
			return
		}
		limit = parsed
	}

	events, err := h.auditLog.Events(limit)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveEvents.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, events)
}
