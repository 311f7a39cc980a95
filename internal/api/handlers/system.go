package handlers

import (
	"database/sql"
	"net/http"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
)

// SystemHandler handles system-level HTTP endpoints.
type SystemHandler struct {
	auditDB *sql.DB
}

// NewSystemHandler creates a new SystemHandler with the provided database connection.
func NewSystemHandler(auditDB *sql.DB) *SystemHandler {
	return &SystemHandler{
		auditDB: auditDB,
	}
}

// Health handles GET requests for the liveness check, including a ping
// of the audit database.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with {"status": "ok"}
// Error: 503 Service Unavailable if the audit database is unreachable
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := audit.HealthCheck(h.auditDB); err != nil {
		response.RespondError(w, http.StatusServiceUnavailable, "audit database unavailable", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
