package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
	"github.com/brokersim/Brokerage-Account-Backend/internal/validation"
)

// ValidateIDMiddleware validates that the id URL parameter is present
// and is a valid UUID. Returns 400 Bad Request otherwise. Apply to
// routes that address a contract or dividend record by ID.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateIDMiddleware)
//	    r.Post("/exercise", handler.Exercise)
//	})
func ValidateIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		if id == "" {
			response.RespondError(w, http.StatusBadRequest, "valid ID is required", "")
			return
		}

		if err := validation.ValidateUUID(id); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid ID format", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
