package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/brokersim/Brokerage-Account-Backend/internal/api/response"
)

// NewAPIKey returns a middleware that guards mutating routes with the
// X-API-Key header. An empty configured key disables the guard, which is
// the expected setup for purely local use.
func NewAPIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			supplied := r.Header.Get("X-API-Key")
			if supplied == "" {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(key)) != 1 {
				response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
