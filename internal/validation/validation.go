// Package validation checks API requests before they reach the engine,
// so invalid input is rejected with field-level messages and no state is
// touched.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Error carries field-specific validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

const dateLayout = "2006-01-02"

// ValidateUUID checks if a string is a valid UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid UUID format: %s", id)
	}
	return nil
}

// checkTicker validates a ticker symbol: non-empty, at most 10
// characters, letters, digits and dots only.
func checkTicker(ticker string, errors map[string]string) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" {
		errors["ticker"] = "ticker is required"
		return
	}
	if len(ticker) > 10 {
		errors["ticker"] = "ticker must be at most 10 characters"
		return
	}
	for _, r := range ticker {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '.' {
			errors["ticker"] = fmt.Sprintf("invalid ticker: %s", ticker)
			return
		}
	}
}

// checkDate validates a YYYY-MM-DD date string under the given field name.
func checkDate(field, value string, errors map[string]string) {
	if strings.TrimSpace(value) == "" {
		errors[field] = fmt.Sprintf("%s is required", field)
		return
	}
	if _, err := time.Parse(dateLayout, value); err != nil {
		errors[field] = err.Error()
	}
}

// ParseDate parses a validated YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return t.UTC(), nil
}

// NormalizeTicker upper-cases a ticker the way the ledger stores it.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
