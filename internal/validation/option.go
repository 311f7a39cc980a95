package validation

import (
	"github.com/brokersim/Brokerage-Account-Backend/internal/api/request"
)

// ValidateCreateCoveredCall validates a covered call creation request.
//
// Required fields:
//   - ticker: non-empty symbol
//   - expirationDate: must be in YYYY-MM-DD format
//   - strike: must be positive
//   - premium: must be positive
func ValidateCreateCoveredCall(req request.CreateCoveredCallRequest) error {
	errors := make(map[string]string)

	checkTicker(req.Ticker, errors)
	checkDate("expirationDate", req.ExpirationDate, errors)

	if req.Strike <= 0 {
		errors["strike"] = "strike must be positive"
	}
	if req.Premium <= 0 {
		errors["premium"] = "premium must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
