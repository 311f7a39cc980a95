package validation

import (
	"github.com/brokersim/Brokerage-Account-Backend/internal/api/request"
)

// ValidateCreateDividend validates a manual dividend entry request.
//
// Required fields:
//   - ticker: non-empty symbol
//   - perShare: must be positive
//   - exDate: must be in YYYY-MM-DD format
//   - payDate: must be in YYYY-MM-DD format
func ValidateCreateDividend(req request.CreateDividendRequest) error {
	errors := make(map[string]string)

	checkTicker(req.Ticker, errors)
	checkDate("exDate", req.ExDate, errors)
	checkDate("payDate", req.PayDate, errors)

	if req.PerShare <= 0 {
		errors["perShare"] = "perShare must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
