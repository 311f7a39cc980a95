package validation

import (
	"github.com/brokersim/Brokerage-Account-Backend/internal/api/request"
)

// ValidateBuyStock validates a stock purchase request.
//
// Required fields:
//   - ticker: non-empty symbol
//   - shares: must be positive
//   - price: must be positive
//   - date: must be in YYYY-MM-DD format
func ValidateBuyStock(req request.BuyStockRequest) error {
	errors := make(map[string]string)

	checkTicker(req.Ticker, errors)
	checkDate("date", req.Date, errors)

	if req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}
	if req.Price <= 0 {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSellStock validates a stock sale request. The sale price is
// not part of the request; it is quoted at execution time.
func ValidateSellStock(req request.SellStockRequest) error {
	errors := make(map[string]string)

	checkTicker(req.Ticker, errors)

	if req.Shares <= 0 {
		errors["shares"] = "shares must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateAdjustCash validates a manual cash adjustment. The amount may
// be negative for a withdrawal but must not be zero.
func ValidateAdjustCash(req request.AdjustCashRequest) error {
	errors := make(map[string]string)

	if req.Amount == 0 {
		errors["amount"] = "amount must be non-zero"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
