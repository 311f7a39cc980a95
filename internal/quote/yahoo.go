package quote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brokersim/Brokerage-Account-Backend/internal/apperrors"
)

// defaultBaseURL is the production chart API endpoint.
const defaultBaseURL = "https://query1.finance.yahoo.com"

// YahooClient implements Provider against the Yahoo Finance chart API.
type YahooClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewYahooClient creates a Yahoo Finance client with default HTTP settings.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}
}

// GetCurrentPrice returns the latest available closing price for the
// symbol, using the last 5 trading days of daily data. Any transport,
// parse or empty-data failure is reported as ErrQuoteUnavailable.
func (c *YahooClient) GetCurrentPrice(ticker string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, ticker)
	result, err := c.queryYahoo(url)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %v", apperrors.ErrQuoteUnavailable, ticker, err)
	}
	if len(result.Chart.Result) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s: no results returned", apperrors.ErrQuoteUnavailable, ticker)
	}

	chart := result.Chart.Result[0]
	if len(chart.Indicators.Quote) == 0 {
		return decimal.Zero, fmt.Errorf("%w: %s: no quote data returned", apperrors.ErrQuoteUnavailable, ticker)
	}

	// Walk backwards for the most recent non-null close.
	closes := chart.Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return decimal.NewFromFloat(*closes[i]), nil
		}
	}

	return decimal.Zero, fmt.Errorf("%w: %s: no close prices returned", apperrors.ErrQuoteUnavailable, ticker)
}

// GetDividendEvents returns the dividend announcements for the symbol
// since the given date, sorted by ex-date ascending.
//
// The chart API reports the ex-date and per-share amount only; the
// payment date is approximated as 30 days after the ex-date, which is
// close enough for the payment sweep's date-reached check.
func (c *YahooClient) GetDividendEvents(ticker string, since time.Time) ([]DividendEvent, error) {
	// The window extends past today so a dividend that has been
	// announced with a future ex-date is included.
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div",
		c.baseURL,
		ticker,
		since.Unix(),
		time.Now().AddDate(0, 0, 30).Unix(),
	)
	result, err := c.queryYahoo(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrQuoteUnavailable, ticker, err)
	}
	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s: no results returned", apperrors.ErrQuoteUnavailable, ticker)
	}

	entries := result.Chart.Result[0].Events.Dividends
	events := make([]DividendEvent, 0, len(entries))
	for _, entry := range entries {
		exDate := time.Unix(entry.Date, 0).UTC()
		if exDate.Before(since) {
			continue
		}
		events = append(events, DividendEvent{
			ExDate:   exDate,
			PayDate:  exDate.AddDate(0, 0, 30),
			PerShare: decimal.NewFromFloat(entry.Amount),
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].ExDate.Before(events[j].ExDate) })

	return events, nil
}

// queryYahoo executes an HTTP request against the chart API and decodes
// the response envelope, surfacing API-level errors.
func (c *YahooClient) queryYahoo(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
