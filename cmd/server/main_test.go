package main

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/brokersim/Brokerage-Account-Backend/internal/testutil"
)

// TestRunSweeps tests the startup sweep runner.
//
// WHY: The log summary is the only operator-visible record of what a
// scheduled sweep did, so each line must render its counts as numbers.
func TestRunSweeps(t *testing.T) {
	t.Run("logs one well-formed summary per sweep", func(t *testing.T) {
		// Setup
		led := testutil.NewTestLedger(t)
		quotes := testutil.NewMockQuoteProvider()
		optionService := testutil.NewTestOptionService(t, led, quotes)
		dividendService := testutil.NewTestDividendService(t, led, quotes)

		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(os.Stderr)

		// Execute
		runSweeps(optionService, dividendService)

		// Assert
		out := buf.String()
		for _, want := range []string{
			"Expiration sweep: 0 exercised, 0 expired, 0 skipped",
			"Dividend detection: 0 created, 0 skipped",
			"Dividend payment sweep: 0 paid",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("Expected log to contain %q, got:\n%s", want, out)
			}
		}
	})
}
