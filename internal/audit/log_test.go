package audit_test

import (
	"path/filepath"
	"testing"

	"github.com/brokersim/Brokerage-Account-Backend/internal/audit"
)

// TestLog tests recording and reading audit events against a real
// on-disk database.
//
// WHY: The audit trail is the only record of past mutations, and the
// schema comes from embedded migrations, so Open must produce a usable
// table on a fresh file.
func TestLog(t *testing.T) {
	t.Run("records and lists events newest first", func(t *testing.T) {
		// Setup
		db, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()
		log := audit.NewLog(db)

		// Execute
		if err := log.Record("buy", "AAPL", "bought 50 shares at 150"); err != nil {
			t.Fatalf("Record() returned unexpected error: %v", err)
		}
		if err := log.Record("sell", "AAPL", "sold 20 shares at 160"); err != nil {
			t.Fatalf("Record() returned unexpected error: %v", err)
		}

		events, err := log.Events(10)

		// Assert
		if err != nil {
			t.Fatalf("Events() returned unexpected error: %v", err)
		}

		if len(events) != 2 {
			t.Fatalf("Expected 2 events, got %d", len(events))
		}

		for _, e := range events {
			if e.ID == "" || e.CreatedAt.IsZero() {
				t.Errorf("Expected populated event, got %+v", e)
			}
		}
	})

	t.Run("limit bounds the result", func(t *testing.T) {
		// Setup
		db, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()
		log := audit.NewLog(db)

		for i := 0; i < 5; i++ {
			if err := log.Record("cash", "", "adjusted cash by 100"); err != nil {
				t.Fatalf("Record() returned unexpected error: %v", err)
			}
		}

		// Execute
		events, err := log.Events(3)

		// Assert
		if err != nil {
			t.Fatalf("Events() returned unexpected error: %v", err)
		}
		if len(events) != 3 {
			t.Errorf("Expected 3 events, got %d", len(events))
		}
	})

	t.Run("health check passes on an open database", func(t *testing.T) {
		// Setup
		db, err := audit.Open(filepath.Join(t.TempDir(), "audit.db"))
		if err != nil {
			t.Fatalf("Open() returned unexpected error: %v", err)
		}
		defer db.Close()

		// Execute / Assert
		if err := audit.HealthCheck(db); err != nil {
			t.Errorf("Expected healthy database, got %v", err)
		}
	})
}
