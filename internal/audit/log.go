package audit

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is one logged account mutation.
type Event struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Operation string    `json:"operation"`
	Ticker    string    `json:"ticker,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Log provides access to the audit event table.
type Log struct {
	db *sql.DB
}

// NewLog creates a Log backed by the given database connection.
func NewLog(db *sql.DB) *Log {
	return &Log{db: db}
}

// Record inserts an audit event for an accepted mutation. Ticker may be
// empty for operations that are not ticker-scoped (cash adjustments).
func (l *Log) Record(operation, ticker, detail string) error {
	_, err := l.db.Exec(
		`INSERT INTO event (id, created_at, operation, ticker, detail) VALUES (?, ?, ?, ?, ?)`,
		uuid.New().String(),
		time.Now().UTC().Format(time.RFC3339),
		operation,
		ticker,
		detail,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// Events returns the most recent events, newest first.
func (l *Log) Events(limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := l.db.Query(
		`SELECT id, created_at, operation, ticker, detail FROM event ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query event table: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var e Event
		var createdAtStr string

		if err := rows.Scan(&e.ID, &createdAtStr, &e.Operation, &e.Ticker, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan event table results: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse event timestamp: %w", err)
		}

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event table: %w", err)
	}

	return events, nil
}
