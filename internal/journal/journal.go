// Package journal appends one row per resolved prediction fetch to SQLite
// for later diagnosis. Entries are never read back into the display.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ngmaloney/anomaly-terminal/internal/coordinator"
	"github.com/ngmaloney/anomaly-terminal/internal/database"
	"github.com/ngmaloney/anomaly-terminal/internal/prediction"
)

// Outcome values stored in the journal
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
)

// Entry is one journaled fetch
type Entry struct {
	ID             string
	SessionID      string
	DayIndex       int
	Generation     uint64
	Outcome        string
	ErrorKind      string // "network", "service", "parse" (empty on success)
	ErrorText      string
	MinTemperature *float64 // nil unless the fetch succeeded
	MaxTemperature *float64
	Duration       time.Duration
	CreatedAt      time.Time
}

// Recorder accepts journal entries
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}

// Repository persists entries in the fetch_journal table
type Repository struct {
	db *sql.DB
}

// Open opens (and if needed creates) the journal database at dbPath
func Open(dbPath string) (*Repository, error) {
	db, err := database.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return &Repository{db: db}, nil
}

// OpenExisting opens a journal written by an earlier session for reading.
// It returns an error wrapping database.ErrNoDatabase when there is none.
func OpenExisting(dbPath string) (*Repository, error) {
	db, err := database.OpenExisting(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return &Repository{db: db}, nil
}

// Close releases the database handle
func (r *Repository) Close() error {
	return r.db.Close()
}

// Record appends entry, assigning an ID and timestamp when missing
func (r *Repository) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO fetch_journal (id, session_id, day_index, generation, outcome, error_kind, error_text,
			min_temperature, max_temperature, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.SessionID,
		entry.DayIndex,
		int64(entry.Generation),
		entry.Outcome,
		nullString(entry.ErrorKind),
		nullString(entry.ErrorText),
		nullFloat(entry.MinTemperature),
		nullFloat(entry.MaxTemperature),
		entry.Duration.Milliseconds(),
		entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording fetch: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first
func (r *Repository) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, day_index, generation, outcome, error_kind, error_text,
			min_temperature, max_temperature, duration_ms, created_at
		FROM fetch_journal
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e               Entry
			generation      int64
			durationMS      int64
			kind, text      sql.NullString
			minTemp, maxTmp sql.NullFloat64
		)

		if err := rows.Scan(&e.ID, &e.SessionID, &e.DayIndex, &generation, &e.Outcome, &kind, &text,
			&minTemp, &maxTmp, &durationMS, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		e.Generation = uint64(generation)
		e.ErrorKind = kind.String
		e.ErrorText = text.String
		if minTemp.Valid {
			e.MinTemperature = &minTemp.Float64
		}
		if maxTmp.Valid {
			e.MaxTemperature = &maxTmp.Float64
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// FromCompletion builds the journal entry for a resolved fetch
func FromCompletion(sessionID string, done coordinator.Completion, outcome coordinator.Outcome) Entry {
	entry := Entry{
		SessionID:  sessionID,
		DayIndex:   done.Ticket.DayIndex,
		Generation: done.Ticket.Generation,
		Duration:   done.Duration,
	}

	switch {
	case outcome == coordinator.OutcomeStale:
		entry.Outcome = OutcomeStale
	case done.Err != nil || done.Result == nil:
		entry.Outcome = OutcomeFailed
	default:
		entry.Outcome = OutcomeSuccess
	}

	if done.Err != nil {
		entry.ErrorKind = prediction.Kind(done.Err)
		entry.ErrorText = done.Err.Error()
	}
	if done.Result != nil {
		lo, hi := done.Result.MinTemperature, done.Result.MaxTemperature
		entry.MinTemperature = &lo
		entry.MaxTemperature = &hi
	}

	return entry
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
