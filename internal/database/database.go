package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBPath returns the default path to the journal database
func DBPath() string {
	return filepath.Join("data", "anomaly-terminal.db")
}

// ErrNoDatabase is returned by OpenExisting when nothing has been written yet
var ErrNoDatabase = errors.New("database does not exist")

// OpenExisting opens the database at dbPath without creating the file, its
// directory or the schema.
func OpenExisting(dbPath string) (*sql.DB, error) {
	if _, err := os.Stat(dbPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", dbPath, ErrNoDatabase)
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	_, _ = db.Exec("PRAGMA busy_timeout=5000")

	return db, nil
}

// Open opens the SQLite database at dbPath, creating its directory and the
// journal schema if they do not exist yet.
func Open(dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	if err := EnsureSchema(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Set pragmas for concurrent readers while the TUI appends
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	_, _ = db.Exec("PRAGMA synchronous=NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout=5000")

	return db, nil
}

// EnsureSchema ensures that the fetch_journal table exists.
func EnsureSchema(dbPath string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database to ensure schema: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS fetch_journal (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			day_index INTEGER NOT NULL,
			generation INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			error_kind TEXT,
			error_text TEXT,
			min_temperature REAL,
			max_temperature REAL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_fetch_journal_created_at ON fetch_journal(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating fetch_journal table: %w", err)
	}

	return nil
}
