// Copyright Gabriele Ciccotelli, 2026. All rights reserved.

// Package history persists a ledger of completed transcriptions in a
// SQLite database, used for the history subcommand and for skipping
// already-transcribed files on resume.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "transcriptions.db"

// Record is one completed transcription.
type Record struct {
	ID          int64
	SourcePath  string
	OutputPath  string
	Backend     string
	Model       string
	Language    string
	Duration    time.Duration
	CompletedAt time.Time
}

// Store manages the transcription ledger.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the ledger database at dir/transcriptions.db,
// creating the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS transcriptions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			backend TEXT NOT NULL,
			model TEXT NOT NULL,
			language TEXT,
			duration_ms INTEGER NOT NULL,
			completed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transcriptions_source ON transcriptions(source_path)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a completed transcription to the ledger. A file
// transcribed twice gets two rows.
func (s *Store) Record(ctx context.Context, r Record) error {
	completedAt := r.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transcriptions
			(source_path, output_path, backend, model, language, duration_ms, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SourcePath, r.OutputPath, r.Backend, r.Model, r.Language,
		r.Duration.Milliseconds(), completedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording transcription: %w", err)
	}
	return nil
}

// Has reports whether the ledger holds a completed transcription for the
// given source file.
func (s *Store) Has(ctx context.Context, sourcePath string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transcriptions WHERE source_path = ?`, sourcePath,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying ledger: %w", err)
	}
	return count > 0, nil
}

// List returns the most recent records, newest first. A limit of 0 means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	query := `SELECT id, source_path, output_path, backend, model, language, duration_ms, completed_at
		FROM transcriptions ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var durationMS int64
		var completedAt string
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.OutputPath, &r.Backend, &r.Model,
			&r.Language, &durationMS, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339, completedAt); err == nil {
			r.CompletedAt = ts
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	return records, nil
}

// Clear deletes every record and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM transcriptions`)
	if err != nil {
		return 0, fmt.Errorf("clearing ledger: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing ledger: %w", err)
	}
	return n, nil
}
