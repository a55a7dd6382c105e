// Package history persists one row per pipeline run so past batch
// summaries can be inspected with the runs command.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/groundplane/webrag/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id           TEXT PRIMARY KEY,
	stage            TEXT NOT NULL,
	started_at       TEXT NOT NULL,
	duration_ms      INTEGER NOT NULL,
	documents_ok     INTEGER NOT NULL,
	documents_failed INTEGER NOT NULL,
	chunks_written   INTEGER NOT NULL,
	sections_kept    INTEGER NOT NULL,
	sections_skipped INTEGER NOT NULL
);`

// Run is one persisted batch summary.
type Run struct {
	RunID           string
	Stage           string
	StartedAt       time.Time
	Duration        time.Duration
	DocumentsOK     int
	DocumentsFailed int
	ChunksWritten   int
	SectionsKept    int
	SectionsSkipped int
}

// Store is a SQLite-backed run-history store.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists a finished batch report.
func (s *Store) Record(ctx context.Context, report *domain.BatchReport) error {
	ok, failed := report.Counts()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (run_id, stage, started_at, duration_ms,
			documents_ok, documents_failed, chunks_written, sections_kept, sections_skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.Stage,
		report.StartedAt.UTC().Format(time.RFC3339),
		report.Duration.Milliseconds(),
		ok,
		failed,
		report.ChunksWritten,
		report.SectionsKept,
		report.SectionsSkipped,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", report.RunID, err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, stage, started_at, duration_ms,
			documents_ok, documents_failed, chunks_written, sections_kept, sections_skipped
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started string
		var durMS int64
		if err := rows.Scan(&r.RunID, &r.Stage, &started, &durMS,
			&r.DocumentsOK, &r.DocumentsFailed, &r.ChunksWritten,
			&r.SectionsKept, &r.SectionsSkipped); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			r.StartedAt = t
		}
		r.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}
