// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of completed conversions so a batch of
// lecture notes can be audited after the fact: which sources were converted,
// where the notebooks went, and the digest of the content converted.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/md2ipynb/pkg/types"
)

// defaultLimit caps List when no limit is given.
const defaultLimit = 50

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			source_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			digest TEXT NOT NULL,
			cells INTEGER NOT NULL,
			code_cells INTEGER NOT NULL,
			unterminated INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source_path)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record appends rec to the log.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions
			(run_id, source_path, output_path, digest, cells, code_cells, unterminated, converted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.SourcePath, rec.OutputPath, rec.Digest,
		rec.Cells, rec.CodeCells, rec.Unterminated,
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion for %s: %w", rec.SourcePath, err)
	}
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// Source restricts results to one source path.
	Source string

	// Limit caps the number of records returned (default 50).
	Limit int
}

// List returns recorded conversions, newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.ConversionRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := `SELECT run_id, source_path, output_path, digest, cells, code_cells, unterminated, converted_at
		FROM conversions`
	var args []any
	if opts.Source != "" {
		query += ` WHERE source_path = ?`
		args = append(args, opts.Source)
	}
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec         types.ConversionRecord
			convertedAt string
		)
		if err := rows.Scan(&rec.RunID, &rec.SourcePath, &rec.OutputPath, &rec.Digest,
			&rec.Cells, &rec.CodeCells, &rec.Unterminated, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		rec.ConvertedAt, err = time.Parse(time.RFC3339Nano, convertedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing converted_at %q: %w", convertedAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
