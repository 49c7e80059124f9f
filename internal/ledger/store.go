// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records conversion outcomes in a SQLite database so a
// history of what was converted, when, and with which content digest can be
// listed or exported later.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/nbtopy/pkg/types"
)

const defaultMaxResults = 50

// Store manages the ledger database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
	now        func() time.Time
}

// Open opens or creates the ledger database at cfg.Path, creating its
// directory and schema when missing.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		path:       cfg.Path,
		maxResults: maxResults,
		now:        time.Now,
	}

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

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT,
			status TEXT NOT NULL,
			digest TEXT,
			has_code INTEGER NOT NULL DEFAULT 0,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input_path)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one entry. A zero ConvertedAt is set to the current time.
func (s *Store) Record(ctx context.Context, e types.LedgerEntry) error {
	if e.ConvertedAt.IsZero() {
		e.ConvertedAt = s.now()
	}
	hasCode := 0
	if e.HasCode {
		hasCode = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input_path, output_path, status, digest, has_code, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.InputPath, e.OutputPath, string(e.Status), e.Digest, hasCode,
		e.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", e.InputPath, err)
	}
	return nil
}

// Filter narrows a listing.
type Filter struct {
	// InputPath matches entries for one input file.
	InputPath string

	// Status matches entries with one outcome.
	Status types.ConversionStatus

	// MaxResults limits result count. Zero uses the store default; a
	// negative value means no limit.
	MaxResults int
}

// List returns matching entries, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]types.LedgerEntry, error) {
	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT id, input_path, output_path, status, digest, has_code, converted_at
		FROM conversions WHERE 1=1`)

	if f.InputPath != "" {
		qb.WriteString(` AND input_path = ?`)
		args = append(args, f.InputPath)
	}
	if f.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(f.Status))
	}

	qb.WriteString(` ORDER BY id DESC`)

	limit := f.MaxResults
	if limit == 0 {
		limit = s.maxResults
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []types.LedgerEntry
	for rows.Next() {
		var (
			e         types.LedgerEntry
			output    sql.NullString
			digest    sql.NullString
			status    string
			hasCode   int
			converted string
		)
		if err := rows.Scan(&e.ID, &e.InputPath, &output, &status, &digest, &hasCode, &converted); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.OutputPath = output.String
		e.Digest = digest.String
		e.Status = types.ConversionStatus(status)
		e.HasCode = hasCode != 0
		if t, err := time.Parse(time.RFC3339Nano, converted); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
