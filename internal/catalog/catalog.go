// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog records extraction runs in a SQLite database so batch
// runs can skip documents that have not changed since their last
// successful extraction.
//
// See docs/ARCHITECTURE § Catalog.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdf-extract/pkg/types"
)

const (
	defaultListLimit = 20

	// timeLayout is fixed-width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Catalog is the extraction history database.
type Catalog struct {
	db *sql.DB
}

// Open opens or creates the catalog database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return c, nil
}

// Close releases the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			checksum TEXT,
			provider TEXT,
			pages INTEGER,
			output TEXT,
			status TEXT NOT NULL,
			error TEXT,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source, extracted_at)`,
	}
	for _, stmt := range statements {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec. A missing ID is filled with a new UUID and a zero
// ExtractedAt with the current time.
func (c *Catalog) Record(ctx context.Context, rec types.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ExtractedAt.IsZero() {
		rec.ExtractedAt = time.Now().UTC()
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, checksum, provider, pages, output, status, error, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Checksum, rec.Provider, rec.Pages, rec.Output,
		string(rec.Status), rec.Error, rec.ExtractedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", rec.Source, err)
	}
	return nil
}

// Last returns the most recent successful record for source. The boolean
// is false when the source has never been extracted successfully.
func (c *Catalog) Last(ctx context.Context, source string) (types.Record, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT id, source, checksum, provider, pages, output, status, error, extracted_at
		 FROM runs WHERE source = ? AND status = ?
		 ORDER BY extracted_at DESC, rowid DESC LIMIT 1`,
		source, string(types.ExtractionDone),
	)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Record{}, false, nil
	}
	if err != nil {
		return types.Record{}, false, fmt.Errorf("looking up %s: %w", source, err)
	}
	return rec, true, nil
}

// List returns up to limit records, newest first. A non-positive limit
// uses the default of 20.
func (c *Catalog) List(ctx context.Context, limit int) ([]types.Record, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, source, checksum, provider, pages, output, status, error, extracted_at
		 FROM runs ORDER BY extracted_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (types.Record, error) {
	var (
		rec                                types.Record
		checksum, provider, output, errMsg sql.NullString
		pages                              sql.NullInt64
		status, extractedAt                string
	)
	if err := s.Scan(&rec.ID, &rec.Source, &checksum, &provider, &pages, &output, &status, &errMsg, &extractedAt); err != nil {
		return types.Record{}, err
	}
	rec.Checksum = checksum.String
	rec.Provider = provider.String
	rec.Pages = int(pages.Int64)
	rec.Output = output.String
	rec.Status = types.ExtractionStatus(status)
	rec.Error = errMsg.String

	t, err := time.Parse(timeLayout, extractedAt)
	if err != nil {
		return types.Record{}, fmt.Errorf("parsing extracted_at %q: %w", extractedAt, err)
	}
	rec.ExtractedAt = t
	return rec, nil
}

// Checksum returns the hex-encoded SHA-256 of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
