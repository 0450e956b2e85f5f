// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records conversion runs in a SQLite database and
// summarizes them for the stats command.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfword/pkg/types"
)

// Store manages the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one recorded conversion.
type Run struct {
	ID                 int64         `json:"id" yaml:"id"`
	InputPath          string        `json:"input_path" yaml:"input_path"`
	OutputPath         string        `json:"output_path" yaml:"output_path"`
	Success            bool          `json:"success" yaml:"success"`
	Error              string        `json:"error,omitempty" yaml:"error,omitempty"`
	Pages              int           `json:"pages" yaml:"pages"`
	Chars              int           `json:"chars" yaml:"chars"`
	Backend            string        `json:"backend,omitempty" yaml:"backend,omitempty"`
	Model              string        `json:"model,omitempty" yaml:"model,omitempty"`
	EnhancementSkipped bool          `json:"enhancement_skipped" yaml:"enhancement_skipped"`
	Duration           time.Duration `json:"duration" yaml:"duration"`
	CreatedAt          time.Time     `json:"created_at" yaml:"created_at"`
}

// Open opens or creates the history database at path, creating its
// directory and schema if needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT,
			success INTEGER NOT NULL,
			error TEXT,
			pages INTEGER NOT NULL DEFAULT 0,
			chars INTEGER NOT NULL DEFAULT 0,
			backend TEXT,
			model TEXT,
			enhancement_skipped INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one run; runErr is nil on success. It satisfies
// convert.Recorder.
func (s *Store) Record(ctx context.Context, res *types.ConversionResult, runErr error) error {
	if res == nil {
		res = &types.ConversionResult{}
	}
	var errText string
	if runErr != nil {
		errText = runErr.Error()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input_path, output_path, success, error, pages, chars,
			backend, model, enhancement_skipped, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.InputPath, res.OutputPath, runErr == nil, errText, res.Pages, res.Chars,
		res.Backend, res.Model, res.EnhancementSkipped, res.Duration.Milliseconds(),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording run for %s: %w", res.InputPath, err)
	}
	return nil
}

// Runs returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, input_path, output_path, success, error, pages, chars,
		backend, model, enhancement_skipped, duration_ms, created_at
		FROM runs ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                       Run
			output, errText         sql.NullString
			backend, model, created sql.NullString
			durationMS              int64
		)
		if err := rows.Scan(&r.ID, &r.InputPath, &output, &r.Success, &errText, &r.Pages, &r.Chars,
			&backend, &model, &r.EnhancementSkipped, &durationMS, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.OutputPath = output.String
		r.Error = errText.String
		r.Backend = backend.String
		r.Model = model.String
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if t, err := time.Parse(time.RFC3339Nano, created.String); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
