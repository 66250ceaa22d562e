// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package audit keeps a local SQLite journal of operator actions and
// connectivity-test outcomes.
package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed   = errors.New("audit journal closed")
	ErrNoTarget = errors.New("audit entry has no target")
)

// =============================================================================
// ENTRY
// =============================================================================

// Kind groups journal entries.
type Kind string

const (
	KindTest   Kind = "test"
	KindAction Kind = "action"
	KindStats  Kind = "stats"
)

// Entry is one journal record.
type Entry struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Kind    Kind      `json:"kind"`
	Target  string    `json:"target"`
	Success bool      `json:"success"`
	Detail  string    `json:"detail,omitempty"`
}

// =============================================================================
// JOURNAL
// =============================================================================

// Journal is an append-only SQLite log. It is safe for concurrent use.
type Journal struct {
	db     *sql.DB
	path   string
	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(InitMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Journal{db: db, path: path, now: time.Now}, nil
}

// Path returns the database file.
func (j *Journal) Path() string {
	return j.path
}

// Record appends e, filling ID and At when unset, and returns the stored entry.
func (j *Journal) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.Target == "" {
		return Entry{}, ErrNoTarget
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = j.now()
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return Entry{}, ErrClosed
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO entries (id, at, kind, target, success, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.At.UnixNano(), string(e.Kind), e.Target, boolToInt(e.Success), e.Detail,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to record audit entry: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. An empty kind matches all.
func (j *Journal) Recent(ctx context.Context, kind Kind, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrClosed
	}

	query := `SELECT id, at, kind, target, success, detail FROM entries`
	args := []any{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}
	query += ` ORDER BY at DESC, rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			at      int64
			kindStr string
			success int
			detail  sql.NullString
		)
		if err := rows.Scan(&e.ID, &at, &kindStr, &e.Target, &success, &detail); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.At = time.Unix(0, at)
		e.Kind = Kind(kindStr)
		e.Success = success != 0
		e.Detail = detail.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (j *Journal) Count(ctx context.Context) (int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrClosed
	}

	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count audit entries: %w", err)
	}
	return n, nil
}

// Prune deletes entries older than cutoff and returns how many were removed.
func (j *Journal) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return 0, ErrClosed
	}

	res, err := j.db.ExecContext(ctx, `DELETE FROM entries WHERE at < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune audit entries: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
