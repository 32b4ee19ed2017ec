// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/certbadge/internal/store"
	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("journal closed")
	ErrDatabaseError = errors.New("database error")
)

// MemoryPath is the DSN of a process-lifetime journal.
const MemoryPath = ":memory:"

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one journaled lifecycle event.
type Entry struct {
	ID        int64           `json:"id"`
	At        time.Time       `json:"at"`
	Kind      store.EventKind `json:"kind"`
	PageID    string          `json:"page_id"`
	RequestID string          `json:"request_id,omitempty"`
	URL       string          `json:"url,omitempty"`
	Level     string          `json:"level,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// FromEvent converts a store event into an unsaved entry.
func FromEvent(ev store.Event) Entry {
	e := Entry{
		Kind:      ev.Kind,
		PageID:    ev.PageID,
		RequestID: ev.RequestID,
		URL:       ev.URL,
	}
	if ev.Entry != nil && ev.Entry.HasRecord() {
		e.Level = trust.Classify(*ev.Entry.Record).String()
	}
	if ev.Err != nil {
		e.Error = ev.Err.Error()
	}
	return e
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	PageID string
	Kind   store.EventKind
	Limit  int
}

// =============================================================================
// JOURNAL
// =============================================================================

// Journal is a SQLite-backed event log.
type Journal struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
	now    func() time.Time
}

// Open opens (creating if needed) the journal at path.
func Open(path string) (*Journal, error) {
	if path == "" {
		path = MemoryPath
	}
	if path != MemoryPath && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// One connection: SQLite has a single writer and an in-memory
	// database exists only on the connection that created it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	if path != MemoryPath {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
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
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// Close releases the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// Record appends e. A zero At is set to the current time.
func (j *Journal) Record(ctx context.Context, e Entry) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}
	if e.At.IsZero() {
		e.At = j.now()
	}

	res, err := j.db.ExecContext(ctx,
		`INSERT INTO events (at, kind, page_id, request_id, url, level, error) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.At.UnixNano(), string(e.Kind), e.PageID, e.RequestID, e.URL, e.Level, e.Error)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return res.LastInsertId()
}

// Observe journals ev. Its signature matches store.Observer; failures
// are logged, never returned.
func (j *Journal) Observe(ev store.Event) {
	if _, err := j.Record(context.Background(), FromEvent(ev)); err != nil {
		log.Printf("JOURNAL_ERROR | kind=%s page=%s error=%v", ev.Kind, ev.PageID, err)
	}
}

// List returns matching entries oldest first.
func (j *Journal) List(ctx context.Context, f Filter) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	query := `SELECT id, at, kind, page_id, request_id, url, level, error FROM events`
	var where []string
	var args []interface{}
	if f.PageID != "" {
		where = append(where, "page_id = ?")
		args = append(args, f.PageID)
	}
	if f.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var at int64
		var kind string
		if err := rows.Scan(&e.ID, &at, &kind, &e.PageID, &e.RequestID, &e.URL, &e.Level, &e.Error); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		e.At = time.Unix(0, at)
		e.Kind = store.EventKind(kind)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return out, nil
}

// Counts returns the number of entries per kind.
func (j *Journal) Counts(ctx context.Context) (map[store.EventKind]int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM events GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	counts := make(map[store.EventKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		counts[store.EventKind(kind)] = n
	}
	return counts, rows.Err()
}
