// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache persists recognition results in a SQLite database so that
// re-running extraction on the same document does not repeat OCR work.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed recognition cache. It satisfies
// recognize.Cache.
type Store struct {
	db   *sql.DB
	path string
}

// BackendStats summarizes the cached entries of one backend.
type BackendStats struct {
	Backend string    `yaml:"backend" json:"backend"`
	Entries int       `yaml:"entries" json:"entries"`
	Bytes   int64     `yaml:"bytes" json:"bytes"`
	Newest  time.Time `yaml:"newest" json:"newest"`
}

// Open opens or creates the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

// Path returns the database file backing the store.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS recognitions (
			key TEXT PRIMARY KEY,
			backend TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recognitions_backend ON recognitions(backend)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the cached text for key. ok is false on a miss.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx, `SELECT text FROM recognitions WHERE key = ?`, key).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading cache entry: %w", err)
	}
	return text, true, nil
}

// Put stores text under key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key, backend, text string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recognitions (key, backend, text, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET backend = excluded.backend, text = excluded.text, created_at = excluded.created_at`,
		key, backend, text, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Stats returns per-backend entry counts ordered by backend name.
func (s *Store) Stats(ctx context.Context) ([]BackendStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT backend, count(*), coalesce(sum(length(text)), 0), max(created_at)
		FROM recognitions GROUP BY backend ORDER BY backend`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cache stats: %w", err)
	}
	defer rows.Close()

	var stats []BackendStats
	for rows.Next() {
		var bs BackendStats
		var newest string
		if err := rows.Scan(&bs.Backend, &bs.Entries, &bs.Bytes, &newest); err != nil {
			return nil, fmt.Errorf("scanning cache stats: %w", err)
		}
		bs.Newest, _ = time.Parse(time.RFC3339, newest)
		stats = append(stats, bs)
	}
	return stats, rows.Err()
}

// Clear deletes cached entries. An empty backend clears everything.
// It returns the number of entries removed.
func (s *Store) Clear(ctx context.Context, backend string) (int64, error) {
	var res sql.Result
	var err error
	if backend == "" {
		res, err = s.db.ExecContext(ctx, `DELETE FROM recognitions`)
	} else {
		res, err = s.db.ExecContext(ctx, `DELETE FROM recognitions WHERE backend = ?`, backend)
	}
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return res.RowsAffected()
}
