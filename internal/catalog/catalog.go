// Package catalog records every torrent this client has added, so the add
// history is available offline and survives daemon-side removal.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded add.
type Entry struct {
	ID       int64
	InfoHash string
	Name     string
	// Source is what the user handed to the add command: a file path,
	// magnet URI, or URL.
	Source  string
	AddedAt time.Time
}

// Store manages add-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS additions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    info_hash  TEXT NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    source     TEXT NOT NULL DEFAULT '',
    added_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_additions_hash ON additions(info_hash);
`

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one add. AddedAt defaults to now.
func (s *Store) Record(ctx context.Context, entry Entry) (int64, error) {
	when := entry.AddedAt
	if when.IsZero() {
		when = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO additions (info_hash, name, source, added_at) VALUES (?, ?, ?, ?)`,
		entry.InfoHash, entry.Name, entry.Source, when.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("record addition: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record addition: %w", err)
	}
	return id, nil
}

// Recent returns up to limit additions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, info_hash, name, source, added_at FROM additions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list additions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var addedAt string
		if err := rows.Scan(&entry.ID, &entry.InfoHash, &entry.Name, &entry.Source, &addedAt); err != nil {
			return nil, fmt.Errorf("scan addition: %w", err)
		}
		when, err := time.Parse(time.RFC3339Nano, addedAt)
		if err != nil {
			return nil, fmt.Errorf("parse added_at %q: %w", addedAt, err)
		}
		entry.AddedAt = when
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list additions: %w", err)
	}
	return entries, nil
}

// ByHash returns every addition of the given info hash, newest first.
func (s *Store) ByHash(ctx context.Context, infoHash string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, info_hash, name, source, added_at FROM additions WHERE info_hash = ? ORDER BY id DESC`, infoHash)
	if err != nil {
		return nil, fmt.Errorf("list additions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var addedAt string
		if err := rows.Scan(&entry.ID, &entry.InfoHash, &entry.Name, &entry.Source, &addedAt); err != nil {
			return nil, fmt.Errorf("scan addition: %w", err)
		}
		when, err := time.Parse(time.RFC3339Nano, addedAt)
		if err != nil {
			return nil, fmt.Errorf("parse added_at %q: %w", addedAt, err)
		}
		entry.AddedAt = when
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list additions: %w", err)
	}
	return entries, nil
}
