// Package store persists reference texts written by the refresh pipeline.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/typeboard/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when no content has been stored yet.
var ErrNotFound = errors.New("no content stored")

// Repository stores contents and reads them back newest first.
type Repository interface {
	InsertContent(ctx context.Context, c model.Content) error
	LatestContent(ctx context.Context) (model.Content, error)
	ListContents(ctx context.Context, limit int) ([]model.Content, error)
	Close() error
}

// Store wraps SQLite access for content data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS contents (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL,
			sources TEXT NOT NULL DEFAULT '[]',
			fetched_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_contents_fetched_at ON contents(fetched_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertContent stores one content record.
func (s *Store) InsertContent(ctx context.Context, c model.Content) error {
	sources, err := encodeSources(c.Sources)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO contents (title, body, sources, fetched_at) VALUES (?, ?, ?, ?)`,
		c.Title, c.Body, sources, c.FetchedAt,
	)
	return err
}

// LatestContent returns the content with the greatest fetch time.
func (s *Store) LatestContent(ctx context.Context) (model.Content, error) {
	items, err := s.ListContents(ctx, 1)
	if err != nil {
		return model.Content{}, err
	}
	if len(items) == 0 {
		return model.Content{}, ErrNotFound
	}
	return items[0], nil
}

// ListContents returns up to limit contents, newest first. A non-positive
// limit returns everything.
func (s *Store) ListContents(ctx context.Context, limit int) ([]model.Content, error) {
	query := `SELECT title, body, sources, fetched_at FROM contents ORDER BY fetched_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.Content
	for rows.Next() {
		var c model.Content
		var sources string
		if err := rows.Scan(&c.Title, &c.Body, &sources, &c.FetchedAt); err != nil {
			return nil, err
		}
		c.Sources, err = decodeSources(sources)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func encodeSources(sources []string) (string, error) {
	if sources == nil {
		sources = []string{}
	}
	b, err := json.Marshal(sources)
	if err != nil {
		return "", fmt.Errorf("failed to encode sources: %w", err)
	}
	return string(b), nil
}

func decodeSources(raw string) ([]string, error) {
	var sources []string
	if raw == "" {
		return sources, nil
	}
	if err := json.Unmarshal([]byte(raw), &sources); err != nil {
		return nil, fmt.Errorf("failed to decode sources: %w", err)
	}
	return sources, nil
}
