// Package history persists evaluated expressions in a SQLite database.
//
// The interactive frontend records every successful evaluation so a
// session can be reviewed later with /history. The store keeps the most
// recent entries only; older rows are pruned as new ones arrive.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// maxEntries bounds the number of rows kept in the store. Inserting
// beyond the bound prunes the oldest entries.
const maxEntries = 50

// Entry is one recorded evaluation.
type Entry struct {
	ID         int64
	Input      string    // what the user typed
	Normalized string    // canonical form that was evaluated
	Result     string    // formatted result
	CreatedAt  time.Time
}

// Store is a SQLite-backed history of evaluated expressions.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. The
// special path ":memory:" keeps the history for the session only.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and a pool would
	// give each connection its own copy of a ":memory:" database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("reach history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	q := `
	CREATE TABLE IF NOT EXISTS history (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		input      TEXT NOT NULL,
		normalized TEXT NOT NULL,
		result     TEXT NOT NULL,
		created_at TEXT NOT NULL
	);`
	if _, err := s.db.Exec(q); err != nil {
		return fmt.Errorf("create history table: %w", err)
	}
	return nil
}

// Add records one evaluation and prunes entries beyond the store bound.
func (s *Store) Add(ctx context.Context, input, normalized, result string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history(input, normalized, result, created_at)
		 VALUES(?, ?, ?, ?)`,
		input, normalized, result, time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY id DESC LIMIT ?
		)`, maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns
// everything the store holds.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > maxEntries {
		limit = maxEntries
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input, normalized, result, created_at
		 FROM history ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Input, &e.Normalized, &e.Result, &createdAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse history timestamp: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Clear removes every entry from the store.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
