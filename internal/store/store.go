// Package store implements the record store: a flat ordered key-value map
// backed by SQLite. Every persisted object in the portal lives here under a
// kind-prefixed key ("user:<email>", "session:<token>", "event:<id>", ...).
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// ErrKeyNotFound is returned when a key is absent from the store.
var ErrKeyNotFound = errors.New("key not found")

// Entry is a single key-value pair returned by a prefix scan.
type Entry struct {
	Key   string
	Value []byte
}

// Store is a key-value view over a single SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at the given path.
// Use ":memory:" for an ephemeral store in tests.
func Open(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; confining the pool to one connection
	// also keeps ":memory:" databases from silently forking per connection.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS records (
		key   TEXT NOT NULL PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored at key, or ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, "SELECT value FROM records WHERE key = ?", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Set stores value at key, replacing any existing value.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO records(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// Delete removes key and returns the value it held. The delete and the read
// of the previous value are a single statement, so there is no window in
// which a concurrent writer can make the outcome ambiguous. Returns
// ErrKeyNotFound when the key was already absent.
func (s *Store) Delete(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.db.QueryRowContext(ctx, "DELETE FROM records WHERE key = ? RETURNING value", key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("delete %q: %w", key, err)
	}
	return value, nil
}

// ListByPrefix returns all entries whose key starts with prefix, in key
// order. The range bounds avoid LIKE so keys containing wildcard characters
// (emails, for one) need no escaping.
func (s *Store) ListByPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, value FROM records WHERE key >= ? AND key < ? ORDER BY key",
		prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// prefixEnd computes the smallest key greater than every key with the given
// prefix. An all-0xFF prefix has no such key; the returned bound then yields
// an empty range, which is the only sane answer for a prefix no real key
// carries.
func prefixEnd(prefix string) string {
	b := []byte(prefix)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 0xff {
			b[i]++
			return string(b[:i+1])
		}
	}
	return "\xff"
}
