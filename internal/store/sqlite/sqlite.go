// Package sqlite is the production Store implementation. Schema is
// managed through embedded migrations; the bulk operations run inside
// transactions so readers never observe a half-written order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/flarehq/flare/internal/store"
	"github.com/flarehq/flare/internal/store/sqlite/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type Store struct {
	db   *sql.DB
	path string
}

var _ store.Store = (*Store)(nil)

// New opens (or creates) the database at path and migrates it to the
// latest schema version. path may be ":memory:" for tests.
func New(path string) (*Store, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with the
// PRAGMAs the store relies on. Exported for tools and tests that need
// a properly configured connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty DB.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		// SQLite default is OFF for backward compatibility.
		"PRAGMA foreign_keys = ON",
		// Concurrent readers during reconciliation/reorder writes.
		"PRAGMA journal_mode = WAL",
		// Wait up to 5s for locks instead of failing immediately.
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return db, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
