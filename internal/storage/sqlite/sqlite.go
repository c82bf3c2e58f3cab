// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/kitty/internal/metrics"
	"github.com/mmynk/kitty/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

const (
	// DefaultMaxAttempts is how many times a conflicting transaction runs
	// before Update gives up.
	DefaultMaxAttempts = 16

	baseBackoff = 2 * time.Millisecond
	maxBackoff  = 100 * time.Millisecond
)

// Options tunes a SQLiteStore. The zero value is usable.
type Options struct {
	// MaxAttempts bounds transaction retries on conflict.
	// Zero means DefaultMaxAttempts.
	MaxAttempts int

	// Metrics receives retry counts. May be nil.
	Metrics *metrics.Metrics
}

// SQLiteStore implements storage.Store using SQLite.
//
// Transactions are optimistic: they start deferred, read freely, and write
// with version-checked updates. A stale read snapshot or a lost version
// check surfaces as storage.ErrConflict and the transaction is re-run.
type SQLiteStore struct {
	db          *sql.DB
	maxAttempts int
	metrics     *metrics.Metrics
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string, opts Options) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	return &SQLiteStore{db: db, maxAttempts: maxAttempts, metrics: opts.Metrics}, nil
}

// dsn builds the connection string. Pragmas go in the DSN so that every
// pooled connection gets them, not just the first one.
func dsn(dbPath string) string {
	return "file:" + dbPath +
		"?_pragma=foreign_keys(1)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Update runs fn in a read-write transaction, retrying on conflict.
func (s *SQLiteStore) Update(ctx context.Context, fn func(tx storage.Tx) error) error {
	backoff := baseBackoff
	for attempt := 1; ; attempt++ {
		err := s.runTx(ctx, fn)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrConflict) {
			return err
		}
		if attempt >= s.maxAttempts {
			s.metrics.RecordExhausted()
			slog.Warn("Transaction gave up after conflicts", "attempts", attempt, "error", err)
			return fmt.Errorf("transaction failed after %d attempts: %w", attempt, err)
		}

		s.metrics.RecordRetry()
		slog.Debug("Retrying transaction after conflict", "attempt", attempt, "error", err)

		// Full jitter keeps competing writers from retrying in lockstep.
		wait := time.Duration(rand.Int64N(int64(backoff))) + time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// View runs fn in a transaction that is always rolled back.
func (s *SQLiteStore) View(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	return fn(&sqlTx{tx: tx})
}

// runTx executes one attempt of fn and commits it.
func (s *SQLiteStore) runTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	if err := fn(&sqlTx{tx: tx}); err != nil {
		return classify(err)
	}

	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("failed to commit transaction: %w", err))
	}

	return nil
}

// sqlTx implements storage.Tx on top of a database/sql transaction.
type sqlTx struct {
	tx *sql.Tx
}

// nullString maps "" to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullInt64 maps 0 to SQL NULL.
func nullInt64(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

// notFound wraps storage.ErrNotFound with the missing entity.
func notFound(entity, id string) error {
	return fmt.Errorf("%s %s: %w", entity, id, storage.ErrNotFound)
}

// checkVersioned turns a zero-row versioned update into storage.ErrConflict.
func checkVersioned(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s changed since read: %w", entity, id, storage.ErrConflict)
	}
	return nil
}
