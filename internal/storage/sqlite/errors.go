package sqlite

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/kitty/internal/storage"
)

// classify maps SQLite lock and constraint failures onto storage errors.
// Errors that are not SQLite errors pass through untouched.
//
// SQLITE_BUSY covers both a writer holding the lock past busy_timeout and
// SQLITE_BUSY_SNAPSHOT, which WAL mode returns when a transaction tries to
// write after another connection committed on top of its read snapshot.
// Both mean the transaction read state that may now be stale.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	}

	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return fmt.Errorf("%w: %v", storage.ErrDuplicate, err)
	}

	return err
}
