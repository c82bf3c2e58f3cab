// Package ledger is the membership and inventory consistency engine.
//
// Every exported mutation runs as exactly one storage transaction: the
// decision reads (balances, remaining units, the admin pointer) and the
// writes they justify commit together or not at all. Lost races surface
// from the store as storage.ErrConflict and the store re-runs the whole
// transaction, so closures passed to the store only assign their results
// on the final, successful attempt.
//
// Failures are returned as *Error values carrying a Kind and a Reason.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/kitty/internal/metrics"
	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

// Ledger executes engine operations against a storage.Store.
// It holds no mutable state and is safe for concurrent use.
type Ledger struct {
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithMetrics records operation counts and latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// New creates a Ledger over store.
func New(store storage.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// update runs fn as one read-write transaction and records the outcome.
func (l *Ledger) update(ctx context.Context, operation string, fn func(tx storage.Tx) error) error {
	start := time.Now()
	err := l.store.Update(ctx, fn)
	l.record(operation, start, err)
	return err
}

// view runs fn as one read-only transaction and records the outcome.
func (l *Ledger) view(ctx context.Context, operation string, fn func(tx storage.Tx) error) error {
	start := time.Now()
	err := l.store.View(ctx, fn)
	l.record(operation, start, err)
	return err
}

func (l *Ledger) record(operation string, start time.Time, err error) {
	outcome := metrics.OutcomeOK
	if err != nil {
		if le, ok := AsError(err); ok {
			outcome = string(le.Reason)
			slog.Warn("Ledger operation rejected", "operation", operation, "reason", le.Reason, "error", err)
		} else if errors.Is(err, storage.ErrConflict) {
			outcome = "conflict"
			slog.Error("Ledger operation aborted", "operation", operation, "error", err)
		} else {
			outcome = "error"
			slog.Error("Ledger operation failed", "operation", operation, "error", err)
		}
	}
	l.metrics.RecordOperation(operation, outcome, time.Since(start))
}

func (l *Ledger) timestamp() int64 {
	return l.now().Unix()
}

// Lookups shared by the operations. Each maps storage.ErrNotFound to the
// typed failure the caller would expect.

func requireUser(ctx context.Context, tx storage.Tx, userID string) (*models.User, error) {
	user, err := tx.GetUser(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ReasonUserNotFound, "user does not exist").forUser(userID, "")
	}
	return user, err
}

func requireGroup(ctx context.Context, tx storage.Tx, groupID string) (*models.Group, error) {
	group, err := tx.GetGroup(ctx, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ReasonGroupNotFound, "group does not exist").forUser("", groupID)
	}
	return group, err
}

func requireMembership(ctx context.Context, tx storage.Tx, userID, groupID string) (*models.Membership, error) {
	m, err := tx.GetMembership(ctx, userID, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ReasonNotMember, "user is not a member of the group").forUser(userID, groupID)
	}
	return m, err
}

// requireAdmin loads the caller's membership and checks the admin flag.
// A caller who is not a member at all is also NotAdmin.
func requireAdmin(ctx context.Context, tx storage.Tx, adminUserID, groupID string) (*models.Membership, error) {
	m, err := tx.GetMembership(ctx, adminUserID, groupID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newError(ReasonNotAdmin, "caller is not a member of the group").forUser(adminUserID, groupID)
	}
	if err != nil {
		return nil, err
	}
	if !m.IsAdmin {
		return nil, newError(ReasonNotAdmin, "caller is not the group admin").forUser(adminUserID, groupID)
	}
	return m, nil
}

// retryOnDuplicate turns a uniqueness violation into a conflict. Callers
// check for the row before inserting, so a duplicate means a concurrent
// transaction inserted it after our snapshot; re-running sees it.
func retryOnDuplicate(err error) error {
	if errors.Is(err, storage.ErrDuplicate) {
		return errors.Join(storage.ErrConflict, err)
	}
	return err
}
