package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/kitty/internal/metrics"
	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage/sqlite"
)

// setupTestLedger creates a Ledger over a fresh SQLite database.
func setupTestLedger(t *testing.T) *Ledger {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"), sqlite.Options{MaxAttempts: 64})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, WithMetrics(metrics.New(nil)))
}

func createUser(t *testing.T, l *Ledger, name string) *models.User {
	t.Helper()
	user := &models.User{DisplayName: name, Email: name + "@example.com"}
	require.NoError(t, l.CreateUser(context.Background(), user))
	return user
}

// createGroupWithMembers creates a group administered by the first user and
// joins the rest as regular members.
func createGroupWithMembers(t *testing.T, l *Ledger, admin *models.User, members ...*models.User) *models.Group {
	t.Helper()
	ctx := context.Background()
	group, err := l.CreateGroup(ctx, "Office Coffee", admin.ID)
	require.NoError(t, err)
	for _, m := range members {
		_, err := l.Join(ctx, m.ID, group.ID, false)
		require.NoError(t, err)
	}
	return group
}

// requireReason asserts err is a ledger failure with the given reason and kind.
func requireReason(t *testing.T, err error, reason Reason, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	le, ok := AsError(err)
	require.True(t, ok, "expected *ledger.Error, got %T: %v", err, err)
	require.Equal(t, reason, le.Reason, "error: %v", err)
	require.Equal(t, kind, le.Kind)
	return le
}
