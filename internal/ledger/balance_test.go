package ledger

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustBalance(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	admin := createUser(t, l, "admin")
	bob := createUser(t, l, "bob")
	group := createGroupWithMembers(t, l, admin, bob)

	balance, err := l.AdjustBalance(ctx, group.ID, bob.ID, -20, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-20), balance)

	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, 25, admin.ID)
	le := requireReason(t, err, ReasonPositiveBalance, KindInvariantViolation)
	assert.Equal(t, int64(-20), le.Current)
	assert.Equal(t, int64(25), le.Requested)
	assert.Equal(t, int64(20), le.Limit)

	m, err := l.GetMembership(ctx, bob.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-20), m.Balance, "rejected adjustment must not change the balance")

	balance, err = l.AdjustBalance(ctx, group.ID, bob.ID, 20, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestAdjustBalance_LeavesKittyAlone(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	admin := createUser(t, l, "admin")
	bob := createUser(t, l, "bob")
	group := createGroupWithMembers(t, l, admin, bob)

	_, err := l.Contribute(ctx, group.ID, bob.ID, 50, "")
	require.NoError(t, err)
	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, -30, admin.ID)
	require.NoError(t, err)
	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, 10, admin.ID)
	require.NoError(t, err)

	g, err := l.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), g.KittyBalance)

	m, err := l.GetMembership(ctx, bob.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-20), m.Balance)
}

func TestAdjustBalance_Failures(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	admin := createUser(t, l, "admin")
	bob := createUser(t, l, "bob")
	carol := createUser(t, l, "carol")
	outsider := createUser(t, l, "outsider")
	group := createGroupWithMembers(t, l, admin, bob, carol)

	tests := []struct {
		name   string
		userID string
		amount int64
		caller string
		reason Reason
		kind   Kind
	}{
		{"caller is not admin", bob.ID, -10, carol.ID, ReasonNotAdmin, KindAuthorization},
		{"caller is not a member", bob.ID, -10, outsider.ID, ReasonNotAdmin, KindAuthorization},
		{"target is not a member", outsider.ID, -10, admin.ID, ReasonNotMember, KindNotFound},
		{"zero amount", bob.ID, 0, admin.ID, ReasonZeroAmount, KindPreconditionFailed},
		{"repayment from zero", bob.ID, 1, admin.ID, ReasonPositiveBalance, KindInvariantViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.AdjustBalance(ctx, group.ID, tt.userID, tt.amount, tt.caller)
			requireReason(t, err, tt.reason, tt.kind)
		})
	}

	m, err := l.GetMembership(ctx, bob.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), m.Balance)
}

func TestAdjustBalance_AdminAdjustsOwnBalance(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	admin := createUser(t, l, "admin")
	group := createGroupWithMembers(t, l, admin)

	balance, err := l.AdjustBalance(ctx, group.ID, admin.ID, -5, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-5), balance)
}

func TestAdjustBalance_DebtFloor(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	admin := createUser(t, l, "admin")
	bob := createUser(t, l, "bob")
	group := createGroupWithMembers(t, l, admin, bob)

	balance, err := l.AdjustBalance(ctx, group.ID, bob.ID, math.MinInt64, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), balance)

	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, -1, admin.ID)
	le := requireReason(t, err, ReasonBalanceOverflow, KindInvariantViolation)
	assert.Equal(t, int64(math.MinInt64), le.Current)
	assert.Equal(t, int64(-1), le.Requested)
	assert.Equal(t, int64(0), le.Limit)

	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, math.MaxInt64, admin.ID)
	require.NoError(t, err)
	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, 2, admin.ID)
	le = requireReason(t, err, ReasonPositiveBalance, KindInvariantViolation)
	assert.Equal(t, int64(1), le.Limit)

	m, err := l.GetMembership(ctx, bob.ID, group.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), m.Balance)
}
