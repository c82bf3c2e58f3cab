package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/internal/storage"
)

func TestJoin(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, l, "alice")
	bob := createUser(t, l, "bob")
	carol := createUser(t, l, "carol")

	group := &models.Group{}
	t.Run("first member is forced admin", func(t *testing.T) {
		var err error
		group, err = l.CreateGroup(ctx, "Tea", alice.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, group.AdminUserID)

		isAdmin, err := l.IsAdmin(ctx, alice.ID, group.ID)
		require.NoError(t, err)
		assert.True(t, isAdmin)
	})

	t.Run("later member asking for admin conflicts", func(t *testing.T) {
		_, err := l.Join(ctx, bob.ID, group.ID, true)
		requireReason(t, err, ReasonAdminConflict, KindConflict)

		_, err = l.GetMembership(ctx, bob.ID, group.ID)
		assert.True(t, errors.Is(err, ErrNotMember), "failed join must not leave a membership")
	})

	t.Run("later member joins as regular member", func(t *testing.T) {
		m, err := l.Join(ctx, bob.ID, group.ID, false)
		require.NoError(t, err)
		assert.False(t, m.IsAdmin)
		assert.Equal(t, int64(0), m.Balance)
		assert.Empty(t, m.ActiveBucketID)
		assert.NotZero(t, m.JoinedAt)
	})

	t.Run("joining twice fails", func(t *testing.T) {
		_, err := l.Join(ctx, bob.ID, group.ID, false)
		requireReason(t, err, ReasonMembershipExists, KindConflict)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := l.Join(ctx, "nonexistent-user", group.ID, false)
		requireReason(t, err, ReasonUserNotFound, KindNotFound)
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := l.Join(ctx, carol.ID, "nonexistent-group", false)
		requireReason(t, err, ReasonGroupNotFound, KindNotFound)
	})

	t.Run("IsAdmin for non-member", func(t *testing.T) {
		_, err := l.IsAdmin(ctx, carol.ID, group.ID)
		requireReason(t, err, ReasonNotMember, KindNotFound)
	})
}

func TestMembershipViewsAgree(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, l, "alice")
	bob := createUser(t, l, "bob")
	group := createGroupWithMembers(t, l, alice, bob)

	_, err := l.Purchase(ctx, group.ID, bob.ID, 1, 4)
	require.NoError(t, err)
	_, err = l.AdjustBalance(ctx, group.ID, bob.ID, -7, alice.ID)
	require.NoError(t, err)

	fromGroup, err := l.ListMembers(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, fromGroup, 2)

	fromUser, err := l.ListUserGroups(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, fromUser, 1)

	direct, err := l.GetMembership(ctx, bob.ID, group.ID)
	require.NoError(t, err)

	// The group-side and user-side views read the same row.
	assert.Equal(t, direct, fromGroup[1])
	assert.Equal(t, direct, fromUser[0])
	assert.Equal(t, int64(-7), direct.Balance)
	assert.NotEmpty(t, direct.ActiveBucketID)
}

func TestTransferAdmin(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, l, "alice")
	bob := createUser(t, l, "bob")
	carol := createUser(t, l, "carol")
	group := createGroupWithMembers(t, l, alice, bob)

	t.Run("non-admin cannot transfer", func(t *testing.T) {
		err := l.TransferAdmin(ctx, group.ID, bob.ID, bob.ID)
		requireReason(t, err, ReasonNotAdmin, KindAuthorization)
	})

	t.Run("target must be a member", func(t *testing.T) {
		err := l.TransferAdmin(ctx, group.ID, alice.ID, carol.ID)
		requireReason(t, err, ReasonNotMember, KindNotFound)

		isAdmin, err := l.IsAdmin(ctx, alice.ID, group.ID)
		require.NoError(t, err)
		assert.True(t, isAdmin, "failed transfer must keep the old admin")
	})

	t.Run("transfer moves flag and pointer", func(t *testing.T) {
		require.NoError(t, l.TransferAdmin(ctx, group.ID, alice.ID, bob.ID))

		aliceAdmin, err := l.IsAdmin(ctx, alice.ID, group.ID)
		require.NoError(t, err)
		bobAdmin, err := l.IsAdmin(ctx, bob.ID, group.ID)
		require.NoError(t, err)
		assert.False(t, aliceAdmin)
		assert.True(t, bobAdmin)

		g, err := l.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, g.AdminUserID)
		assertSingleAdmin(t, l, group.ID)
	})

	t.Run("transfer to self is a no-op", func(t *testing.T) {
		require.NoError(t, l.TransferAdmin(ctx, group.ID, bob.ID, bob.ID))
		assertSingleAdmin(t, l, group.ID)
	})
}

func TestJoin_ConcurrentFirstMembersElectOneAdmin(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	owner := createUser(t, l, "owner")
	group, err := l.CreateGroup(ctx, "Racy", owner.ID)
	require.NoError(t, err)

	// A second group, created without members, that many users join at once.
	emptyGroup := &models.Group{ID: l.newID(), Name: "Empty", CreatedAt: l.timestamp()}
	require.NoError(t, l.store.Update(ctx, func(tx storage.Tx) error {
		return tx.CreateGroup(ctx, emptyGroup)
	}))

	const n = 8
	users := make([]*models.User, n)
	for i := range users {
		users[i] = createUser(t, l, fmt.Sprintf("joiner%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i, u := range users {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = l.Join(ctx, userID, emptyGroup.ID, false)
		}(i, u.ID)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "joiner %d", i)
	}

	members, err := l.ListMembers(ctx, emptyGroup.ID)
	require.NoError(t, err)
	assert.Len(t, members, n)
	assertSingleAdmin(t, l, emptyGroup.ID)
	assertSingleAdmin(t, l, group.ID)
}

func TestAdmin_ApprovalsJoinsAndTransferRace(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	owner := createUser(t, l, "owner")
	heir := createUser(t, l, "heir")
	group := createGroupWithMembers(t, l, owner, heir)

	const n = 4
	requestIDs := make([]string, n)
	joiners := make([]*models.User, n)
	for i := 0; i < n; i++ {
		requester := createUser(t, l, fmt.Sprintf("requester%d", i))
		id, err := l.RequestJoin(ctx, group.ID, requester.ID, "")
		require.NoError(t, err)
		requestIDs[i] = id
		joiners[i] = createUser(t, l, fmt.Sprintf("joiner%d", i))
	}

	var wg sync.WaitGroup
	approveErrs := make([]error, n)
	joinErrs := make([]error, n)
	var transferErr error
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			approveErrs[i] = l.ApproveJoin(ctx, group.ID, requestIDs[i], owner.ID, "")
		}(i)
		go func(i int) {
			defer wg.Done()
			// Asking for admin in a group that has one must never succeed.
			_, joinErrs[i] = l.Join(ctx, joiners[i].ID, group.ID, i%2 == 0)
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		transferErr = l.TransferAdmin(ctx, group.ID, owner.ID, heir.ID)
	}()
	wg.Wait()

	require.NoError(t, transferErr)
	for i, err := range approveErrs {
		// Approvals that land after the transfer are refused.
		if err != nil {
			assert.True(t, errors.Is(err, ErrNotAdmin), "approval %d: %v", i, err)
		}
	}
	for i, err := range joinErrs {
		if i%2 == 0 {
			assert.True(t, errors.Is(err, ErrAdminConflict), "joiner %d: %v", i, err)
		} else {
			assert.NoError(t, err, "joiner %d", i)
		}
	}

	assertSingleAdmin(t, l, group.ID)
	g, err := l.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, heir.ID, g.AdminUserID)
}

func TestJoin_ConcurrentAdminRequestsOnEmptyGroup(t *testing.T) {
	l := setupTestLedger(t)
	ctx := context.Background()

	group := &models.Group{ID: l.newID(), Name: "Empty", CreatedAt: l.timestamp()}
	require.NoError(t, l.store.Update(ctx, func(tx storage.Tx) error {
		return tx.CreateGroup(ctx, group)
	}))

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		user := createUser(t, l, fmt.Sprintf("claimant%d", i))
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = l.Join(ctx, userID, group.ID, true)
		}(i, user.ID)
	}
	wg.Wait()

	var joined int
	for i, err := range errs {
		if err == nil {
			joined++
			continue
		}
		assert.True(t, errors.Is(err, ErrAdminConflict), "claimant %d: %v", i, err)
	}
	assert.Equal(t, 1, joined)
	assertSingleAdmin(t, l, group.ID)
}

// assertSingleAdmin checks that the group has exactly one admin membership
// and that the group's admin pointer names it.
func assertSingleAdmin(t *testing.T, l *Ledger, groupID string) {
	t.Helper()
	ctx := context.Background()

	members, err := l.ListMembers(ctx, groupID)
	require.NoError(t, err)
	require.NotEmpty(t, members)

	var admins []string
	for _, m := range members {
		if m.IsAdmin {
			admins = append(admins, m.UserID)
		}
	}
	require.Len(t, admins, 1, "group %s admins: %v", groupID, admins)

	g, err := l.GetGroup(ctx, groupID)
	require.NoError(t, err)
	assert.Equal(t, admins[0], g.AdminUserID)
}
