package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/pkg/api"
)

// createGroup creates a group owned by admin and admits each member
// through the join request flow.
func (c *testClients) createGroup(t *testing.T, admin testUser, members ...testUser) string {
	t.Helper()
	ctx := context.Background()

	resp, err := c.group.CreateGroup(ctx, as(admin, &api.CreateGroupRequest{Name: "Office Coffee"}))
	require.NoError(t, err)
	groupID := resp.Msg.Group.ID

	for _, m := range members {
		jr, err := c.group.RequestJoin(ctx, as(m, &api.RequestJoinRequest{GroupID: groupID}))
		require.NoError(t, err)
		_, err = c.group.ApproveJoin(ctx, as(admin, &api.ApproveJoinRequest{GroupID: groupID, RequestID: jr.Msg.RequestID}))
		require.NoError(t, err)
	}
	return groupID
}

func TestCreateGroup(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice := c.register(t, "alice")

	resp, err := c.group.CreateGroup(ctx, as(alice, &api.CreateGroupRequest{Name: "Office Coffee"}))
	require.NoError(t, err)
	group := resp.Msg.Group
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Office Coffee", group.Name)
	assert.Equal(t, alice.id, group.AdminUserID)
	assert.Zero(t, group.KittyBalance)

	mine, err := c.group.ListMyGroups(ctx, as(alice, &api.ListMyGroupsRequest{}))
	require.NoError(t, err)
	require.Len(t, mine.Msg.Memberships, 1)
	assert.True(t, mine.Msg.Memberships[0].IsAdmin)

	_, err = c.group.CreateGroup(ctx, as(alice, &api.CreateGroupRequest{}))
	requireCode(t, err, connect.CodeInvalidArgument, "")
}

func TestGetGroup_MembersOnly(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice := c.register(t, "alice")
	mallory := c.register(t, "mallory")
	groupID := c.createGroup(t, alice)

	got, err := c.group.GetGroup(ctx, as(alice, &api.GetGroupRequest{GroupID: groupID}))
	require.NoError(t, err)
	assert.Equal(t, groupID, got.Msg.Group.ID)

	_, err = c.group.GetGroup(ctx, as(mallory, &api.GetGroupRequest{GroupID: groupID}))
	requireCode(t, err, connect.CodeNotFound, ledger.ReasonNotMember)

	_, err = c.group.GetGroup(ctx, as(alice, &api.GetGroupRequest{}))
	requireCode(t, err, connect.CodeInvalidArgument, "")
}

func TestJoinRequestFlow(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	admin := c.register(t, "admin")
	dave := c.register(t, "dave")
	erin := c.register(t, "erin")
	groupID := c.createGroup(t, admin)

	jr, err := c.group.RequestJoin(ctx, as(dave, &api.RequestJoinRequest{GroupID: groupID, Message: "hi"}))
	require.NoError(t, err)

	_, err = c.group.RequestJoin(ctx, as(dave, &api.RequestJoinRequest{GroupID: groupID}))
	requireCode(t, err, connect.CodeAlreadyExists, ledger.ReasonDuplicateRequest)

	_, err = c.group.ApproveJoin(ctx, as(dave, &api.ApproveJoinRequest{GroupID: groupID, RequestID: jr.Msg.RequestID}))
	requireCode(t, err, connect.CodePermissionDenied, ledger.ReasonNotAdmin)

	pending, err := c.group.ListJoinRequests(ctx, as(admin, &api.ListJoinRequestsRequest{GroupID: groupID, Status: "pending"}))
	require.NoError(t, err)
	require.Len(t, pending.Msg.Requests, 1)
	assert.Equal(t, "hi", pending.Msg.Requests[0].Message)

	_, err = c.group.ApproveJoin(ctx, as(admin, &api.ApproveJoinRequest{GroupID: groupID, RequestID: jr.Msg.RequestID}))
	require.NoError(t, err)

	members, err := c.group.ListMembers(ctx, as(dave, &api.ListMembersRequest{GroupID: groupID}))
	require.NoError(t, err)
	assert.Len(t, members.Msg.Members, 2)

	_, err = c.group.RequestJoin(ctx, as(dave, &api.RequestJoinRequest{GroupID: groupID}))
	requireCode(t, err, connect.CodeAlreadyExists, ledger.ReasonAlreadyMember)

	erinReq, err := c.group.RequestJoin(ctx, as(erin, &api.RequestJoinRequest{GroupID: groupID}))
	require.NoError(t, err)

	_, err = c.group.DenyJoin(ctx, as(admin, &api.DenyJoinRequest{GroupID: groupID, RequestID: erinReq.Msg.RequestID}))
	requireCode(t, err, connect.CodeFailedPrecondition, ledger.ReasonMissingReason)

	_, err = c.group.DenyJoin(ctx, as(admin, &api.DenyJoinRequest{GroupID: groupID, RequestID: erinReq.Msg.RequestID, Reason: "full"}))
	require.NoError(t, err)

	_, err = c.group.DenyJoin(ctx, as(admin, &api.DenyJoinRequest{GroupID: groupID, RequestID: erinReq.Msg.RequestID, Reason: "again"}))
	requireCode(t, err, connect.CodeFailedPrecondition, ledger.ReasonNotPending)

	_, err = c.group.ListJoinRequests(ctx, as(admin, &api.ListJoinRequestsRequest{GroupID: groupID, Status: "bogus"}))
	requireCode(t, err, connect.CodeInvalidArgument, "")
}

func TestBalanceAndKitty(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	admin := c.register(t, "admin")
	bob := c.register(t, "bob")
	groupID := c.createGroup(t, admin, bob)

	adj, err := c.group.AdjustBalance(ctx, as(admin, &api.AdjustBalanceRequest{GroupID: groupID, UserID: bob.id, Amount: -20}))
	require.NoError(t, err)
	assert.Equal(t, int64(-20), adj.Msg.Balance)

	_, err = c.group.AdjustBalance(ctx, as(admin, &api.AdjustBalanceRequest{GroupID: groupID, UserID: bob.id, Amount: 25}))
	requireCode(t, err, connect.CodeFailedPrecondition, ledger.ReasonPositiveBalance)

	_, err = c.group.AdjustBalance(ctx, as(bob, &api.AdjustBalanceRequest{GroupID: groupID, UserID: bob.id, Amount: 20}))
	requireCode(t, err, connect.CodePermissionDenied, ledger.ReasonNotAdmin)

	m, err := c.group.GetMembership(ctx, as(admin, &api.GetMembershipRequest{GroupID: groupID, UserID: bob.id}))
	require.NoError(t, err)
	assert.Equal(t, int64(-20), m.Msg.Membership.Balance)

	contrib, err := c.group.Contribute(ctx, as(bob, &api.ContributeRequest{GroupID: groupID, Amount: 500, Comment: "beans"}))
	require.NoError(t, err)
	assert.NotEmpty(t, contrib.Msg.TransactionID)
	assert.Equal(t, int64(500), contrib.Msg.KittyBalance)

	_, err = c.group.Contribute(ctx, as(bob, &api.ContributeRequest{GroupID: groupID, Amount: 0}))
	requireCode(t, err, connect.CodeFailedPrecondition, ledger.ReasonNonPositiveAmount)

	txs, err := c.group.ListKittyTransactions(ctx, as(admin, &api.ListKittyTransactionsRequest{GroupID: groupID}))
	require.NoError(t, err)
	require.Len(t, txs.Msg.Transactions, 1)
	assert.Equal(t, bob.id, txs.Msg.Transactions[0].UserID)
}

func TestTransferAdmin(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	admin := c.register(t, "admin")
	bob := c.register(t, "bob")
	groupID := c.createGroup(t, admin, bob)

	_, err := c.group.TransferAdmin(ctx, as(admin, &api.TransferAdminRequest{GroupID: groupID, NewAdminUserID: bob.id}))
	require.NoError(t, err)

	g, err := c.group.GetGroup(ctx, as(bob, &api.GetGroupRequest{GroupID: groupID}))
	require.NoError(t, err)
	assert.Equal(t, bob.id, g.Msg.Group.AdminUserID)

	_, err = c.group.TransferAdmin(ctx, as(admin, &api.TransferAdminRequest{GroupID: groupID, NewAdminUserID: admin.id}))
	requireCode(t, err, connect.CodePermissionDenied, ledger.ReasonNotAdmin)
}
