package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/kitty/internal/ledger"
	"github.com/mmynk/kitty/internal/models"
	"github.com/mmynk/kitty/pkg/api"
)

// GroupService implements the Connect GroupService: groups, membership,
// join requests, member balances and the kitty.
type GroupService struct {
	ledger *ledger.Ledger
}

var _ api.GroupServiceHandler = (*GroupService)(nil)

// NewGroupService creates a new GroupService on top of the ledger.
func NewGroupService(l *ledger.Ledger) *GroupService {
	return &GroupService{ledger: l}
}

// CreateGroup creates a group administered by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.Name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("name is required"))
	}

	group, err := s.ledger.CreateGroup(ctx, req.Msg.Name, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup returns a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.GetMembership(ctx, userID, req.Msg.GroupID); err != nil {
		return nil, connectError(err)
	}

	group, err := s.ledger.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListMyGroups lists the caller's memberships.
func (s *GroupService) ListMyGroups(ctx context.Context, req *connect.Request[api.ListMyGroupsRequest]) (*connect.Response[api.ListMyGroupsResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	memberships, err := s.ledger.ListUserGroups(ctx, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListMyGroupsResponse{
		Memberships: convertAll(memberships, toAPIMembership),
	}), nil
}

// ListMembers lists a group's members. The caller must be one of them.
func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.GetMembership(ctx, userID, req.Msg.GroupID); err != nil {
		return nil, connectError(err)
	}

	members, err := s.ledger.ListMembers(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListMembersResponse{
		Members: convertAll(members, toAPIMembership),
	}), nil
}

// GetMembership returns the caller's membership, or another member's when
// the caller is also a member of the group.
func (s *GroupService) GetMembership(ctx context.Context, req *connect.Request[api.GetMembershipRequest]) (*connect.Response[api.GetMembershipResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	target := req.Msg.UserID
	if target == "" || target == userID {
		target = userID
	} else if _, err := s.ledger.GetMembership(ctx, userID, req.Msg.GroupID); err != nil {
		return nil, connectError(err)
	}

	m, err := s.ledger.GetMembership(ctx, target, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetMembershipResponse{Membership: toAPIMembership(m)}), nil
}

// TransferAdmin hands the caller's admin role to another member.
func (s *GroupService) TransferAdmin(ctx context.Context, req *connect.Request[api.TransferAdminRequest]) (*connect.Response[api.TransferAdminResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.TransferAdmin(ctx, req.Msg.GroupID, userID, req.Msg.NewAdminUserID); err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.TransferAdminResponse{}), nil
}

// RequestJoin files a join request for the caller.
func (s *GroupService) RequestJoin(ctx context.Context, req *connect.Request[api.RequestJoinRequest]) (*connect.Response[api.RequestJoinResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	requestID, err := s.ledger.RequestJoin(ctx, req.Msg.GroupID, userID, req.Msg.Message)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.RequestJoinResponse{RequestID: requestID}), nil
}

// ApproveJoin approves a pending request. The caller must be the admin.
func (s *GroupService) ApproveJoin(ctx context.Context, req *connect.Request[api.ApproveJoinRequest]) (*connect.Response[api.ApproveJoinResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.ApproveJoin(ctx, req.Msg.GroupID, req.Msg.RequestID, userID, req.Msg.Reason); err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ApproveJoinResponse{}), nil
}

// DenyJoin denies a pending request with a reason. The caller must be the admin.
func (s *GroupService) DenyJoin(ctx context.Context, req *connect.Request[api.DenyJoinRequest]) (*connect.Response[api.DenyJoinResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.DenyJoin(ctx, req.Msg.GroupID, req.Msg.RequestID, userID, req.Msg.Reason); err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.DenyJoinResponse{}), nil
}

// ListJoinRequests lists the group's requests for the admin.
func (s *GroupService) ListJoinRequests(ctx context.Context, req *connect.Request[api.ListJoinRequestsRequest]) (*connect.Response[api.ListJoinRequestsResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	status := models.JoinRequestStatus(req.Msg.Status)
	switch status {
	case "", models.JoinRequestPending, models.JoinRequestApproved, models.JoinRequestDenied:
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("unknown status "+req.Msg.Status))
	}

	requests, err := s.ledger.ListJoinRequests(ctx, req.Msg.GroupID, userID, status)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListJoinRequestsResponse{
		Requests: convertAll(requests, toAPIJoinRequest),
	}), nil
}

// AdjustBalance records debt or repayment for a member. The caller must be
// the admin.
func (s *GroupService) AdjustBalance(ctx context.Context, req *connect.Request[api.AdjustBalanceRequest]) (*connect.Response[api.AdjustBalanceResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.AdjustBalance(ctx, req.Msg.GroupID, req.Msg.UserID, req.Msg.Amount, userID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.AdjustBalanceResponse{Balance: balance}), nil
}

// Contribute adds the caller's cash contribution to the kitty.
func (s *GroupService) Contribute(ctx context.Context, req *connect.Request[api.ContributeRequest]) (*connect.Response[api.ContributeResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	transactionID, err := s.ledger.Contribute(ctx, req.Msg.GroupID, userID, req.Msg.Amount, req.Msg.Comment)
	if err != nil {
		return nil, connectError(err)
	}

	// The kitty is re-read after commit, so it may include later contributions.
	group, err := s.ledger.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Warn("Contribution recorded but kitty read failed", "group_id", req.Msg.GroupID, "error", err)
		return connect.NewResponse(&api.ContributeResponse{TransactionID: transactionID}), nil
	}

	return connect.NewResponse(&api.ContributeResponse{
		TransactionID: transactionID,
		KittyBalance:  group.KittyBalance,
	}), nil
}

// ListKittyTransactions lists the group's contributions. The caller must
// be a member.
func (s *GroupService) ListKittyTransactions(ctx context.Context, req *connect.Request[api.ListKittyTransactionsRequest]) (*connect.Response[api.ListKittyTransactionsResponse], error) {
	userID, err := groupCaller(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ledger.GetMembership(ctx, userID, req.Msg.GroupID); err != nil {
		return nil, connectError(err)
	}

	transactions, err := s.ledger.ListKittyTransactions(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListKittyTransactionsResponse{
		Transactions: convertAll(transactions, toAPIKittyTransaction),
	}), nil
}
