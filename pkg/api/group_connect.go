package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const GroupServiceName = "kitty.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure           = "/kitty.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure              = "/kitty.v1.GroupService/GetGroup"
	GroupServiceListMyGroupsProcedure          = "/kitty.v1.GroupService/ListMyGroups"
	GroupServiceListMembersProcedure           = "/kitty.v1.GroupService/ListMembers"
	GroupServiceGetMembershipProcedure         = "/kitty.v1.GroupService/GetMembership"
	GroupServiceTransferAdminProcedure         = "/kitty.v1.GroupService/TransferAdmin"
	GroupServiceRequestJoinProcedure           = "/kitty.v1.GroupService/RequestJoin"
	GroupServiceApproveJoinProcedure           = "/kitty.v1.GroupService/ApproveJoin"
	GroupServiceDenyJoinProcedure              = "/kitty.v1.GroupService/DenyJoin"
	GroupServiceListJoinRequestsProcedure      = "/kitty.v1.GroupService/ListJoinRequests"
	GroupServiceAdjustBalanceProcedure         = "/kitty.v1.GroupService/AdjustBalance"
	GroupServiceContributeProcedure            = "/kitty.v1.GroupService/Contribute"
	GroupServiceListKittyTransactionsProcedure = "/kitty.v1.GroupService/ListKittyTransactions"
)

// GroupServiceClient is a client for the kitty.v1.GroupService service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListMyGroups(context.Context, *connect.Request[ListMyGroupsRequest]) (*connect.Response[ListMyGroupsResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	GetMembership(context.Context, *connect.Request[GetMembershipRequest]) (*connect.Response[GetMembershipResponse], error)
	TransferAdmin(context.Context, *connect.Request[TransferAdminRequest]) (*connect.Response[TransferAdminResponse], error)
	RequestJoin(context.Context, *connect.Request[RequestJoinRequest]) (*connect.Response[RequestJoinResponse], error)
	ApproveJoin(context.Context, *connect.Request[ApproveJoinRequest]) (*connect.Response[ApproveJoinResponse], error)
	DenyJoin(context.Context, *connect.Request[DenyJoinRequest]) (*connect.Response[DenyJoinResponse], error)
	ListJoinRequests(context.Context, *connect.Request[ListJoinRequestsRequest]) (*connect.Response[ListJoinRequestsResponse], error)
	AdjustBalance(context.Context, *connect.Request[AdjustBalanceRequest]) (*connect.Response[AdjustBalanceResponse], error)
	Contribute(context.Context, *connect.Request[ContributeRequest]) (*connect.Response[ContributeResponse], error)
	ListKittyTransactions(context.Context, *connect.Request[ListKittyTransactionsRequest]) (*connect.Response[ListKittyTransactionsResponse], error)
}

// NewGroupServiceClient constructs a client for the kitty.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opt := clientOptions(opts)
	return &groupServiceClient{
		createGroup:           connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opt),
		getGroup:              connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opt),
		listMyGroups:          connect.NewClient[ListMyGroupsRequest, ListMyGroupsResponse](httpClient, baseURL+GroupServiceListMyGroupsProcedure, opt),
		listMembers:           connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+GroupServiceListMembersProcedure, opt),
		getMembership:         connect.NewClient[GetMembershipRequest, GetMembershipResponse](httpClient, baseURL+GroupServiceGetMembershipProcedure, opt),
		transferAdmin:         connect.NewClient[TransferAdminRequest, TransferAdminResponse](httpClient, baseURL+GroupServiceTransferAdminProcedure, opt),
		requestJoin:           connect.NewClient[RequestJoinRequest, RequestJoinResponse](httpClient, baseURL+GroupServiceRequestJoinProcedure, opt),
		approveJoin:           connect.NewClient[ApproveJoinRequest, ApproveJoinResponse](httpClient, baseURL+GroupServiceApproveJoinProcedure, opt),
		denyJoin:              connect.NewClient[DenyJoinRequest, DenyJoinResponse](httpClient, baseURL+GroupServiceDenyJoinProcedure, opt),
		listJoinRequests:      connect.NewClient[ListJoinRequestsRequest, ListJoinRequestsResponse](httpClient, baseURL+GroupServiceListJoinRequestsProcedure, opt),
		adjustBalance:         connect.NewClient[AdjustBalanceRequest, AdjustBalanceResponse](httpClient, baseURL+GroupServiceAdjustBalanceProcedure, opt),
		contribute:            connect.NewClient[ContributeRequest, ContributeResponse](httpClient, baseURL+GroupServiceContributeProcedure, opt),
		listKittyTransactions: connect.NewClient[ListKittyTransactionsRequest, ListKittyTransactionsResponse](httpClient, baseURL+GroupServiceListKittyTransactionsProcedure, opt),
	}
}

type groupServiceClient struct {
	createGroup           *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup              *connect.Client[GetGroupRequest, GetGroupResponse]
	listMyGroups          *connect.Client[ListMyGroupsRequest, ListMyGroupsResponse]
	listMembers           *connect.Client[ListMembersRequest, ListMembersResponse]
	getMembership         *connect.Client[GetMembershipRequest, GetMembershipResponse]
	transferAdmin         *connect.Client[TransferAdminRequest, TransferAdminResponse]
	requestJoin           *connect.Client[RequestJoinRequest, RequestJoinResponse]
	approveJoin           *connect.Client[ApproveJoinRequest, ApproveJoinResponse]
	denyJoin              *connect.Client[DenyJoinRequest, DenyJoinResponse]
	listJoinRequests      *connect.Client[ListJoinRequestsRequest, ListJoinRequestsResponse]
	adjustBalance         *connect.Client[AdjustBalanceRequest, AdjustBalanceResponse]
	contribute            *connect.Client[ContributeRequest, ContributeResponse]
	listKittyTransactions *connect.Client[ListKittyTransactionsRequest, ListKittyTransactionsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListMyGroups(ctx context.Context, req *connect.Request[ListMyGroupsRequest]) (*connect.Response[ListMyGroupsResponse], error) {
	return c.listMyGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetMembership(ctx context.Context, req *connect.Request[GetMembershipRequest]) (*connect.Response[GetMembershipResponse], error) {
	return c.getMembership.CallUnary(ctx, req)
}

func (c *groupServiceClient) TransferAdmin(ctx context.Context, req *connect.Request[TransferAdminRequest]) (*connect.Response[TransferAdminResponse], error) {
	return c.transferAdmin.CallUnary(ctx, req)
}

func (c *groupServiceClient) RequestJoin(ctx context.Context, req *connect.Request[RequestJoinRequest]) (*connect.Response[RequestJoinResponse], error) {
	return c.requestJoin.CallUnary(ctx, req)
}

func (c *groupServiceClient) ApproveJoin(ctx context.Context, req *connect.Request[ApproveJoinRequest]) (*connect.Response[ApproveJoinResponse], error) {
	return c.approveJoin.CallUnary(ctx, req)
}

func (c *groupServiceClient) DenyJoin(ctx context.Context, req *connect.Request[DenyJoinRequest]) (*connect.Response[DenyJoinResponse], error) {
	return c.denyJoin.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListJoinRequests(ctx context.Context, req *connect.Request[ListJoinRequestsRequest]) (*connect.Response[ListJoinRequestsResponse], error) {
	return c.listJoinRequests.CallUnary(ctx, req)
}

func (c *groupServiceClient) AdjustBalance(ctx context.Context, req *connect.Request[AdjustBalanceRequest]) (*connect.Response[AdjustBalanceResponse], error) {
	return c.adjustBalance.CallUnary(ctx, req)
}

func (c *groupServiceClient) Contribute(ctx context.Context, req *connect.Request[ContributeRequest]) (*connect.Response[ContributeResponse], error) {
	return c.contribute.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListKittyTransactions(ctx context.Context, req *connect.Request[ListKittyTransactionsRequest]) (*connect.Response[ListKittyTransactionsResponse], error) {
	return c.listKittyTransactions.CallUnary(ctx, req)
}

// GroupServiceHandler is implemented by the server side of kitty.v1.GroupService.
//
// Every method acts on behalf of the authenticated caller.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListMyGroups(context.Context, *connect.Request[ListMyGroupsRequest]) (*connect.Response[ListMyGroupsResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	GetMembership(context.Context, *connect.Request[GetMembershipRequest]) (*connect.Response[GetMembershipResponse], error)
	TransferAdmin(context.Context, *connect.Request[TransferAdminRequest]) (*connect.Response[TransferAdminResponse], error)
	RequestJoin(context.Context, *connect.Request[RequestJoinRequest]) (*connect.Response[RequestJoinResponse], error)
	ApproveJoin(context.Context, *connect.Request[ApproveJoinRequest]) (*connect.Response[ApproveJoinResponse], error)
	DenyJoin(context.Context, *connect.Request[DenyJoinRequest]) (*connect.Response[DenyJoinResponse], error)
	ListJoinRequests(context.Context, *connect.Request[ListJoinRequestsRequest]) (*connect.Response[ListJoinRequestsResponse], error)
	AdjustBalance(context.Context, *connect.Request[AdjustBalanceRequest]) (*connect.Response[AdjustBalanceResponse], error)
	Contribute(context.Context, *connect.Request[ContributeRequest]) (*connect.Response[ContributeResponse], error)
	ListKittyTransactions(context.Context, *connect.Request[ListKittyTransactionsRequest]) (*connect.Response[ListKittyTransactionsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opt := handlerOptions(opts)
	return "/" + GroupServiceName + "/", routes(map[string]http.Handler{
		GroupServiceCreateGroupProcedure:           connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opt),
		GroupServiceGetGroupProcedure:              connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opt),
		GroupServiceListMyGroupsProcedure:          connect.NewUnaryHandler(GroupServiceListMyGroupsProcedure, svc.ListMyGroups, opt),
		GroupServiceListMembersProcedure:           connect.NewUnaryHandler(GroupServiceListMembersProcedure, svc.ListMembers, opt),
		GroupServiceGetMembershipProcedure:         connect.NewUnaryHandler(GroupServiceGetMembershipProcedure, svc.GetMembership, opt),
		GroupServiceTransferAdminProcedure:         connect.NewUnaryHandler(GroupServiceTransferAdminProcedure, svc.TransferAdmin, opt),
		GroupServiceRequestJoinProcedure:           connect.NewUnaryHandler(GroupServiceRequestJoinProcedure, svc.RequestJoin, opt),
		GroupServiceApproveJoinProcedure:           connect.NewUnaryHandler(GroupServiceApproveJoinProcedure, svc.ApproveJoin, opt),
		GroupServiceDenyJoinProcedure:              connect.NewUnaryHandler(GroupServiceDenyJoinProcedure, svc.DenyJoin, opt),
		GroupServiceListJoinRequestsProcedure:      connect.NewUnaryHandler(GroupServiceListJoinRequestsProcedure, svc.ListJoinRequests, opt),
		GroupServiceAdjustBalanceProcedure:         connect.NewUnaryHandler(GroupServiceAdjustBalanceProcedure, svc.AdjustBalance, opt),
		GroupServiceContributeProcedure:            connect.NewUnaryHandler(GroupServiceContributeProcedure, svc.Contribute, opt),
		GroupServiceListKittyTransactionsProcedure: connect.NewUnaryHandler(GroupServiceListKittyTransactionsProcedure, svc.ListKittyTransactions, opt),
	})
}
