package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// AuthServiceClient is a client for the Auth service.
type AuthServiceClient interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error)
	ApproveUser(context.Context, *connect.Request[ApproveUserRequest]) (*connect.Response[ApproveUserResponse], error)
	RejectUser(context.Context, *connect.Request[RejectUserRequest]) (*connect.Response[RejectUserResponse], error)
}

// NewAuthServiceClient constructs a client for AuthService. baseURL is the server's
// root, e.g. "http://localhost:8080".
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &authServiceClient{
		register:       connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:          connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		getCurrentUser: connect.NewClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL+AuthServiceGetCurrentUserProcedure, opts...),
		listUsers:      connect.NewClient[ListUsersRequest, ListUsersResponse](httpClient, baseURL+AuthServiceListUsersProcedure, opts...),
		approveUser:    connect.NewClient[ApproveUserRequest, ApproveUserResponse](httpClient, baseURL+AuthServiceApproveUserProcedure, opts...),
		rejectUser:     connect.NewClient[RejectUserRequest, RejectUserResponse](httpClient, baseURL+AuthServiceRejectUserProcedure, opts...),
	}
}

type authServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
	listUsers      *connect.Client[ListUsersRequest, ListUsersResponse]
	approveUser    *connect.Client[ApproveUserRequest, ApproveUserResponse]
	rejectUser     *connect.Client[RejectUserRequest, RejectUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *authServiceClient) ListUsers(ctx context.Context, req *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error) {
	return c.listUsers.CallUnary(ctx, req)
}

func (c *authServiceClient) ApproveUser(ctx context.Context, req *connect.Request[ApproveUserRequest]) (*connect.Response[ApproveUserResponse], error) {
	return c.approveUser.CallUnary(ctx, req)
}

func (c *authServiceClient) RejectUser(ctx context.Context, req *connect.Request[RejectUserRequest]) (*connect.Response[RejectUserResponse], error) {
	return c.rejectUser.CallUnary(ctx, req)
}

// GroupServiceClient is a client for the Group service.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	ActivateGroup(context.Context, *connect.Request[ActivateGroupRequest]) (*connect.Response[ActivateGroupResponse], error)
}

// NewGroupServiceClient constructs a client for GroupService. baseURL is the server's
// root, e.g. "http://localhost:8080".
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &groupServiceClient{
		createGroup:   connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:      connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:    connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addMember:     connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GroupServiceAddMemberProcedure, opts...),
		activateGroup: connect.NewClient[ActivateGroupRequest, ActivateGroupResponse](httpClient, baseURL+GroupServiceActivateGroupProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup   *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup      *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups    *connect.Client[ListGroupsRequest, ListGroupsResponse]
	addMember     *connect.Client[AddMemberRequest, AddMemberResponse]
	activateGroup *connect.Client[ActivateGroupRequest, ActivateGroupResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) ActivateGroup(ctx context.Context, req *connect.Request[ActivateGroupRequest]) (*connect.Response[ActivateGroupResponse], error) {
	return c.activateGroup.CallUnary(ctx, req)
}

// LedgerServiceClient is a client for the Ledger service.
type LedgerServiceClient interface {
	LogContribution(context.Context, *connect.Request[LogContributionRequest]) (*connect.Response[LogContributionResponse], error)
	ListContributions(context.Context, *connect.Request[ListContributionsRequest]) (*connect.Response[ListContributionsResponse], error)
}

// NewLedgerServiceClient constructs a client for LedgerService. baseURL is the server's
// root, e.g. "http://localhost:8080".
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ledgerServiceClient{
		logContribution:   connect.NewClient[LogContributionRequest, LogContributionResponse](httpClient, baseURL+LedgerServiceLogContributionProcedure, opts...),
		listContributions: connect.NewClient[ListContributionsRequest, ListContributionsResponse](httpClient, baseURL+LedgerServiceListContributionsProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	logContribution   *connect.Client[LogContributionRequest, LogContributionResponse]
	listContributions *connect.Client[ListContributionsRequest, ListContributionsResponse]
}

func (c *ledgerServiceClient) LogContribution(ctx context.Context, req *connect.Request[LogContributionRequest]) (*connect.Response[LogContributionResponse], error) {
	return c.logContribution.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListContributions(ctx context.Context, req *connect.Request[ListContributionsRequest]) (*connect.Response[ListContributionsResponse], error) {
	return c.listContributions.CallUnary(ctx, req)
}

// BiddingServiceClient is a client for the Bidding service.
type BiddingServiceClient interface {
	OpenRound(context.Context, *connect.Request[OpenRoundRequest]) (*connect.Response[OpenRoundResponse], error)
	PlaceBid(context.Context, *connect.Request[PlaceBidRequest]) (*connect.Response[PlaceBidResponse], error)
	CloseRound(context.Context, *connect.Request[CloseRoundRequest]) (*connect.Response[CloseRoundResponse], error)
	FinalizeRound(context.Context, *connect.Request[FinalizeRoundRequest]) (*connect.Response[FinalizeRoundResponse], error)
	GetRound(context.Context, *connect.Request[GetRoundRequest]) (*connect.Response[GetRoundResponse], error)
	GetCurrentRound(context.Context, *connect.Request[GetCurrentRoundRequest]) (*connect.Response[GetCurrentRoundResponse], error)
	ListRounds(context.Context, *connect.Request[ListRoundsRequest]) (*connect.Response[ListRoundsResponse], error)
}

// NewBiddingServiceClient constructs a client for BiddingService. baseURL is the server's
// root, e.g. "http://localhost:8080".
func NewBiddingServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BiddingServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &biddingServiceClient{
		openRound:       connect.NewClient[OpenRoundRequest, OpenRoundResponse](httpClient, baseURL+BiddingServiceOpenRoundProcedure, opts...),
		placeBid:        connect.NewClient[PlaceBidRequest, PlaceBidResponse](httpClient, baseURL+BiddingServicePlaceBidProcedure, opts...),
		closeRound:      connect.NewClient[CloseRoundRequest, CloseRoundResponse](httpClient, baseURL+BiddingServiceCloseRoundProcedure, opts...),
		finalizeRound:   connect.NewClient[FinalizeRoundRequest, FinalizeRoundResponse](httpClient, baseURL+BiddingServiceFinalizeRoundProcedure, opts...),
		getRound:        connect.NewClient[GetRoundRequest, GetRoundResponse](httpClient, baseURL+BiddingServiceGetRoundProcedure, opts...),
		getCurrentRound: connect.NewClient[GetCurrentRoundRequest, GetCurrentRoundResponse](httpClient, baseURL+BiddingServiceGetCurrentRoundProcedure, opts...),
		listRounds:      connect.NewClient[ListRoundsRequest, ListRoundsResponse](httpClient, baseURL+BiddingServiceListRoundsProcedure, opts...),
	}
}

type biddingServiceClient struct {
	openRound       *connect.Client[OpenRoundRequest, OpenRoundResponse]
	placeBid        *connect.Client[PlaceBidRequest, PlaceBidResponse]
	closeRound      *connect.Client[CloseRoundRequest, CloseRoundResponse]
	finalizeRound   *connect.Client[FinalizeRoundRequest, FinalizeRoundResponse]
	getRound        *connect.Client[GetRoundRequest, GetRoundResponse]
	getCurrentRound *connect.Client[GetCurrentRoundRequest, GetCurrentRoundResponse]
	listRounds      *connect.Client[ListRoundsRequest, ListRoundsResponse]
}

func (c *biddingServiceClient) OpenRound(ctx context.Context, req *connect.Request[OpenRoundRequest]) (*connect.Response[OpenRoundResponse], error) {
	return c.openRound.CallUnary(ctx, req)
}

func (c *biddingServiceClient) PlaceBid(ctx context.Context, req *connect.Request[PlaceBidRequest]) (*connect.Response[PlaceBidResponse], error) {
	return c.placeBid.CallUnary(ctx, req)
}

func (c *biddingServiceClient) CloseRound(ctx context.Context, req *connect.Request[CloseRoundRequest]) (*connect.Response[CloseRoundResponse], error) {
	return c.closeRound.CallUnary(ctx, req)
}

func (c *biddingServiceClient) FinalizeRound(ctx context.Context, req *connect.Request[FinalizeRoundRequest]) (*connect.Response[FinalizeRoundResponse], error) {
	return c.finalizeRound.CallUnary(ctx, req)
}

func (c *biddingServiceClient) GetRound(ctx context.Context, req *connect.Request[GetRoundRequest]) (*connect.Response[GetRoundResponse], error) {
	return c.getRound.CallUnary(ctx, req)
}

func (c *biddingServiceClient) GetCurrentRound(ctx context.Context, req *connect.Request[GetCurrentRoundRequest]) (*connect.Response[GetCurrentRoundResponse], error) {
	return c.getCurrentRound.CallUnary(ctx, req)
}

func (c *biddingServiceClient) ListRounds(ctx context.Context, req *connect.Request[ListRoundsRequest]) (*connect.Response[ListRoundsResponse], error) {
	return c.listRounds.CallUnary(ctx, req)
}

// ReportServiceClient is a client for the Report service.
type ReportServiceClient interface {
	GetGroupSummary(context.Context, *connect.Request[GetGroupSummaryRequest]) (*connect.Response[GetGroupSummaryResponse], error)
	GetMemberSummary(context.Context, *connect.Request[GetMemberSummaryRequest]) (*connect.Response[GetMemberSummaryResponse], error)
	GetMemberGroupSummary(context.Context, *connect.Request[GetMemberGroupSummaryRequest]) (*connect.Response[GetMemberGroupSummaryResponse], error)
	GetPendingForMonth(context.Context, *connect.Request[GetPendingForMonthRequest]) (*connect.Response[GetPendingForMonthResponse], error)
	GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error)
}

// NewReportServiceClient constructs a client for ReportService. baseURL is the server's
// root, e.g. "http://localhost:8080".
func NewReportServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ReportServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &reportServiceClient{
		getGroupSummary:       connect.NewClient[GetGroupSummaryRequest, GetGroupSummaryResponse](httpClient, baseURL+ReportServiceGetGroupSummaryProcedure, opts...),
		getMemberSummary:      connect.NewClient[GetMemberSummaryRequest, GetMemberSummaryResponse](httpClient, baseURL+ReportServiceGetMemberSummaryProcedure, opts...),
		getMemberGroupSummary: connect.NewClient[GetMemberGroupSummaryRequest, GetMemberGroupSummaryResponse](httpClient, baseURL+ReportServiceGetMemberGroupSummaryProcedure, opts...),
		getPendingForMonth:    connect.NewClient[GetPendingForMonthRequest, GetPendingForMonthResponse](httpClient, baseURL+ReportServiceGetPendingForMonthProcedure, opts...),
		getDashboard:          connect.NewClient[GetDashboardRequest, GetDashboardResponse](httpClient, baseURL+ReportServiceGetDashboardProcedure, opts...),
	}
}

type reportServiceClient struct {
	getGroupSummary       *connect.Client[GetGroupSummaryRequest, GetGroupSummaryResponse]
	getMemberSummary      *connect.Client[GetMemberSummaryRequest, GetMemberSummaryResponse]
	getMemberGroupSummary *connect.Client[GetMemberGroupSummaryRequest, GetMemberGroupSummaryResponse]
	getPendingForMonth    *connect.Client[GetPendingForMonthRequest, GetPendingForMonthResponse]
	getDashboard          *connect.Client[GetDashboardRequest, GetDashboardResponse]
}

func (c *reportServiceClient) GetGroupSummary(ctx context.Context, req *connect.Request[GetGroupSummaryRequest]) (*connect.Response[GetGroupSummaryResponse], error) {
	return c.getGroupSummary.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetMemberSummary(ctx context.Context, req *connect.Request[GetMemberSummaryRequest]) (*connect.Response[GetMemberSummaryResponse], error) {
	return c.getMemberSummary.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetMemberGroupSummary(ctx context.Context, req *connect.Request[GetMemberGroupSummaryRequest]) (*connect.Response[GetMemberGroupSummaryResponse], error) {
	return c.getMemberGroupSummary.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetPendingForMonth(ctx context.Context, req *connect.Request[GetPendingForMonthRequest]) (*connect.Response[GetPendingForMonthResponse], error) {
	return c.getPendingForMonth.CallUnary(ctx, req)
}

func (c *reportServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}
