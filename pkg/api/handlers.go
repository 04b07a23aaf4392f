package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// AuthServiceHandler is implemented by the server side of AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	GetCurrentUser(context.Context, *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error)
	ListUsers(context.Context, *connect.Request[ListUsersRequest]) (*connect.Response[ListUsersResponse], error)
	ApproveUser(context.Context, *connect.Request[ApproveUserRequest]) (*connect.Response[ApproveUserResponse], error)
	RejectUser(context.Context, *connect.Request[RejectUserRequest]) (*connect.Response[RejectUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	registerHandler := connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...)
	loginHandler := connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...)
	getCurrentUserHandler := connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...)
	listUsersHandler := connect.NewUnaryHandler(AuthServiceListUsersProcedure, svc.ListUsers, opts...)
	approveUserHandler := connect.NewUnaryHandler(AuthServiceApproveUserProcedure, svc.ApproveUser, opts...)
	rejectUserHandler := connect.NewUnaryHandler(AuthServiceRejectUserProcedure, svc.RejectUser, opts...)
	return "/" + AuthServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceRegisterProcedure:
			registerHandler.ServeHTTP(w, r)
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		case AuthServiceGetCurrentUserProcedure:
			getCurrentUserHandler.ServeHTTP(w, r)
		case AuthServiceListUsersProcedure:
			listUsersHandler.ServeHTTP(w, r)
		case AuthServiceApproveUserProcedure:
			approveUserHandler.ServeHTTP(w, r)
		case AuthServiceRejectUserProcedure:
			rejectUserHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceHandler is implemented by the server side of GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	GetGroup(context.Context, *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	ActivateGroup(context.Context, *connect.Request[ActivateGroupRequest]) (*connect.Response[ActivateGroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	getGroupHandler := connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...)
	listGroupsHandler := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	addMemberHandler := connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...)
	activateGroupHandler := connect.NewUnaryHandler(GroupServiceActivateGroupProcedure, svc.ActivateGroup, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupProcedure:
			getGroupHandler.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		case GroupServiceAddMemberProcedure:
			addMemberHandler.ServeHTTP(w, r)
		case GroupServiceActivateGroupProcedure:
			activateGroupHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceHandler is implemented by the server side of LedgerService.
type LedgerServiceHandler interface {
	LogContribution(context.Context, *connect.Request[LogContributionRequest]) (*connect.Response[LogContributionResponse], error)
	ListContributions(context.Context, *connect.Request[ListContributionsRequest]) (*connect.Response[ListContributionsResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	logContributionHandler := connect.NewUnaryHandler(LedgerServiceLogContributionProcedure, svc.LogContribution, opts...)
	listContributionsHandler := connect.NewUnaryHandler(LedgerServiceListContributionsProcedure, svc.ListContributions, opts...)
	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceLogContributionProcedure:
			logContributionHandler.ServeHTTP(w, r)
		case LedgerServiceListContributionsProcedure:
			listContributionsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// BiddingServiceHandler is implemented by the server side of BiddingService.
type BiddingServiceHandler interface {
	OpenRound(context.Context, *connect.Request[OpenRoundRequest]) (*connect.Response[OpenRoundResponse], error)
	PlaceBid(context.Context, *connect.Request[PlaceBidRequest]) (*connect.Response[PlaceBidResponse], error)
	CloseRound(context.Context, *connect.Request[CloseRoundRequest]) (*connect.Response[CloseRoundResponse], error)
	FinalizeRound(context.Context, *connect.Request[FinalizeRoundRequest]) (*connect.Response[FinalizeRoundResponse], error)
	GetRound(context.Context, *connect.Request[GetRoundRequest]) (*connect.Response[GetRoundResponse], error)
	GetCurrentRound(context.Context, *connect.Request[GetCurrentRoundRequest]) (*connect.Response[GetCurrentRoundResponse], error)
	ListRounds(context.Context, *connect.Request[ListRoundsRequest]) (*connect.Response[ListRoundsResponse], error)
}

// NewBiddingServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewBiddingServiceHandler(svc BiddingServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	openRoundHandler := connect.NewUnaryHandler(BiddingServiceOpenRoundProcedure, svc.OpenRound, opts...)
	placeBidHandler := connect.NewUnaryHandler(BiddingServicePlaceBidProcedure, svc.PlaceBid, opts...)
	closeRoundHandler := connect.NewUnaryHandler(BiddingServiceCloseRoundProcedure, svc.CloseRound, opts...)
	finalizeRoundHandler := connect.NewUnaryHandler(BiddingServiceFinalizeRoundProcedure, svc.FinalizeRound, opts...)
	getRoundHandler := connect.NewUnaryHandler(BiddingServiceGetRoundProcedure, svc.GetRound, opts...)
	getCurrentRoundHandler := connect.NewUnaryHandler(BiddingServiceGetCurrentRoundProcedure, svc.GetCurrentRound, opts...)
	listRoundsHandler := connect.NewUnaryHandler(BiddingServiceListRoundsProcedure, svc.ListRounds, opts...)
	return "/" + BiddingServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case BiddingServiceOpenRoundProcedure:
			openRoundHandler.ServeHTTP(w, r)
		case BiddingServicePlaceBidProcedure:
			placeBidHandler.ServeHTTP(w, r)
		case BiddingServiceCloseRoundProcedure:
			closeRoundHandler.ServeHTTP(w, r)
		case BiddingServiceFinalizeRoundProcedure:
			finalizeRoundHandler.ServeHTTP(w, r)
		case BiddingServiceGetRoundProcedure:
			getRoundHandler.ServeHTTP(w, r)
		case BiddingServiceGetCurrentRoundProcedure:
			getCurrentRoundHandler.ServeHTTP(w, r)
		case BiddingServiceListRoundsProcedure:
			listRoundsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ReportServiceHandler is implemented by the server side of ReportService.
type ReportServiceHandler interface {
	GetGroupSummary(context.Context, *connect.Request[GetGroupSummaryRequest]) (*connect.Response[GetGroupSummaryResponse], error)
	GetMemberSummary(context.Context, *connect.Request[GetMemberSummaryRequest]) (*connect.Response[GetMemberSummaryResponse], error)
	GetMemberGroupSummary(context.Context, *connect.Request[GetMemberGroupSummaryRequest]) (*connect.Response[GetMemberGroupSummaryResponse], error)
	GetPendingForMonth(context.Context, *connect.Request[GetPendingForMonthRequest]) (*connect.Response[GetPendingForMonthResponse], error)
	GetDashboard(context.Context, *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error)
}

// NewReportServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewReportServiceHandler(svc ReportServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	getGroupSummaryHandler := connect.NewUnaryHandler(ReportServiceGetGroupSummaryProcedure, svc.GetGroupSummary, opts...)
	getMemberSummaryHandler := connect.NewUnaryHandler(ReportServiceGetMemberSummaryProcedure, svc.GetMemberSummary, opts...)
	getMemberGroupSummaryHandler := connect.NewUnaryHandler(ReportServiceGetMemberGroupSummaryProcedure, svc.GetMemberGroupSummary, opts...)
	getPendingForMonthHandler := connect.NewUnaryHandler(ReportServiceGetPendingForMonthProcedure, svc.GetPendingForMonth, opts...)
	getDashboardHandler := connect.NewUnaryHandler(ReportServiceGetDashboardProcedure, svc.GetDashboard, opts...)
	return "/" + ReportServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ReportServiceGetGroupSummaryProcedure:
			getGroupSummaryHandler.ServeHTTP(w, r)
		case ReportServiceGetMemberSummaryProcedure:
			getMemberSummaryHandler.ServeHTTP(w, r)
		case ReportServiceGetMemberGroupSummaryProcedure:
			getMemberGroupSummaryHandler.ServeHTTP(w, r)
		case ReportServiceGetPendingForMonthProcedure:
			getPendingForMonthHandler.ServeHTTP(w, r)
		case ReportServiceGetDashboardProcedure:
			getDashboardHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}
