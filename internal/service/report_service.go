package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chitwiser/internal/engine"
	"github.com/mmynk/chitwiser/internal/middleware"
	"github.com/mmynk/chitwiser/pkg/api"
)

// ReportService implements the Connect ReportService.
type ReportService struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewReportService creates a ReportService backed by the engine.
func NewReportService(e *engine.Engine, logger *slog.Logger) *ReportService {
	return &ReportService{engine: e, logger: logger}
}

func (s *ReportService) GetGroupSummary(ctx context.Context, req *connect.Request[api.GetGroupSummaryRequest]) (*connect.Response[api.GetGroupSummaryResponse], error) {
	sum, err := s.engine.GetGroupSummary(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetGroupSummaryResponse{Summary: toAPIGroupSummary(sum)}), nil
}

func (s *ReportService) GetMemberSummary(ctx context.Context, req *connect.Request[api.GetMemberSummaryRequest]) (*connect.Response[api.GetMemberSummaryResponse], error) {
	actor := middleware.ActorFrom(ctx)
	userID := req.Msg.UserID
	if userID == "" {
		userID = actor.ID
	}

	sum, err := s.engine.GetMemberSummary(ctx, actor, userID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	groups := make([]api.MemberGroupSummary, len(sum.Groups))
	for i, g := range sum.Groups {
		groups[i] = toAPIMemberGroupSummary(g)
	}
	return connect.NewResponse(&api.GetMemberSummaryResponse{
		UserID:        sum.UserID,
		TotalPaid:     sum.TotalPaid,
		TotalReceived: sum.TotalReceived,
		Groups:        groups,
	}), nil
}

func (s *ReportService) GetMemberGroupSummary(ctx context.Context, req *connect.Request[api.GetMemberGroupSummaryRequest]) (*connect.Response[api.GetMemberGroupSummaryResponse], error) {
	actor := middleware.ActorFrom(ctx)
	userID := req.Msg.UserID
	if userID == "" {
		userID = actor.ID
	}

	sum, err := s.engine.GetMemberGroupSummary(ctx, actor, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetMemberGroupSummaryResponse{Summary: toAPIMemberGroupSummary(sum)}), nil
}

func (s *ReportService) GetPendingForMonth(ctx context.Context, req *connect.Request[api.GetPendingForMonthRequest]) (*connect.Response[api.GetPendingForMonthResponse], error) {
	r, err := s.engine.GetPendingForMonth(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	members := make([]api.PendingMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = api.PendingMember{
			UserID:             m.UserID,
			TotalPaidThisMonth: m.TotalPaidThisMonth,
			RemainingAmount:    m.RemainingAmount,
			PaymentStatus:      string(m.PaymentStatus),
		}
	}
	return connect.NewResponse(&api.GetPendingForMonthResponse{
		GroupID:             r.GroupID,
		MonthNumber:         r.MonthNumber,
		MonthlyContribution: r.MonthlyContribution,
		Members:             members,
		PendingCount:        r.PendingCount,
		TotalRemaining:      r.TotalRemaining,
	}), nil
}

func (s *ReportService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	d, err := s.engine.GetDashboard(ctx, middleware.ActorFrom(ctx))
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	byStatus := make(map[string]int, len(d.GroupsByStatus))
	for status, n := range d.GroupsByStatus {
		byStatus[string(status)] = n
	}
	return connect.NewResponse(&api.GetDashboardResponse{
		TotalGroups:      d.TotalGroups,
		GroupsByStatus:   byStatus,
		ActiveMembers:    d.ActiveMembers,
		PendingApprovals: d.PendingApprovals,
		TotalCollected:   d.TotalCollected,
		TotalPaidOut:     d.TotalPaidOut,
	}), nil
}
