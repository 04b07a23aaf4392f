package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chitwiser/internal/engine"
	"github.com/mmynk/chitwiser/internal/middleware"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
	"github.com/mmynk/chitwiser/pkg/api"
)

// GroupService implements the Connect GroupService.
type GroupService struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewGroupService creates a new GroupService backed by the engine.
func NewGroupService(e *engine.Engine, logger *slog.Logger) *GroupService {
	return &GroupService{engine: e, logger: logger}
}

// CreateGroup creates a new DRAFT group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	group, err := s.engine.CreateGroup(ctx, middleware.ActorFrom(ctx), engine.CreateGroupInput{
		Name:                req.Msg.Name,
		TotalMembers:        req.Msg.TotalMembers,
		TotalMonths:         req.Msg.TotalMonths,
		MonthlyContribution: req.Msg.MonthlyContribution,
	})
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.CreateGroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID. Members can only see their own groups.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	group, err := s.engine.GetGroup(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups lists groups, optionally by status or member.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.engine.ListGroups(ctx, middleware.ActorFrom(ctx), storage.GroupFilter{
		Status:   models.GroupStatus(req.Msg.Status),
		MemberID: req.Msg.MemberID,
	})
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	out := make([]api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddMember enrolls an approved member into a DRAFT group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	group, err := s.engine.AddMember(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.AddMemberResponse{Group: toAPIGroup(group)}), nil
}

// ActivateGroup starts a full group.
func (s *GroupService) ActivateGroup(ctx context.Context, req *connect.Request[api.ActivateGroupRequest]) (*connect.Response[api.ActivateGroupResponse], error) {
	group, err := s.engine.ActivateGroup(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.ActivateGroupResponse{Group: toAPIGroup(group)}), nil
}
