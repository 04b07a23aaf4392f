package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chitwiser/internal/auth"
	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/middleware"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
	"github.com/mmynk/chitwiser/pkg/api"
)

// AuthService implements the AuthService RPC interface. Register and Login
// are public; the rest need a valid token, so mount it behind OptionalAuth.
type AuthService struct {
	authenticator auth.Authenticator
	directory     *auth.Directory
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, directory *auth.Directory, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		directory:     directory,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Register creates a PENDING account. No token is issued until an admin
// approves it.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "phone", req.Msg.Phone, "role", req.Msg.Role)

	role := models.Role(req.Msg.Role)
	if role == "" {
		role = models.RoleMember
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Name, req.Msg.Phone, req.Msg.Password, role)
	if err != nil {
		s.logger.Warn("Registration failed", "phone", req.Msg.Phone, "error", err)
		return nil, authError(s.logger, req.Spec().Procedure, err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "role", user.Role)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user)}), nil
}

// Login authenticates an approved user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "phone", req.Msg.Phone)

	if req.Msg.Phone == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Phone, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "phone", req.Msg.Phone, "error", err)
		return nil, authError(s.logger, req.Spec().Procedure, err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// GetCurrentUser returns the authenticated caller's account.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}

// ListUsers lists accounts, optionally by role and approval status. Admin only.
func (s *AuthService) ListUsers(ctx context.Context, req *connect.Request[api.ListUsersRequest]) (*connect.Response[api.ListUsersResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.directory.ListUsers(ctx, storage.UserFilter{
		Role:   models.Role(req.Msg.Role),
		Status: models.ApprovalStatus(req.Msg.ApprovalStatus),
	})
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	out := make([]api.User, len(users))
	for i, u := range users {
		out[i] = toAPIUser(u)
	}
	return connect.NewResponse(&api.ListUsersResponse{Users: out}), nil
}

// ApproveUser lets a pending account log in. Admin only.
func (s *AuthService) ApproveUser(ctx context.Context, req *connect.Request[api.ApproveUserRequest]) (*connect.Response[api.ApproveUserResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.directory.Approve(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	s.logger.Info("User approved", "user_id", user.ID, "role", user.Role, "approved_by", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.ApproveUserResponse{User: toAPIUser(user)}), nil
}

// RejectUser turns down a pending account. Admin only.
func (s *AuthService) RejectUser(ctx context.Context, req *connect.Request[api.RejectUserRequest]) (*connect.Response[api.RejectUserResponse], error) {
	if err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}

	user, err := s.directory.Reject(ctx, req.Msg.UserID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	s.logger.Info("User rejected", "user_id", user.ID, "rejected_by", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.RejectUserResponse{User: toAPIUser(user)}), nil
}

func (s *AuthService) requireAdmin(ctx context.Context) error {
	actor := middleware.ActorFrom(ctx)
	if actor.ID == "" {
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	if !actor.IsAdmin() {
		return toConnectError(s.logger, "", errs.Forbidden("admin role required"))
	}
	return nil
}
