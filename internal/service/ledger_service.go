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

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewLedgerService creates a LedgerService backed by the engine.
func NewLedgerService(e *engine.Engine, logger *slog.Logger) *LedgerService {
	return &LedgerService{engine: e, logger: logger}
}

// LogContribution records money collected from a member.
func (s *LedgerService) LogContribution(ctx context.Context, req *connect.Request[api.LogContributionRequest]) (*connect.Response[api.LogContributionResponse], error) {
	in := engine.ContributionInput{
		GroupID:     req.Msg.GroupID,
		UserID:      req.Msg.UserID,
		MonthNumber: req.Msg.MonthNumber,
		Amount:      req.Msg.Amount,
		PaymentMode: models.PaymentMode(req.Msg.PaymentMode),
		HandledBy:   req.Msg.HandledBy,
		Remarks:     req.Msg.Remarks,
	}
	if req.Msg.HandledAt != nil {
		in.HandledAt = *req.Msg.HandledAt
	}

	txn, err := s.engine.LogContribution(ctx, middleware.ActorFrom(ctx), in)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.LogContributionResponse{Transaction: toAPITransaction(txn)}), nil
}

// ListContributions lists contribution entries. Members only see their own.
func (s *LedgerService) ListContributions(ctx context.Context, req *connect.Request[api.ListContributionsRequest]) (*connect.Response[api.ListContributionsResponse], error) {
	txns, err := s.engine.ListContributions(ctx, middleware.ActorFrom(ctx), storage.TransactionFilter{
		GroupID:     req.Msg.GroupID,
		UserID:      req.Msg.UserID,
		MonthNumber: req.Msg.MonthNumber,
		HandledBy:   req.Msg.HandledBy,
	})
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	out := make([]api.Transaction, len(txns))
	for i, t := range txns {
		out[i] = toAPITransaction(t)
	}
	return connect.NewResponse(&api.ListContributionsResponse{Transactions: out}), nil
}
