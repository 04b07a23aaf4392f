package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/chitwiser/internal/engine"
	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/middleware"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/pkg/api"
)

// BiddingService implements the Connect BiddingService.
type BiddingService struct {
	engine *engine.Engine
	logger *slog.Logger
}

// NewBiddingService creates a BiddingService backed by the engine.
func NewBiddingService(e *engine.Engine, logger *slog.Logger) *BiddingService {
	return &BiddingService{engine: e, logger: logger}
}

func (s *BiddingService) OpenRound(ctx context.Context, req *connect.Request[api.OpenRoundRequest]) (*connect.Response[api.OpenRoundResponse], error) {
	r, err := s.engine.OpenRound(ctx, middleware.ActorFrom(ctx), req.Msg.RoundID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.OpenRoundResponse{Round: toAPIRound(r)}), nil
}

// PlaceBid bids for the caller unless staff name another member.
func (s *BiddingService) PlaceBid(ctx context.Context, req *connect.Request[api.PlaceBidRequest]) (*connect.Response[api.PlaceBidResponse], error) {
	actor := middleware.ActorFrom(ctx)
	userID := req.Msg.UserID
	if userID == "" {
		userID = actor.ID
	}

	bid, err := s.engine.PlaceBid(ctx, actor, req.Msg.RoundID, userID, req.Msg.BidAmount)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.PlaceBidResponse{Bid: toAPIBids([]*models.Bid{bid})[0]}), nil
}

func (s *BiddingService) CloseRound(ctx context.Context, req *connect.Request[api.CloseRoundRequest]) (*connect.Response[api.CloseRoundResponse], error) {
	r, err := s.engine.CloseRound(ctx, middleware.ActorFrom(ctx), req.Msg.RoundID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.CloseRoundResponse{Round: toAPIRound(r)}), nil
}

// FinalizeRound settles a closed round. Repeating the call on a finalized
// round succeeds with AlreadyFinalized set and the stored outcome.
func (s *BiddingService) FinalizeRound(ctx context.Context, req *connect.Request[api.FinalizeRoundRequest]) (*connect.Response[api.FinalizeRoundResponse], error) {
	r, err := s.engine.FinalizeRound(ctx, middleware.ActorFrom(ctx), req.Msg.RoundID, models.PaymentMode(req.Msg.PaymentMode))
	if errs.Is(err, errs.KindAlreadyFinalized) && r != nil {
		return connect.NewResponse(&api.FinalizeRoundResponse{Round: toAPIRound(r), AlreadyFinalized: true}), nil
	}
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.FinalizeRoundResponse{Round: toAPIRound(r)}), nil
}

func (s *BiddingService) GetRound(ctx context.Context, req *connect.Request[api.GetRoundRequest]) (*connect.Response[api.GetRoundResponse], error) {
	d, err := s.engine.GetRound(ctx, middleware.ActorFrom(ctx), req.Msg.RoundID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetRoundResponse{Round: toAPIRound(d.Round), Bids: toAPIBids(d.Bids)}), nil
}

func (s *BiddingService) GetCurrentRound(ctx context.Context, req *connect.Request[api.GetCurrentRoundRequest]) (*connect.Response[api.GetCurrentRoundResponse], error) {
	d, err := s.engine.GetCurrentRound(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}
	return connect.NewResponse(&api.GetCurrentRoundResponse{Round: toAPIRound(d.Round), Bids: toAPIBids(d.Bids)}), nil
}

func (s *BiddingService) ListRounds(ctx context.Context, req *connect.Request[api.ListRoundsRequest]) (*connect.Response[api.ListRoundsResponse], error) {
	rounds, err := s.engine.ListRounds(ctx, middleware.ActorFrom(ctx), req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(s.logger, req.Spec().Procedure, err)
	}

	out := make([]api.BiddingRound, len(rounds))
	for i, r := range rounds {
		out[i] = toAPIRound(r)
	}
	return connect.NewResponse(&api.ListRoundsResponse{Rounds: out}), nil
}
