package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/calculator"
	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/events"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

// RoundDetail is a round together with its bids.
type RoundDetail struct {
	Round *models.BiddingRound
	Bids  []*models.Bid
}

// OpenRound starts bidding on a PENDING round of an ACTIVE group.
func (e *Engine) OpenRound(ctx context.Context, actor Actor, roundID string) (*models.BiddingRound, error) {
	const op = "OpenRound"
	if err := requireAdmin(actor); err != nil {
		return nil, e.fail(op, err)
	}

	var r *models.BiddingRound
	now := e.now()
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		var err error
		if r, err = loadRound(ctx, tx, roundID); err != nil {
			return err
		}
		g, err := loadGroup(ctx, tx, r.GroupID)
		if err != nil {
			return err
		}
		if g.Status != models.GroupStatusActive {
			return errs.InvalidState("group %s is not active (status %s)", g.ID, g.Status)
		}
		if err := r.Open(now); err != nil {
			return err
		}
		return storeErr(tx.UpdateRound(ctx, r), "bidding round "+roundID)
	})
	if err != nil {
		return nil, e.fail(op, err)
	}

	e.logger.Info("Bidding round opened", "round_id", r.ID, "group_id", r.GroupID, "month", r.MonthNumber)
	e.publish(ctx, events.New(events.RoundOpened, r.GroupID, now, map[string]string{
		"round_id": r.ID,
		"month":    strconv.Itoa(r.MonthNumber),
	}))
	return r, nil
}

// PlaceBid records userID's bid on an OPEN round, replacing any earlier bid
// by the same user. A member may bid for themselves; staff may bid on a
// member's behalf.
//
// Errors, in order: INVALID_STATE unless the round is OPEN, FORBIDDEN unless
// the user is an active member who has not yet won, VALIDATION_ERROR unless
// 0 <= amount <= the round's pool.
func (e *Engine) PlaceBid(ctx context.Context, actor Actor, roundID, userID string, amount decimal.Decimal) (*models.Bid, error) {
	const op = "PlaceBid"
	if actor.ID != userID && !actor.IsStaff() {
		return nil, e.fail(op, errs.Forbidden("cannot bid on behalf of another member"))
	}

	var bid *models.Bid
	now := e.now()
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		r, err := loadRound(ctx, tx, roundID)
		if err != nil {
			return err
		}
		if r.Status != models.RoundStatusOpen {
			return errs.InvalidState("bidding round is not open (status %s)", r.Status)
		}

		g, err := loadGroup(ctx, tx, r.GroupID)
		if err != nil {
			return err
		}
		if !g.CanBid(userID) {
			return errs.Forbidden("user %s is not an eligible bidder in group %s", userID, g.ID)
		}
		if amount.IsNegative() || amount.GreaterThan(r.TotalPoolAmount) {
			return errs.Validation("bid amount %s must be between 0 and %s", amount, r.TotalPoolAmount)
		}

		bid = &models.Bid{
			BiddingRoundID: r.ID,
			GroupID:        r.GroupID,
			MonthNumber:    r.MonthNumber,
			UserID:         userID,
			BidAmount:      amount,
			SubmittedAt:    now,
		}
		if err := tx.UpsertBid(ctx, bid); err != nil {
			return fmt.Errorf("failed to store bid: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, e.fail(op, err)
	}

	e.logger.Info("Bid placed",
		"round_id", bid.BiddingRoundID,
		"group_id", bid.GroupID,
		"user_id", bid.UserID,
		"amount", bid.BidAmount.String(),
		"sequence", bid.Sequence,
	)
	e.metrics.BidPlaced()
	e.publish(ctx, events.New(events.BidPlaced, bid.GroupID, now, map[string]string{
		"round_id": bid.BiddingRoundID,
		"user_id":  bid.UserID,
		"amount":   bid.BidAmount.String(),
	}))
	return bid, nil
}

// CloseRound ends bidding on an OPEN round.
func (e *Engine) CloseRound(ctx context.Context, actor Actor, roundID string) (*models.BiddingRound, error) {
	const op = "CloseRound"
	if err := requireAdmin(actor); err != nil {
		return nil, e.fail(op, err)
	}

	var r *models.BiddingRound
	now := e.now()
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		var err error
		if r, err = loadRound(ctx, tx, roundID); err != nil {
			return err
		}
		if err := r.Close(now); err != nil {
			return err
		}
		return storeErr(tx.UpdateRound(ctx, r), "bidding round "+roundID)
	})
	if err != nil {
		return nil, e.fail(op, err)
	}

	e.logger.Info("Bidding round closed", "round_id", r.ID, "group_id", r.GroupID, "month", r.MonthNumber)
	e.publish(ctx, events.New(events.RoundClosed, r.GroupID, now, map[string]string{
		"round_id": r.ID,
		"month":    strconv.Itoa(r.MonthNumber),
	}))
	return r, nil
}

// FinalizeRound settles a CLOSED round: it picks the winner, records the
// dividend split, writes the WINNER_PAYOUT ledger entry, marks the winner
// and advances the group's month, all in one storage transaction.
//
// A round with no bids fails with NO_BIDS and nothing changes. Finalizing a
// round that is already FINALIZED returns the stored round together with an
// ALREADY_FINALIZED error and writes nothing, so retries never pay out twice.
// An empty paymentMode uses the engine's default payout mode.
func (e *Engine) FinalizeRound(ctx context.Context, actor Actor, roundID string, paymentMode models.PaymentMode) (*models.BiddingRound, error) {
	const op = "FinalizeRound"
	if err := requireAdmin(actor); err != nil {
		return nil, e.fail(op, err)
	}
	if paymentMode == "" {
		paymentMode = e.payoutMode
	}
	if !paymentMode.Valid() {
		return nil, e.fail(op, errs.Validation("invalid payment mode %q", paymentMode))
	}

	var (
		r                *models.BiddingRound
		g                *models.Group
		alreadyFinalized bool
		completed        bool
	)
	now := e.now()
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		var err error
		if r, err = loadRound(ctx, tx, roundID); err != nil {
			return err
		}
		if r.Status == models.RoundStatusFinalized {
			alreadyFinalized = true
			return nil
		}
		if r.Status != models.RoundStatusClosed {
			return errs.InvalidState("round must be closed before finalizing (status %s)", r.Status)
		}

		if g, err = loadGroup(ctx, tx, r.GroupID); err != nil {
			return err
		}
		bids, err := tx.ListBids(ctx, r.ID)
		if err != nil {
			return fmt.Errorf("failed to list bids: %w", err)
		}

		outcome, err := calculator.Settle(r, g.TotalMembers, bids)
		if err != nil {
			return err
		}
		if err := r.Finalize(outcome, now); err != nil {
			return err
		}
		if err := tx.UpdateRound(ctx, r); err != nil {
			return storeErr(err, "bidding round "+roundID)
		}

		if err := g.RecordWin(outcome.WinnerUserID, r.MonthNumber); err != nil {
			return err
		}

		// Ledger amounts are positive; a zero bid pays nothing out.
		if outcome.PayoutAmount.IsPositive() {
			payout := &models.Transaction{
				GroupID:        g.ID,
				UserID:         outcome.WinnerUserID,
				BiddingRoundID: r.ID,
				MonthNumber:    r.MonthNumber,
				Type:           models.TransactionWinnerPayout,
				Amount:         outcome.PayoutAmount,
				PaymentMode:    paymentMode,
				HandledBy:      actor.ID,
				HandledAt:      now,
				Remarks:        fmt.Sprintf("Winner payout for month %d", r.MonthNumber),
				CreatedAt:      now,
			}
			if err := tx.AppendTransaction(ctx, payout); err != nil {
				return fmt.Errorf("failed to append payout: %w", err)
			}
		}

		completed, err = e.advanceMonth(ctx, tx, g, now)
		return err
	})
	if err != nil {
		return nil, e.fail(op, err)
	}
	if alreadyFinalized {
		return r, e.fail(op, errs.New(errs.KindAlreadyFinalized, "round %s is already finalized", r.ID))
	}

	e.logger.Info("Bidding round finalized",
		"round_id", r.ID,
		"group_id", r.GroupID,
		"month", r.MonthNumber,
		"winner", r.WinnerUserID,
		"winning_bid", r.WinningBidAmount.String(),
		"dividend_per_member", r.DividendPerMember.String(),
		"operator_remainder", r.OperatorRemainder.String(),
	)
	e.metrics.RoundFinalized(r.PayoutAmount)

	evs := []events.Event{
		events.New(events.RoundFinalized, r.GroupID, now, map[string]string{
			"round_id":            r.ID,
			"month":               strconv.Itoa(r.MonthNumber),
			"winner_user_id":      r.WinnerUserID,
			"payout_amount":       r.PayoutAmount.String(),
			"dividend_per_member": r.DividendPerMember.String(),
		}),
	}
	if completed {
		e.logger.Info("Group completed", "group_id", g.ID)
		e.metrics.GroupTransition(string(models.GroupStatusCompleted))
		evs = append(evs, events.New(events.GroupCompleted, g.ID, now, nil))
	} else {
		evs = append(evs, events.New(events.MonthAdvanced, g.ID, now, map[string]string{
			"current_month": strconv.Itoa(g.CurrentMonth),
		}))
	}
	e.publish(ctx, evs...)
	return r, nil
}

// GetRound returns a round and its bids.
func (e *Engine) GetRound(ctx context.Context, actor Actor, roundID string) (*RoundDetail, error) {
	var d RoundDetail
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		var err error
		if d.Round, err = loadRound(ctx, tx, roundID); err != nil {
			return err
		}
		if err := canViewGroup(ctx, tx, actor, d.Round.GroupID); err != nil {
			return err
		}
		if d.Bids, err = tx.ListBids(ctx, roundID); err != nil {
			return fmt.Errorf("failed to list bids: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetCurrentRound returns the round of the group's current month. For a
// completed group that is the last round.
func (e *Engine) GetCurrentRound(ctx context.Context, actor Actor, groupID string) (*RoundDetail, error) {
	var d RoundDetail
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		g, err := loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if err := actor.CanView(g); err != nil {
			return err
		}
		if g.Status == models.GroupStatusDraft {
			return errs.InvalidState("group %s has not been activated", groupID)
		}
		if d.Round, err = tx.GetRoundByMonth(ctx, groupID, g.CurrentMonth); err != nil {
			return storeErr(err, fmt.Sprintf("bidding round for month %d", g.CurrentMonth))
		}
		if d.Bids, err = tx.ListBids(ctx, d.Round.ID); err != nil {
			return fmt.Errorf("failed to list bids: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListRounds returns every round of a group in month order.
func (e *Engine) ListRounds(ctx context.Context, actor Actor, groupID string) ([]*models.BiddingRound, error) {
	var rounds []*models.BiddingRound
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		if err := canViewGroup(ctx, tx, actor, groupID); err != nil {
			return err
		}
		var err error
		if rounds, err = tx.ListRounds(ctx, groupID); err != nil {
			return fmt.Errorf("failed to list bidding rounds: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rounds, nil
}
