package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/events"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

// ContributionInput describes money collected from a member.
type ContributionInput struct {
	GroupID     string
	UserID      string
	MonthNumber int
	Amount      decimal.Decimal
	PaymentMode models.PaymentMode

	// HandledBy defaults to the actor.
	HandledBy string

	// HandledAt defaults to now and may not be in the future.
	HandledAt time.Time

	Remarks string
}

// LogContribution appends a CONTRIBUTION entry to the ledger.
//
// A member's contributions for one month never sum past the group's monthly
// contribution: the running total is read and the entry appended in the same
// storage transaction, and an overshoot fails with LIMIT_EXCEEDED carrying
// "paid" and "limit" metadata.
//
// Identical submissions are recorded as separate entries; there is no
// de-duplication.
func (e *Engine) LogContribution(ctx context.Context, actor Actor, in ContributionInput) (*models.Transaction, error) {
	const op = "LogContribution"
	if err := requireStaff(actor); err != nil {
		return nil, e.fail(op, err)
	}
	if in.HandledBy == "" {
		in.HandledBy = actor.ID
	}

	g, err := loadGroup(ctx, e.store, in.GroupID)
	if err != nil {
		return nil, e.fail(op, err)
	}
	if err := validateContribution(g, in); err != nil {
		return nil, e.fail(op, err)
	}

	now := e.now()
	if in.HandledAt.IsZero() {
		in.HandledAt = now
	}
	if in.HandledAt.After(now) {
		return nil, e.fail(op, errs.Validation("handled at %s is in the future", in.HandledAt.Format(time.RFC3339)))
	}

	collector, err := e.approver.IsApprovedEmployee(ctx, in.HandledBy)
	if err != nil {
		return nil, fmt.Errorf("failed to check collector approval: %w", err)
	}
	if !collector {
		return nil, e.fail(op, errs.Forbidden("%s is not an approved employee", in.HandledBy))
	}

	txn := &models.Transaction{
		GroupID:     in.GroupID,
		UserID:      in.UserID,
		MonthNumber: in.MonthNumber,
		Type:        models.TransactionContribution,
		Amount:      in.Amount,
		PaymentMode: in.PaymentMode,
		HandledBy:   in.HandledBy,
		HandledAt:   in.HandledAt.UTC(),
		Remarks:     in.Remarks,
		CreatedAt:   now,
	}

	var paid decimal.Decimal
	err = e.store.InTx(ctx, func(tx storage.Store) error {
		// Re-check against the committed state; the month may have moved on.
		g, err := loadGroup(ctx, tx, in.GroupID)
		if err != nil {
			return err
		}
		if err := validateContribution(g, in); err != nil {
			return err
		}

		paid, err = tx.SumContributions(ctx, in.GroupID, in.UserID, in.MonthNumber)
		if err != nil {
			return fmt.Errorf("failed to read month total: %w", err)
		}
		if paid.Add(in.Amount).GreaterThan(g.MonthlyContribution) {
			return errs.New(errs.KindLimitExceeded,
				"monthly limit reached: paid %s of %s, cannot add %s", paid, g.MonthlyContribution, in.Amount).
				With("paid", paid.String()).
				With("limit", g.MonthlyContribution.String())
		}

		round, err := tx.GetRoundByMonth(ctx, in.GroupID, in.MonthNumber)
		if err != nil {
			return storeErr(err, fmt.Sprintf("bidding round for month %d", in.MonthNumber))
		}
		txn.BiddingRoundID = round.ID

		if err := tx.AppendTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to append contribution: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, e.fail(op, err)
	}

	e.logger.Info("Contribution logged",
		"group_id", txn.GroupID,
		"user_id", txn.UserID,
		"month", txn.MonthNumber,
		"amount", txn.Amount.String(),
		"paid_this_month", paid.Add(txn.Amount).String(),
		"payment_mode", txn.PaymentMode,
		"handled_by", txn.HandledBy,
	)
	e.metrics.ContributionLogged(string(txn.PaymentMode), txn.Amount)
	e.publish(ctx, events.New(events.ContributionLogged, txn.GroupID, now, map[string]string{
		"transaction_id": txn.ID,
		"user_id":        txn.UserID,
		"month":          strconv.Itoa(txn.MonthNumber),
		"amount":         txn.Amount.String(),
		"payment_mode":   string(txn.PaymentMode),
	}))
	return txn, nil
}

// validateContribution applies the per-group preconditions in order.
func validateContribution(g *models.Group, in ContributionInput) error {
	if g.Status != models.GroupStatusActive {
		return errs.InvalidState("contributions only for active groups (status %s)", g.Status)
	}
	if !in.Amount.IsPositive() {
		return errs.Validation("amount must be positive, got %s", in.Amount)
	}
	if in.MonthNumber != g.CurrentMonth {
		return errs.Validation("invalid month number %d, current month is %d", in.MonthNumber, g.CurrentMonth)
	}
	if !g.IsActiveMember(in.UserID) {
		return errs.Forbidden("user %s is not an active member of group %s", in.UserID, g.ID)
	}
	if !in.PaymentMode.Valid() {
		return errs.Validation("invalid payment mode %q", in.PaymentMode)
	}
	return nil
}

// ListContributions returns CONTRIBUTION entries matching filter. Members
// only see their own.
func (e *Engine) ListContributions(ctx context.Context, actor Actor, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	if !actor.IsStaff() {
		filter.UserID = actor.ID
	}
	filter.Type = models.TransactionContribution

	txns, err := e.store.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions: %w", err)
	}
	return txns, nil
}
