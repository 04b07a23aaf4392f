package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/errs"
)

// RoundStatus is the lifecycle state of a bidding round.
type RoundStatus string

const (
	RoundStatusPending   RoundStatus = "PENDING"
	RoundStatusOpen      RoundStatus = "OPEN"
	RoundStatusClosed    RoundStatus = "CLOSED"
	RoundStatusFinalized RoundStatus = "FINALIZED"
)

var roundTransitions = map[RoundStatus]RoundStatus{
	RoundStatusPending: RoundStatusOpen,
	RoundStatusOpen:    RoundStatusClosed,
	RoundStatusClosed:  RoundStatusFinalized,
}

// CanTransitionTo reports whether a round may move from s to next.
func (s RoundStatus) CanTransitionTo(next RoundStatus) bool {
	allowed, ok := roundTransitions[s]
	return ok && allowed == next
}

// BiddingRound is the auction held for one group-month. There is exactly one
// round per (GroupID, MonthNumber).
type BiddingRound struct {
	// ID is the unique identifier for the round (UUID format).
	ID string

	GroupID     string
	MonthNumber int

	Status RoundStatus

	// TotalPoolAmount is TotalMembers x MonthlyContribution of the group.
	TotalPoolAmount decimal.Decimal

	// Outcome fields, set on finalization.
	WinnerUserID      string
	WinningBidAmount  decimal.Decimal
	DividendPerMember decimal.Decimal
	OperatorRemainder decimal.Decimal
	PayoutAmount      decimal.Decimal

	StartedAt   *time.Time
	EndedAt     *time.Time
	FinalizedAt *time.Time

	CreatedAt time.Time

	Version int64
}

// NewBiddingRound returns a PENDING round for month of group g.
func NewBiddingRound(g *Group, month int) *BiddingRound {
	return &BiddingRound{
		GroupID:         g.ID,
		MonthNumber:     month,
		Status:          RoundStatusPending,
		TotalPoolAmount: g.RoundPool(),
	}
}

func (r *BiddingRound) transition(next RoundStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return errs.InvalidState("round %s cannot move from %s to %s", r.ID, r.Status, next)
	}
	r.Status = next
	return nil
}

// Open starts the bidding window.
func (r *BiddingRound) Open(now time.Time) error {
	if err := r.transition(RoundStatusOpen); err != nil {
		return err
	}
	r.StartedAt = &now
	return nil
}

// Close ends the bidding window; no further bids are accepted.
func (r *BiddingRound) Close(now time.Time) error {
	if err := r.transition(RoundStatusClosed); err != nil {
		return err
	}
	r.EndedAt = &now
	return nil
}

// Outcome is the result of an auction, computed by the calculator package.
type Outcome struct {
	WinnerUserID      string
	WinningBidAmount  decimal.Decimal
	DividendPerMember decimal.Decimal
	OperatorRemainder decimal.Decimal
	PayoutAmount      decimal.Decimal
}

// Finalize records the outcome and makes the round terminal.
func (r *BiddingRound) Finalize(o Outcome, now time.Time) error {
	if err := r.transition(RoundStatusFinalized); err != nil {
		return err
	}
	r.WinnerUserID = o.WinnerUserID
	r.WinningBidAmount = o.WinningBidAmount
	r.DividendPerMember = o.DividendPerMember
	r.OperatorRemainder = o.OperatorRemainder
	r.PayoutAmount = o.PayoutAmount
	r.FinalizedAt = &now
	return nil
}

// Bid is one member's offer in a round. A member has at most one bid per
// round; resubmitting replaces the amount and counts as a new submission.
type Bid struct {
	ID             string
	BiddingRoundID string
	GroupID        string
	MonthNumber    int
	UserID         string

	BidAmount decimal.Decimal

	// SubmittedAt and Sequence order submissions within a round; Sequence is
	// assigned by the store and breaks ties between equal timestamps.
	SubmittedAt time.Time
	Sequence    int64
}
