package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/models"
)

// dividendPlaces is the precision dividends are floored to (cents/paise).
const dividendPlaces = 2

// SelectWinner picks the winning bid: the highest amount, ties going to the
// earliest submission (SubmittedAt, then store-assigned Sequence).
func SelectWinner(bids []*models.Bid) (*models.Bid, error) {
	if len(bids) == 0 {
		return nil, errs.New(errs.KindNoBids, "round has no bids")
	}

	ranked := make([]*models.Bid, len(bids))
	copy(ranked, bids)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if c := a.BidAmount.Cmp(b.BidAmount); c != 0 {
			return c > 0
		}
		if !a.SubmittedAt.Equal(b.SubmittedAt) {
			return a.SubmittedAt.Before(b.SubmittedAt)
		}
		return a.Sequence < b.Sequence
	})

	return ranked[0], nil
}

// SplitDiscount distributes the winner's discount (pool - winningBid) among
// the other totalMembers-1 members. Each share is floored to dividendPlaces;
// what is left over goes to the operator as the remainder.
func SplitDiscount(pool, winningBid decimal.Decimal, totalMembers int) (dividend, remainder decimal.Decimal, err error) {
	if totalMembers < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("need at least 2 members to split a discount, got %d", totalMembers)
	}
	if winningBid.IsNegative() || winningBid.GreaterThan(pool) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("winning bid %s outside [0, %s]", winningBid, pool)
	}

	discount := pool.Sub(winningBid)
	others := decimal.NewFromInt(int64(totalMembers - 1))

	dividend = discount.Div(others).RoundFloor(dividendPlaces)
	remainder = discount.Sub(dividend.Mul(others))
	return dividend, remainder, nil
}

// Settle computes the outcome of a closed round from its bids.
func Settle(round *models.BiddingRound, totalMembers int, bids []*models.Bid) (models.Outcome, error) {
	winner, err := SelectWinner(bids)
	if err != nil {
		return models.Outcome{}, err
	}

	dividend, remainder, err := SplitDiscount(round.TotalPoolAmount, winner.BidAmount, totalMembers)
	if err != nil {
		return models.Outcome{}, err
	}

	return models.Outcome{
		WinnerUserID:      winner.UserID,
		WinningBidAmount:  winner.BidAmount,
		DividendPerMember: dividend,
		OperatorRemainder: remainder,
		PayoutAmount:      winner.BidAmount,
	}, nil
}
