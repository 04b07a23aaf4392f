package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/models"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func bid(user string, amount int64, offset time.Duration, seq int64) *models.Bid {
	return &models.Bid{
		UserID:      user,
		BidAmount:   decimal.NewFromInt(amount),
		SubmittedAt: t0.Add(offset),
		Sequence:    seq,
	}
}

func TestSelectWinner(t *testing.T) {
	tests := []struct {
		name       string
		bids       []*models.Bid
		wantWinner string
		wantKind   errs.Kind
	}{
		{
			name:       "highest bid wins",
			bids:       []*models.Bid{bid("U1", 800, 0, 1), bid("U2", 900, time.Second, 2), bid("U3", 950, 2*time.Second, 3)},
			wantWinner: "U3",
		},
		{
			name:       "tie goes to earlier submission",
			bids:       []*models.Bid{bid("A", 500, 0, 1), bid("C", 700, 2*time.Second, 3), bid("B", 700, time.Second, 2)},
			wantWinner: "B",
		},
		{
			name:       "same timestamp falls back to sequence",
			bids:       []*models.Bid{bid("C", 700, 0, 5), bid("B", 700, 0, 4)},
			wantWinner: "B",
		},
		{
			name:       "zero bid can still win alone",
			bids:       []*models.Bid{bid("A", 0, 0, 1)},
			wantWinner: "A",
		},
		{
			name:     "no bids",
			bids:     nil,
			wantKind: errs.KindNoBids,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			winner, err := SelectWinner(tt.bids)
			if got := errs.KindOf(err); got != tt.wantKind {
				t.Fatalf("SelectWinner() kind = %q, want %q (err=%v)", got, tt.wantKind, err)
			}
			if tt.wantKind != "" {
				return
			}
			if winner.UserID != tt.wantWinner {
				t.Errorf("winner = %s, want %s", winner.UserID, tt.wantWinner)
			}
		})
	}
}

func TestSelectWinnerDoesNotReorderInput(t *testing.T) {
	bids := []*models.Bid{bid("A", 100, 0, 1), bid("B", 200, time.Second, 2)}
	if _, err := SelectWinner(bids); err != nil {
		t.Fatalf("SelectWinner failed: %v", err)
	}
	if bids[0].UserID != "A" || bids[1].UserID != "B" {
		t.Error("input slice was reordered")
	}
}

func TestSplitDiscount(t *testing.T) {
	tests := []struct {
		name          string
		pool          string
		winningBid    string
		members       int
		wantDividend  string
		wantRemainder string
		wantErr       bool
	}{
		{"even split", "3000", "950", 3, "1025", "0", false},
		{"floors to cents", "3000", "2000", 4, "333.33", "0.01", false},
		{"no discount", "3000", "3000", 3, "0", "0", false},
		{"zero bid gives everything away", "1000", "0", 2, "1000", "0", false},
		{"bid above pool", "1000", "1200", 2, "", "", true},
		{"negative bid", "1000", "-1", 2, "", "", true},
		{"single member", "1000", "500", 1, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dividend, remainder, err := SplitDiscount(
				decimal.RequireFromString(tt.pool),
				decimal.RequireFromString(tt.winningBid),
				tt.members,
			)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitDiscount() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !dividend.Equal(decimal.RequireFromString(tt.wantDividend)) {
				t.Errorf("dividend = %s, want %s", dividend, tt.wantDividend)
			}
			if !remainder.Equal(decimal.RequireFromString(tt.wantRemainder)) {
				t.Errorf("remainder = %s, want %s", remainder, tt.wantRemainder)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	round := &models.BiddingRound{TotalPoolAmount: decimal.NewFromInt(3000)}
	bids := []*models.Bid{bid("U1", 800, 0, 1), bid("U2", 900, time.Second, 2), bid("U3", 950, 2*time.Second, 3)}

	outcome, err := Settle(round, 3, bids)
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}

	if outcome.WinnerUserID != "U3" {
		t.Errorf("winner = %s, want U3", outcome.WinnerUserID)
	}
	if !outcome.PayoutAmount.Equal(decimal.NewFromInt(950)) {
		t.Errorf("payout = %s, want 950", outcome.PayoutAmount)
	}
	if !outcome.WinningBidAmount.Equal(decimal.NewFromInt(950)) {
		t.Errorf("winning bid = %s, want 950", outcome.WinningBidAmount)
	}
	if !outcome.DividendPerMember.Equal(decimal.NewFromInt(1025)) {
		t.Errorf("dividend = %s, want 1025", outcome.DividendPerMember)
	}

	if _, err := Settle(round, 3, nil); !errs.Is(err, errs.KindNoBids) {
		t.Errorf("expected NO_BIDS, got %v", err)
	}
}
