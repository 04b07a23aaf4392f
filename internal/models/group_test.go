package models

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/errs"
)

func newTestGroup(t *testing.T, size int) *Group {
	t.Helper()
	g, err := NewGroup("Office Chit", size, size, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	g.ID = "g1"
	return g
}

func TestNewGroup(t *testing.T) {
	tests := []struct {
		name         string
		groupName    string
		totalMembers int
		totalMonths  int
		monthly      decimal.Decimal
		wantKind     errs.Kind
	}{
		{"valid", "Office Chit", 3, 3, decimal.NewFromInt(1000), ""},
		{"members differ from months", "Office Chit", 3, 4, decimal.NewFromInt(1000), errs.KindValidation},
		{"too few members", "Office Chit", 1, 1, decimal.NewFromInt(1000), errs.KindValidation},
		{"zero contribution", "Office Chit", 3, 3, decimal.Zero, errs.KindValidation},
		{"negative contribution", "Office Chit", 3, 3, decimal.NewFromInt(-5), errs.KindValidation},
		{"blank name", "   ", 3, 3, decimal.NewFromInt(1000), errs.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGroup(tt.groupName, tt.totalMembers, tt.totalMonths, tt.monthly)
			if got := errs.KindOf(err); got != tt.wantKind {
				t.Fatalf("NewGroup() kind = %q, want %q (err=%v)", got, tt.wantKind, err)
			}
			if tt.wantKind != "" {
				return
			}
			if g.Status != GroupStatusDraft {
				t.Errorf("status = %s, want DRAFT", g.Status)
			}
			if g.CurrentMonth != 1 {
				t.Errorf("current month = %d, want 1", g.CurrentMonth)
			}
		})
	}
}

func TestGroupAddMember(t *testing.T) {
	now := time.Now()

	t.Run("fills up to capacity then rejects", func(t *testing.T) {
		g := newTestGroup(t, 3)
		for i := 1; i <= 3; i++ {
			if err := g.AddMember(fmt.Sprintf("u%d", i), now); err != nil {
				t.Fatalf("AddMember(u%d) failed: %v", i, err)
			}
		}
		err := g.AddMember("u4", now)
		if !errs.Is(err, errs.KindCapacityExceeded) {
			t.Errorf("expected CAPACITY_EXCEEDED, got %v", err)
		}
		if len(g.Members) != 3 {
			t.Errorf("members = %d, want 3", len(g.Members))
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		g := newTestGroup(t, 3)
		if err := g.AddMember("u1", now); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if err := g.AddMember("u1", now); !errs.Is(err, errs.KindDuplicateMember) {
			t.Errorf("expected DUPLICATE_MEMBER, got %v", err)
		}
	})

	t.Run("new members are active and have not won", func(t *testing.T) {
		g := newTestGroup(t, 2)
		if err := g.AddMember("u1", now); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		m, ok := g.Member("u1")
		if !ok {
			t.Fatal("member not found")
		}
		if m.Status != MemberStatusActive || m.HasWon || m.WinningMonth != 0 {
			t.Errorf("unexpected member: %+v", m)
		}
	})

	t.Run("rejects additions once active", func(t *testing.T) {
		g := newTestGroup(t, 2)
		g.AddMember("u1", now)
		g.AddMember("u2", now)
		if err := g.Activate(now); err != nil {
			t.Fatalf("Activate failed: %v", err)
		}
		if err := g.AddMember("u3", now); !errs.Is(err, errs.KindInvalidState) {
			t.Errorf("expected INVALID_STATE, got %v", err)
		}
	})
}

func TestGroupActivate(t *testing.T) {
	now := time.Now()

	g := newTestGroup(t, 2)
	g.AddMember("u1", now)
	if err := g.Activate(now); !errs.Is(err, errs.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE for partial group, got %v", err)
	}

	g.AddMember("u2", now)
	if err := g.Activate(now); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if g.Status != GroupStatusActive {
		t.Errorf("status = %s, want ACTIVE", g.Status)
	}
	if g.StartDate == nil || !g.StartDate.Equal(now) {
		t.Errorf("start date = %v, want %v", g.StartDate, now)
	}

	if err := g.Activate(now); !errs.Is(err, errs.KindInvalidState) {
		t.Errorf("expected INVALID_STATE on second activation, got %v", err)
	}
}

func TestGroupAdvanceMonth(t *testing.T) {
	now := time.Now()

	g := newTestGroup(t, 2)
	if _, err := g.AdvanceMonth(now); !errs.Is(err, errs.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE for draft group, got %v", err)
	}

	g.AddMember("u1", now)
	g.AddMember("u2", now)
	g.Activate(now)

	completed, err := g.AdvanceMonth(now)
	if err != nil || completed {
		t.Fatalf("first advance: completed=%v err=%v", completed, err)
	}
	if g.CurrentMonth != 2 {
		t.Errorf("current month = %d, want 2", g.CurrentMonth)
	}

	completed, err = g.AdvanceMonth(now)
	if err != nil || !completed {
		t.Fatalf("last advance: completed=%v err=%v", completed, err)
	}
	if g.Status != GroupStatusCompleted || g.EndDate == nil {
		t.Errorf("expected COMPLETED with end date, got %s %v", g.Status, g.EndDate)
	}
	if g.CurrentMonth != 2 {
		t.Errorf("current month moved past total months: %d", g.CurrentMonth)
	}
}

func TestGroupRecordWin(t *testing.T) {
	now := time.Now()
	g := newTestGroup(t, 2)
	g.AddMember("u1", now)
	g.AddMember("u2", now)

	if err := g.RecordWin("u1", 1); err != nil {
		t.Fatalf("RecordWin failed: %v", err)
	}
	if g.CanBid("u1") {
		t.Error("winner should no longer be able to bid")
	}
	if !g.CanBid("u2") {
		t.Error("non-winner should be able to bid")
	}
	if err := g.RecordWin("u1", 2); !errs.Is(err, errs.KindInvalidState) {
		t.Errorf("expected INVALID_STATE for second win, got %v", err)
	}
	if err := g.RecordWin("stranger", 2); !errs.Is(err, errs.KindNotFound) {
		t.Errorf("expected NOT_FOUND for non-member, got %v", err)
	}
	if g.Winners() != 1 {
		t.Errorf("winners = %d, want 1", g.Winners())
	}
}

func TestPools(t *testing.T) {
	g := newTestGroup(t, 3)
	if !g.MonthlyPool().Equal(decimal.NewFromInt(3000)) {
		t.Errorf("monthly pool = %s, want 3000", g.MonthlyPool())
	}
	if !g.RoundPool().Equal(decimal.NewFromInt(3000)) {
		t.Errorf("round pool = %s, want 3000", g.RoundPool())
	}
}

func TestRoundTransitions(t *testing.T) {
	now := time.Now()
	g := newTestGroup(t, 2)
	r := NewBiddingRound(g, 1)

	if err := r.Close(now); !errs.Is(err, errs.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE closing a pending round, got %v", err)
	}
	if err := r.Open(now); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := r.Open(now); !errs.Is(err, errs.KindInvalidState) {
		t.Fatalf("expected INVALID_STATE reopening, got %v", err)
	}
	if err := r.Close(now); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	outcome := Outcome{WinnerUserID: "u1", WinningBidAmount: decimal.NewFromInt(1500), PayoutAmount: decimal.NewFromInt(1500)}
	if err := r.Finalize(outcome, now); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if r.Status != RoundStatusFinalized || r.FinalizedAt == nil || r.WinnerUserID != "u1" {
		t.Errorf("unexpected round after finalize: %+v", r)
	}
	if err := r.Finalize(outcome, now); !errs.Is(err, errs.KindInvalidState) {
		t.Errorf("expected INVALID_STATE finalizing twice, got %v", err)
	}
}
