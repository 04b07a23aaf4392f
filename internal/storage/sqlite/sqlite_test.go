package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestGroup(t *testing.T, members ...string) *models.Group {
	t.Helper()
	g, err := models.NewGroup("Office Chit", 3, 3, decimal.NewFromInt(1000))
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	for _, m := range members {
		if err := g.AddMember(m, t0); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}
	return g
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		store, err := New(path)
		if err != nil {
			t.Fatalf("open %d failed: %v", i, err)
		}
		store.Close()
	}
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup assigns ID and version", func(t *testing.T) {
		g := newTestGroup(t, "U1", "U2")
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if g.ID == "" {
			t.Error("Expected group ID to be generated")
		}
		if g.Version != 1 {
			t.Errorf("Version = %d, want 1", g.Version)
		}
	})

	t.Run("GetGroup round-trips members and money", func(t *testing.T) {
		g := newTestGroup(t, "U1", "U2", "U3")
		g.MonthlyContribution = decimal.RequireFromString("1250.50")
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, g.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if !got.MonthlyContribution.Equal(g.MonthlyContribution) {
			t.Errorf("MonthlyContribution = %s, want %s", got.MonthlyContribution, g.MonthlyContribution)
		}
		if len(got.Members) != 3 || got.Members[0].UserID != "U1" || got.Members[2].UserID != "U3" {
			t.Errorf("members not preserved in join order: %+v", got.Members)
		}
		if !got.Members[0].JoinedAt.Equal(t0) {
			t.Errorf("JoinedAt = %v, want %v", got.Members[0].JoinedAt, t0)
		}
		if got.Status != models.GroupStatusDraft || got.CurrentMonth != 1 {
			t.Errorf("status/month = %s/%d, want DRAFT/1", got.Status, got.CurrentMonth)
		}
	})

	t.Run("GetGroup returns ErrNotFound", func(t *testing.T) {
		if _, err := store.GetGroup(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateGroup checks version", func(t *testing.T) {
		g := newTestGroup(t, "U1", "U2", "U3")
		if err := store.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		stale, _ := store.GetGroup(ctx, g.ID)

		if err := g.Activate(t0); err != nil {
			t.Fatalf("Activate failed: %v", err)
		}
		if err := store.UpdateGroup(ctx, g); err != nil {
			t.Fatalf("UpdateGroup failed: %v", err)
		}
		if g.Version != 2 {
			t.Errorf("Version = %d, want 2", g.Version)
		}

		stale.Name = "Renamed"
		if err := store.UpdateGroup(ctx, stale); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict for stale write, got %v", err)
		}

		got, _ := store.GetGroup(ctx, g.ID)
		if got.Status != models.GroupStatusActive || got.StartDate == nil {
			t.Errorf("activation not persisted: %+v", got)
		}
	})

	t.Run("UpdateGroup on missing group", func(t *testing.T) {
		g := newTestGroup(t)
		g.ID = "missing"
		g.Version = 1
		if err := store.UpdateGroup(ctx, g); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListGroups filters by member and status", func(t *testing.T) {
		s := newTestStore(t)
		a := newTestGroup(t, "U1", "U2")
		b := newTestGroup(t, "U2", "U3")
		for _, g := range []*models.Group{a, b} {
			if err := s.CreateGroup(ctx, g); err != nil {
				t.Fatalf("CreateGroup failed: %v", err)
			}
		}

		got, err := s.ListGroups(ctx, storage.GroupFilter{MemberID: "U1"})
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(got) != 1 || got[0].ID != a.ID {
			t.Errorf("member filter returned %d groups", len(got))
		}

		got, _ = s.ListGroups(ctx, storage.GroupFilter{MemberID: "U2", Status: models.GroupStatusDraft})
		if len(got) != 2 {
			t.Errorf("expected both groups for U2, got %d", len(got))
		}
		if len(got[1].Members) != 2 {
			t.Errorf("members not loaded for listed groups")
		}

		got, _ = s.ListGroups(ctx, storage.GroupFilter{Status: models.GroupStatusActive})
		if len(got) != 0 {
			t.Errorf("expected no active groups, got %d", len(got))
		}
	})
}

func TestLedger(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	g := newTestGroup(t, "U1", "U2", "U3")
	if err := store.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	entry := func(user string, month int, amount string, at time.Duration) *models.Transaction {
		return &models.Transaction{
			GroupID:     g.ID,
			UserID:      user,
			MonthNumber: month,
			Type:        models.TransactionContribution,
			Amount:      decimal.RequireFromString(amount),
			PaymentMode: models.PaymentModeUPI,
			HandledBy:   "E1",
			HandledAt:   t0.Add(at),
		}
	}

	for _, txn := range []*models.Transaction{
		entry("U1", 1, "400.25", 2*time.Hour),
		entry("U1", 1, "300", time.Hour),
		entry("U2", 1, "1000", 0),
		entry("U1", 2, "50", 3*time.Hour),
	} {
		if err := store.AppendTransaction(ctx, txn); err != nil {
			t.Fatalf("AppendTransaction failed: %v", err)
		}
	}

	t.Run("SumContributions", func(t *testing.T) {
		sum, err := store.SumContributions(ctx, g.ID, "U1", 1)
		if err != nil {
			t.Fatalf("SumContributions failed: %v", err)
		}
		if !sum.Equal(decimal.RequireFromString("700.25")) {
			t.Errorf("sum = %s, want 700.25", sum)
		}

		sum, _ = store.SumContributions(ctx, g.ID, "U3", 1)
		if !sum.IsZero() {
			t.Errorf("sum for non-payer = %s, want 0", sum)
		}
	})

	t.Run("ListTransactions orders by HandledAt", func(t *testing.T) {
		txns, err := store.ListTransactions(ctx, storage.TransactionFilter{GroupID: g.ID, UserID: "U1", MonthNumber: 1})
		if err != nil {
			t.Fatalf("ListTransactions failed: %v", err)
		}
		if len(txns) != 2 {
			t.Fatalf("got %d entries, want 2", len(txns))
		}
		if !txns[0].Amount.Equal(decimal.NewFromInt(300)) {
			t.Errorf("first entry = %s, want 300", txns[0].Amount)
		}
		if txns[0].PaymentMode != models.PaymentModeUPI || txns[0].HandledBy != "E1" {
			t.Errorf("fields not preserved: %+v", txns[0])
		}
	})

	t.Run("ListTransactions by collector", func(t *testing.T) {
		txns, _ := store.ListTransactions(ctx, storage.TransactionFilter{HandledBy: "E1"})
		if len(txns) != 4 {
			t.Errorf("got %d entries, want 4", len(txns))
		}
		txns, _ = store.ListTransactions(ctx, storage.TransactionFilter{HandledBy: "E2"})
		if len(txns) != 0 {
			t.Errorf("got %d entries for unknown collector, want 0", len(txns))
		}
	})

	t.Run("entries cannot be modified", func(t *testing.T) {
		if _, err := store.db.ExecContext(ctx, "UPDATE transactions SET amount = '1'"); err == nil {
			t.Error("expected update of ledger entry to fail")
		}
		if _, err := store.db.ExecContext(ctx, "DELETE FROM transactions"); err == nil {
			t.Error("expected delete of ledger entry to fail")
		}
	})
}

func TestRoundsAndBids(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	g := newTestGroup(t, "U1", "U2", "U3")
	if err := store.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	round := models.NewBiddingRound(g, 1)
	if err := store.CreateRound(ctx, round); err != nil {
		t.Fatalf("CreateRound failed: %v", err)
	}

	t.Run("one round per group-month", func(t *testing.T) {
		dup := models.NewBiddingRound(g, 1)
		if err := store.CreateRound(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("GetRoundByMonth", func(t *testing.T) {
		got, err := store.GetRoundByMonth(ctx, g.ID, 1)
		if err != nil {
			t.Fatalf("GetRoundByMonth failed: %v", err)
		}
		if got.ID != round.ID || !got.TotalPoolAmount.Equal(decimal.NewFromInt(3000)) {
			t.Errorf("unexpected round: %+v", got)
		}
		if _, err := store.GetRoundByMonth(ctx, g.ID, 2); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound for month 2, got %v", err)
		}
	})

	t.Run("UpdateRound persists outcome", func(t *testing.T) {
		r, _ := store.GetRound(ctx, round.ID)
		r.Open(t0)
		r.Close(t0.Add(time.Hour))
		outcome := models.Outcome{
			WinnerUserID:      "U3",
			WinningBidAmount:  decimal.NewFromInt(950),
			DividendPerMember: decimal.NewFromInt(1025),
			OperatorRemainder: decimal.Zero,
			PayoutAmount:      decimal.NewFromInt(950),
		}
		if err := r.Finalize(outcome, t0.Add(2*time.Hour)); err != nil {
			t.Fatalf("Finalize failed: %v", err)
		}
		if err := store.UpdateRound(ctx, r); err != nil {
			t.Fatalf("UpdateRound failed: %v", err)
		}

		got, _ := store.GetRound(ctx, round.ID)
		if got.Status != models.RoundStatusFinalized || got.WinnerUserID != "U3" {
			t.Errorf("outcome not persisted: %+v", got)
		}
		if !got.DividendPerMember.Equal(decimal.NewFromInt(1025)) {
			t.Errorf("dividend = %s, want 1025", got.DividendPerMember)
		}
		if got.FinalizedAt == nil || !got.FinalizedAt.Equal(t0.Add(2*time.Hour)) {
			t.Errorf("FinalizedAt = %v", got.FinalizedAt)
		}

		// round still carries version 1.
		if err := store.UpdateRound(ctx, round); !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("UpsertBid replaces and resequences", func(t *testing.T) {
		r2 := models.NewBiddingRound(g, 2)
		if err := store.CreateRound(ctx, r2); err != nil {
			t.Fatalf("CreateRound failed: %v", err)
		}

		place := func(user string, amount int64, at time.Duration) *models.Bid {
			b := &models.Bid{
				BiddingRoundID: r2.ID,
				GroupID:        g.ID,
				MonthNumber:    2,
				UserID:         user,
				BidAmount:      decimal.NewFromInt(amount),
				SubmittedAt:    t0.Add(at),
			}
			if err := store.UpsertBid(ctx, b); err != nil {
				t.Fatalf("UpsertBid failed: %v", err)
			}
			return b
		}

		first := place("U1", 500, 0)
		place("U2", 600, time.Second)
		again := place("U1", 700, 2*time.Second)

		if again.ID != first.ID {
			t.Errorf("resubmission changed bid ID: %s -> %s", first.ID, again.ID)
		}
		if again.Sequence != 3 {
			t.Errorf("Sequence = %d, want 3", again.Sequence)
		}

		bids, err := store.ListBids(ctx, r2.ID)
		if err != nil {
			t.Fatalf("ListBids failed: %v", err)
		}
		if len(bids) != 2 {
			t.Fatalf("got %d bids, want 2", len(bids))
		}
		last := bids[1]
		if last.UserID != "U1" || !last.BidAmount.Equal(decimal.NewFromInt(700)) || !last.SubmittedAt.Equal(t0.Add(2*time.Second)) {
			t.Errorf("replacement not stored: %+v", last)
		}
	})

	t.Run("ListRounds in month order", func(t *testing.T) {
		rounds, err := store.ListRounds(ctx, g.ID)
		if err != nil {
			t.Fatalf("ListRounds failed: %v", err)
		}
		if len(rounds) != 2 || rounds[0].MonthNumber != 1 || rounds[1].MonthNumber != 2 {
			t.Errorf("unexpected rounds: %d", len(rounds))
		}
	})
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	u := models.NewUser("Asha", "+919800000001", "hash", models.RoleMember)
	if err := store.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("phone is unique", func(t *testing.T) {
		dup := models.NewUser("Other", u.Phone, "hash", models.RoleMember)
		if err := store.CreateUser(ctx, dup); !errors.Is(err, storage.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("lookup", func(t *testing.T) {
		byPhone, err := store.GetUserByPhone(ctx, u.Phone)
		if err != nil {
			t.Fatalf("GetUserByPhone failed: %v", err)
		}
		if byPhone.ID != u.ID || byPhone.Role != models.RoleMember || byPhone.ApprovalStatus != models.ApprovalPending {
			t.Errorf("unexpected user: %+v", byPhone)
		}
		if _, err := store.GetUserByID(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("approval and filters", func(t *testing.T) {
		emp := models.NewUser("Ravi", "+919800000002", "hash", models.RoleEmployee)
		if err := store.CreateUser(ctx, emp); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		u.ApprovalStatus = models.ApprovalApproved
		if err := store.UpdateUser(ctx, u); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}

		pending, _ := store.ListUsers(ctx, storage.UserFilter{Status: models.ApprovalPending})
		if len(pending) != 1 || pending[0].ID != emp.ID {
			t.Errorf("pending users = %d, want only the employee", len(pending))
		}
		members, _ := store.ListUsers(ctx, storage.UserFilter{Role: models.RoleMember, Status: models.ApprovalApproved})
		if len(members) != 1 || members[0].ID != u.ID {
			t.Errorf("approved members = %d, want 1", len(members))
		}

		byID, err := store.GetUsersByIDs(ctx, []string{u.ID, emp.ID, "ghost"})
		if err != nil {
			t.Fatalf("GetUsersByIDs failed: %v", err)
		}
		if len(byID) != 2 {
			t.Errorf("GetUsersByIDs returned %d users, want 2", len(byID))
		}
	})

	t.Run("UpdateUser on missing user", func(t *testing.T) {
		ghost := models.NewUser("Ghost", "+919800000009", "hash", models.RoleMember)
		if err := store.UpdateUser(ctx, ghost); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestInTx(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("rollback on error", func(t *testing.T) {
		g := newTestGroup(t, "U1")
		boom := errors.New("boom")
		err := store.InTx(ctx, func(tx storage.Store) error {
			if err := tx.CreateGroup(ctx, g); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if _, err := store.GetGroup(ctx, g.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("group survived rollback: %v", err)
		}
	})

	t.Run("commit", func(t *testing.T) {
		g := newTestGroup(t, "U1")
		err := store.InTx(ctx, func(tx storage.Store) error {
			if err := tx.CreateGroup(ctx, g); err != nil {
				return err
			}
			return tx.CreateRound(ctx, models.NewBiddingRound(g, 1))
		})
		if err != nil {
			t.Fatalf("InTx failed: %v", err)
		}
		if _, err := store.GetRoundByMonth(ctx, g.ID, 1); err != nil {
			t.Errorf("round not committed: %v", err)
		}
	})
}
