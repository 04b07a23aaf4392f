package engine

import (
	"context"
	"fmt"

	"github.com/mmynk/chitwiser/internal/calculator"
	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

// Reports read the group and its ledger inside one storage transaction so
// the fold sees a single consistent snapshot.

// Dashboard is the operator overview.
type Dashboard struct {
	calculator.DashboardStats
	PendingApprovals int
}

// GetGroupSummary reports a group's collections and rotations. Staff can read
// any group; members only groups they belong to.
func (e *Engine) GetGroupSummary(ctx context.Context, actor Actor, groupID string) (calculator.GroupSummary, error) {
	var s calculator.GroupSummary
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		g, err := loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if err := actor.CanView(g); err != nil {
			return err
		}
		txns, err := tx.ListTransactions(ctx, storage.TransactionFilter{GroupID: groupID})
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		s = calculator.SummarizeGroup(g, txns)
		return nil
	})
	return s, err
}

// GetMemberGroupSummary reports one member's standing in one group.
func (e *Engine) GetMemberGroupSummary(ctx context.Context, actor Actor, groupID, userID string) (calculator.MemberGroupSummary, error) {
	var s calculator.MemberGroupSummary
	if err := canViewMember(actor, userID); err != nil {
		return s, err
	}

	err := e.store.InTx(ctx, func(tx storage.Store) error {
		g, err := loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if _, ok := g.Member(userID); !ok {
			return errs.NotFound("user %s is not a member of group %s", userID, groupID)
		}
		txns, err := tx.ListTransactions(ctx, storage.TransactionFilter{GroupID: groupID, UserID: userID})
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		s = calculator.SummarizeMemberInGroup(g, userID, txns)
		return nil
	})
	return s, err
}

// GetMemberSummary reports a member's standing across every group they
// belong to.
func (e *Engine) GetMemberSummary(ctx context.Context, actor Actor, userID string) (calculator.MemberSummary, error) {
	var s calculator.MemberSummary
	if err := canViewMember(actor, userID); err != nil {
		return s, err
	}

	err := e.store.InTx(ctx, func(tx storage.Store) error {
		groups, err := tx.ListGroups(ctx, storage.GroupFilter{MemberID: userID})
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		txns, err := tx.ListTransactions(ctx, storage.TransactionFilter{UserID: userID})
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		s = calculator.SummarizeMember(userID, groups, txns)
		return nil
	})
	return s, err
}

// GetPendingForMonth lists what each active member still owes for the
// group's current month. Staff only.
func (e *Engine) GetPendingForMonth(ctx context.Context, actor Actor, groupID string) (calculator.PendingReport, error) {
	var r calculator.PendingReport
	if err := requireStaff(actor); err != nil {
		return r, err
	}

	err := e.store.InTx(ctx, func(tx storage.Store) error {
		g, err := loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		txns, err := tx.ListTransactions(ctx, storage.TransactionFilter{
			GroupID:     groupID,
			MonthNumber: g.CurrentMonth,
			Type:        models.TransactionContribution,
		})
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		r = calculator.PendingForMonth(g, txns)
		return nil
	})
	return r, err
}

// GetDashboard reports operator-wide totals. Admin only.
func (e *Engine) GetDashboard(ctx context.Context, actor Actor) (Dashboard, error) {
	var d Dashboard
	if err := requireAdmin(actor); err != nil {
		return d, err
	}

	err := e.store.InTx(ctx, func(tx storage.Store) error {
		groups, err := tx.ListGroups(ctx, storage.GroupFilter{})
		if err != nil {
			return fmt.Errorf("failed to list groups: %w", err)
		}
		txns, err := tx.ListTransactions(ctx, storage.TransactionFilter{})
		if err != nil {
			return fmt.Errorf("failed to list transactions: %w", err)
		}
		pending, err := tx.ListUsers(ctx, storage.UserFilter{Status: models.ApprovalPending})
		if err != nil {
			return fmt.Errorf("failed to list pending users: %w", err)
		}
		d = Dashboard{
			DashboardStats:   calculator.SummarizeDashboard(groups, txns),
			PendingApprovals: len(pending),
		}
		return nil
	})
	return d, err
}

func canViewMember(actor Actor, userID string) error {
	if actor.IsStaff() || actor.ID == userID {
		return nil
	}
	return errs.Forbidden("cannot view another member's summary")
}
