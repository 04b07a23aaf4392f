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

// CreateGroupInput holds the parameters of a new group.
type CreateGroupInput struct {
	Name                string
	TotalMembers        int
	TotalMonths         int
	MonthlyContribution decimal.Decimal
}

// CreateGroup creates a DRAFT group at month 1.
func (e *Engine) CreateGroup(ctx context.Context, actor Actor, in CreateGroupInput) (*models.Group, error) {
	const op = "CreateGroup"
	if err := requireAdmin(actor); err != nil {
		return nil, e.fail(op, err)
	}

	g, err := models.NewGroup(in.Name, in.TotalMembers, in.TotalMonths, in.MonthlyContribution)
	if err != nil {
		return nil, e.fail(op, err)
	}
	g.CreatedAt = e.now()

	if err := e.store.CreateGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	e.logger.Info("Group created",
		"group_id", g.ID,
		"name", g.Name,
		"total_members", g.TotalMembers,
		"monthly_contribution", g.MonthlyContribution.String(),
		"created_by", actor.ID,
	)
	e.metrics.GroupTransition(string(models.GroupStatusDraft))
	e.publish(ctx, events.New(events.GroupCreated, g.ID, g.CreatedAt, map[string]string{
		"name":                 g.Name,
		"total_members":        strconv.Itoa(g.TotalMembers),
		"monthly_contribution": g.MonthlyContribution.String(),
	}))
	return g, nil
}

// AddMember enrolls an approved member into a DRAFT group.
//
// Errors, in the order they are checked: INVALID_STATE if the group is not
// DRAFT, CAPACITY_EXCEEDED if it is full, NOT_ELIGIBLE if the user is not an
// approved member, DUPLICATE_MEMBER if the user is already enrolled.
func (e *Engine) AddMember(ctx context.Context, actor Actor, groupID, userID string) (*models.Group, error) {
	const op = "AddMember"
	if err := requireAdmin(actor); err != nil {
		return nil, e.fail(op, err)
	}
	if userID == "" {
		return nil, e.fail(op, errs.Validation("user id is required"))
	}

	g, err := loadGroup(ctx, e.store, groupID)
	if err != nil {
		return nil, e.fail(op, err)
	}
	if g.Status != models.GroupStatusDraft {
		return nil, e.fail(op, errs.InvalidState("members can only be added to draft groups (status %s)", g.Status))
	}
	if g.IsFull() {
		return nil, e.fail(op, errs.New(errs.KindCapacityExceeded, "group is full (%d/%d)", len(g.Members), g.TotalMembers))
	}

	approved, err := e.approver.IsApprovedMember(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check member approval: %w", err)
	}
	if !approved {
		return nil, e.fail(op, errs.New(errs.KindNotEligible, "user %s is not an approved member", userID))
	}

	now := e.now()
	err = e.store.InTx(ctx, func(tx storage.Store) error {
		g, err = loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if err := g.AddMember(userID, now); err != nil {
			return err
		}
		return storeErr(tx.UpdateGroup(ctx, g), "group "+groupID)
	})
	if err != nil {
		return nil, e.fail(op, err)
	}

	e.logger.Info("Member added",
		"group_id", g.ID,
		"user_id", userID,
		"members", len(g.Members),
		"total_members", g.TotalMembers,
	)
	e.publish(ctx, events.New(events.MemberAdded, g.ID, now, map[string]string{
		"user_id": userID,
		"members": strconv.Itoa(len(g.Members)),
	}))
	return g, nil
}

// ActivateGroup moves a full DRAFT group to ACTIVE and seeds the PENDING
// bidding round for month 1.
func (e *Engine) ActivateGroup(ctx context.Context, actor Actor, groupID string) (*models.Group, error) {
	const op = "ActivateGroup"
	if err := requireAdmin(actor); err != nil {
		return nil, e.fail(op, err)
	}

	var g *models.Group
	now := e.now()
	err := e.store.InTx(ctx, func(tx storage.Store) error {
		var err error
		g, err = loadGroup(ctx, tx, groupID)
		if err != nil {
			return err
		}
		if err := g.Activate(now); err != nil {
			return err
		}
		if err := tx.UpdateGroup(ctx, g); err != nil {
			return storeErr(err, "group "+groupID)
		}
		return e.seedRound(ctx, tx, g, now)
	})
	if err != nil {
		return nil, e.fail(op, err)
	}

	e.logger.Info("Group activated", "group_id", g.ID, "activated_by", actor.ID)
	e.metrics.GroupTransition(string(models.GroupStatusActive))
	e.publish(ctx, events.New(events.GroupActivated, g.ID, now, nil))
	return g, nil
}

// GetGroup returns a group with its members. Members may only read groups
// they belong to.
func (e *Engine) GetGroup(ctx context.Context, actor Actor, groupID string) (*models.Group, error) {
	g, err := loadGroup(ctx, e.store, groupID)
	if err != nil {
		return nil, err
	}
	if err := actor.CanView(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGroups returns groups matching filter. Members only see groups they
// belong to.
func (e *Engine) ListGroups(ctx context.Context, actor Actor, filter storage.GroupFilter) ([]*models.Group, error) {
	if !actor.IsStaff() {
		filter.MemberID = actor.ID
	}
	groups, err := e.store.ListGroups(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// advanceMonth moves g past its current month inside tx. Finishing the last
// month completes the group; otherwise the next month's round is seeded.
// Only round finalization calls this.
func (e *Engine) advanceMonth(ctx context.Context, tx storage.Store, g *models.Group, now time.Time) (bool, error) {
	completed, err := g.AdvanceMonth(now)
	if err != nil {
		return false, err
	}
	if err := tx.UpdateGroup(ctx, g); err != nil {
		return false, storeErr(err, "group "+g.ID)
	}
	if completed {
		return true, nil
	}
	return false, e.seedRound(ctx, tx, g, now)
}

// seedRound creates the PENDING round for g's current month.
func (e *Engine) seedRound(ctx context.Context, tx storage.Store, g *models.Group, now time.Time) error {
	r := models.NewBiddingRound(g, g.CurrentMonth)
	r.CreatedAt = now
	if err := tx.CreateRound(ctx, r); err != nil {
		return storeErr(err, fmt.Sprintf("bidding round for month %d", g.CurrentMonth))
	}
	return nil
}
