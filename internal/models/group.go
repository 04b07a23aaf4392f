package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/errs"
)

// GroupStatus is the lifecycle state of a chit group.
type GroupStatus string

const (
	GroupStatusDraft     GroupStatus = "DRAFT"
	GroupStatusActive    GroupStatus = "ACTIVE"
	GroupStatusCompleted GroupStatus = "COMPLETED"
)

// groupTransitions lists the allowed next states for each group status.
var groupTransitions = map[GroupStatus][]GroupStatus{
	GroupStatusDraft:  {GroupStatusActive},
	GroupStatusActive: {GroupStatusCompleted},
}

// CanTransitionTo reports whether the group may move from s to next.
func (s GroupStatus) CanTransitionTo(next GroupStatus) bool {
	for _, allowed := range groupTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known group status.
func (s GroupStatus) Valid() bool {
	switch s {
	case GroupStatusDraft, GroupStatusActive, GroupStatusCompleted:
		return true
	}
	return false
}

// MemberStatus is a member's standing within one group.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "ACTIVE"
	MemberStatusDefaulted MemberStatus = "DEFAULTED"
)

// Member is a user's participation record within one group.
type Member struct {
	// UserID references the owning User.
	UserID string

	// HasWon is set once, when the member wins a bidding round.
	HasWon bool

	// WinningMonth is the month the member won, 0 if not yet won.
	WinningMonth int

	Status MemberStatus

	JoinedAt time.Time
}

// Group is a chit group: a fixed cohort that pools MonthlyContribution every
// month and awards the pool to one member per month.
//
// TotalMembers must equal TotalMonths. Each month produces exactly one winner
// and a member can win once, so the group completes when every member has won.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	Name string

	TotalMembers int
	TotalMonths  int

	MonthlyContribution decimal.Decimal

	// Members is ordered by join time and never longer than TotalMembers.
	Members []Member

	// CurrentMonth starts at 1 and only advances when a round is finalized.
	CurrentMonth int

	Status GroupStatus

	// StartDate is set on activation, EndDate on completion.
	StartDate *time.Time
	EndDate   *time.Time

	CreatedAt time.Time

	// Version is bumped by the store on every update.
	Version int64
}

// NewGroup validates the parameters and returns a DRAFT group at month 1.
func NewGroup(name string, totalMembers, totalMonths int, monthlyContribution decimal.Decimal) (*Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.Validation("group name is required")
	}
	if totalMembers < 2 {
		return nil, errs.Validation("total members must be at least 2, got %d", totalMembers)
	}
	if totalMembers != totalMonths {
		return nil, errs.Validation("total members (%d) must equal total months (%d)", totalMembers, totalMonths)
	}
	if !monthlyContribution.IsPositive() {
		return nil, errs.Validation("monthly contribution must be positive, got %s", monthlyContribution)
	}

	return &Group{
		Name:                name,
		TotalMembers:        totalMembers,
		TotalMonths:         totalMonths,
		MonthlyContribution: monthlyContribution,
		CurrentMonth:        1,
		Status:              GroupStatusDraft,
	}, nil
}

// Member returns the member record for userID.
func (g *Group) Member(userID string) (*Member, bool) {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i], true
		}
	}
	return nil, false
}

// IsActiveMember reports whether userID is an ACTIVE member of the group.
func (g *Group) IsActiveMember(userID string) bool {
	m, ok := g.Member(userID)
	return ok && m.Status == MemberStatusActive
}

// CanBid reports whether userID may bid: an ACTIVE member who has not yet won.
func (g *Group) CanBid(userID string) bool {
	m, ok := g.Member(userID)
	return ok && m.Status == MemberStatusActive && !m.HasWon
}

// ActiveMembers returns the members with ACTIVE status.
func (g *Group) ActiveMembers() []Member {
	var active []Member
	for _, m := range g.Members {
		if m.Status == MemberStatusActive {
			active = append(active, m)
		}
	}
	return active
}

// Winners returns the number of members who have won a round.
func (g *Group) Winners() int {
	n := 0
	for _, m := range g.Members {
		if m.HasWon {
			n++
		}
	}
	return n
}

// IsFull reports whether the group has reached TotalMembers.
func (g *Group) IsFull() bool {
	return len(g.Members) >= g.TotalMembers
}

// MonthlyPool is TotalMonths x MonthlyContribution, the figure reports use.
func (g *Group) MonthlyPool() decimal.Decimal {
	return g.MonthlyContribution.Mul(decimal.NewFromInt(int64(g.TotalMonths)))
}

// RoundPool is TotalMembers x MonthlyContribution, the amount auctioned each month.
func (g *Group) RoundPool() decimal.Decimal {
	return g.MonthlyContribution.Mul(decimal.NewFromInt(int64(g.TotalMembers)))
}

// AddMember appends userID as an ACTIVE member. Only DRAFT groups accept members.
func (g *Group) AddMember(userID string, now time.Time) error {
	if g.Status != GroupStatusDraft {
		return errs.InvalidState("members can only be added to draft groups (status %s)", g.Status)
	}
	if g.IsFull() {
		return errs.New(errs.KindCapacityExceeded, "group is full (%d/%d)", len(g.Members), g.TotalMembers)
	}
	if _, ok := g.Member(userID); ok {
		return errs.New(errs.KindDuplicateMember, "user %s is already a member", userID)
	}

	g.Members = append(g.Members, Member{
		UserID:   userID,
		Status:   MemberStatusActive,
		JoinedAt: now,
	})
	return nil
}

// Activate moves a full DRAFT group to ACTIVE.
func (g *Group) Activate(now time.Time) error {
	if !g.Status.CanTransitionTo(GroupStatusActive) {
		return errs.InvalidState("cannot activate group in status %s", g.Status)
	}
	if len(g.Members) != g.TotalMembers {
		return errs.InvalidState("group needs %d members to activate, has %d", g.TotalMembers, len(g.Members))
	}

	g.Status = GroupStatusActive
	g.StartDate = &now
	return nil
}

// RecordWin marks userID as the winner of month.
func (g *Group) RecordWin(userID string, month int) error {
	m, ok := g.Member(userID)
	if !ok {
		return errs.NotFound("user %s is not a member of group %s", userID, g.ID)
	}
	if m.HasWon {
		return errs.InvalidState("user %s already won month %d", userID, m.WinningMonth)
	}

	m.HasWon = true
	m.WinningMonth = month
	return nil
}

// AdvanceMonth moves the group past its current month. Finishing the last
// month completes the group and returns true.
func (g *Group) AdvanceMonth(now time.Time) (bool, error) {
	if g.Status != GroupStatusActive {
		return false, errs.InvalidState("cannot advance month of group in status %s", g.Status)
	}

	if g.CurrentMonth >= g.TotalMonths {
		g.Status = GroupStatusCompleted
		g.EndDate = &now
		return true, nil
	}

	g.CurrentMonth++
	return false, nil
}
