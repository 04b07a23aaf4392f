package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/models"
)

// PaymentStatus describes how much of the current month a member has paid.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPartial PaymentStatus = "PARTIAL"
	PaymentPaid    PaymentStatus = "PAID"
)

// LedgerEntry is one line of a member's contribution or payout history.
type LedgerEntry struct {
	TransactionID string
	MonthNumber   int
	Amount        decimal.Decimal
	PaymentMode   models.PaymentMode
	HandledBy     string
	HandledAt     time.Time
}

// GroupSummary is the financial picture of one group.
type GroupSummary struct {
	GroupID      string
	Name         string
	Status       models.GroupStatus
	CurrentMonth int
	TotalMonths  int
	TotalMembers int
	Winners      int

	MonthlyContribution decimal.Decimal

	// MonthlyPool is TotalMonths x MonthlyContribution.
	MonthlyPool decimal.Decimal

	// TotalCollected is the sum of every contribution to the group.
	TotalCollected decimal.Decimal

	// CurrentMonthCollection is TotalCollected restricted to CurrentMonth.
	CurrentMonthCollection decimal.Decimal

	// TotalExpectedTillNow is MonthlyPool - TotalCollected.
	TotalExpectedTillNow decimal.Decimal

	// TotalRotated is Winners x MonthlyPool.
	TotalRotated decimal.Decimal

	// TotalPaidOut is the sum of winner payouts written to the ledger.
	TotalPaidOut decimal.Decimal
}

// MemberGroupSummary is one member's standing in one group.
type MemberGroupSummary struct {
	GroupID      string
	GroupName    string
	GroupStatus  models.GroupStatus
	UserID       string
	MemberStatus models.MemberStatus
	CurrentMonth int

	HasWon       bool
	WinningMonth int

	TotalPaid decimal.Decimal

	// ExpectedTillNow is CurrentMonth x MonthlyContribution.
	ExpectedTillNow decimal.Decimal

	// PendingAmount is ExpectedTillNow - TotalPaid, never negative.
	PendingAmount decimal.Decimal

	TotalReceived decimal.Decimal

	ContributionHistory []LedgerEntry
	Payouts             []LedgerEntry
}

// MemberSummary is one user's standing across every group they belong to.
type MemberSummary struct {
	UserID        string
	TotalPaid     decimal.Decimal
	TotalReceived decimal.Decimal
	Groups        []MemberGroupSummary
}

// PendingMember is one row of the pending-for-month report.
type PendingMember struct {
	UserID             string
	TotalPaidThisMonth decimal.Decimal
	RemainingAmount    decimal.Decimal
	PaymentStatus      PaymentStatus
}

// IsPending reports whether the member still owes money this month.
func (p PendingMember) IsPending() bool {
	return p.RemainingAmount.IsPositive()
}

// PendingReport lists what each active member still owes for a month.
type PendingReport struct {
	GroupID             string
	MonthNumber         int
	MonthlyContribution decimal.Decimal
	Members             []PendingMember
	PendingCount        int
	TotalRemaining      decimal.Decimal
}

// SummarizeGroup folds a group's ledger into its financial summary.
// Entries belonging to other groups are ignored.
func SummarizeGroup(g *models.Group, txns []*models.Transaction) GroupSummary {
	s := GroupSummary{
		GroupID:                g.ID,
		Name:                   g.Name,
		Status:                 g.Status,
		CurrentMonth:           g.CurrentMonth,
		TotalMonths:            g.TotalMonths,
		TotalMembers:           g.TotalMembers,
		Winners:                g.Winners(),
		MonthlyContribution:    g.MonthlyContribution,
		MonthlyPool:            g.MonthlyPool(),
		TotalCollected:         decimal.Zero,
		CurrentMonthCollection: decimal.Zero,
		TotalPaidOut:           decimal.Zero,
	}

	for _, t := range txns {
		if t.GroupID != g.ID {
			continue
		}
		switch t.Type {
		case models.TransactionContribution:
			s.TotalCollected = s.TotalCollected.Add(t.Amount)
			if t.MonthNumber == g.CurrentMonth {
				s.CurrentMonthCollection = s.CurrentMonthCollection.Add(t.Amount)
			}
		case models.TransactionWinnerPayout:
			s.TotalPaidOut = s.TotalPaidOut.Add(t.Amount)
		}
	}

	s.TotalExpectedTillNow = s.MonthlyPool.Sub(s.TotalCollected)
	s.TotalRotated = s.MonthlyPool.Mul(decimal.NewFromInt(int64(s.Winners)))
	return s
}

// SummarizeMemberInGroup folds userID's entries in group g.
func SummarizeMemberInGroup(g *models.Group, userID string, txns []*models.Transaction) MemberGroupSummary {
	s := MemberGroupSummary{
		GroupID:       g.ID,
		GroupName:     g.Name,
		GroupStatus:   g.Status,
		UserID:        userID,
		CurrentMonth:  g.CurrentMonth,
		TotalPaid:     decimal.Zero,
		TotalReceived: decimal.Zero,
	}
	if m, ok := g.Member(userID); ok {
		s.MemberStatus = m.Status
		s.HasWon = m.HasWon
		s.WinningMonth = m.WinningMonth
	}

	for _, t := range sortedByHandledAt(txns) {
		if t.GroupID != g.ID || t.UserID != userID {
			continue
		}
		entry := LedgerEntry{
			TransactionID: t.ID,
			MonthNumber:   t.MonthNumber,
			Amount:        t.Amount,
			PaymentMode:   t.PaymentMode,
			HandledBy:     t.HandledBy,
			HandledAt:     t.HandledAt,
		}
		switch t.Type {
		case models.TransactionContribution:
			s.TotalPaid = s.TotalPaid.Add(t.Amount)
			s.ContributionHistory = append(s.ContributionHistory, entry)
		case models.TransactionWinnerPayout:
			s.TotalReceived = s.TotalReceived.Add(t.Amount)
			s.Payouts = append(s.Payouts, entry)
		}
	}

	s.ExpectedTillNow = g.MonthlyContribution.Mul(decimal.NewFromInt(int64(g.CurrentMonth)))
	s.PendingAmount = decimal.Max(decimal.Zero, s.ExpectedTillNow.Sub(s.TotalPaid))
	return s
}

// SummarizeMember folds userID's entries across groups.
func SummarizeMember(userID string, groups []*models.Group, txns []*models.Transaction) MemberSummary {
	s := MemberSummary{
		UserID:        userID,
		TotalPaid:     decimal.Zero,
		TotalReceived: decimal.Zero,
	}
	for _, g := range groups {
		gs := SummarizeMemberInGroup(g, userID, txns)
		s.TotalPaid = s.TotalPaid.Add(gs.TotalPaid)
		s.TotalReceived = s.TotalReceived.Add(gs.TotalReceived)
		s.Groups = append(s.Groups, gs)
	}
	return s
}

// PendingForMonth reports, for every ACTIVE member, what they have paid in
// the group's current month and what remains.
func PendingForMonth(g *models.Group, txns []*models.Transaction) PendingReport {
	paid := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if t.GroupID != g.ID || t.Type != models.TransactionContribution || t.MonthNumber != g.CurrentMonth {
			continue
		}
		paid[t.UserID] = paid[t.UserID].Add(t.Amount)
	}

	r := PendingReport{
		GroupID:             g.ID,
		MonthNumber:         g.CurrentMonth,
		MonthlyContribution: g.MonthlyContribution,
		TotalRemaining:      decimal.Zero,
	}
	for _, m := range g.ActiveMembers() {
		p := paid[m.UserID]
		remaining := decimal.Max(decimal.Zero, g.MonthlyContribution.Sub(p))

		row := PendingMember{
			UserID:             m.UserID,
			TotalPaidThisMonth: p,
			RemainingAmount:    remaining,
			PaymentStatus:      paymentStatus(p, remaining),
		}
		if row.IsPending() {
			r.PendingCount++
			r.TotalRemaining = r.TotalRemaining.Add(remaining)
		}
		r.Members = append(r.Members, row)
	}
	return r
}

func paymentStatus(paid, remaining decimal.Decimal) PaymentStatus {
	switch {
	case !remaining.IsPositive():
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentPending
	}
}

// sortedByHandledAt returns a chronological copy of txns.
func sortedByHandledAt(txns []*models.Transaction) []*models.Transaction {
	sorted := make([]*models.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].HandledAt.Before(sorted[j].HandledAt)
	})
	return sorted
}

// DashboardStats is the operator-wide picture across every group.
type DashboardStats struct {
	TotalGroups    int
	GroupsByStatus map[models.GroupStatus]int

	// ActiveMembers counts distinct users enrolled in ACTIVE groups.
	ActiveMembers int

	TotalCollected decimal.Decimal
	TotalPaidOut   decimal.Decimal
}

// SummarizeDashboard folds every group and ledger entry into operator totals.
func SummarizeDashboard(groups []*models.Group, txns []*models.Transaction) DashboardStats {
	s := DashboardStats{
		TotalGroups:    len(groups),
		GroupsByStatus: make(map[models.GroupStatus]int),
		TotalCollected: decimal.Zero,
		TotalPaidOut:   decimal.Zero,
	}

	enrolled := make(map[string]struct{})
	for _, g := range groups {
		s.GroupsByStatus[g.Status]++
		if g.Status != models.GroupStatusActive {
			continue
		}
		for _, m := range g.Members {
			enrolled[m.UserID] = struct{}{}
		}
	}
	s.ActiveMembers = len(enrolled)

	for _, t := range txns {
		switch t.Type {
		case models.TransactionContribution:
			s.TotalCollected = s.TotalCollected.Add(t.Amount)
		case models.TransactionWinnerPayout:
			s.TotalPaidOut = s.TotalPaidOut.Add(t.Amount)
		}
	}
	return s
}
