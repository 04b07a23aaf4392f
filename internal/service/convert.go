package service

import (
	"github.com/mmynk/chitwiser/internal/calculator"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/pkg/api"
)

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:             u.ID,
		Name:           u.Name,
		Phone:          u.Phone,
		Role:           string(u.Role),
		ApprovalStatus: string(u.ApprovalStatus),
		CreatedAt:      u.CreatedAt,
	}
}

func toAPIGroup(g *models.Group) api.Group {
	members := make([]api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = api.Member{
			UserID:       m.UserID,
			HasWon:       m.HasWon,
			WinningMonth: m.WinningMonth,
			Status:       string(m.Status),
			JoinedAt:     m.JoinedAt,
		}
	}
	return api.Group{
		ID:                  g.ID,
		Name:                g.Name,
		TotalMembers:        g.TotalMembers,
		TotalMonths:         g.TotalMonths,
		MonthlyContribution: g.MonthlyContribution,
		Members:             members,
		CurrentMonth:        g.CurrentMonth,
		Status:              string(g.Status),
		StartDate:           g.StartDate,
		EndDate:             g.EndDate,
		CreatedAt:           g.CreatedAt,
	}
}

func toAPITransaction(t *models.Transaction) api.Transaction {
	return api.Transaction{
		ID:             t.ID,
		GroupID:        t.GroupID,
		UserID:         t.UserID,
		BiddingRoundID: t.BiddingRoundID,
		MonthNumber:    t.MonthNumber,
		Type:           string(t.Type),
		Amount:         t.Amount,
		PaymentMode:    string(t.PaymentMode),
		HandledBy:      t.HandledBy,
		HandledAt:      t.HandledAt,
		Remarks:        t.Remarks,
		CreatedAt:      t.CreatedAt,
	}
}

func toAPIRound(r *models.BiddingRound) api.BiddingRound {
	return api.BiddingRound{
		ID:                r.ID,
		GroupID:           r.GroupID,
		MonthNumber:       r.MonthNumber,
		Status:            string(r.Status),
		TotalPoolAmount:   r.TotalPoolAmount,
		WinnerUserID:      r.WinnerUserID,
		WinningBidAmount:  r.WinningBidAmount,
		DividendPerMember: r.DividendPerMember,
		OperatorRemainder: r.OperatorRemainder,
		PayoutAmount:      r.PayoutAmount,
		StartedAt:         r.StartedAt,
		EndedAt:           r.EndedAt,
		FinalizedAt:       r.FinalizedAt,
	}
}

func toAPIBids(bids []*models.Bid) []api.Bid {
	out := make([]api.Bid, len(bids))
	for i, b := range bids {
		out[i] = api.Bid{
			ID:             b.ID,
			BiddingRoundID: b.BiddingRoundID,
			UserID:         b.UserID,
			BidAmount:      b.BidAmount,
			SubmittedAt:    b.SubmittedAt,
			Sequence:       b.Sequence,
		}
	}
	return out
}

func toAPIEntries(entries []calculator.LedgerEntry) []api.LedgerEntry {
	out := make([]api.LedgerEntry, len(entries))
	for i, e := range entries {
		out[i] = api.LedgerEntry{
			TransactionID: e.TransactionID,
			MonthNumber:   e.MonthNumber,
			Amount:        e.Amount,
			PaymentMode:   string(e.PaymentMode),
			HandledBy:     e.HandledBy,
			HandledAt:     e.HandledAt,
		}
	}
	return out
}

func toAPIGroupSummary(s calculator.GroupSummary) api.GroupSummary {
	return api.GroupSummary{
		GroupID:                s.GroupID,
		Name:                   s.Name,
		Status:                 string(s.Status),
		CurrentMonth:           s.CurrentMonth,
		TotalMonths:            s.TotalMonths,
		TotalMembers:           s.TotalMembers,
		Winners:                s.Winners,
		MonthlyContribution:    s.MonthlyContribution,
		MonthlyPool:            s.MonthlyPool,
		TotalCollected:         s.TotalCollected,
		CurrentMonthCollection: s.CurrentMonthCollection,
		TotalExpectedTillNow:   s.TotalExpectedTillNow,
		TotalRotated:           s.TotalRotated,
		TotalPaidOut:           s.TotalPaidOut,
	}
}

func toAPIMemberGroupSummary(s calculator.MemberGroupSummary) api.MemberGroupSummary {
	return api.MemberGroupSummary{
		GroupID:             s.GroupID,
		GroupName:           s.GroupName,
		GroupStatus:         string(s.GroupStatus),
		UserID:              s.UserID,
		MemberStatus:        string(s.MemberStatus),
		CurrentMonth:        s.CurrentMonth,
		HasWon:              s.HasWon,
		WinningMonth:        s.WinningMonth,
		TotalPaid:           s.TotalPaid,
		ExpectedTillNow:     s.ExpectedTillNow,
		PendingAmount:       s.PendingAmount,
		TotalReceived:       s.TotalReceived,
		ContributionHistory: toAPIEntries(s.ContributionHistory),
		Payouts:             toAPIEntries(s.Payouts),
	}
}
