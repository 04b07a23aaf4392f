package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money travels as a decimal string ("1025.50") to keep exact values.

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	ApprovalStatus string    `json:"approval_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type Member struct {
	UserID       string    `json:"user_id"`
	HasWon       bool      `json:"has_won"`
	WinningMonth int       `json:"winning_month,omitempty"`
	Status       string    `json:"status"`
	JoinedAt     time.Time `json:"joined_at"`
}

type Group struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	TotalMembers        int             `json:"total_members"`
	TotalMonths         int             `json:"total_months"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Members             []Member        `json:"members"`
	CurrentMonth        int             `json:"current_month"`
	Status              string          `json:"status"`
	StartDate           *time.Time      `json:"start_date,omitempty"`
	EndDate             *time.Time      `json:"end_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
}

type Transaction struct {
	ID             string          `json:"id"`
	GroupID        string          `json:"group_id"`
	UserID         string          `json:"user_id"`
	BiddingRoundID string          `json:"bidding_round_id"`
	MonthNumber    int             `json:"month_number"`
	Type           string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMode    string          `json:"payment_mode"`
	HandledBy      string          `json:"handled_by"`
	HandledAt      time.Time       `json:"handled_at"`
	Remarks        string          `json:"remarks,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type BiddingRound struct {
	ID                string          `json:"id"`
	GroupID           string          `json:"group_id"`
	MonthNumber       int             `json:"month_number"`
	Status            string          `json:"status"`
	TotalPoolAmount   decimal.Decimal `json:"total_pool_amount"`
	WinnerUserID      string          `json:"winner_user_id,omitempty"`
	WinningBidAmount  decimal.Decimal `json:"winning_bid_amount"`
	DividendPerMember decimal.Decimal `json:"dividend_per_member"`
	OperatorRemainder decimal.Decimal `json:"operator_remainder"`
	PayoutAmount      decimal.Decimal `json:"payout_amount"`
	StartedAt         *time.Time      `json:"started_at,omitempty"`
	EndedAt           *time.Time      `json:"ended_at,omitempty"`
	FinalizedAt       *time.Time      `json:"finalized_at,omitempty"`
}

type Bid struct {
	ID             string          `json:"id"`
	BiddingRoundID string          `json:"bidding_round_id"`
	UserID         string          `json:"user_id"`
	BidAmount      decimal.Decimal `json:"bid_amount"`
	SubmittedAt    time.Time       `json:"submitted_at"`
	Sequence       int64           `json:"sequence"`
}

type LedgerEntry struct {
	TransactionID string          `json:"transaction_id"`
	MonthNumber   int             `json:"month_number"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMode   string          `json:"payment_mode"`
	HandledBy     string          `json:"handled_by"`
	HandledAt     time.Time       `json:"handled_at"`
}

type GroupSummary struct {
	GroupID                string          `json:"group_id"`
	Name                   string          `json:"name"`
	Status                 string          `json:"status"`
	CurrentMonth           int             `json:"current_month"`
	TotalMonths            int             `json:"total_months"`
	TotalMembers           int             `json:"total_members"`
	Winners                int             `json:"winners"`
	MonthlyContribution    decimal.Decimal `json:"monthly_contribution"`
	MonthlyPool            decimal.Decimal `json:"monthly_pool"`
	TotalCollected         decimal.Decimal `json:"total_collected"`
	CurrentMonthCollection decimal.Decimal `json:"current_month_collection"`
	TotalExpectedTillNow   decimal.Decimal `json:"total_expected_till_now"`
	TotalRotated           decimal.Decimal `json:"total_rotated"`
	TotalPaidOut           decimal.Decimal `json:"total_paid_out"`
}

type MemberGroupSummary struct {
	GroupID             string          `json:"group_id"`
	GroupName           string          `json:"group_name"`
	GroupStatus         string          `json:"group_status"`
	UserID              string          `json:"user_id"`
	MemberStatus        string          `json:"member_status"`
	CurrentMonth        int             `json:"current_month"`
	HasWon              bool            `json:"has_won"`
	WinningMonth        int             `json:"winning_month,omitempty"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	ExpectedTillNow     decimal.Decimal `json:"expected_till_now"`
	PendingAmount       decimal.Decimal `json:"pending_amount"`
	TotalReceived       decimal.Decimal `json:"total_received"`
	ContributionHistory []LedgerEntry   `json:"contribution_history"`
	Payouts             []LedgerEntry   `json:"payouts"`
}

type PendingMember struct {
	UserID             string          `json:"user_id"`
	TotalPaidThisMonth decimal.Decimal `json:"total_paid_this_month"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	PaymentStatus      string          `json:"payment_status"`
}

// AuthService

// RegisterRequest signs up a MEMBER or EMPLOYEE; an empty Role means MEMBER.
type RegisterRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type RegisterResponse struct {
	User User `json:"user"`
}

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User User `json:"user"`
}

type ListUsersRequest struct {
	Role           string `json:"role,omitempty"`
	ApprovalStatus string `json:"approval_status,omitempty"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type ApproveUserRequest struct {
	UserID string `json:"user_id"`
}

type ApproveUserResponse struct {
	User User `json:"user"`
}

type RejectUserRequest struct {
	UserID string `json:"user_id"`
}

type RejectUserResponse struct {
	User User `json:"user"`
}

// GroupService

type CreateGroupRequest struct {
	Name                string          `json:"name"`
	TotalMembers        int             `json:"total_members"`
	TotalMonths         int             `json:"total_months"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
}

type CreateGroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group Group `json:"group"`
}

type ListGroupsRequest struct {
	Status   string `json:"status,omitempty"`
	MemberID string `json:"member_id,omitempty"`
}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type AddMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type AddMemberResponse struct {
	Group Group `json:"group"`
}

type ActivateGroupRequest struct {
	GroupID string `json:"group_id"`
}

type ActivateGroupResponse struct {
	Group Group `json:"group"`
}

// LedgerService

type LogContributionRequest struct {
	GroupID     string          `json:"group_id"`
	UserID      string          `json:"user_id"`
	MonthNumber int             `json:"month_number"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode"`
	HandledBy   string          `json:"handled_by,omitempty"`
	HandledAt   *time.Time      `json:"handled_at,omitempty"`
	Remarks     string          `json:"remarks,omitempty"`
}

type LogContributionResponse struct {
	Transaction Transaction `json:"transaction"`
}

type ListContributionsRequest struct {
	GroupID     string `json:"group_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	MonthNumber int    `json:"month_number,omitempty"`
	HandledBy   string `json:"handled_by,omitempty"`
}

type ListContributionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// BiddingService

type OpenRoundRequest struct {
	RoundID string `json:"round_id"`
}

type OpenRoundResponse struct {
	Round BiddingRound `json:"round"`
}

// PlaceBidRequest bids for UserID, or for the caller when UserID is empty.
type PlaceBidRequest struct {
	RoundID   string          `json:"round_id"`
	UserID    string          `json:"user_id,omitempty"`
	BidAmount decimal.Decimal `json:"bid_amount"`
}

type PlaceBidResponse struct {
	Bid Bid `json:"bid"`
}

type CloseRoundRequest struct {
	RoundID string `json:"round_id"`
}

type CloseRoundResponse struct {
	Round BiddingRound `json:"round"`
}

type FinalizeRoundRequest struct {
	RoundID     string `json:"round_id"`
	PaymentMode string `json:"payment_mode,omitempty"`
}

// FinalizeRoundResponse sets AlreadyFinalized when an earlier call settled
// the round; Round then holds the stored outcome.
type FinalizeRoundResponse struct {
	Round            BiddingRound `json:"round"`
	AlreadyFinalized bool         `json:"already_finalized"`
}

type GetRoundRequest struct {
	RoundID string `json:"round_id"`
}

type GetRoundResponse struct {
	Round BiddingRound `json:"round"`
	Bids  []Bid        `json:"bids"`
}

type GetCurrentRoundRequest struct {
	GroupID string `json:"group_id"`
}

type GetCurrentRoundResponse struct {
	Round BiddingRound `json:"round"`
	Bids  []Bid        `json:"bids"`
}

type ListRoundsRequest struct {
	GroupID string `json:"group_id"`
}

type ListRoundsResponse struct {
	Rounds []BiddingRound `json:"rounds"`
}

// ReportService

type GetGroupSummaryRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupSummaryResponse struct {
	Summary GroupSummary `json:"summary"`
}

// GetMemberSummaryRequest reports on UserID, or on the caller when empty.
type GetMemberSummaryRequest struct {
	UserID string `json:"user_id,omitempty"`
}

type GetMemberSummaryResponse struct {
	UserID        string               `json:"user_id"`
	TotalPaid     decimal.Decimal      `json:"total_paid"`
	TotalReceived decimal.Decimal      `json:"total_received"`
	Groups        []MemberGroupSummary `json:"groups"`
}

// GetMemberGroupSummaryRequest reports on UserID, or on the caller when empty.
type GetMemberGroupSummaryRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id,omitempty"`
}

type GetMemberGroupSummaryResponse struct {
	Summary MemberGroupSummary `json:"summary"`
}

type GetPendingForMonthRequest struct {
	GroupID string `json:"group_id"`
}

type GetPendingForMonthResponse struct {
	GroupID             string          `json:"group_id"`
	MonthNumber         int             `json:"month_number"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Members             []PendingMember `json:"members"`
	PendingCount        int             `json:"pending_count"`
	TotalRemaining      decimal.Decimal `json:"total_remaining"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	TotalGroups      int             `json:"total_groups"`
	GroupsByStatus   map[string]int  `json:"groups_by_status"`
	ActiveMembers    int             `json:"active_members"`
	PendingApprovals int             `json:"pending_approvals"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
	TotalPaidOut     decimal.Decimal `json:"total_paid_out"`
}
