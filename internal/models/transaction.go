package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money flowing into and out of a group.
type TransactionType string

const (
	TransactionContribution TransactionType = "CONTRIBUTION"
	TransactionWinnerPayout TransactionType = "WINNER_PAYOUT"
)

// PaymentMode is how money was handed over.
type PaymentMode string

const (
	PaymentModeCash            PaymentMode = "CASH"
	PaymentModeUPI             PaymentMode = "UPI"
	PaymentModeInternetBanking PaymentMode = "INTERNET_BANKING"
	PaymentModeCheque          PaymentMode = "CHEQUE"
)

// Valid reports whether m is one of the accepted payment modes.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeInternetBanking, PaymentModeCheque:
		return true
	}
	return false
}

// Transaction is a ledger entry. Entries are append-only: a correction is a
// new offsetting entry, never an edit.
type Transaction struct {
	// ID is the unique identifier for the entry (UUID format).
	ID string

	GroupID string
	UserID  string

	// BiddingRoundID is the round of MonthNumber this money belongs to.
	BiddingRoundID string

	MonthNumber int

	Type TransactionType

	// Amount is always positive.
	Amount decimal.Decimal

	PaymentMode PaymentMode

	// HandledBy is the employee or admin who collected or paid out the money.
	HandledBy string
	HandledAt time.Time

	// Remarks is an optional free-text note.
	Remarks string

	CreatedAt time.Time
}
