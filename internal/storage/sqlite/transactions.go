package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

const transactionColumns = `id, group_id, user_id, bidding_round_id, month_number, type,
	amount, payment_mode, handled_by, handled_at, remarks, created_at`

// AppendTransaction persists a new ledger entry.
func (s *SQLiteStore) AppendTransaction(ctx context.Context, t *models.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.GroupID, t.UserID, t.BiddingRoundID, t.MonthNumber, string(t.Type),
		t.Amount, string(t.PaymentMode), t.HandledBy, toNanos(t.HandledAt), t.Remarks, toNanos(t.CreatedAt),
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactions retrieves ledger entries matching filter, oldest first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	var (
		conds []string
		args  []any
	)
	if filter.GroupID != "" {
		conds = append(conds, "group_id = ?")
		args = append(args, filter.GroupID)
	}
	if filter.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.MonthNumber > 0 {
		conds = append(conds, "month_number = ?")
		args = append(args, filter.MonthNumber)
	}
	if filter.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.HandledBy != "" {
		conds = append(conds, "handled_by = ?")
		args = append(args, filter.HandledBy)
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions`+whereClause(conds)+
			` ORDER BY handled_at, created_at, rowid`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		var (
			t         models.Transaction
			typ, mode string
			handledAt int64
			createdAt int64
		)
		if err := rows.Scan(&t.ID, &t.GroupID, &t.UserID, &t.BiddingRoundID, &t.MonthNumber, &typ,
			&t.Amount, &mode, &t.HandledBy, &handledAt, &t.Remarks, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = models.TransactionType(typ)
		t.PaymentMode = models.PaymentMode(mode)
		t.HandledAt = fromNanos(handledAt)
		t.CreatedAt = fromNanos(createdAt)
		txns = append(txns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txns, nil
}

// SumContributions totals one member's contributions for a group-month.
// Amounts are stored as decimal text, so the sum is taken here rather than in SQL.
func (s *SQLiteStore) SumContributions(ctx context.Context, groupID, userID string, month int) (decimal.Decimal, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT amount FROM transactions
		 WHERE group_id = ? AND user_id = ? AND month_number = ? AND type = ?`,
		groupID, userID, month, string(models.TransactionContribution),
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum contributions: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan contribution amount: %w", err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("failed to iterate contributions: %w", err)
	}
	return total, nil
}
