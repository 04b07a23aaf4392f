package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

const roundColumns = `id, group_id, month_number, status, total_pool_amount,
	winner_user_id, winning_bid_amount, dividend_per_member, operator_remainder, payout_amount,
	started_at, ended_at, finalized_at, created_at, version`

// CreateRound persists a new bidding round.
func (s *SQLiteStore) CreateRound(ctx context.Context, r *models.BiddingRound) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	r.Version = 1

	_, err := s.q.ExecContext(ctx,
		`INSERT INTO bidding_rounds (`+roundColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GroupID, r.MonthNumber, string(r.Status), r.TotalPoolAmount,
		r.WinnerUserID, r.WinningBidAmount, r.DividendPerMember, r.OperatorRemainder, r.PayoutAmount,
		nullNanos(r.StartedAt), nullNanos(r.EndedAt), nullNanos(r.FinalizedAt), toNanos(r.CreatedAt), r.Version,
	)
	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to insert bidding round: %w", err)
	}
	return nil
}

// GetRound retrieves a bidding round by ID.
func (s *SQLiteStore) GetRound(ctx context.Context, roundID string) (*models.BiddingRound, error) {
	r, err := scanRound(s.q.QueryRowContext(ctx,
		`SELECT `+roundColumns+` FROM bidding_rounds WHERE id = ?`, roundID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bidding round: %w", err)
	}
	return r, nil
}

// GetRoundByMonth retrieves the round of one group-month.
func (s *SQLiteStore) GetRoundByMonth(ctx context.Context, groupID string, month int) (*models.BiddingRound, error) {
	r, err := scanRound(s.q.QueryRowContext(ctx,
		`SELECT `+roundColumns+` FROM bidding_rounds WHERE group_id = ? AND month_number = ?`,
		groupID, month,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bidding round: %w", err)
	}
	return r, nil
}

// ListRounds returns a group's rounds in month order.
func (s *SQLiteStore) ListRounds(ctx context.Context, groupID string) ([]*models.BiddingRound, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+roundColumns+` FROM bidding_rounds WHERE group_id = ? ORDER BY month_number`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bidding rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*models.BiddingRound
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bidding round: %w", err)
		}
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bidding rounds: %w", err)
	}
	return rounds, nil
}

// UpdateRound writes status and outcome fields if the version still matches.
func (s *SQLiteStore) UpdateRound(ctx context.Context, r *models.BiddingRound) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE bidding_rounds
		 SET status = ?, winner_user_id = ?, winning_bid_amount = ?, dividend_per_member = ?,
		     operator_remainder = ?, payout_amount = ?, started_at = ?, ended_at = ?, finalized_at = ?,
		     version = version + 1
		 WHERE id = ? AND version = ?`,
		string(r.Status), r.WinnerUserID, r.WinningBidAmount, r.DividendPerMember,
		r.OperatorRemainder, r.PayoutAmount, nullNanos(r.StartedAt), nullNanos(r.EndedAt), nullNanos(r.FinalizedAt),
		r.ID, r.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update bidding round: %w", err)
	}
	if err := s.checkVersion(ctx, res, "bidding_rounds", r.ID); err != nil {
		return err
	}
	r.Version++
	return nil
}

// UpsertBid inserts or replaces a user's bid in a round. A replacement keeps
// the bid ID but takes the new amount, timestamp and the next sequence number.
func (s *SQLiteStore) UpsertBid(ctx context.Context, b *models.Bid) error {
	return s.InTx(ctx, func(tx storage.Store) error {
		ts := tx.(*SQLiteStore)

		var maxSeq int64
		err := ts.q.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(sequence), 0) FROM bids WHERE bidding_round_id = ?",
			b.BiddingRoundID,
		).Scan(&maxSeq)
		if err != nil {
			return fmt.Errorf("failed to read bid sequence: %w", err)
		}
		b.Sequence = maxSeq + 1

		if b.ID == "" {
			b.ID = uuid.New().String()
		}
		if b.SubmittedAt.IsZero() {
			b.SubmittedAt = time.Now().UTC()
		}

		_, err = ts.q.ExecContext(ctx,
			`INSERT INTO bids (id, bidding_round_id, group_id, month_number, user_id, bid_amount, submitted_at, sequence)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (bidding_round_id, user_id) DO UPDATE SET
			     bid_amount = excluded.bid_amount,
			     submitted_at = excluded.submitted_at,
			     sequence = excluded.sequence`,
			b.ID, b.BiddingRoundID, b.GroupID, b.MonthNumber, b.UserID, b.BidAmount,
			toNanos(b.SubmittedAt), b.Sequence,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert bid: %w", err)
		}

		err = ts.q.QueryRowContext(ctx,
			"SELECT id FROM bids WHERE bidding_round_id = ? AND user_id = ?",
			b.BiddingRoundID, b.UserID,
		).Scan(&b.ID)
		if err != nil {
			return fmt.Errorf("failed to read bid id: %w", err)
		}
		return nil
	})
}

// ListBids returns a round's bids in submission order.
func (s *SQLiteStore) ListBids(ctx context.Context, roundID string) ([]*models.Bid, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, bidding_round_id, group_id, month_number, user_id, bid_amount, submitted_at, sequence
		 FROM bids WHERE bidding_round_id = ? ORDER BY sequence`,
		roundID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	defer rows.Close()

	var bids []*models.Bid
	for rows.Next() {
		var (
			b           models.Bid
			submittedAt int64
		)
		if err := rows.Scan(&b.ID, &b.BiddingRoundID, &b.GroupID, &b.MonthNumber, &b.UserID,
			&b.BidAmount, &submittedAt, &b.Sequence); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		b.SubmittedAt = fromNanos(submittedAt)
		bids = append(bids, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bids: %w", err)
	}
	return bids, nil
}

func scanRound(row rowScanner) (*models.BiddingRound, error) {
	var (
		r           models.BiddingRound
		status      string
		startedAt   sql.NullInt64
		endedAt     sql.NullInt64
		finalizedAt sql.NullInt64
		createdAt   int64
	)
	err := row.Scan(&r.ID, &r.GroupID, &r.MonthNumber, &status, &r.TotalPoolAmount,
		&r.WinnerUserID, &r.WinningBidAmount, &r.DividendPerMember, &r.OperatorRemainder, &r.PayoutAmount,
		&startedAt, &endedAt, &finalizedAt, &createdAt, &r.Version)
	if err != nil {
		return nil, err
	}
	r.Status = models.RoundStatus(status)
	r.StartedAt = timePtr(startedAt)
	r.EndedAt = timePtr(endedAt)
	r.FinalizedAt = timePtr(finalizedAt)
	r.CreatedAt = fromNanos(createdAt)
	return &r, nil
}
