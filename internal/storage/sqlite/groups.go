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

const groupColumns = `id, name, total_members, total_months, monthly_contribution,
	current_month, status, start_date, end_date, created_at, version`

// CreateGroup persists a new group and its members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, g *models.Group) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	g.Version = 1

	return s.InTx(ctx, func(tx storage.Store) error {
		ts := tx.(*SQLiteStore)
		_, err := ts.q.ExecContext(ctx,
			`INSERT INTO groups (`+groupColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.TotalMembers, g.TotalMonths, g.MonthlyContribution,
			g.CurrentMonth, string(g.Status), nullNanos(g.StartDate), nullNanos(g.EndDate),
			toNanos(g.CreatedAt), g.Version,
		)
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
		return ts.insertMembers(ctx, g)
	})
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	g, err := scanGroup(s.q.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`, groupID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	if g.Members, err = s.loadMembers(ctx, g.ID); err != nil {
		return nil, err
	}
	return g, nil
}

// ListGroups returns groups ordered by creation time.
func (s *SQLiteStore) ListGroups(ctx context.Context, filter storage.GroupFilter) ([]*models.Group, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.MemberID != "" {
		conds = append(conds, "id IN (SELECT group_id FROM group_members WHERE user_id = ?)")
		args = append(args, filter.MemberID)
	}

	rows, err := s.q.QueryContext(ctx,
		`SELECT `+groupColumns+` FROM groups`+whereClause(conds)+` ORDER BY created_at, id`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Members are loaded after the group rows are closed; the pool has one connection.
	for _, g := range groups {
		if g.Members, err = s.loadMembers(ctx, g.ID); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// UpdateGroup writes the group and replaces its member list.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, g *models.Group) error {
	return s.InTx(ctx, func(tx storage.Store) error {
		ts := tx.(*SQLiteStore)
		res, err := ts.q.ExecContext(ctx,
			`UPDATE groups
			 SET name = ?, current_month = ?, status = ?, start_date = ?, end_date = ?, version = version + 1
			 WHERE id = ? AND version = ?`,
			g.Name, g.CurrentMonth, string(g.Status), nullNanos(g.StartDate), nullNanos(g.EndDate),
			g.ID, g.Version,
		)
		if err != nil {
			return fmt.Errorf("failed to update group: %w", err)
		}
		if err := ts.checkVersion(ctx, res, "groups", g.ID); err != nil {
			return err
		}

		if _, err := ts.q.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", g.ID); err != nil {
			return fmt.Errorf("failed to clear group members: %w", err)
		}
		if err := ts.insertMembers(ctx, g); err != nil {
			return err
		}

		g.Version++
		return nil
	})
}

func (s *SQLiteStore) insertMembers(ctx context.Context, g *models.Group) error {
	for i, m := range g.Members {
		_, err := s.q.ExecContext(ctx,
			`INSERT INTO group_members (group_id, user_id, position, has_won, winning_month, status, joined_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			g.ID, m.UserID, i, m.HasWon, m.WinningMonth, string(m.Status), toNanos(m.JoinedAt),
		)
		if isUniqueViolation(err) {
			return storage.ErrDuplicate
		}
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) loadMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT user_id, has_won, winning_month, status, joined_at
		 FROM group_members WHERE group_id = ? ORDER BY position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var (
			m        models.Member
			status   string
			joinedAt int64
		)
		if err := rows.Scan(&m.UserID, &m.HasWon, &m.WinningMonth, &status, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.Status = models.MemberStatus(status)
		m.JoinedAt = fromNanos(joinedAt)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (*models.Group, error) {
	var (
		g         models.Group
		status    string
		startDate sql.NullInt64
		endDate   sql.NullInt64
		createdAt int64
	)
	err := row.Scan(&g.ID, &g.Name, &g.TotalMembers, &g.TotalMonths, &g.MonthlyContribution,
		&g.CurrentMonth, &status, &startDate, &endDate, &createdAt, &g.Version)
	if err != nil {
		return nil, err
	}
	g.Status = models.GroupStatus(status)
	g.StartDate = timePtr(startDate)
	g.EndDate = timePtr(endDate)
	g.CreatedAt = fromNanos(createdAt)
	return &g, nil
}
