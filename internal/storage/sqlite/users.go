package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

const userColumns = `id, name, phone, password_hash, role, approval_status, created_at, updated_at`

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.q.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Phone,
		user.PasswordHash,
		string(user.Role),
		string(user.ApprovalStatus),
		toNanos(user.CreatedAt),
		toNanos(user.UpdatedAt),
	)

	if isUniqueViolation(err) {
		return storage.ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByPhone retrieves a user by their phone number.
func (s *SQLiteStore) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	user, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = ?`, phone,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by phone: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// ListUsers returns users matching filter, oldest first.
func (s *SQLiteStore) ListUsers(ctx context.Context, filter storage.UserFilter) ([]*models.User, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Role != "" {
		conds = append(conds, "role = ?")
		args = append(args, string(filter.Role))
	}
	if filter.Status != "" {
		conds = append(conds, "approval_status = ?")
		args = append(args, string(filter.Status))
	}

	return s.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users`+whereClause(conds)+` ORDER BY created_at, id`,
		args...,
	)
}

// GetUsersByIDs retrieves multiple users by their IDs.
// Returns a map of user ID to User object.
// Users that don't exist are omitted from the result.
func (s *SQLiteStore) GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	list, err := s.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE id IN (?`+strings.Repeat(", ?", len(ids)-1)+`)`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	for _, u := range list {
		users[u.ID] = u
	}
	return users, nil
}

// UpdateUser writes a user's name, role and approval status.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *models.User) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE users SET name = ?, role = ?, approval_status = ?, updated_at = ? WHERE id = ?`,
		user.Name, string(user.Role), string(user.ApprovalStatus), toNanos(user.UpdatedAt), user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		user                 models.User
		role, status         string
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Phone,
		&user.PasswordHash,
		&role,
		&status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = models.Role(role)
	user.ApprovalStatus = models.ApprovalStatus(status)
	user.CreatedAt = fromNanos(createdAt)
	user.UpdatedAt = fromNanos(updatedAt)
	return &user, nil
}
