package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

// ErrAdminPhoneTaken is returned by EnsureAdmin when the phone number already
// belongs to a non-admin account.
var ErrAdminPhoneTaken = errors.New("admin phone number belongs to a non-admin account")

// Directory answers who is approved to do what. It backs the engine's
// Approver and the admin approval workflow.
type Directory struct {
	users storage.Store
}

// NewDirectory creates a Directory over the user store.
func NewDirectory(users storage.Store) *Directory {
	return &Directory{users: users}
}

// IsApprovedMember reports whether userID is an approved MEMBER.
func (d *Directory) IsApprovedMember(ctx context.Context, userID string) (bool, error) {
	u, err := d.lookup(ctx, userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.Role == models.RoleMember && u.IsApproved(), nil
}

// IsApprovedEmployee reports whether userID is approved staff. Admins collect
// money too.
func (d *Directory) IsApprovedEmployee(ctx context.Context, userID string) (bool, error) {
	u, err := d.lookup(ctx, userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.Role.IsStaff() && u.IsApproved(), nil
}

func (d *Directory) lookup(ctx context.Context, userID string) (*models.User, error) {
	return lookupUser(ctx, d.users, userID)
}

func lookupUser(ctx context.Context, users storage.UserStore, userID string) (*models.User, error) {
	u, err := users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUser returns the account with the given ID.
func (d *Directory) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return getUser(ctx, d.users, userID)
}

func getUser(ctx context.Context, users storage.UserStore, userID string) (*models.User, error) {
	u, err := lookupUser(ctx, users, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.NotFound("user %s not found", userID)
	}
	return u, nil
}

// ListUsers returns accounts matching filter.
func (d *Directory) ListUsers(ctx context.Context, filter storage.UserFilter) ([]*models.User, error) {
	users, err := d.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Approve lets a PENDING account log in.
func (d *Directory) Approve(ctx context.Context, userID string) (*models.User, error) {
	return d.decide(ctx, userID, models.ApprovalApproved)
}

// Reject turns down a PENDING account.
func (d *Directory) Reject(ctx context.Context, userID string) (*models.User, error) {
	return d.decide(ctx, userID, models.ApprovalRejected)
}

// decide moves a PENDING account to status. The check and the write share a
// transaction so concurrent decisions cannot both land.
func (d *Directory) decide(ctx context.Context, userID string, status models.ApprovalStatus) (*models.User, error) {
	var u *models.User
	err := d.users.InTx(ctx, func(tx storage.Store) error {
		var err error
		if u, err = getUser(ctx, tx, userID); err != nil {
			return err
		}
		if u.ApprovalStatus != models.ApprovalPending {
			return errs.InvalidState("user %s is already %s", userID, u.ApprovalStatus)
		}

		u.ApprovalStatus = status
		u.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateUser(ctx, u); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// EnsureAdmin creates an approved ADMIN account for phone unless one already
// exists. It returns the account either way, or ErrAdminPhoneTaken if phone
// is registered to a member or employee.
func (d *Directory) EnsureAdmin(ctx context.Context, name, phone, password string) (*models.User, bool, error) {
	phone = NormalizePhone(phone)
	existing, err := d.users.GetUserByPhone(ctx, phone)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			return nil, false, fmt.Errorf("%w: %s is a %s", ErrAdminPhoneTaken, phone, existing.Role)
		}
		return existing, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}
	if len(password) < 8 {
		return nil, false, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := models.NewUser(name, phone, string(hash), models.RoleAdmin)
	admin.ApprovalStatus = models.ApprovalApproved
	if err := d.users.CreateUser(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, true, nil
}
