package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid phone or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPhoneExists        = errors.New("phone already registered")
	ErrNotApproved        = errors.New("account is awaiting approval")
	ErrInvalidRole        = errors.New("only members and employees can register")
	ErrMissingField       = errors.New("name and phone are required")
)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a PENDING account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, name, phone, credential string, role models.Role) (*models.User, error) {
	name, phone = strings.TrimSpace(name), NormalizePhone(phone)
	if name == "" || phone == "" {
		return nil, ErrMissingField
	}
	if role != models.RoleMember && role != models.RoleEmployee {
		return nil, ErrInvalidRole
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(name, phone, string(hashedPassword), role)
	if err := a.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrPhoneExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the phone and password, returning the user if valid
// and approved.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, phone, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByPhone(ctx, NormalizePhone(phone))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsApproved() {
		return nil, ErrNotApproved
	}

	return user, nil
}

// NormalizePhone strips spaces and dashes so "+91 98765-43210" and
// "+919876543210" name the same account.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}
