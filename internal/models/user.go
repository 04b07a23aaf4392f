package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is what an account may do.
type Role string

const (
	// RoleMember joins groups, pays contributions and bids.
	RoleMember Role = "MEMBER"
	// RoleEmployee collects contributions.
	RoleEmployee Role = "EMPLOYEE"
	// RoleAdmin manages groups, approvals and bidding rounds.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether r may handle money on behalf of the operator.
func (r Role) IsStaff() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// ApprovalStatus gates what a newly registered account can do.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// User represents a registered account. Members, employees and admins share
// one table and are told apart by Role. New accounts start PENDING and can
// only log in once an admin approves them.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	Name string

	// Phone is the login identifier, in E.164 format (unique).
	Phone string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	Role           Role
	ApprovalStatus ApprovalStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a PENDING user with a generated ID.
func NewUser(name, phone, passwordHash string, role Role) *User {
	now := time.Now().UTC()
	return &User{
		ID:             uuid.New().String(),
		Name:           name,
		Phone:          phone,
		PasswordHash:   passwordHash,
		Role:           role,
		ApprovalStatus: ApprovalPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// IsApproved reports whether the account has been approved.
func (u *User) IsApproved() bool {
	return u.ApprovalStatus == ApprovalApproved
}
