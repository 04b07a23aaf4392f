// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a versioned update lost a race: the row
	// changed after it was read.
	ErrConflict = errors.New("record was modified concurrently")

	// ErrDuplicate is returned when an insert violates a uniqueness rule.
	ErrDuplicate = errors.New("record already exists")
)

// GroupFilter narrows ListGroups. Zero values match everything.
type GroupFilter struct {
	Status   models.GroupStatus
	MemberID string
}

// TransactionFilter narrows ListTransactions. Zero values match everything.
type TransactionFilter struct {
	GroupID     string
	UserID      string
	MonthNumber int
	Type        models.TransactionType
	HandledBy   string
}

// UserFilter narrows ListUsers. Zero values match everything.
type UserFilter struct {
	Role   models.Role
	Status models.ApprovalStatus
}

// GroupStore persists groups together with their member lists.
type GroupStore interface {
	// CreateGroup inserts g, assigning ID and CreatedAt when unset.
	CreateGroup(ctx context.Context, g *models.Group) error

	// GetGroup returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	ListGroups(ctx context.Context, filter GroupFilter) ([]*models.Group, error)

	// UpdateGroup writes g if its Version still matches the stored row and
	// bumps g.Version. Returns ErrConflict on a stale version.
	UpdateGroup(ctx context.Context, g *models.Group) error
}

// LedgerStore is the append-only transaction log.
type LedgerStore interface {
	// AppendTransaction inserts t. There is no update or delete.
	AppendTransaction(ctx context.Context, t *models.Transaction) error

	// ListTransactions returns matching entries in HandledAt order.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*models.Transaction, error)

	// SumContributions totals userID's CONTRIBUTION entries for one group-month.
	SumContributions(ctx context.Context, groupID, userID string, month int) (decimal.Decimal, error)
}

// RoundStore persists bidding rounds and their bids.
type RoundStore interface {
	// CreateRound returns ErrDuplicate if the group-month already has a round.
	CreateRound(ctx context.Context, r *models.BiddingRound) error

	GetRound(ctx context.Context, roundID string) (*models.BiddingRound, error)
	GetRoundByMonth(ctx context.Context, groupID string, month int) (*models.BiddingRound, error)
	ListRounds(ctx context.Context, groupID string) ([]*models.BiddingRound, error)

	// UpdateRound is version-checked like UpdateGroup.
	UpdateRound(ctx context.Context, r *models.BiddingRound) error

	// UpsertBid stores b as the user's only bid in the round, replacing any
	// earlier one, and assigns the next Sequence number.
	UpsertBid(ctx context.Context, b *models.Bid) error

	// ListBids returns the round's bids in Sequence order.
	ListBids(ctx context.Context, roundID string) ([]*models.Bid, error)
}

// UserStore persists accounts.
type UserStore interface {
	// CreateUser returns ErrDuplicate if the phone number is taken.
	CreateUser(ctx context.Context, u *models.User) error

	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, error)

	// UpdateUser writes the mutable fields of u (name, role, approval status).
	UpdateUser(ctx context.Context, u *models.User) error
}

// Store is the full persistence surface used by the engine.
// Implementations must make InTx atomic: either every write made through the
// Store passed to fn commits, or none does.
type Store interface {
	GroupStore
	LedgerStore
	RoundStore
	UserStore

	// InTx runs fn inside one storage transaction. fn must only use the Store
	// it is given. Returning an error rolls back.
	InTx(ctx context.Context, fn func(tx Store) error) error

	// Close releases any resources held by the store.
	Close() error
}
