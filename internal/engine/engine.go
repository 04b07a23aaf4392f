// Package engine implements the chit group lifecycle: group formation,
// contribution logging, monthly bidding rounds and the reports that
// reconcile them against the ledger.
//
// Every operation takes the caller as an explicit Actor. Mutations run
// their checks and writes inside one storage transaction. Events and metrics
// are emitted only after the transaction commits.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/internal/events"
	"github.com/mmynk/chitwiser/internal/metrics"
	"github.com/mmynk/chitwiser/internal/models"
	"github.com/mmynk/chitwiser/internal/storage"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role models.Role
}

// IsAdmin reports whether the actor is an ADMIN.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// IsStaff reports whether the actor is an ADMIN or EMPLOYEE.
func (a Actor) IsStaff() bool { return a.Role.IsStaff() }

// CanView returns FORBIDDEN unless the actor may read group g. Staff see
// every group; members only the ones they belong to.
func (a Actor) CanView(g *models.Group) error {
	if a.IsStaff() {
		return nil
	}
	if _, ok := g.Member(a.ID); ok {
		return nil
	}
	return errs.Forbidden("not a member of group %s", g.ID)
}

// Approver answers eligibility questions about accounts.
type Approver interface {
	// IsApprovedMember reports whether userID may be enrolled in a group.
	IsApprovedMember(ctx context.Context, userID string) (bool, error)

	// IsApprovedEmployee reports whether userID may handle money
	// (an approved employee or admin).
	IsApprovedEmployee(ctx context.Context, userID string) (bool, error)
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Engine coordinates the group aggregate, the ledger and bidding rounds.
type Engine struct {
	store      storage.Store
	approver   Approver
	clock      Clock
	events     events.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	payoutMode models.PaymentMode
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the wall clock.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithPublisher sets where domain events go. The default discards them.
func WithPublisher(p events.Publisher) Option {
	return func(e *Engine) { e.events = p }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithDefaultPayoutMode sets the payment mode recorded for winner payouts
// when FinalizeRound is called without one.
func WithDefaultPayoutMode(m models.PaymentMode) Option {
	return func(e *Engine) { e.payoutMode = m }
}

// New creates an Engine over store.
func New(store storage.Store, approver Approver, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		approver:   approver,
		clock:      ClockFunc(func() time.Time { return time.Now().UTC() }),
		events:     events.Nop{},
		logger:     slog.Default(),
		payoutMode: models.PaymentModeCash,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) now() time.Time {
	return e.clock.Now().UTC()
}

// publish delivers events after commit. Failures are logged, not returned.
func (e *Engine) publish(ctx context.Context, evs ...events.Event) {
	for _, ev := range evs {
		if err := e.events.Publish(ctx, ev); err != nil {
			e.logger.Warn("Failed to publish event",
				"type", ev.Type,
				"group_id", ev.GroupID,
				"error", err,
			)
		}
	}
}

// fail records a rejected operation and returns err unchanged.
func (e *Engine) fail(op string, err error) error {
	if kind := errs.KindOf(err); kind != "" {
		e.metrics.Rejected(op, string(kind))
		e.logger.Debug("Operation rejected", "operation", op, "kind", kind, "error", err)
	}
	return err
}

func requireAdmin(a Actor) error {
	if !a.IsAdmin() {
		return errs.Forbidden("admin role required")
	}
	return nil
}

func requireStaff(a Actor) error {
	if !a.IsStaff() {
		return errs.Forbidden("employee or admin role required")
	}
	return nil
}

// storeErr converts storage sentinels into domain errors. what names the
// record for the message.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return errs.NotFound("%s not found", what)
	case errors.Is(err, storage.ErrConflict):
		return errs.New(errs.KindConflict, "%s was modified concurrently, retry", what)
	case errors.Is(err, storage.ErrDuplicate):
		return errs.New(errs.KindConflict, "%s already exists", what)
	}
	if errs.KindOf(err) != "" {
		return err
	}
	return fmt.Errorf("failed to access %s: %w", what, err)
}

func loadGroup(ctx context.Context, s storage.Store, groupID string) (*models.Group, error) {
	g, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storeErr(err, "group "+groupID)
	}
	return g, nil
}

func loadRound(ctx context.Context, s storage.Store, roundID string) (*models.BiddingRound, error) {
	r, err := s.GetRound(ctx, roundID)
	if err != nil {
		return nil, storeErr(err, "bidding round "+roundID)
	}
	return r, nil
}

// canViewGroup loads groupID and checks that actor may read it.
func canViewGroup(ctx context.Context, s storage.Store, actor Actor, groupID string) error {
	g, err := loadGroup(ctx, s, groupID)
	if err != nil {
		return err
	}
	return actor.CanView(g)
}
