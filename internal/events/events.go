// Package events publishes domain events after state changes commit.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type names a domain event. It doubles as the middle of the NATS subject.
type Type string

const (
	GroupCreated       Type = "group.created"
	MemberAdded        Type = "group.member_added"
	GroupActivated     Type = "group.activated"
	GroupCompleted     Type = "group.completed"
	MonthAdvanced      Type = "group.month_advanced"
	ContributionLogged Type = "ledger.contribution_logged"
	RoundOpened        Type = "round.opened"
	BidPlaced          Type = "round.bid_placed"
	RoundClosed        Type = "round.closed"
	RoundFinalized     Type = "round.finalized"
)

// Event is a notification that something happened to a group.
type Event struct {
	ID         string            `json:"id"`
	Type       Type              `json:"type"`
	GroupID    string            `json:"group_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Payload    map[string]string `json:"payload,omitempty"`
}

// New returns an event with a fresh ID.
func New(typ Type, groupID string, at time.Time, payload map[string]string) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       typ,
		GroupID:    groupID,
		OccurredAt: at,
		Payload:    payload,
	}
}

// Publisher delivers events. Delivery is best effort; callers log failures
// and carry on, since the ledger is already committed.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events with the given type.
func (r *Recorder) OfType(typ Type) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
