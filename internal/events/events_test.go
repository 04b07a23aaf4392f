package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestSubject(t *testing.T) {
	e := New(RoundFinalized, "g1", time.Unix(0, 0), nil)
	if got := Subject("chitwiser", e); got != "chitwiser.round.finalized.g1" {
		t.Errorf("Subject() = %q", got)
	}
}

func TestEventJSON(t *testing.T) {
	e := New(ContributionLogged, "g1", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), map[string]string{"amount": "600"})
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded["type"] != "ledger.contribution_logged" || decoded["group_id"] != "g1" {
		t.Errorf("unexpected wire form: %s", data)
	}
	if decoded["id"] == "" {
		t.Error("expected event ID")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	r.Publish(ctx, New(BidPlaced, "g1", time.Now(), nil))
	r.Publish(ctx, New(BidPlaced, "g1", time.Now(), nil))
	r.Publish(ctx, New(RoundClosed, "g1", time.Now(), nil))

	if len(r.Events()) != 3 {
		t.Errorf("Events() = %d, want 3", len(r.Events()))
	}
	if len(r.OfType(BidPlaced)) != 2 {
		t.Errorf("OfType(BidPlaced) = %d, want 2", len(r.OfType(BidPlaced)))
	}
}
