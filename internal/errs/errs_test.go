package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"plain error", errors.New("disk on fire"), ""},
		{"direct", Validation("bad amount"), KindValidation},
		{"wrapped", fmt.Errorf("log contribution: %w", New(KindLimitExceeded, "over")), KindLimitExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", New(KindNoBids, "round r1 has no bids"))

	if !errors.Is(err, &Error{Kind: KindNoBids}) {
		t.Error("expected errors.Is to match on kind")
	}
	if errors.Is(err, &Error{Kind: KindInvalidState}) {
		t.Error("expected errors.Is not to match a different kind")
	}
	if !Is(err, KindNoBids) {
		t.Error("expected Is to report NO_BIDS")
	}
}

func TestWithCopiesMeta(t *testing.T) {
	base := New(KindLimitExceeded, "over")
	withPaid := base.With("paid", "600")
	withBoth := withPaid.With("limit", "1000")

	if base.Meta != nil {
		t.Errorf("base meta mutated: %v", base.Meta)
	}
	if len(withPaid.Meta) != 1 {
		t.Errorf("expected 1 meta entry, got %v", withPaid.Meta)
	}
	if withBoth.Meta["paid"] != "600" || withBoth.Meta["limit"] != "1000" {
		t.Errorf("unexpected meta: %v", withBoth.Meta)
	}
	if withBoth.Error() != "LIMIT_EXCEEDED: over" {
		t.Errorf("unexpected message: %s", withBoth.Error())
	}
}
