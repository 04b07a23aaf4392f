// Package errs defines the domain error taxonomy returned by the chit engine.
//
// Every expected domain failure carries a Kind so callers can render a distinct
// message for each (e.g. "monthly limit reached" vs "member already added").
// Storage faults are not wrapped in an *Error and should be treated as internal.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error.
type Kind string

const (
	KindValidation       Kind = "VALIDATION_ERROR"
	KindInvalidState     Kind = "INVALID_STATE"
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotEligible      Kind = "NOT_ELIGIBLE"
	KindDuplicateMember  Kind = "DUPLICATE_MEMBER"
	KindCapacityExceeded Kind = "CAPACITY_EXCEEDED"
	KindLimitExceeded    Kind = "LIMIT_EXCEEDED"
	KindNoBids           Kind = "NO_BIDS"
	KindAlreadyFinalized Kind = "ALREADY_FINALIZED"
	KindConflict         Kind = "CONFLICT"
)

// Error is a tagged domain error.
type Error struct {
	Kind Kind
	Msg  string

	// Meta holds machine-readable details, e.g. "paid" and "limit" for LIMIT_EXCEEDED.
	Meta map[string]string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// With returns a copy of e with the key/value added to Meta.
func (e *Error) With(key, value string) *Error {
	meta := make(map[string]string, len(e.Meta)+1)
	for k, v := range e.Meta {
		meta[k] = v
	}
	meta[key] = value
	return &Error{Kind: e.Kind, Msg: e.Msg, Meta: meta}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Validation returns a VALIDATION error.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// InvalidState returns a INVALID_STATE error.
func InvalidState(format string, args ...any) *Error {
	return New(KindInvalidState, format, args...)
}

// NotFound returns a NOT_FOUND error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Forbidden returns a FORBIDDEN error.
func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}
