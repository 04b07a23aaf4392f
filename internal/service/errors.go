package service

import (
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/chitwiser/internal/auth"
	"github.com/mmynk/chitwiser/internal/errs"
	"github.com/mmynk/chitwiser/pkg/api"
)

var errInternal = errors.New("internal error")

var kindCodes = map[errs.Kind]connect.Code{
	errs.KindValidation:       connect.CodeInvalidArgument,
	errs.KindInvalidState:     connect.CodeFailedPrecondition,
	errs.KindNotFound:         connect.CodeNotFound,
	errs.KindForbidden:        connect.CodePermissionDenied,
	errs.KindNotEligible:      connect.CodeFailedPrecondition,
	errs.KindDuplicateMember:  connect.CodeAlreadyExists,
	errs.KindCapacityExceeded: connect.CodeResourceExhausted,
	errs.KindLimitExceeded:    connect.CodeResourceExhausted,
	errs.KindNoBids:           connect.CodeFailedPrecondition,
	errs.KindAlreadyFinalized: connect.CodeAlreadyExists,
	errs.KindConflict:         connect.CodeAborted,
}

// toConnectError maps a domain error to a Connect error carrying its kind in
// the Chit-Error-Kind header and its metadata in Chit-Error-<Key> headers.
// Anything that is not a domain error is logged and reported as internal.
func toConnectError(logger *slog.Logger, procedure string, err error) error {
	var de *errs.Error
	if !errors.As(err, &de) {
		logger.Error("Internal error", "procedure", procedure, "error", err)
		return connect.NewError(connect.CodeInternal, errInternal)
	}

	code, ok := kindCodes[de.Kind]
	if !ok {
		code = connect.CodeUnknown
	}
	cerr := connect.NewError(code, errors.New(de.Msg))
	cerr.Meta().Set(api.ErrorKindHeader, string(de.Kind))
	for k, v := range de.Meta {
		cerr.Meta().Set(http.CanonicalHeaderKey(api.ErrorMetaPrefix+k), v)
	}
	return cerr
}

// authError maps authenticator failures.
func authError(logger *slog.Logger, procedure string, err error) error {
	switch {
	case errors.Is(err, auth.ErrPhoneExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidRole),
		errors.Is(err, auth.ErrMissingField):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrNotApproved):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return connect.NewError(connect.CodeUnauthenticated, err)
	}
	return toConnectError(logger, procedure, err)
}
