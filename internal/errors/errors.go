// Package errors defines typed errors with categories for user-friendly reporting.
// Every failed exchange with the matrix service falls into one of three kinds:
// the request never completed (transport), the service answered with a
// non-success status (remote), or the answer could not be parsed (decode).
//
// The types wrap their cause so callers can use errors.Is / errors.As on the
// underlying failure while still classifying it with KindOf.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"

	"sportsmatrix/cli/internal/wire"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Unknown is any error outside the exchange taxonomy.
	Unknown Kind = "unknown"
	// Transport indicates the request never completed.
	Transport Kind = "transport"
	// Remote indicates the service answered with a non-success status.
	Remote Kind = "remote"
	// Decode indicates the response body did not match the expected message.
	Decode Kind = "decode"
)

// TransportError reports a request that failed before a response arrived.
type TransportError struct {
	Op  string
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", Transport, e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RemoteError reports a response whose status was not successful.
// Code and Msg are filled when the body is a Twirp-style JSON error.
type RemoteError struct {
	Path       string
	StatusCode int
	Code       string
	Msg        string
	Body       []byte
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %d %s: %s", Remote, e.Path, e.StatusCode, e.Code, e.Msg)
	}
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		body = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %d %s", Remote, e.Path, e.StatusCode, body)
}

// GRPCCode maps the error to a gRPC status code. Twirp error codes share the
// gRPC names; without one the HTTP status decides.
func (e *RemoteError) GRPCCode() codes.Code {
	if c, ok := twirpCodes[e.Code]; ok {
		return c
	}
	switch e.StatusCode {
	case http.StatusBadRequest:
		return codes.InvalidArgument
	case http.StatusUnauthorized:
		return codes.Unauthenticated
	case http.StatusForbidden:
		return codes.PermissionDenied
	case http.StatusNotFound:
		return codes.NotFound
	case http.StatusConflict:
		return codes.Aborted
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return codes.DeadlineExceeded
	case http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case http.StatusNotImplemented:
		return codes.Unimplemented
	case http.StatusServiceUnavailable, http.StatusBadGateway:
		return codes.Unavailable
	}
	if e.StatusCode >= 500 {
		return codes.Internal
	}
	return codes.Unknown
}

var twirpCodes = map[string]codes.Code{
	"canceled":            codes.Canceled,
	"unknown":             codes.Unknown,
	"invalid_argument":    codes.InvalidArgument,
	"malformed":           codes.InvalidArgument,
	"deadline_exceeded":   codes.DeadlineExceeded,
	"not_found":           codes.NotFound,
	"bad_route":           codes.Unimplemented,
	"already_exists":      codes.AlreadyExists,
	"permission_denied":   codes.PermissionDenied,
	"unauthenticated":     codes.Unauthenticated,
	"resource_exhausted":  codes.ResourceExhausted,
	"failed_precondition": codes.FailedPrecondition,
	"aborted":             codes.Aborted,
	"out_of_range":        codes.OutOfRange,
	"unimplemented":       codes.Unimplemented,
	"internal":            codes.Internal,
	"unavailable":         codes.Unavailable,
	"data_loss":           codes.DataLoss,
}

// KindOf classifies err. Wrapped errors are unwrapped.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var te *TransportError
	if stderrors.As(err, &te) {
		return Transport
	}
	var re *RemoteError
	if stderrors.As(err, &re) {
		return Remote
	}
	var de *wire.DecodeError
	if stderrors.As(err, &de) {
		return Decode
	}
	return Unknown
}
