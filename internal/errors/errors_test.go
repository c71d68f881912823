package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"

	"sportsmatrix/cli/internal/wire"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"transport", &TransportError{Op: "POST", URL: "http://x", Err: stderrors.New("refused")}, Transport},
		{"wrapped remote", fmt.Errorf("get status: %w", &RemoteError{StatusCode: 500}), Remote},
		{"decode", fmt.Errorf("x: %w", &wire.DecodeError{Message: "board.v1.Status", Err: wire.ErrNotJSONObject}), Decode},
		{"other", stderrors.New("boom"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoteErrorGRPCCode(t *testing.T) {
	tests := []struct {
		err  RemoteError
		want codes.Code
	}{
		{RemoteError{StatusCode: http.StatusBadRequest, Code: "invalid_argument"}, codes.InvalidArgument},
		{RemoteError{StatusCode: http.StatusNotFound, Code: "bad_route"}, codes.Unimplemented},
		{RemoteError{StatusCode: http.StatusUnauthorized}, codes.Unauthenticated},
		{RemoteError{StatusCode: http.StatusServiceUnavailable}, codes.Unavailable},
		{RemoteError{StatusCode: 599}, codes.Internal},
		{RemoteError{StatusCode: 418}, codes.Unknown},
	}
	for _, tt := range tests {
		if got := tt.err.GRPCCode(); got != tt.want {
			t.Errorf("GRPCCode(%d %q) = %v, want %v", tt.err.StatusCode, tt.err.Code, got, tt.want)
		}
	}
}

func TestRemoteErrorMessage(t *testing.T) {
	e := &RemoteError{Path: "/api/clock/board.v1.BasicBoard/GetStatus", StatusCode: 500}
	want := "remote: /api/clock/board.v1.BasicBoard/GetStatus: 500 Internal Server Error"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	e = &RemoteError{Path: "/p", StatusCode: 400, Code: "invalid_argument", Msg: "nil status sent"}
	want = "remote: /p: 400 invalid_argument: nil status sent"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
