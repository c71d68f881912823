// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package board

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"sportsmatrix/cli/internal/backend"
	"sportsmatrix/cli/internal/boardpb"
	apperrors "sportsmatrix/cli/internal/errors"
	"sportsmatrix/cli/internal/wire"
)

type call struct {
	path string
	body string
}

// fakeService serves GetStatus/SetStatus for one board. The stored status is
// coerced: scroll mode cannot be on while the board is disabled.
type fakeService struct {
	mu      sync.Mutex
	status  boardpb.Status
	coerce  bool
	failGet bool
	failSet bool
	calls   []call
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{path: r.URL.Path, body: string(body)})

	switch {
	case strings.HasSuffix(r.URL.Path, "/GetStatus"):
		if f.failGet {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"code":"unavailable","msg":"board asleep"}`))
			return
		}
		out, _ := wire.MarshalJSON(&f.status)
		_, _ = w.Write(out)
	case strings.HasSuffix(r.URL.Path, "/SetStatus"):
		if f.failSet {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"invalid_argument","msg":"nil status sent"}`))
			return
		}
		var req boardpb.SetStatusReq
		if err := wire.UnmarshalJSON(body, &req); err != nil || req.Status == nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"code":"invalid_argument","msg":"nil status sent"}`))
			return
		}
		f.status = *req.Status
		if f.coerce && !f.status.Enabled {
			f.status.ScrollEnabled = false
		}
		_, _ = w.Write([]byte("{}"))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"bad_route","msg":"no handler"}`))
	}
}

func (f *fakeService) recorded() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func newController(t *testing.T, f *fakeService, name string) *Controller {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := New(backend.New(backend.Options{BaseURL: srv.URL, PathPrefix: "/api"}), DefaultRegistry(), name)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNewUnknownBoard(t *testing.T) {
	_, err := New(nil, DefaultRegistry(), "weather")
	if !errors.Is(err, ErrUnknownBoard) {
		t.Fatalf("New() error = %v, want ErrUnknownBoard", err)
	}
}

func TestToggleEnabledPushesThenFetches(t *testing.T) {
	f := &fakeService{}
	c := newController(t, f, "clock")

	got, err := c.Toggle(context.Background(), FieldEnabled)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	want := boardpb.Status{Enabled: true}
	if got != want || c.Status() != want {
		t.Errorf("status = %+v (stored %+v), want %+v", got, c.Status(), want)
	}

	calls := f.recorded()
	if len(calls) != 2 {
		t.Fatalf("calls = %+v, want SetStatus then GetStatus", calls)
	}
	if calls[0].path != "/api/clock/board.v1.BasicBoard/SetStatus" {
		t.Errorf("first path = %s", calls[0].path)
	}
	if calls[0].body != `{"status":{"enabled":true,"scrollEnabled":false}}` {
		t.Errorf("SetStatus body = %s", calls[0].body)
	}
	if calls[1].path != "/api/clock/board.v1.BasicBoard/GetStatus" || calls[1].body != "{}" {
		t.Errorf("second call = %+v", calls[1])
	}
}

func TestToggleAdoptsServerValue(t *testing.T) {
	f := &fakeService{status: boardpb.Status{Enabled: true, ScrollEnabled: true}, coerce: true}
	c := newController(t, f, "stocks")
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	got, err := c.Toggle(context.Background(), FieldEnabled)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	// pushed {false, true}; the service coerced scroll off
	if want := (boardpb.Status{}); got != want {
		t.Errorf("status = %+v, want %+v", got, want)
	}
}

func TestFetchFailureKeepsStatus(t *testing.T) {
	f := &fakeService{status: boardpb.Status{Enabled: true}}
	c := newController(t, f, "pga")
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}

	f.mu.Lock()
	f.failGet = true
	f.mu.Unlock()

	_, err := c.Fetch(context.Background())
	var re *apperrors.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("Fetch() error = %v, want *RemoteError", err)
	}
	if re.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d", re.StatusCode)
	}
	if want := (boardpb.Status{Enabled: true}); c.Status() != want {
		t.Errorf("status = %+v, want unchanged %+v", c.Status(), want)
	}
}

func TestToggleRollsBackOnPushFailure(t *testing.T) {
	f := &fakeService{failSet: true}
	c := newController(t, f, "sys")

	got, err := c.Toggle(context.Background(), FieldScroll)
	if apperrors.KindOf(err) != apperrors.Remote {
		t.Fatalf("Toggle() error = %v, want remote error", err)
	}
	if got != (boardpb.Status{}) || c.Status() != (boardpb.Status{}) {
		t.Errorf("status = %+v, want rollback to zero", c.Status())
	}
	if calls := f.recorded(); len(calls) != 1 {
		t.Errorf("calls = %d, want no fetch after failed push", len(calls))
	}
}

func TestToggleKeepsPushedValueWhenFetchFails(t *testing.T) {
	f := &fakeService{failGet: true}
	c := newController(t, f, "clock")

	_, err := c.Toggle(context.Background(), FieldScroll)
	if err == nil {
		t.Fatal("Toggle() error = nil, want fetch error")
	}
	if want := (boardpb.Status{ScrollEnabled: true}); c.Status() != want {
		t.Errorf("status = %+v, want %+v", c.Status(), want)
	}
}

func TestSet(t *testing.T) {
	f := &fakeService{}
	c := newController(t, f, "clock")

	want := boardpb.Status{Enabled: true, ScrollEnabled: true}
	got, err := c.Set(context.Background(), want)
	if err != nil || got != want {
		t.Fatalf("Set() = %+v, %v", got, err)
	}
	if err := c.Push(context.Background()); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	calls := f.recorded()
	if last := calls[len(calls)-1]; last.body != `{"status":{"enabled":true,"scrollEnabled":true}}` {
		t.Errorf("Push body = %s", last.body)
	}
}

func TestToggleUnknownField(t *testing.T) {
	c, err := New(nil, DefaultRegistry(), "clock")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Toggle(context.Background(), Field("brightness")); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Toggle() error = %v, want ErrUnknownField", err)
	}
}

// blockingCaller holds every call until release is closed.
type blockingCaller struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingCaller) Call(ctx context.Context, path string, req, resp wire.Message) error {
	b.started <- struct{}{}
	<-b.release
	return nil
}

func TestConcurrentOperationIsBusy(t *testing.T) {
	api := &blockingCaller{started: make(chan struct{}, 4), release: make(chan struct{})}
	c, err := New(api, DefaultRegistry(), "clock")
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := c.Toggle(context.Background(), FieldEnabled)
		done <- err
	}()
	<-api.started

	if _, err := c.Toggle(context.Background(), FieldScroll); !errors.Is(err, ErrBusy) {
		t.Errorf("second Toggle() error = %v, want ErrBusy", err)
	}
	if _, err := c.Fetch(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("Fetch() error = %v, want ErrBusy", err)
	}

	close(api.release)
	if err := <-done; err != nil {
		t.Fatalf("first Toggle() error = %v", err)
	}
	if _, err := c.Fetch(context.Background()); err != nil {
		t.Errorf("Fetch() after completion error = %v", err)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{"enabled", FieldEnabled, false},
		{"Enable", FieldEnabled, false},
		{"scroll", FieldScroll, false},
		{"scrollEnabled", FieldScroll, false},
		{"scroll_enabled", FieldScroll, false},
		{"brightness", "", true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseField(%q) = %q, %v", tt.in, got, err)
		}
	}
}
