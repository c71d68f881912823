// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package board keeps a board's Status synchronized with the matrix service.
//
// A Controller owns exactly one Status value. Its operations are strictly
// sequential: while a fetch, push or push-then-fetch pair is outstanding any
// further operation returns ErrBusy instead of racing it, so a stale fetch
// can never overwrite a newer edit.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pterm/pterm"

	"sportsmatrix/cli/internal/boardpb"
	"sportsmatrix/cli/internal/logging"
	"sportsmatrix/cli/internal/wire"
)

var (
	// ErrBusy is returned when an operation is issued while another is in flight.
	ErrBusy = errors.New("board: operation already in flight")
	// ErrUnknownField is returned by Toggle for fields other than enabled and scroll.
	ErrUnknownField = errors.New("board: unknown status field")
)

// Caller sends one request to a service path and decodes the reply.
// It is satisfied by *backend.HTTP.
type Caller interface {
	Call(ctx context.Context, path string, req, resp wire.Message) error
}

// Field names a toggleable boolean of Status.
type Field string

const (
	FieldEnabled Field = "enabled"
	FieldScroll  Field = "scroll"
)

// ParseField accepts the field names used on the command line and on the wire.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enabled", "enable", "on":
		return FieldEnabled, nil
	case "scroll", "scrollenabled", "scroll_enabled", "scroll-mode":
		return FieldScroll, nil
	}
	return "", fmt.Errorf("%w %q (want enabled or scroll)", ErrUnknownField, s)
}

// FetchStatus asks the board mounted at boardPath for its current Status.
func FetchStatus(ctx context.Context, api Caller, boardPath string) (boardpb.Status, error) {
	var st boardpb.Status
	if err := api.Call(ctx, boardpb.BoardPath(boardPath, boardpb.MethodGetStatus), nil, &st); err != nil {
		return boardpb.Status{}, fmt.Errorf("get %s status: %w", boardPath, err)
	}
	return st, nil
}

// PushStatus sends st as the desired Status of the board mounted at boardPath.
// It does not re-fetch; callers that need the accepted value call FetchStatus.
func PushStatus(ctx context.Context, api Caller, boardPath string, st boardpb.Status) error {
	req := &boardpb.SetStatusReq{Status: &st}
	if err := api.Call(ctx, boardpb.BoardPath(boardPath, boardpb.MethodSetStatus), req, nil); err != nil {
		return fmt.Errorf("set %s status: %w", boardPath, err)
	}
	return nil
}

// Controller owns the Status of one board.
type Controller struct {
	api  Caller
	info Info
	log  *pterm.Logger

	inflight atomic.Bool
	mu       sync.Mutex
	status   boardpb.Status
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for debug output.
func WithLogger(l *pterm.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// New returns a controller for the board registered under name.
// It fails fast when name is not in reg.
func New(api Caller, reg *Registry, name string, opts ...Option) (*Controller, error) {
	info, err := reg.Lookup(name)
	if err != nil {
		return nil, err
	}
	c := &Controller{api: api, info: info, log: logging.Discard()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Info returns the board this controller manages.
func (c *Controller) Info() Info { return c.info }

// Status returns a copy of the last known Status.
func (c *Controller) Status() boardpb.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(st boardpb.Status) {
	c.mu.Lock()
	c.status = st
	c.mu.Unlock()
}

func (c *Controller) acquire() error {
	if !c.inflight.CompareAndSwap(false, true) {
		return ErrBusy
	}
	return nil
}

func (c *Controller) release() { c.inflight.Store(false) }

// Fetch replaces the local Status with the service's. On failure the local
// Status is left unchanged.
func (c *Controller) Fetch(ctx context.Context) (boardpb.Status, error) {
	if err := c.acquire(); err != nil {
		return c.Status(), err
	}
	defer c.release()
	return c.fetch(ctx)
}

func (c *Controller) fetch(ctx context.Context) (boardpb.Status, error) {
	st, err := FetchStatus(ctx, c.api, c.info.Path)
	if err != nil {
		return c.Status(), err
	}
	c.setStatus(st)
	c.log.Debug("board status", c.log.Args("board", c.info.Name, "enabled", st.Enabled, "scroll", st.ScrollEnabled))
	return st, nil
}

// Push sends the local Status to the service without confirming it.
func (c *Controller) Push(ctx context.Context) error {
	if err := c.acquire(); err != nil {
		return err
	}
	defer c.release()
	return PushStatus(ctx, c.api, c.info.Path, c.Status())
}

// Toggle flips field, pushes the result and re-fetches, so the returned and
// stored Status is the value the service accepted rather than the local flip.
func (c *Controller) Toggle(ctx context.Context, field Field) (boardpb.Status, error) {
	if field != FieldEnabled && field != FieldScroll {
		return c.Status(), fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	if err := c.acquire(); err != nil {
		return c.Status(), err
	}
	defer c.release()

	next := c.Status()
	switch field {
	case FieldEnabled:
		next.Enabled = !next.Enabled
	case FieldScroll:
		next.ScrollEnabled = !next.ScrollEnabled
	}
	return c.pushThenFetch(ctx, next)
}

// Set pushes st as the desired Status and re-fetches the accepted value.
func (c *Controller) Set(ctx context.Context, st boardpb.Status) (boardpb.Status, error) {
	if err := c.acquire(); err != nil {
		return c.Status(), err
	}
	defer c.release()
	return c.pushThenFetch(ctx, st)
}

// pushThenFetch applies next optimistically. A failed push rolls it back; a
// failed fetch after a successful push keeps it.
func (c *Controller) pushThenFetch(ctx context.Context, next boardpb.Status) (boardpb.Status, error) {
	prev := c.Status()
	c.setStatus(next)
	c.log.Debug("push board status", c.log.Args("board", c.info.Name, "enabled", next.Enabled, "scroll", next.ScrollEnabled))

	if err := PushStatus(ctx, c.api, c.info.Path, next); err != nil {
		c.setStatus(prev)
		return prev, err
	}
	return c.fetch(ctx)
}
