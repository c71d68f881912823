// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"

	"sportsmatrix/cli/internal/boardpb"
)

// New creates a backend API implementation over HTTP.
func New(opts Options) *HTTP {
	return newHTTP(opts)
}

// Jump brings board to the foreground of the display.
func (h *HTTP) Jump(ctx context.Context, board string) error {
	return h.Call(ctx, boardpb.MatrixPath(boardpb.MethodJump), &boardpb.JumpReq{Board: board}, nil)
}

// SetAll enables or disables every board.
func (h *HTTP) SetAll(ctx context.Context, enabled bool) error {
	return h.Call(ctx, boardpb.MatrixPath(boardpb.MethodSetAll), &boardpb.SetAllReq{Enabled: enabled}, nil)
}

// GetVersion returns the service build identifier.
func (h *HTTP) GetVersion(ctx context.Context) (*boardpb.VersionResp, error) {
	resp := &boardpb.VersionResp{}
	if err := h.Call(ctx, boardpb.MatrixPath(boardpb.MethodGetVersion), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetScreenStatus returns the power state of the screen and the web board.
func (h *HTTP) GetScreenStatus(ctx context.Context) (*boardpb.ScreenStatusResp, error) {
	resp := &boardpb.ScreenStatusResp{}
	if err := h.Call(ctx, boardpb.MatrixPath(boardpb.MethodGetScreenStatus), nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

var _ API = (*HTTP)(nil)
