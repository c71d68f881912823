// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the transport to the matrix control service.
// It POSTs messages to service paths in JSON or binary protobuf encoding and
// exposes the global (display-wide) commands. Per-board status exchange is
// built on Call by package board.
package backend

import (
	"context"

	"sportsmatrix/cli/internal/boardpb"
	"sportsmatrix/cli/internal/wire"
)

// API defines the service operations the CLI depends on.
// Implementations may call the real HTTP endpoints or provide fakes for tests.
type API interface {
	// Call sends req to path and decodes the reply into resp (nil to ignore it).
	Call(ctx context.Context, path string, req, resp wire.Message) error
	Jump(ctx context.Context, board string) error
	SetAll(ctx context.Context, enabled bool) error
	GetVersion(ctx context.Context) (*boardpb.VersionResp, error)
	GetScreenStatus(ctx context.Context) (*boardpb.ScreenStatusResp, error)
}
