// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package boardpb defines the messages exchanged with the matrix control
// service: the per-board BasicBoard service (board.v1) and the global
// Sportsmatrix service (matrix.v1).
//
// Field numbers are part of the wire contract and must never be reassigned.
package boardpb

import "sportsmatrix/cli/internal/wire"

// Status is the on/off and scroll-mode state of one board.
type Status struct {
	Enabled       bool
	ScrollEnabled bool
}

var statusDesc = wire.NewDescriptor("board.v1.Status",
	wire.Bool("enabled", 1, func(m *Status) *bool { return &m.Enabled }),
	wire.Bool("scroll_enabled", 2, func(m *Status) *bool { return &m.ScrollEnabled }),
)

func (*Status) Descriptor() *wire.Descriptor { return statusDesc }

// SetStatusReq carries the full desired Status of a board.
type SetStatusReq struct {
	Status *Status
}

var setStatusReqDesc = wire.NewDescriptor("board.v1.SetStatusReq",
	wire.Nested("status", 1, func(m *SetStatusReq) **Status { return &m.Status }),
)

func (*SetStatusReq) Descriptor() *wire.Descriptor { return setStatusReqDesc }

// VersionResp is the service build identifier.
type VersionResp struct {
	Version string
}

var versionRespDesc = wire.NewDescriptor("matrix.v1.VersionResp",
	wire.String("version", 1, func(m *VersionResp) *string { return &m.Version }),
)

func (*VersionResp) Descriptor() *wire.Descriptor { return versionRespDesc }

// ScreenStatusResp is the power state of the physical screen and the web board.
type ScreenStatusResp struct {
	ScreenOn   bool
	WebboardOn bool
}

var screenStatusRespDesc = wire.NewDescriptor("matrix.v1.ScreenStatusResp",
	wire.Bool("screen_on", 1, func(m *ScreenStatusResp) *bool { return &m.ScreenOn }),
	wire.Bool("webboard_on", 2, func(m *ScreenStatusResp) *bool { return &m.WebboardOn }),
)

func (*ScreenStatusResp) Descriptor() *wire.Descriptor { return screenStatusRespDesc }

// SetAllReq enables or disables every board at once.
type SetAllReq struct {
	Enabled bool
}

var setAllReqDesc = wire.NewDescriptor("matrix.v1.SetAllReq",
	wire.Bool("enabled", 1, func(m *SetAllReq) *bool { return &m.Enabled }),
)

func (*SetAllReq) Descriptor() *wire.Descriptor { return setAllReqDesc }

// JumpReq brings the named board to the foreground.
type JumpReq struct {
	Board string
}

var jumpReqDesc = wire.NewDescriptor("matrix.v1.JumpReq",
	wire.String("board", 1, func(m *JumpReq) *string { return &m.Board }),
)

func (*JumpReq) Descriptor() *wire.Descriptor { return jumpReqDesc }
