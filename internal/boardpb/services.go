// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package boardpb

import "strings"

// Service names as they appear in request paths.
const (
	BasicBoardService   = "board.v1.BasicBoard"
	SportsmatrixService = "matrix.v1.Sportsmatrix"
)

// BasicBoard methods, served once per board under the board's path.
const (
	MethodGetStatus = "GetStatus"
	MethodSetStatus = "SetStatus"
)

// Sportsmatrix methods, served once for the whole display.
const (
	MethodJump            = "Jump"
	MethodSetAll          = "SetAll"
	MethodGetVersion      = "GetVersion"
	MethodGetScreenStatus = "GetScreenStatus"
)

// BoardPath returns the path of a BasicBoard method for the board mounted at boardPath,
// e.g. "clock/board.v1.BasicBoard/GetStatus".
func BoardPath(boardPath, method string) string {
	return joinPath(boardPath, BasicBoardService, method)
}

// MatrixPath returns the path of a global Sportsmatrix method, e.g. "matrix.v1.Sportsmatrix/Jump".
func MatrixPath(method string) string {
	return joinPath(SportsmatrixService, method)
}

func joinPath(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
