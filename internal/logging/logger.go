// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
)

// EnvLogLevel overrides the configured log level.
const EnvLogLevel = "MATRIXCTL_LOG_LEVEL"

// ParseLevel maps a level name to a pterm log level. Unknown names yield info.
func ParseLevel(raw string) (pterm.LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return pterm.LogLevelTrace, true
	case "debug":
		return pterm.LogLevelDebug, true
	case "info", "":
		return pterm.LogLevelInfo, true
	case "warn", "warning":
		return pterm.LogLevelWarn, true
	case "error":
		return pterm.LogLevelError, true
	case "off", "disabled", "none":
		return pterm.LogLevelDisabled, true
	default:
		return pterm.LogLevelInfo, false
	}
}

// New returns a structured logger writing to w at the given level.
// The MATRIXCTL_LOG_LEVEL environment variable wins over level when set.
func New(w io.Writer, level string) *pterm.Logger {
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	lvl, _ := ParseLevel(level)
	return pterm.DefaultLogger.
		WithWriter(w).
		WithLevel(lvl).
		WithTime(lvl == pterm.LogLevelTrace || lvl == pterm.LogLevelDebug)
}

// Discard returns a logger that prints nothing. Used by library callers and tests.
func Discard() *pterm.Logger {
	return pterm.DefaultLogger.WithLevel(pterm.LogLevelDisabled)
}
