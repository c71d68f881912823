// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI and matrix service versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printVersion(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// printVersion prints the CLI version and the service version. An unreachable
// service is reported as "unknown" rather than failing.
func printVersion(ctx context.Context) error {
	serviceVersion := "unknown"
	v, err := current.api.GetVersion(ctx)
	if err != nil {
		current.log.Debug("service version unavailable", current.log.Args("error", err.Error()))
	} else if v.Version != "" {
		serviceVersion = v.Version
	}
	pterm.Printf("matrixctl %s\nmatrix    %s\n", Version, serviceVersion)
	return nil
}
