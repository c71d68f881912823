// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// logoutCmd removes the stored token for the configured matrix host.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored access token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		host := current.cfg.Host()
		km, err := openKeychain()
		if err != nil {
			return err
		}
		if err := km.DeleteToken(host); err != nil {
			return err
		}
		pterm.Success.Printfln("Token removed for %s", host)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
