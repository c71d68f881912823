// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"

	"sportsmatrix/cli/internal/backend"
	"sportsmatrix/cli/internal/config"
	apperrors "sportsmatrix/cli/internal/errors"
	"sportsmatrix/cli/internal/keychain"
	"sportsmatrix/cli/internal/terminal"
)

var loginToken string

// loginCmd stores a bearer token for the configured matrix host.
var loginCmd = &cobra.Command{
	Use:   "login [--token <token>]",
	Short: "Store an access token for the matrix service",
	Long: `The login command saves a bearer token for the configured matrix host in the
OS keychain. Without --token the token is read from standard input, hidden
when typed at a terminal. The token is checked against the service first;
a service that rejects it is reported and nothing is stored. When --url is
given it becomes the default service URL in the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		host := a.cfg.Host()

		token := loginToken
		if token == "" {
			const prompt = "Token: "
			t, err := terminal.ReadSecret(prompt, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if a.interactive {
				terminal.ClearPreviousLines(os.Stdout, len(prompt))
			}
			token = t
		}
		if token == "" {
			return errors.New("empty token")
		}

		check := backend.New(backend.Options{
			BaseURL:    a.cfg.BaseURL,
			PathPrefix: a.cfg.PathPrefix,
			Encoding:   backend.Encoding(a.cfg.Encoding),
			Timeout:    a.timeout(),
			Token:      token,
			Logger:     a.log,
		})
		if _, err := check.GetVersion(cmd.Context()); err != nil {
			var re *apperrors.RemoteError
			if errors.As(err, &re) && (re.GRPCCode() == codes.Unauthenticated || re.GRPCCode() == codes.PermissionDenied) {
				return reportCall("checking the token", err)
			}
			pterm.Warning.Printfln("Could not verify the token with %s; storing it anyway", host)
			a.log.Debug("token check failed", a.log.Args("error", err.Error()))
		}

		km, err := openKeychain()
		if err != nil {
			pterm.Error.Println("Secure storage is not available on this system")
			pterm.Printfln("   Set %s for this shell, or %s to use an encrypted file", EnvToken, keychain.EnvFilePassword)
			return errReported
		}
		if err := km.SaveToken(host, token); err != nil {
			return err
		}
		pterm.Success.Printfln("Token saved for %s", host)

		// remember the service this token belongs to
		if baseURL != "" && configPath == "" {
			if err := config.SaveBaseURL(a.cfg.BaseURL); err != nil {
				return err
			}
			pterm.Success.Printfln("Using %s by default", a.cfg.BaseURL)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "bearer token (read from stdin when omitted)")
	rootCmd.AddCommand(loginCmd)
}
