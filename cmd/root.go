// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the matrixctl command-line interface.
// It reads and changes the status of the display's boards and drives the
// display-wide commands through the matrix control service, using Cobra for
// command parsing and pterm for terminal output.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sportsmatrix/cli/internal/backend"
	"sportsmatrix/cli/internal/board"
	"sportsmatrix/cli/internal/config"
	"sportsmatrix/cli/internal/keychain"
	"sportsmatrix/cli/internal/logging"
	"sportsmatrix/cli/internal/terminal"
)

// EnvToken supplies a bearer token without touching the keychain.
const EnvToken = "MATRIXCTL_TOKEN"

var (
	configPath  string
	baseURL     string
	encoding    string
	verbose     bool
	showVersion bool
)

// openKeychain returns the token store; replaced in tests.
var openKeychain = keychain.GetManager

// app is the state shared by all subcommands of one invocation.
type app struct {
	cfg         config.Config
	log         *pterm.Logger
	api         *backend.HTTP
	boards      *board.Registry
	interactive bool
}

var current *app

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "matrixctl",
	Short: "Control the boards of a sportsmatrix LED display",
	Long: `matrixctl talks to the matrix control service of a sportsmatrix display.
It shows and changes the enabled and scroll state of each board, jumps the
display to a board and switches all boards on or off at once.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd.Context())
		}
		return cmd.Help()
	},
}

// Execute runs the CLI application.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.PresentError("matrixctl", err))
		}
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (.json, .yaml or .toml); default is the XDG config.json")
	pf.StringVar(&baseURL, "url", "", "matrix service base URL, e.g. http://matrix.local:8080")
	pf.StringVar(&encoding, "encoding", "", "request encoding: json or protobuf")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log every service call")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and service version information")
}

// setup loads configuration and builds the client before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if encoding != "" {
		cfg.Encoding = strings.ToLower(strings.TrimSpace(encoding))
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a := &app{
		cfg:         cfg,
		log:         logging.New(os.Stderr, cfg.LogLevel),
		interactive: terminal.ConfigureStyling(),
	}

	a.boards, err = boardRegistry(cfg)
	if err != nil {
		return err
	}

	a.api = backend.New(backend.Options{
		BaseURL:    cfg.BaseURL,
		PathPrefix: cfg.PathPrefix,
		Encoding:   backend.Encoding(cfg.Encoding),
		Timeout:    a.timeout(),
		Token:      a.token(),
		Logger:     a.log,
	})
	a.log.Debug("client ready", a.log.Args("url", cfg.BaseURL, "prefix", cfg.PathPrefix, "encoding", cfg.Encoding))
	current = a
	return nil
}

// boardRegistry merges the configured boards into the built-in ones.
func boardRegistry(cfg config.Config) (*board.Registry, error) {
	names := make([]string, 0, len(cfg.Boards))
	for name := range cfg.Boards {
		names = append(names, name)
	}
	sort.Strings(names)

	infos := make([]board.Info, 0, len(names))
	for _, name := range names {
		b := cfg.Boards[name]
		infos = append(infos, board.Info{Name: name, Path: b.Path, Asset: b.Asset})
	}
	return board.DefaultRegistry().With(infos...)
}

func (a *app) timeout() time.Duration {
	return time.Duration(a.cfg.Timeout)
}

// token returns the bearer token from the environment or the keychain.
// Missing tokens are not an error: requests go out unauthenticated.
func (a *app) token() string {
	if t := os.Getenv(EnvToken); t != "" {
		return t
	}
	km, err := openKeychain()
	if err != nil {
		a.log.Debug("keychain unavailable", a.log.Args("error", err.Error()))
		return ""
	}
	t, err := km.LoadToken(a.cfg.Host())
	if err != nil && !errors.Is(err, keychain.ErrNotFound) {
		a.log.Debug("token lookup failed", a.log.Args("error", logging.Mask(err.Error())))
	}
	return t
}
