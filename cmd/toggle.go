// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"sportsmatrix/cli/internal/board"
	"sportsmatrix/cli/internal/boardpb"
)

// toggleCmd flips one field of a board's status.
var toggleCmd = &cobra.Command{
	Use:   "toggle <board> <enabled|scroll>",
	Short: "Flip a board's enabled or scroll state",
	Long: `The toggle command reads the board's current status, flips the chosen field,
sends the full status back and then reads it again. The state printed is the
one the matrix service accepted, which may differ from the one requested.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		field, err := board.ParseField(args[1])
		if err != nil {
			return err
		}
		c, err := board.New(a.api, a.boards, args[0], board.WithLogger(a.log))
		if err != nil {
			return err
		}
		name := c.Info().Name

		p := a.startProgress(fmt.Sprintf("Toggling %s %s", name, field))
		before, err := c.Fetch(cmd.Context())
		if err != nil {
			p.fail("Could not read " + name)
			return reportCall(fmt.Sprintf("fetching %s status", name), err)
		}
		requested := before
		if field == board.FieldEnabled {
			requested.Enabled = !requested.Enabled
		} else {
			requested.ScrollEnabled = !requested.ScrollEnabled
		}

		accepted, err := c.Toggle(cmd.Context(), field)
		return a.finishUpdate(p, name, requested, accepted, err)
	},
}

var (
	setEnabled bool
	setScroll  bool
)

// setCmd pushes explicit values for a board's status.
var setCmd = &cobra.Command{
	Use:   "set <board> [--enabled=true|false] [--scroll=true|false]",
	Short: "Set a board's enabled and scroll state",
	Long: `The set command sends the given values as the board's full status. Fields not
given on the command line keep their current value, which is read first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		flags := cmd.Flags()
		if !flags.Changed("enabled") && !flags.Changed("scroll") {
			return errors.New("nothing to set: pass --enabled and/or --scroll")
		}
		c, err := board.New(a.api, a.boards, args[0], board.WithLogger(a.log))
		if err != nil {
			return err
		}
		name := c.Info().Name

		p := a.startProgress("Updating " + name)
		requested, err := c.Fetch(cmd.Context())
		if err != nil {
			p.fail("Could not read " + name)
			return reportCall(fmt.Sprintf("fetching %s status", name), err)
		}
		if flags.Changed("enabled") {
			requested.Enabled = setEnabled
		}
		if flags.Changed("scroll") {
			requested.ScrollEnabled = setScroll
		}

		accepted, err := c.Set(cmd.Context(), requested)
		return a.finishUpdate(p, name, requested, accepted, err)
	},
}

func init() {
	setCmd.Flags().BoolVar(&setEnabled, "enabled", false, "show the board in the rotation")
	setCmd.Flags().BoolVar(&setScroll, "scroll", false, "scroll the board's content")
	rootCmd.AddCommand(toggleCmd, setCmd)
}

// finishUpdate reports the outcome of a push-then-fetch.
func (a *app) finishUpdate(p *progress, name string, requested, accepted boardpb.Status, err error) error {
	if err != nil {
		p.fail("Could not update " + name)
		return reportCall(fmt.Sprintf("updating %s", name), err)
	}
	if accepted != requested {
		p.warning(fmt.Sprintf("%s: %s (requested %s)", name, describe(accepted), describe(requested)))
		return nil
	}
	p.success(fmt.Sprintf("%s: %s", name, describe(accepted)))
	return nil
}
