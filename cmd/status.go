// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"sportsmatrix/cli/internal/board"
	"sportsmatrix/cli/internal/boardpb"
	"sportsmatrix/cli/internal/wire"
)

var statusOutput string

// statusCmd fetches and shows the status of one or more boards.
var statusCmd = &cobra.Command{
	Use:   "status [board...]",
	Short: "Show the enabled and scroll state of boards",
	Long: `The status command fetches the current status of each named board from the
matrix service. Without arguments every known board is shown.

Use --output json to print the status objects as sent on the wire.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		names := args
		if len(names) == 0 {
			names = a.boards.Names()
		}
		if statusOutput != "table" && statusOutput != "json" {
			return fmt.Errorf("invalid --output %q (want table or json)", statusOutput)
		}

		type result struct {
			info   board.Info
			status boardpb.Status
			err    error
		}
		results := make([]result, 0, len(names))
		for _, name := range names {
			c, err := board.New(a.api, a.boards, name, board.WithLogger(a.log))
			if err != nil {
				return err
			}
			st, err := c.Fetch(cmd.Context())
			results = append(results, result{info: c.Info(), status: st, err: err})
		}

		var failed []result
		if statusOutput == "json" {
			out := make(map[string]any, len(results))
			for _, r := range results {
				if r.err != nil {
					failed = append(failed, r)
					continue
				}
				out[r.info.Name] = wire.ToPlainObject(&r.status)
			}
			b, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			pterm.Println(string(b))
		} else {
			data := pterm.TableData{{"Board", "Enabled", "Scroll", "Asset"}}
			for _, r := range results {
				if r.err != nil {
					failed = append(failed, r)
					data = append(data, []string{r.info.Name, pterm.Red("error"), pterm.Red("error"), r.info.Asset})
					continue
				}
				data = append(data, []string{r.info.Name, onOff(r.status.Enabled), onOff(r.status.ScrollEnabled), r.info.Asset})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
				return err
			}
		}

		for _, r := range failed {
			_ = reportCall(fmt.Sprintf("fetching %s status", r.info.Name), r.err)
		}
		if len(failed) > 0 {
			return errReported
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "table", "output format: table or json")
	rootCmd.AddCommand(statusCmd)
}
