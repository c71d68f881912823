// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var jumpCmd = &cobra.Command{
	Use:   "jump <board>",
	Short: "Bring a board to the front of the display",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		info, err := a.boards.Lookup(args[0])
		if err != nil {
			return err
		}
		if err := a.api.Jump(cmd.Context(), info.Name); err != nil {
			return reportCall("jumping to "+info.Name, err)
		}
		pterm.Success.Printfln("Showing %s", info.Name)
		return nil
	},
}

var allCmd = &cobra.Command{
	Use:   "all <on|off>",
	Short: "Enable or disable every board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		enabled, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		if err := a.api.SetAll(cmd.Context(), enabled); err != nil {
			return reportCall("switching all boards", err)
		}
		pterm.Success.Printfln("All boards %s", onOff(enabled))
		return nil
	},
}

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Show whether the screen and the web board are on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := current.api.GetScreenStatus(cmd.Context())
		if err != nil {
			return reportCall("reading screen status", err)
		}
		pterm.Println(fmt.Sprintf("screen   %s", onOff(st.ScreenOn)))
		pterm.Println(fmt.Sprintf("webboard %s", onOff(st.WebboardOn)))
		return nil
	},
}

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List the known boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		data := pterm.TableData{{"Board", "Path", "Asset"}}
		for _, name := range a.boards.Names() {
			info, _ := a.boards.Lookup(name)
			data = append(data, []string{info.Name, a.api.URL(info.Path), info.Asset})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func init() {
	rootCmd.AddCommand(jumpCmd, allCmd, screenCmd, boardsCmd)
}
