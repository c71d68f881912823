// Package main is the entry point for matrixctl, the command-line client of
// the sportsmatrix LED display.
package main

import (
	"sportsmatrix/cli/cmd"
)

func main() {
	cmd.Execute()
}
