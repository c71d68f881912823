package cmd

import (
	"errors"
	"fmt"
	"strings"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"

	"sportsmatrix/cli/internal/boardpb"
	"sportsmatrix/cli/internal/logging"
)

// errReported marks an error that has already been shown to the user.
var errReported = errors.New("reported")

// reportCall prints a failed service call and returns errReported.
func reportCall(context string, err error) error {
	logging.PresentCallError(context, err)
	return errReported
}

// progress shows a spinner on interactive terminals and plain lines otherwise.
type progress struct {
	spinner *pterm.SpinnerPrinter
}

func (a *app) startProgress(text string) *progress {
	p := &progress{}
	if !a.interactive {
		return p
	}
	cursor.Hide()
	sp, err := pterm.DefaultSpinner.WithRemoveWhenDone(false).Start(text)
	if err != nil {
		cursor.Show()
		return p
	}
	p.spinner = sp
	return p
}

func (p *progress) success(msg string) {
	if p.spinner == nil {
		pterm.Success.Println(msg)
		return
	}
	p.spinner.Success(msg)
	cursor.Show()
}

func (p *progress) warning(msg string) {
	if p.spinner == nil {
		pterm.Warning.Println(msg)
		return
	}
	p.spinner.Warning(msg)
	cursor.Show()
}

func (p *progress) fail(msg string) {
	if p.spinner == nil {
		pterm.Error.Println(msg)
		return
	}
	p.spinner.Fail(msg)
	cursor.Show()
}

// onOff renders a boolean state.
func onOff(b bool) string {
	if b {
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("on")
	}
	return pterm.NewStyle(pterm.FgGray).Sprint("off")
}

// describe renders a Status on one line.
func describe(st boardpb.Status) string {
	return fmt.Sprintf("enabled %s, scroll %s", onOff(st.Enabled), onOff(st.ScrollEnabled))
}

// parseOnOff accepts the usual spellings of a boolean switch.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1", "enable", "enabled":
		return true, nil
	case "off", "false", "no", "0", "disable", "disabled":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch value %q (want on or off)", s)
}
