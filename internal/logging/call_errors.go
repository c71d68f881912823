// Copyright (c) 2025 The matrixctl Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"google.golang.org/grpc/codes"

	apperrors "sportsmatrix/cli/internal/errors"
	"sportsmatrix/cli/internal/httperrors"
)

// FormatCallError formats a failed service call in a user-friendly way.
// context describes what was being attempted, e.g. "fetching clock status".
func FormatCallError(context string, err error) string {
	var builder strings.Builder

	kind := apperrors.KindOf(err)
	switch kind {
	case apperrors.Transport:
		var te *apperrors.TransportError
		errors.As(err, &te)
		reason := httperrors.Classify(te.Err)
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint(reason.Title()))
		builder.WriteString("\n\n")
		builder.WriteString(fmt.Sprintf("The request never completed while %s.\n", context))
		if hints := reason.Hints(httperrors.HostOf(te.URL)); len(hints) > 0 {
			builder.WriteString("Check that:\n")
			for _, h := range hints {
				builder.WriteString("  • " + h + "\n")
			}
		}

	case apperrors.Remote:
		var re *apperrors.RemoteError
		errors.As(err, &re)
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Request rejected"))
		builder.WriteString("\n\n")
		builder.WriteString(fmt.Sprintf("The matrix service refused the request while %s.\n", context))
		builder.WriteString(remoteHint(re.GRPCCode()))

	case apperrors.Decode:
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Unexpected response"))
		builder.WriteString("\n\n")
		builder.WriteString(fmt.Sprintf("The response could not be read while %s.\n", context))
		builder.WriteString("The service may be running a different version; compare with 'matrixctl version'.\n")

	default:
		builder.WriteString(pterm.NewStyle(pterm.FgRed, pterm.Bold).Sprint("Failed"))
		builder.WriteString("\n\n")
		builder.WriteString(fmt.Sprintf("Something went wrong while %s.\n", context))
	}

	if err != nil {
		builder.WriteString("\n")
		builder.WriteString(pterm.NewStyle(pterm.FgGray).Sprint("Technical details: " + Mask(err.Error())))
	}

	return builder.String()
}

func remoteHint(code codes.Code) string {
	switch code {
	case codes.Unauthenticated, codes.PermissionDenied:
		return pterm.NewStyle(pterm.FgYellow).Sprint("→ Run 'matrixctl login --token <token>' and try again\n")
	case codes.Unimplemented, codes.NotFound:
		return pterm.NewStyle(pterm.FgYellow).Sprint("→ The board is not mounted at that path; check 'matrixctl boards'\n")
	case codes.InvalidArgument:
		return pterm.NewStyle(pterm.FgYellow).Sprint("→ The service did not accept the requested values\n")
	case codes.Unavailable, codes.Internal:
		return pterm.NewStyle(pterm.FgYellow).Sprint("→ The service is having trouble; try again shortly\n")
	default:
		return ""
	}
}

// PresentError formats any error for user display. Service call failures get
// the full FormatCallError treatment; anything else is a masked one-liner.
func PresentError(context string, err error) string {
	switch apperrors.KindOf(err) {
	case "":
		return ""
	case apperrors.Transport, apperrors.Remote, apperrors.Decode:
		return FormatCallError(context, err)
	}
	return fmt.Sprintf("%s: %s", context, Mask(err.Error()))
}

// PresentCallError prints a formatted call error.
func PresentCallError(context string, err error) {
	pterm.Println()
	pterm.Println(FormatCallError(context, err))
	pterm.Println()
}
