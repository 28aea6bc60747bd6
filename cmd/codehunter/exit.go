package main

import (
	"fmt"
	"io"

	"codehunter/internal/errors"
	"codehunter/internal/health"
)

// Exit codes.
const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitThreshold = 3
)

// thresholdError reports a run whose status reached --fail-on.
type thresholdError struct {
	status    health.Status
	threshold health.Status
	score     int
}

func (e *thresholdError) Error() string {
	return fmt.Sprintf("health status %s (score %d) reached the %s threshold", e.status, e.score, e.threshold)
}

func exitCode(err error) int {
	if _, ok := err.(*thresholdError); ok {
		return exitThreshold
	}
	switch errors.CodeOf(err) {
	case errors.InvalidProjectPath, errors.ConfigInvalid:
		return exitUsage
	default:
		return exitError
	}
}

// reportError prints err with the suggested fixes for its code and returns
// the exit code.
func reportError(w io.Writer, err error) int {
	if te, ok := err.(*thresholdError); ok {
		fmt.Fprintln(w, te.Error())
		return exitThreshold
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	if fixes := errors.GetSuggestedFixes(errors.CodeOf(err)); len(fixes) > 0 {
		fmt.Fprintln(w, "\nSuggested fixes:")
		for _, fix := range fixes {
			if fix.Command != "" {
				fmt.Fprintf(w, "  - %s: %s\n", fix.Description, fix.Command)
			} else {
				fmt.Fprintf(w, "  - %s\n", fix.Description)
			}
		}
	}
	return exitCode(err)
}
