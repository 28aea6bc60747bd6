// Package errors defines the coded errors codehunter reports at its CLI boundary.
// Per-file analysis problems are never errors; they become findings.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for run-level failures
type ErrorCode string

const (
	// InvalidProjectPath indicates the project root is missing or not a directory
	InvalidProjectPath ErrorCode = "INVALID_PROJECT_PATH"
	// ConfigInvalid indicates the configuration file could not be read or validated
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// WalkFailed indicates the project tree could not be enumerated
	WalkFailed ErrorCode = "WALK_FAILED"
	// HistoryUnavailable indicates the run history database could not be used
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// ParserUnavailable indicates a build without cgo, and so without the Python grammar
	ParserUnavailable ErrorCode = "PARSER_UNAVAILABLE"
	// ExportFailed indicates a report could not be rendered or written
	ExportFailed ErrorCode = "EXPORT_FAILED"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction is a suggested remedy shown next to an error.
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description"`
}

// CodeHunterError carries a code, a message and suggested fixes.
type CodeHunterError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// New creates a CodeHunterError with the default fixes for its code.
func New(code ErrorCode, message string, cause error) *CodeHunterError {
	return &CodeHunterError{
		Code:           code,
		Message:        message,
		SuggestedFixes: GetSuggestedFixes(code),
		cause:          cause,
	}
}

// Newf is New with a formatted message and no cause.
func Newf(code ErrorCode, format string, args ...any) *CodeHunterError {
	return New(code, fmt.Sprintf(format, args...), nil)
}

// Error implements the error interface
func (e *CodeHunterError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *CodeHunterError) Unwrap() error {
	return e.cause
}

// Is matches another CodeHunterError with the same code.
func (e *CodeHunterError) Is(target error) bool {
	t, ok := target.(*CodeHunterError)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first CodeHunterError in err's chain,
// or InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var che *CodeHunterError
	if errors.As(err, &che) {
		return che.Code
	}
	return InternalError
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	InvalidProjectPath: {
		{Description: "Pass the path of an existing project directory"},
	},
	ConfigInvalid: {
		{Command: "codehunter init --force", Description: "Regenerate the default configuration"},
	},
	HistoryUnavailable: {
		{Description: "Check that the history database path is writable, or run without --record"},
	},
	ParserUnavailable: {
		{Command: "CGO_ENABLED=1 go install ./cmd/codehunter", Description: "Rebuild with cgo and a C compiler"},
	},
	ExportFailed: {
		{Description: "Use one of the formats: human, json, yaml, sarif"},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
