// Package clierr defines structured CLI errors with stable machine-readable codes.
package clierr

import "fmt"

// Error codes reported in JSON error envelopes.
const (
	BoardNotFound     = "BOARD_NOT_FOUND"
	BoardExists       = "BOARD_EXISTS"
	InvalidInput      = "INVALID_INPUT"
	InvalidPriority   = "INVALID_PRIORITY"
	InvalidDate       = "INVALID_DATE"
	InvalidColumn     = "INVALID_COLUMN"
	InvalidTaskID     = "INVALID_TASK_ID"
	TaskNotFound      = "TASK_NOT_FOUND"
	InvalidScript     = "INVALID_SCRIPT"
	InconsistentBoard = "INCONSISTENT_BOARD"
	InternalError     = "INTERNAL_ERROR"
)

// Error is a CLI error carrying a code and optional structured details.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// New creates an Error with the given code and message.
func New(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches structured details and returns the same error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func (e *Error) Error() string {
	return e.Message
}

// ExitCode maps the error code to a process exit code.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // internal errors exit with 2
	}
	return 1
}

// SilentError signals that output was already written and the process
// should exit with Code without printing anything else.
type SilentError struct {
	Code int
}

func (e *SilentError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
