// Package output handles formatting CLI output as table, compact text or JSON.
package output

import (
	"os"

	"golang.org/x/term"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto detects based on TTY.
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one line per record.
	FormatCompact
)

// isTerminalFn checks whether stdout is a terminal. Replaceable in tests.
var isTerminalFn = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Detect returns the appropriate format based on flags, environment, and TTY.
// Flags win over KANBAN_OUTPUT; with neither set, a TTY gets a table and a
// pipe gets JSON.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case tableFlag:
		return FormatTable
	case compactFlag:
		return FormatCompact
	}

	switch os.Getenv("KANBAN_OUTPUT") {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	case "compact", "oneline":
		return FormatCompact
	}

	if isTerminalFn() {
		return FormatTable
	}
	return FormatJSON
}
