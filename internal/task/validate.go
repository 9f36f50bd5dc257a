package task

import (
	"strings"

	"github.com/antopolskiy/kanban-board/internal/clierr"
)

// ValidatePriority returns a CLIError for an unknown priority.
func ValidatePriority(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", input).
		WithDetails(map[string]any{
			"priority": input,
			"allowed":  PriorityNames(),
		})
}

// ValidateColumn checks that column is one of the allowed column ids.
func ValidateColumn(column string, allowed []string) error {
	for _, c := range allowed {
		if c == column {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidColumn, "unknown column %q", column).
		WithDetails(map[string]any{
			"column":  column,
			"allowed": allowed,
		})
}

// ValidateTitle rejects blank titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return clierr.New(clierr.InvalidInput, "task title must not be empty")
	}
	return nil
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// NotFound returns a CLIError for a task id that is not on the board.
func NotFound(id string) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task not found: %s", id).
		WithDetails(map[string]any{"id": id})
}
