package board

import (
	"slices"
	"time"

	"github.com/antopolskiy/kanban-board/internal/task"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Columns    []string
	Priorities []task.Priority
	Assignee   string
	Tag        string    // exact, case-sensitive
	Search     string    // case-insensitive substring match across title, description, and tags
	Overdue    bool      // only overdue tasks
	Now        time.Time // reference instant for Overdue; zero means time.Now
}

// Filter returns the board's tasks matching all criteria (AND logic), in
// board order.
func Filter(b *Board, opts FilterOptions) []task.Task {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	var result []task.Task
	for _, t := range b.Tasks() {
		if matchesFilter(b, t, opts, now) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(b *Board, t task.Task, opts FilterOptions, now time.Time) bool {
	if len(opts.Columns) > 0 && !slices.Contains(opts.Columns, t.Status) {
		return false
	}
	if len(opts.Priorities) > 0 && !slices.Contains(opts.Priorities, t.Priority) {
		return false
	}
	if opts.Assignee != "" && t.Assignee != opts.Assignee {
		return false
	}
	if opts.Tag != "" && !t.HasTag(opts.Tag) {
		return false
	}
	if opts.Search != "" && !task.MatchesSearch(t, opts.Search) {
		return false
	}
	if opts.Overdue && !b.IsOverdue(t, now) {
		return false
	}
	return true
}
