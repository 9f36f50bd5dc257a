package board

import (
	"slices"
	"strings"

	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/task"
)

// Sort fields accepted by Sort.
const (
	SortPosition = "position"
	SortPriority = "priority"
	SortCreated  = "created"
	SortDue      = "due"
	SortTitle    = "title"
)

// SortFields lists the accepted sort fields.
var SortFields = []string{SortPosition, SortPriority, SortCreated, SortDue, SortTitle}

// Sort orders tasks in place by field. Position keeps board order. The sort
// is stable, so ties keep board order too. Tasks without a due date sort
// last when ordering by due.
func Sort(tasks []task.Task, field string, reverse bool) error {
	var cmp func(a, b task.Task) int
	switch field {
	case "", SortPosition:
		if reverse {
			slices.Reverse(tasks)
		}
		return nil
	case SortPriority:
		cmp = func(a, b task.Task) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortCreated:
		cmp = func(a, b task.Task) int { return a.Created.Compare(b.Created) }
	case SortDue:
		cmp = compareDue
	case SortTitle:
		cmp = func(a, b task.Task) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	default:
		return clierr.Newf(clierr.InvalidInput, "invalid sort field %q", field).
			WithDetails(map[string]any{"field": field, "allowed": SortFields})
	}

	if reverse {
		forward := cmp
		cmp = func(a, b task.Task) int { return forward(b, a) }
	}
	slices.SortStableFunc(tasks, cmp)
	return nil
}

func compareDue(a, b task.Task) int {
	switch {
	case a.Due == nil && b.Due == nil:
		return 0
	case a.Due == nil:
		return 1
	case b.Due == nil:
		return -1
	}
	return a.Due.Compare(b.Due.Time)
}
