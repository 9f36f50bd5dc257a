package board

import (
	"slices"
	"time"

	"github.com/antopolskiy/kanban-board/internal/task"
)

// Overview is a board-level summary for dashboards.
type Overview struct {
	BoardName  string          `json:"board_name"`
	TotalTasks int             `json:"total_tasks"`
	Overdue    int             `json:"overdue"`
	Columns    []ColumnSummary `json:"columns"`
	Priorities []PriorityCount `json:"priorities"`
}

// ColumnSummary holds per-column counts.
type ColumnSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	Terminal bool   `json:"terminal,omitempty"`
	Count    int    `json:"count"`
	Overdue  int    `json:"overdue"`
}

// PriorityCount is the number of tasks at one priority level.
type PriorityCount struct {
	Priority task.Priority `json:"priority"`
	Count    int           `json:"count"`
}

// Summary computes the overview of b at instant now. Priorities are listed
// most urgent first.
func Summary(name string, b *Board, now time.Time) Overview {
	o := Overview{BoardName: name, TotalTasks: b.Len()}

	byPriority := make(map[task.Priority]int)
	for _, c := range b.columns {
		cs := ColumnSummary{ID: c.ID, Title: c.Title, Color: c.Color, Terminal: c.Terminal, Count: c.TaskCount()}
		for _, id := range c.TaskIDs {
			t := b.tasks[id]
			byPriority[t.Priority]++
			if task.IsOverdue(t, now, c.Terminal) {
				cs.Overdue++
			}
		}
		o.Overdue += cs.Overdue
		o.Columns = append(o.Columns, cs)
	}

	levels := slices.Clone(task.Priorities)
	slices.Reverse(levels)
	for _, p := range levels {
		o.Priorities = append(o.Priorities, PriorityCount{Priority: p, Count: byPriority[p]})
	}
	return o
}
