// Package board implements the in-memory Kanban board and its state manager.
package board

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/antopolskiy/kanban-board/internal/task"
)

// ErrInconsistent indicates that a board violates its referential invariants.
var ErrInconsistent = errors.New("inconsistent board")

// Board is an immutable snapshot of columns and tasks. Accessors return
// copies, so holders of a snapshot never observe later mutations.
type Board struct {
	columns []Column
	tasks   map[string]task.Task
}

// New builds a board from columns and a task mapping. Both are copied.
// The result is validated; an inconsistent input returns ErrInconsistent.
func New(columns []Column, tasks map[string]task.Task) (*Board, error) {
	b := &Board{
		columns: make([]Column, len(columns)),
		tasks:   make(map[string]task.Task, len(tasks)),
	}
	for i, c := range columns {
		b.columns[i] = c.clone()
	}
	for id, t := range tasks {
		b.tasks[id] = t.Clone()
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Columns returns a copy of the columns in display order.
func (b *Board) Columns() []Column {
	out := make([]Column, len(b.columns))
	for i, c := range b.columns {
		out[i] = c.clone()
	}
	return out
}

// ColumnIDs returns the column ids in display order.
func (b *Board) ColumnIDs() []string {
	ids := make([]string, len(b.columns))
	for i, c := range b.columns {
		ids[i] = c.ID
	}
	return ids
}

// Column returns the column with the given id.
func (b *Board) Column(id string) (Column, bool) {
	i := b.columnIndex(id)
	if i < 0 {
		return Column{}, false
	}
	return b.columns[i].clone(), true
}

// Task returns the task with the given id.
func (b *Board) Task(id string) (task.Task, bool) {
	t, ok := b.tasks[id]
	if !ok {
		return task.Task{}, false
	}
	return t.Clone(), true
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	return len(b.tasks)
}

// Tasks returns all tasks in board order: column by column, top to bottom.
func (b *Board) Tasks() []task.Task {
	out := make([]task.Task, 0, len(b.tasks))
	for _, c := range b.columns {
		for _, id := range c.TaskIDs {
			if t, ok := b.tasks[id]; ok {
				out = append(out, t.Clone())
			}
		}
	}
	return out
}

// ColumnTasks returns the tasks of one column in display order.
func (b *Board) ColumnTasks(columnID string) []task.Task {
	i := b.columnIndex(columnID)
	if i < 0 {
		return nil
	}
	out := make([]task.Task, 0, len(b.columns[i].TaskIDs))
	for _, id := range b.columns[i].TaskIDs {
		if t, ok := b.tasks[id]; ok {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Owner returns the id of the column holding taskID and the task's index in it.
func (b *Board) Owner(taskID string) (string, int, bool) {
	for _, c := range b.columns {
		if idx := c.IndexOf(taskID); idx >= 0 {
			return c.ID, idx, true
		}
	}
	return "", -1, false
}

// IsTerminal reports whether the column marks completed work.
func (b *Board) IsTerminal(columnID string) bool {
	i := b.columnIndex(columnID)
	return i >= 0 && b.columns[i].Terminal
}

// IsOverdue reports whether t is past due and its column is not terminal.
func (b *Board) IsOverdue(t task.Task, now time.Time) bool {
	return task.IsOverdue(t, now, b.IsTerminal(t.Status))
}

// Validate checks the referential invariants: unique column ids, every
// column entry resolves to a task, no id appears twice anywhere, and every
// task sits in exactly the column named by its status.
func (b *Board) Validate() error {
	seenCols := make(map[string]bool, len(b.columns))
	owner := make(map[string]string, len(b.tasks))
	for _, c := range b.columns {
		if c.ID == "" {
			return fmt.Errorf("%w: column with empty id", ErrInconsistent)
		}
		if seenCols[c.ID] {
			return fmt.Errorf("%w: duplicate column %q", ErrInconsistent, c.ID)
		}
		seenCols[c.ID] = true
		for _, id := range c.TaskIDs {
			if prev, dup := owner[id]; dup {
				return fmt.Errorf("%w: task %q listed in %q and %q", ErrInconsistent, id, prev, c.ID)
			}
			owner[id] = c.ID
			if _, ok := b.tasks[id]; !ok {
				return fmt.Errorf("%w: column %q references unknown task %q", ErrInconsistent, c.ID, id)
			}
		}
	}
	for _, id := range slices.Sorted(maps.Keys(b.tasks)) {
		t := b.tasks[id]
		if t.ID != id {
			return fmt.Errorf("%w: task keyed %q has id %q", ErrInconsistent, id, t.ID)
		}
		col, ok := owner[id]
		if !ok {
			return fmt.Errorf("%w: task %q is not in any column", ErrInconsistent, id)
		}
		if t.Status != col {
			return fmt.Errorf("%w: task %q has status %q but sits in %q", ErrInconsistent, id, t.Status, col)
		}
	}
	return nil
}

func (b *Board) columnIndex(id string) int {
	for i, c := range b.columns {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// fork returns a shallow copy for copy-on-write mutation. Column task id
// slices are shared and must be replaced, never written in place.
func (b *Board) fork() *Board {
	return &Board{
		columns: slices.Clone(b.columns),
		tasks:   maps.Clone(b.tasks),
	}
}
