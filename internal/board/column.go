package board

import "slices"

// Column is an ordered bucket of task ids representing a workflow stage.
// The order of TaskIDs is the display order.
type Column struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Color    string   `json:"color" yaml:"color"`
	Terminal bool     `json:"terminal,omitempty" yaml:"terminal,omitempty"`
	TaskIDs  []string `json:"task_ids" yaml:"task_ids"`
}

// TaskCount returns the number of tasks in the column.
func (c Column) TaskCount() int {
	return len(c.TaskIDs)
}

// IsEmpty reports whether the column holds no tasks.
func (c Column) IsEmpty() bool {
	return len(c.TaskIDs) == 0
}

// IndexOf returns the position of taskID in the column, or -1.
func (c Column) IndexOf(taskID string) int {
	return slices.Index(c.TaskIDs, taskID)
}

func (c Column) clone() Column {
	c.TaskIDs = slices.Clone(c.TaskIDs)
	if c.TaskIDs == nil {
		c.TaskIDs = []string{}
	}
	return c
}
