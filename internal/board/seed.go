package board

import (
	"slices"
	"time"

	"github.com/antopolskiy/kanban-board/internal/config"
	"github.com/antopolskiy/kanban-board/internal/task"
)

// FromConfig builds a board from the configured columns and seed tasks.
// Seeds without an id get a generated one; seeds without a creation time
// get now.
func FromConfig(cfg *config.Config, now time.Time) (*Board, error) {
	columns := make([]Column, len(cfg.Columns))
	for i, cc := range cfg.Columns {
		color := cc.Color
		if color == "" {
			color = config.DefaultColor
		}
		columns[i] = Column{ID: cc.ID, Title: cc.Title, Color: color, Terminal: cc.Terminal, TaskIDs: []string{}}
	}

	tasks := make(map[string]task.Task, len(cfg.Tasks))
	for _, s := range cfg.Tasks {
		t := seedTask(s, cfg.DefaultTaskPriority(), now)
		tasks[t.ID] = t
		for i := range columns {
			if columns[i].ID == s.Column {
				columns[i].TaskIDs = append(columns[i].TaskIDs, t.ID)
			}
		}
	}

	return New(columns, tasks)
}

func seedTask(s config.TaskSeed, defaultPriority task.Priority, now time.Time) task.Task {
	t := task.Task{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Status:      s.Column,
		Priority:    defaultPriority,
		Assignee:    s.Assignee,
		Tags:        slices.Clone(s.Tags),
		Created:     now,
		Due:         s.Due,
	}
	if t.ID == "" {
		t.ID = task.NewID()
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if p, err := task.ParsePriority(s.Priority); err == nil {
		t.Priority = p
	}
	if s.Created != nil {
		t.Created = *s.Created
	}
	return t
}
