package board

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/antopolskiy/kanban-board/internal/task"
)

var testNow = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

// newTestBoard returns todo[t1,t2], in-progress[t3], done[t4].
func newTestBoard(t *testing.T) *Board {
	t.Helper()
	columns := []Column{
		{ID: "todo", Title: "To Do", Color: "#6b7280", TaskIDs: []string{"t1", "t2"}},
		{ID: "in-progress", Title: "In Progress", Color: "#3b82f6", TaskIDs: []string{"t3"}},
		{ID: "done", Title: "Done", Color: "#10b981", Terminal: true, TaskIDs: []string{"t4"}},
	}
	tasks := map[string]task.Task{
		"t1": {ID: "t1", Title: "Design API", Status: "todo", Priority: task.PriorityHigh, Tags: []string{"backend"}},
		"t2": {ID: "t2", Title: "Write docs", Status: "todo", Priority: task.PriorityLow, Tags: []string{}},
		"t3": {ID: "t3", Title: "Build UI", Status: "in-progress", Priority: task.PriorityUrgent, Tags: []string{"frontend"}},
		"t4": {ID: "t4", Title: "Set up CI", Status: "done", Priority: task.PriorityMedium, Tags: []string{"ops"}},
	}
	b, err := New(columns, tasks)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return b
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(newTestBoard(t), nil)
	m.SetNow(func() time.Time { return testNow })
	n := 0
	m.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	})
	return m
}

// newLettersManager returns a manager whose todo column holds [a b c d e].
func newLettersManager(t *testing.T) *Manager {
	t.Helper()
	ids := []string{"a", "b", "c", "d", "e"}
	tasks := make(map[string]task.Task, len(ids))
	for _, id := range ids {
		tasks[id] = task.Task{ID: id, Title: id, Status: "todo", Priority: task.PriorityMedium}
	}
	b, err := New([]Column{
		{ID: "todo", Title: "To Do", TaskIDs: ids},
		{ID: "done", Title: "Done", Terminal: true},
	}, tasks)
	if err != nil {
		t.Fatal(err)
	}
	return NewManager(b, nil)
}

func columnIDs(t *testing.T, b *Board, columnID string) []string {
	t.Helper()
	c, ok := b.Column(columnID)
	if !ok {
		t.Fatalf("column %q not found", columnID)
	}
	return c.TaskIDs
}

func assertColumn(t *testing.T, b *Board, columnID string, want ...string) {
	t.Helper()
	got := columnIDs(t, b, columnID)
	if !slices.Equal(got, want) && !(len(got) == 0 && len(want) == 0) {
		t.Errorf("column %q = %v, want %v", columnID, got, want)
	}
}

func assertConsistent(t *testing.T, b *Board) {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("board inconsistent: %v", err)
	}
}
