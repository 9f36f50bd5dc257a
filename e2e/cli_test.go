package e2e_test

import (
	"strings"
	"testing"
)

type taskJSON struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Status   string   `json:"status"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	Due      string   `json:"due,omitempty"`
	Overdue  bool     `json:"overdue"`
}

type boardJSON struct {
	Name    string `json:"name"`
	Columns []struct {
		ID    string     `json:"id"`
		Tasks []taskJSON `json:"tasks"`
	} `json:"columns"`
}

type applyJSON struct {
	Results []struct {
		Op      string `json:"op"`
		Task    string `json:"task"`
		Applied bool   `json:"applied"`
	} `json:"results"`
	Board boardJSON `json:"board"`
}

func (b boardJSON) column(id string) []string {
	for _, c := range b.Columns {
		if c.ID == id {
			ids := make([]string, len(c.Tasks))
			for i, t := range c.Tasks {
				ids[i] = t.ID
			}
			return ids
		}
	}
	return nil
}

func TestInitTwiceFails(t *testing.T) {
	dir := initBoard(t)
	errResp := runKanbanJSONError(t, dir, "init")
	if errResp.Code != codeBoardExists {
		t.Errorf("code = %q, want %q", errResp.Code, codeBoardExists)
	}
}

func TestCommandsWithoutBoard(t *testing.T) {
	errResp := runKanbanJSONError(t, t.TempDir(), "list")
	if errResp.Code != codeBoardNotFound {
		t.Errorf("code = %q, want %q", errResp.Code, codeBoardNotFound)
	}
}

func TestCheckFreshBoard(t *testing.T) {
	dir := initBoard(t)
	r := runKanban(t, dir, "--table", "check")
	if r.exitCode != 0 {
		t.Fatalf("check failed (exit %d): %s", r.exitCode, r.stderr)
	}
	if !strings.Contains(r.stdout, "0 tasks in 4 columns") {
		t.Errorf("unexpected output: %s", r.stdout)
	}
}

func TestListOverdueSkipsTerminalColumn(t *testing.T) {
	dir := seededBoard(t)

	var tasks []taskJSON
	r := runKanbanJSON(t, dir, &tasks, "list", "--overdue")
	if r.exitCode != 0 {
		t.Fatalf("list failed (exit %d): %s", r.exitCode, r.stdout)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("overdue tasks = %+v, want only t1", tasks)
	}
}

func TestListPriorityOrder(t *testing.T) {
	dir := seededBoard(t)

	var tasks []taskJSON
	runKanbanJSON(t, dir, &tasks, "list", "--sort", "priority")
	got := make([]string, len(tasks))
	for i, tk := range tasks {
		got[i] = tk.ID
	}
	if strings.Join(got, ",") != "t3,t1,t4,t2" {
		t.Errorf("order = %v, want t3,t1,t4,t2", got)
	}
}

func TestShowTask(t *testing.T) {
	dir := seededBoard(t)

	var tk taskJSON
	runKanbanJSON(t, dir, &tk, "show", "t1")
	if tk.Title != "Design API" || tk.Due != "2000-01-01" || !tk.Overdue {
		t.Errorf("show t1 = %+v", tk)
	}

	errResp := runKanbanJSONError(t, dir, "show", "nope")
	if errResp.Code != codeTaskNotFound {
		t.Errorf("code = %q, want %q", errResp.Code, codeTaskNotFound)
	}
}

func TestApplyScript(t *testing.T) {
	dir := seededBoard(t)
	path := writeScript(t, `
- op: add
  column: todo
  title: Hotfix
  priority: urgent
  as: fix
- op: drop
  task: fix
  over: t3
- op: move
  task: t1
  to: done
  to_index: 0
- op: delete
  task: ghost
`)

	var report applyJSON
	r := runKanbanJSON(t, dir, &report, "apply", path)
	if r.exitCode != 0 {
		t.Fatalf("apply failed (exit %d): %s", r.exitCode, r.stdout)
	}

	fix := report.Results[0].Task
	if got := strings.Join(report.Board.column(columnInProgress), ","); got != fix+",t3" {
		t.Errorf("in-progress = %s, want %s,t3", got, fix)
	}
	if got := strings.Join(report.Board.column(columnDone), ","); got != "t1,t4" {
		t.Errorf("done = %s, want t1,t4", got)
	}
	if got := strings.Join(report.Board.column(columnTodo), ","); got != "t2" {
		t.Errorf("todo = %s, want t2", got)
	}
	if report.Results[3].Applied {
		t.Error("delete of unknown task should be skipped")
	}

	// The seed is untouched.
	var tasks []taskJSON
	runKanbanJSON(t, dir, &tasks, "list", "--column", columnTodo)
	if len(tasks) != 2 {
		t.Errorf("todo after apply = %d tasks, want 2 (no write-back)", len(tasks))
	}
}

func TestApplyFromStdinStrict(t *testing.T) {
	dir := seededBoard(t)

	r := runKanbanStdin(t, dir, "- op: reorder\n  column: todo\n  from_index: 1\n  to_index: 0\n",
		"--compact", "apply", "-")
	if r.exitCode != 0 {
		t.Fatalf("apply failed (exit %d): %s", r.exitCode, r.stderr)
	}
	if !strings.Contains(r.stdout, "1 reorder ok") || !strings.Contains(r.stdout, "todo (2)\n  t2 ") {
		t.Errorf("unexpected output:\n%s", r.stdout)
	}

	r = runKanbanStdin(t, dir, "- op: delete\n  task: ghost\n", "--compact", "apply", "--strict", "-")
	if r.exitCode != 1 {
		t.Errorf("strict apply exit = %d, want 1", r.exitCode)
	}
}

func TestApplyInvalidScript(t *testing.T) {
	dir := seededBoard(t)

	errResp := runKanbanJSONError(t, dir, "apply", writeScript(t, "- op: add\n  column: todo\n"))
	if errResp.Code != codeInvalidScript {
		t.Errorf("code = %q, want %q", errResp.Code, codeInvalidScript)
	}
	errResp = runKanbanJSONError(t, dir, "apply", writeScript(t, "- op: update\n  task: t1\n  priority: asap\n"))
	if errResp.Code != codeInvalidPrio {
		t.Errorf("code = %q, want %q", errResp.Code, codeInvalidPrio)
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	dir := seededBoard(t)

	r := runKanbanStdin(t, dir, "- op: delete\n  task: t2\n", "--json", "--verbose", "apply", "-")
	if r.exitCode != 0 {
		t.Fatalf("apply failed (exit %d): %s", r.exitCode, r.stderr)
	}
	if !strings.Contains(r.stderr, "task deleted") || !strings.Contains(r.stderr, "op=delete") {
		t.Errorf("expected debug log on stderr, got: %q", r.stderr)
	}
	if strings.Contains(r.stdout, "level=") {
		t.Error("logs leaked into stdout")
	}
}
