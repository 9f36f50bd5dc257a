package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/antopolskiy/kanban-board/internal/board"
	"github.com/antopolskiy/kanban-board/internal/script"
	"github.com/antopolskiy/kanban-board/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t task.Task, overdue bool) {
	line := formatTaskLine(t)
	if overdue {
		line += " OVERDUE"
	}
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "  created:"+t.Created.Format("2006-01-02"))

	if t.Description != "" {
		for _, l := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+l)
		}
	}
}

// BoardCompact renders each column on a header line followed by its tasks.
func BoardCompact(w io.Writer, v BoardView) {
	for _, c := range v.Columns {
		fmt.Fprintf(w, "%s (%d)\n", c.ID, len(c.Tasks))
		for _, t := range c.Tasks {
			fmt.Fprintln(w, "  "+formatTaskLine(t))
		}
	}
}

// OverviewCompact renders a board summary in compact format.
func OverviewCompact(w io.Writer, s board.Overview) {
	fmt.Fprintf(w, "%s (%d tasks)\n", s.BoardName, s.TotalTasks)

	for _, cs := range s.Columns {
		line := "  " + cs.ID + ": " + strconv.Itoa(cs.Count)
		if cs.Overdue > 0 {
			line += " (" + strconv.Itoa(cs.Overdue) + " overdue)"
		}
		fmt.Fprintln(w, line)
	}

	if len(s.Priorities) > 0 {
		parts := make([]string, 0, len(s.Priorities))
		for _, pc := range s.Priorities {
			parts = append(parts, string(pc.Priority)+"="+strconv.Itoa(pc.Count))
		}
		fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))
	}
}

// ResultsCompact renders script results one per line.
func ResultsCompact(w io.Writer, results []script.Result) {
	for _, r := range results {
		status := "ok"
		if !r.Applied {
			status = "skip"
		}
		line := strconv.Itoa(r.Index) + " " + r.Op + " " + status
		if r.Task != "" {
			line += " " + r.Task
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	line := t.ID + " [" + t.Status + "/" + string(t.Priority) + "] " + t.Title

	if t.Assignee != "" {
		line += " @" + t.Assignee
	}
	if len(t.Tags) > 0 {
		line += " (" + strings.Join(t.Tags, ", ") + ")"
	}
	if t.Due != nil {
		line += " due:" + t.Due.String()
	}

	return line
}
