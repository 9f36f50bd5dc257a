package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/kanban-board/internal/board"
	"github.com/antopolskiy/kanban-board/internal/script"
	"github.com/antopolskiy/kanban-board/internal/task"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	colorEnabled = true
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	overdueStyle = lipgloss.NewStyle()
	colorEnabled = false
}

// columnStyle renders a column title in the column's configured color.
func columnStyle(color string) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	if colorEnabled && color != "" {
		s = s.Foreground(lipgloss.Color(color))
	}
	return s
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, statusW, prioW, titleW, assignW, dueW := 4, 8, 10, 5, 10, 12
	for _, t := range tasks {
		idW = max(idW, len(t.ID)+pad)
		statusW = max(statusW, len(t.Status)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
		assignW = max(assignW, len(t.Assignee)+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		titleW, "TITLE", assignW, "ASSIGNEE", dueW, "DUE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		due := dimStyle.Render("--")
		if t.Due != nil {
			due = t.Due.String()
		}
		// Styled cells carry ANSI bytes, so pad by visible width.
		fmt.Fprintf(w, "%-*s %-*s %-*s %-*s %s %s\n",
			idW, t.ID, statusW, t.Status, prioW, t.Priority,
			titleW, truncate(t.Title, 48), //nolint:mnd // max title width
			padRight(stringOrDash(t.Assignee), assignW), padRight(due, dueW))
	}
}

func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t task.Task, overdue bool) {
	titleLine := fmt.Sprintf("Task %s: %s", t.ID, t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len(titleLine)))

	printField(w, "Status", t.Status)
	printField(w, "Priority", t.Priority.Label())
	printField(w, "Assignee", stringOrDash(t.Assignee))
	if len(t.Tags) > 0 {
		printField(w, "Tags", strings.Join(t.Tags, ", "))
	} else {
		printField(w, "Tags", dimStyle.Render("--"))
	}
	switch {
	case t.Due == nil:
		printField(w, "Due", dimStyle.Render("--"))
	case overdue:
		printField(w, "Due", overdueStyle.Render(t.Due.String()+" (overdue)"))
	default:
		printField(w, "Due", t.Due.String())
	}
	printField(w, "Created", t.Created.Format("2006-01-02 15:04"))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// BoardTable renders every column with its tasks in board order.
func BoardTable(w io.Writer, v BoardView) {
	if v.Name != "" {
		fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(v.Name))
		fmt.Fprintln(w)
	}
	for i, c := range v.Columns {
		if i > 0 {
			fmt.Fprintln(w)
		}
		title := fmt.Sprintf("%s (%d)", c.Title, len(c.Tasks))
		if c.Terminal {
			title += " ✓"
		}
		fmt.Fprintln(w, columnStyle(c.Color).Render(title))
		if len(c.Tasks) == 0 {
			fmt.Fprintln(w, "  "+dimStyle.Render("(empty)"))
			continue
		}
		for _, t := range c.Tasks {
			fmt.Fprintf(w, "  %-8s %s %s\n", "["+string(t.Priority)+"]", truncate(t.Title, 60), dimStyle.Render(t.ID)) //nolint:mnd // max title width
		}
	}
}

// OverviewTable renders a board summary as a formatted dashboard.
func OverviewTable(w io.Writer, s board.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(s.BoardName))
	fmt.Fprintf(w, "Total: %d tasks, %d overdue\n\n", s.TotalTasks, s.Overdue)

	header := fmt.Sprintf("%-16s %6s %8s", "COLUMN", "COUNT", "OVERDUE")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, cs := range s.Columns {
		fmt.Fprintf(w, "%s %6d %8d\n", padRight(columnStyle(cs.Color).Render(cs.ID), 16), cs.Count, cs.Overdue) //nolint:mnd // column name width
	}

	fmt.Fprintln(w)
	prioHeader := fmt.Sprintf("%-16s %6s", "PRIORITY", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(prioHeader))

	for _, pc := range s.Priorities {
		fmt.Fprintf(w, "%-16s %6d\n", pc.Priority, pc.Count)
	}
}

// ResultsTable renders the outcome of each applied script operation.
func ResultsTable(w io.Writer, results []script.Result) {
	header := fmt.Sprintf("%-4s %-8s %-40s %s", "#", "OP", "TASK", "RESULT")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, r := range results {
		status := "applied"
		if !r.Applied {
			status = dimStyle.Render("skipped")
		}
		fmt.Fprintf(w, "%-4d %-8s %s %s\n", r.Index, r.Op, padRight(stringOrDash(r.Task), 40), status) //nolint:mnd // task id width
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func stringOrDash(s string) string {
	if s == "" {
		return dimStyle.Render("--")
	}
	return s
}
