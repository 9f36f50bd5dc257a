package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/output"
	"github.com/antopolskiy/kanban-board/internal/task"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newManager(cfg)
	if err != nil {
		return err
	}

	t, ok := m.Snapshot().Task(args[0])
	if !ok {
		return task.NotFound(args[0])
	}
	overdue := m.IsOverdue(t, nowFn())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, struct {
			task.Task
			Overdue bool `json:"overdue"`
		}{t, overdue})
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, t, overdue)
	default:
		output.TaskDetail(os.Stdout, t, overdue)
	}
	return nil
}
