package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/board"
	"github.com/antopolskiy/kanban-board/internal/output"
	"github.com/antopolskiy/kanban-board/internal/task"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long:    `Lists tasks with optional filtering, sorting, and output format control.`,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringSlice("column", nil, "filter by column (comma-separated)")
	listCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	listCmd.Flags().String("assignee", "", "filter by assignee")
	listCmd.Flags().String("tag", "", "filter by tag (exact match)")
	listCmd.Flags().StringP("search", "s", "", "search title, description and tags")
	listCmd.Flags().Bool("overdue", false, "show only overdue tasks")
	listCmd.Flags().String("sort", board.SortPosition, "sort field (position, priority, created, due, title)")
	listCmd.Flags().BoolP("reverse", "r", false, "reverse sort order")
	listCmd.Flags().IntP("limit", "n", 0, "limit number of results")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	columns, _ := cmd.Flags().GetStringSlice("column")
	priorityNames, _ := cmd.Flags().GetStringSlice("priority")
	assignee, _ := cmd.Flags().GetString("assignee")
	tag, _ := cmd.Flags().GetString("tag")
	search, _ := cmd.Flags().GetString("search")
	overdue, _ := cmd.Flags().GetBool("overdue")
	sortBy, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	limit, _ := cmd.Flags().GetInt("limit")

	for _, c := range columns {
		if err := task.ValidateColumn(c, cfg.ColumnIDs()); err != nil {
			return err
		}
	}
	priorities := make([]task.Priority, 0, len(priorityNames))
	for _, name := range priorityNames {
		p, err := task.ParsePriority(name)
		if err != nil {
			return err
		}
		priorities = append(priorities, p)
	}

	m, err := newManager(cfg)
	if err != nil {
		return err
	}

	tasks := board.Filter(m.Snapshot(), board.FilterOptions{
		Columns:    columns,
		Priorities: priorities,
		Assignee:   assignee,
		Tag:        tag,
		Search:     search,
		Overdue:    overdue,
		Now:        nowFn(),
	})
	if err := board.Sort(tasks, sortBy, reverse); err != nil {
		return err
	}
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}

	switch outputFormat() {
	case output.FormatJSON:
		if tasks == nil {
			tasks = []task.Task{}
		}
		return output.JSON(os.Stdout, tasks)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, tasks)
	default:
		output.TaskTable(os.Stdout, tasks)
	}
	return nil
}
