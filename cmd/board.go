package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/board"
	"github.com/antopolskiy/kanban-board/internal/output"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"summary"},
	Short:   "Show board summary",
	Long: `Displays a summary of the board: task counts and overdue counts per column,
and the priority distribution. With --full, lists every column with its tasks.`,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().Bool("full", false, "show every column with its tasks")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newManager(cfg)
	if err != nil {
		return err
	}
	snap := m.Snapshot()

	if full, _ := cmd.Flags().GetBool("full"); full {
		return renderBoard(output.NewBoardView(cfg.Board.Name, snap))
	}

	summary := board.Summary(cfg.Board.Name, snap, nowFn())
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, summary)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, summary)
	default:
		output.OverviewTable(os.Stdout, summary)
	}
	return nil
}

func renderBoard(v output.BoardView) error {
	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, v)
	case output.FormatCompact:
		output.BoardCompact(os.Stdout, v)
	default:
		output.BoardTable(os.Stdout, v)
	}
	return nil
}
