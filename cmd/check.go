package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/output"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the board config and its seed tasks",
	Long: `Loads the config, builds the board from its seed tasks and verifies that
every task sits in exactly one column matching its status.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newManager(cfg)
	if err != nil {
		return err
	}
	snap := m.Snapshot()
	if err := snap.Validate(); err != nil {
		return inconsistent(err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "ok",
			"columns": len(snap.ColumnIDs()),
			"tasks":   snap.Len(),
		})
	}
	output.Messagef(os.Stdout, "Board %q is consistent: %d tasks in %d columns",
		cfg.Board.Name, snap.Len(), len(snap.ColumnIDs()))
	return nil
}
