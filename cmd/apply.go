package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/output"
	"github.com/antopolskiy/kanban-board/internal/script"
)

var applyCmd = &cobra.Command{
	Use:   "apply SCRIPT",
	Short: "Apply an operation script to the board",
	Long: `Loads the board from its config, applies each operation of a YAML script
in order and prints the per-operation results followed by the resulting board.
Use "-" to read the script from stdin. Nothing is written back to disk.

Operations that refer to unknown tasks or columns are skipped, not errors.
With --strict, any skipped operation makes the command exit with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().Bool("strict", false, "exit with status 1 if any operation was skipped")
	rootCmd.AddCommand(applyCmd)
}

// applyReport is the JSON output of apply.
type applyReport struct {
	Results []script.Result  `json:"results"`
	Board   output.BoardView `json:"board"`
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ops, err := readScript(args[0])
	if err != nil {
		return err
	}

	m, err := newManager(cfg)
	if err != nil {
		return err
	}
	results, err := script.Apply(m, ops)
	if err != nil {
		return err
	}

	snap := m.Snapshot()
	if err := snap.Validate(); err != nil {
		return clierr.Newf(clierr.InternalError, "board left inconsistent: %v", err)
	}
	view := output.NewBoardView(cfg.Board.Name, snap)

	switch outputFormat() {
	case output.FormatJSON:
		if err := output.JSON(os.Stdout, applyReport{Results: results, Board: view}); err != nil {
			return err
		}
	case output.FormatCompact:
		output.ResultsCompact(os.Stdout, results)
		output.BoardCompact(os.Stdout, view)
	default:
		output.ResultsTable(os.Stdout, results)
		fmt.Fprintln(os.Stdout)
		output.BoardTable(os.Stdout, view)
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		for _, r := range results {
			if !r.Applied {
				return &clierr.SilentError{Code: 1}
			}
		}
	}
	return nil
}

func readScript(path string) ([]script.Op, error) {
	if path == "-" {
		return script.Parse(os.Stdin)
	}
	ops, err := script.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, clierr.Newf(clierr.InvalidScript, "script not found: %s", path).
			WithDetails(map[string]any{"path": path})
	}
	return ops, err
}
