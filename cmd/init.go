package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/config"
	"github.com/antopolskiy/kanban-board/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new kanban board",
	Long: `Creates a kanban directory with a default config.yml holding the board
name and its columns. Seed tasks can be added to the config by hand.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("name", "", "board name (defaults to the parent directory name)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	dir := flagDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		dir = filepath.Join(cwd, config.DefaultDir)
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(filepath.Dir(absDir))
	}

	cfg, err := config.Init(dir, name)
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"status":  "initialized",
			"name":    cfg.Board.Name,
			"dir":     cfg.Dir(),
			"columns": cfg.ColumnIDs(),
		})
	}

	output.Messagef(os.Stdout, "Initialized board %q in %s", cfg.Board.Name, cfg.Dir())
	return nil
}
