// Package cmd implements the kanban-board CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/board"
	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/config"
	"github.com/antopolskiy/kanban-board/internal/output"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
	flagVerbose bool
)

// logger receives board mutation logs. Writes to stderr so that stdout stays
// machine-readable.
var logger = newLogger()

// nowFn is the clock used for seeding and overdue checks. Replaceable in tests.
var nowFn = time.Now

var rootCmd = &cobra.Command{
	Use:   "kanban-board",
	Short: "An in-memory Kanban board driven by operation scripts",
	Long: `kanban-board loads a board from a config file, applies scripted task
operations (add, update, delete, move, reorder, drop) and reports the result.
Board state lives in memory only; the config file is the seed.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to kanban directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log board operations to stderr")
}

func newLogger() *log.Logger {
	l := log.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(log.WarnLevel)
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	return l
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Handle SilentError: exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("KANBAN_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error: wrap as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// loadConfig finds and loads the kanban config.
func loadConfig() (*config.Config, error) {
	dir := flagDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir, err = config.FindDir(cwd)
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(dir)
	switch {
	case errors.Is(err, config.ErrNotFound):
		return nil, clierr.New(clierr.BoardNotFound, err.Error()).
			WithDetails(map[string]any{"dir": dir})
	case errors.Is(err, config.ErrInvalid):
		return nil, clierr.New(clierr.InvalidInput, err.Error())
	case err != nil:
		return nil, err
	}
	return cfg, nil
}

// newManager seeds a board manager from cfg.
func newManager(cfg *config.Config) (*board.Manager, error) {
	b, err := board.FromConfig(cfg, nowFn())
	if err != nil {
		return nil, inconsistent(err)
	}
	m := board.NewManager(b, logger.WithField("board", cfg.Board.Name))
	m.SetNow(nowFn)
	m.SetDefaultPriority(cfg.DefaultTaskPriority())
	return m, nil
}

func inconsistent(err error) error {
	return clierr.New(clierr.InconsistentBoard, err.Error())
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}
