package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/config"
	"github.com/antopolskiy/kanban-board/internal/output"
	"github.com/antopolskiy/kanban-board/internal/task"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify board configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get func(*config.Config) any
	set func(*config.Config, string) error // nil for read-only keys
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"board.name": {
			get: func(c *config.Config) any { return c.Board.Name },
			set: func(c *config.Config, v string) error {
				if strings.TrimSpace(v) == "" {
					return clierr.New(clierr.InvalidInput, "board name must not be empty")
				}
				c.Board.Name = v
				return nil
			},
		},
		"board.description": {
			get: func(c *config.Config) any { return c.Board.Description },
			set: func(c *config.Config, v string) error { c.Board.Description = v; return nil },
		},
		"defaults.priority": {
			get: func(c *config.Config) any { return c.Defaults.Priority },
			set: func(c *config.Config, v string) error {
				p, err := task.ParsePriority(v)
				if err != nil {
					return err
				}
				c.Defaults.Priority = string(p)
				return nil
			},
		},
		"columns": {
			get: func(c *config.Config) any { return c.ColumnIDs() },
		},
		"terminal_columns": {
			get: func(c *config.Config) any {
				ids := []string{}
				for _, col := range c.Columns {
					if col.Terminal {
						ids = append(ids, col.ID)
					}
				}
				return ids
			},
		},
		"tasks": {
			get: func(c *config.Config) any { return len(c.Tasks) },
		},
	}
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"board.name",
		"board.description",
		"defaults.priority",
		"columns",
		"terminal_columns",
		"tasks",
	}
}

func lookupAccessor(key string) (configAccessor, error) {
	acc, ok := configAccessors()[key]
	if !ok {
		return acc, clierr.Newf(clierr.InvalidInput, "unknown config key %q", key).
			WithDetails(map[string]any{"key": key, "allowed": allConfigKeys()})
	}
	return acc, nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()
	if outputFormat() == output.FormatJSON {
		values := make(map[string]any, len(accessors))
		for key, acc := range accessors {
			values[key] = acc.get(cfg)
		}
		return output.JSON(os.Stdout, values)
	}

	for _, key := range allConfigKeys() {
		output.Messagef(os.Stdout, "%s: %s", key, formatConfigValue(accessors[key].get(cfg)))
	}
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	acc, err := lookupAccessor(args[0])
	if err != nil {
		return err
	}

	val := acc.get(cfg)
	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, val)
	}
	output.Messagef(os.Stdout, "%s", formatConfigValue(val))
	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	key, value := args[0], args[1]
	acc, err := lookupAccessor(key)
	if err != nil {
		return err
	}
	if acc.set == nil {
		return clierr.Newf(clierr.InvalidInput, "config key %q is read-only", key).
			WithDetails(map[string]any{"key": key})
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return clierr.New(clierr.InvalidInput, err.Error())
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(os.Stdout, "Set %s = %s", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(v any) string {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ", ")
	}
	return fmt.Sprint(v)
}
