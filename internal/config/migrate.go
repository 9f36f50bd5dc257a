package config

import "fmt"

// migrate upgrades a config from its current version to CurrentVersion.
// Each migration function transforms the config one version forward.
// Returns an error if the config version is newer than what this binary supports.
func migrate(cfg *Config) error {
	if cfg.Version == CurrentVersion {
		return nil
	}
	if cfg.Version > CurrentVersion {
		return fmt.Errorf(
			"%w: config version %d is newer than supported version %d (upgrade kanban-board)",
			ErrInvalid, cfg.Version, CurrentVersion,
		)
	}
	if cfg.Version < 1 {
		return fmt.Errorf("%w: config version %d is invalid", ErrInvalid, cfg.Version)
	}

	for cfg.Version < CurrentVersion {
		fn, ok := migrations[cfg.Version]
		if !ok {
			return fmt.Errorf("%w: no migration path from version %d", ErrInvalid, cfg.Version)
		}
		if err := fn(cfg); err != nil {
			return fmt.Errorf("migrating config from v%d: %w", cfg.Version, err)
		}
	}

	return nil
}

// migrations maps each version to the function that migrates it to the next version.
// The migration function must increment cfg.Version after a successful migration.
var migrations = map[int]func(*Config) error{
	1: migrateV1ToV2,
}

// migrateV1ToV2 introduces the terminal column flag and default colors.
// Version 1 boards treated a column named "done" as completed work.
func migrateV1ToV2(cfg *Config) error { //nolint:unparam // signature must match migrations map type
	hasTerminal := false
	for _, col := range cfg.Columns {
		hasTerminal = hasTerminal || col.Terminal
	}
	for i := range cfg.Columns {
		if !hasTerminal && cfg.Columns[i].ID == "done" {
			cfg.Columns[i].Terminal = true
		}
		if cfg.Columns[i].Color == "" {
			cfg.Columns[i].Color = DefaultColor
		}
	}
	if cfg.Defaults.Priority == "" {
		cfg.Defaults.Priority = DefaultPriority
	}
	cfg.Version = 2
	return nil
}
