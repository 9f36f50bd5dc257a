// Package config handles kanban board configuration and seed data.
package config

// Default values for a new board.
var (
	DefaultDir = "kanban"

	DefaultColumns = []ColumnConfig{
		{ID: "todo", Title: "To Do", Color: "#6b7280"},
		{ID: "in-progress", Title: "In Progress", Color: "#3b82f6"},
		{ID: "review", Title: "Review", Color: "#f59e0b"},
		{ID: "done", Title: "Done", Color: "#10b981", Terminal: true},
	}

	DefaultPriority = "medium"
	DefaultColor    = "#6b7280"
)

const (
	// ConfigFileName is the YAML config file within the kanban directory.
	ConfigFileName = "config.yml"

	// TOMLFileName is the alternative TOML config file.
	TOMLFileName = "config.toml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)

// configFileNames lists config file names in lookup order.
var configFileNames = []string{ConfigFileName, TOMLFileName}
