package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/date"
	"github.com/antopolskiy/kanban-board/internal/task"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("no kanban board found (run 'kanban-board init' to create one)")
	ErrInvalid  = errors.New("invalid config")
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config represents the board configuration: its columns and seed tasks.
type Config struct {
	Version  int            `yaml:"version" toml:"version"`
	Board    BoardConfig    `yaml:"board" toml:"board"`
	Defaults DefaultsConfig `yaml:"defaults" toml:"defaults"`
	Columns  []ColumnConfig `yaml:"columns" toml:"columns"`
	Tasks    []TaskSeed     `yaml:"tasks,omitempty" toml:"tasks,omitempty"`

	// dir is the absolute path to the kanban directory (not serialized).
	dir string
	// file is the config file name inside dir (not serialized).
	file string
}

// BoardConfig holds board metadata.
type BoardConfig struct {
	Name        string `yaml:"name" toml:"name"`
	Description string `yaml:"description,omitempty" toml:"description,omitempty"`
}

// DefaultsConfig holds default values for new tasks.
type DefaultsConfig struct {
	Priority string `yaml:"priority" toml:"priority"`
}

// ColumnConfig declares one board column.
type ColumnConfig struct {
	ID       string `yaml:"id" toml:"id" json:"id"`
	Title    string `yaml:"title" toml:"title" json:"title"`
	Color    string `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty"`
	Terminal bool   `yaml:"terminal,omitempty" toml:"terminal,omitempty" json:"terminal,omitempty"`
}

// TaskSeed is a task placed on the board when it is built from config.
// Seeds are appended to their column in file order.
type TaskSeed struct {
	ID          string     `yaml:"id,omitempty" toml:"id,omitempty"`
	Title       string     `yaml:"title" toml:"title"`
	Description string     `yaml:"description,omitempty" toml:"description,omitempty"`
	Column      string     `yaml:"column" toml:"column"`
	Priority    string     `yaml:"priority,omitempty" toml:"priority,omitempty"`
	Assignee    string     `yaml:"assignee,omitempty" toml:"assignee,omitempty"`
	Tags        []string   `yaml:"tags,omitempty" toml:"tags,omitempty"`
	Created     *time.Time `yaml:"created,omitempty" toml:"created,omitempty"`
	Due         *date.Date `yaml:"due,omitempty" toml:"due,omitempty"`
}

// Dir returns the absolute path to the kanban directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the kanban directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	file := c.file
	if file == "" {
		file = ConfigFileName
	}
	return filepath.Join(c.dir, file)
}

// NewDefault creates a Config with default values.
func NewDefault(name string) *Config {
	return &Config{
		Version:  CurrentVersion,
		Board:    BoardConfig{Name: name},
		Defaults: DefaultsConfig{Priority: DefaultPriority},
		Columns:  append([]ColumnConfig{}, DefaultColumns...),
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if c.Board.Name == "" {
		return fmt.Errorf("%w: board.name is required", ErrInvalid)
	}
	if err := c.validateColumns(); err != nil {
		return err
	}
	if _, err := task.ParsePriority(c.Defaults.Priority); err != nil {
		return fmt.Errorf("%w: default priority %q is not a known priority", ErrInvalid, c.Defaults.Priority)
	}
	return c.validateTasks()
}

func (c *Config) validateColumns() error {
	if len(c.Columns) < 2 { //nolint:mnd // minimum 2 columns for a kanban board
		return fmt.Errorf("%w: at least 2 columns are required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if col.ID == "" {
			return fmt.Errorf("%w: column id is required", ErrInvalid)
		}
		if seen[col.ID] {
			return fmt.Errorf("%w: duplicate column id %q", ErrInvalid, col.ID)
		}
		seen[col.ID] = true
		if col.Title == "" {
			return fmt.Errorf("%w: column %q title is required", ErrInvalid, col.ID)
		}
		if col.Color != "" && !colorPattern.MatchString(col.Color) {
			return fmt.Errorf("%w: column %q color %q is not a hex color", ErrInvalid, col.ID, col.Color)
		}
	}
	return nil
}

func (c *Config) validateTasks() error {
	ids := make(map[string]bool, len(c.Tasks))
	for i, s := range c.Tasks {
		if s.Title == "" {
			return fmt.Errorf("%w: tasks[%d]: title is required", ErrInvalid, i)
		}
		if c.ColumnByID(s.Column) == nil {
			return fmt.Errorf("%w: tasks[%d]: unknown column %q", ErrInvalid, i, s.Column)
		}
		if s.Priority != "" {
			if _, err := task.ParsePriority(s.Priority); err != nil {
				return fmt.Errorf("%w: tasks[%d]: invalid priority %q", ErrInvalid, i, s.Priority)
			}
		}
		if s.ID != "" {
			if ids[s.ID] {
				return fmt.Errorf("%w: tasks[%d]: duplicate id %q", ErrInvalid, i, s.ID)
			}
			ids[s.ID] = true
		}
	}
	return nil
}

// ColumnIDs returns the configured column ids in order.
func (c *Config) ColumnIDs() []string {
	ids := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		ids[i] = col.ID
	}
	return ids
}

// ColumnByID returns the column with the given id, or nil if not found.
func (c *Config) ColumnByID(id string) *ColumnConfig {
	for i := range c.Columns {
		if c.Columns[i].ID == id {
			return &c.Columns[i]
		}
	}
	return nil
}

// DefaultTaskPriority returns the configured default priority, falling back
// to medium when unset or invalid.
func (c *Config) DefaultTaskPriority() task.Priority {
	p, err := task.ParsePriority(c.Defaults.Priority)
	if err != nil {
		return task.DefaultPriority
	}
	return p
}

// Save writes the config to its config file in the file's format.
func (c *Config) Save() error {
	data, err := c.marshal()
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

func (c *Config) marshal() ([]byte, error) {
	if c.file == TOMLFileName {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return yaml.Marshal(c)
}

// Load reads and validates a config from the given kanban directory.
// config.yml takes precedence over config.toml.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	for _, name := range configFileNames {
		path := filepath.Join(absDir, name)
		data, err := os.ReadFile(path) //nolint:gosec // config path from trusted source
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading config: %w", err)
		}
		return parse(data, absDir, name)
	}
	return nil, ErrNotFound
}

func parse(data []byte, dir, name string) (*Config, error) {
	var cfg Config
	if name == TOMLFileName {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.dir = dir
	cfg.file = name

	// Migrate old config versions forward before validating.
	if err := migrate(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Init creates a kanban directory with a default config.yml.
func Init(dir, name string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if hasConfig(absDir) {
		return nil, clierr.Newf(clierr.BoardExists, "board already exists in %s", absDir).
			WithDetails(map[string]any{"dir": absDir})
	}
	if err := os.MkdirAll(absDir, dirMode); err != nil {
		return nil, fmt.Errorf("creating kanban directory: %w", err)
	}

	cfg := NewDefault(name)
	cfg.dir = absDir
	cfg.file = ConfigFileName
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("writing config: %w", err)
	}
	return cfg, nil
}

// FindDir walks upward from startDir looking for a kanban directory
// containing a config file. Returns the absolute path to the kanban directory.
func FindDir(startDir string) (string, error) {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	dir := absStart
	for {
		if candidate := filepath.Join(dir, DefaultDir); hasConfig(candidate) {
			return candidate, nil
		}

		// Also check if we're inside the kanban directory itself.
		if hasConfig(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", clierr.New(clierr.BoardNotFound,
				"no kanban board found (run 'kanban-board init' to create one)")
		}
		dir = parent
	}
}

func hasConfig(dir string) bool {
	for _, name := range configFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}
