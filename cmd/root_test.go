package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/config"
	"github.com/antopolskiy/kanban-board/internal/date"
	"github.com/antopolskiy/kanban-board/internal/task"
)

const testBoardName = "TestBoard"

var testNow = time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "kanban-board" {
		t.Errorf("rootCmd.Use = %v, want kanban-board", rootCmd.Use)
	}
	for _, name := range []string{"init", "board", "list", "show", "apply", "check", "config"} {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

// setupBoard initializes a board in a temp dir, points --dir at it and
// fixes the clock.
func setupBoard(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	kanbanDir := filepath.Join(dir, "kanban")
	if _, err := config.Init(kanbanDir, testBoardName); err != nil {
		t.Fatal(err)
	}

	oldFlagDir, oldNow := flagDir, nowFn
	flagDir = kanbanDir
	nowFn = func() time.Time { return testNow }
	t.Cleanup(func() {
		flagDir = oldFlagDir
		nowFn = oldNow
	})
	return kanbanDir
}

// setupSeededBoard initializes a board with four seed tasks:
// todo[t1 t2], in-progress[t3], done[t4]. t1 and t4 are past due.
func setupSeededBoard(t *testing.T) string {
	t.Helper()
	kanbanDir := setupBoard(t)
	past := date.New(2024, time.January, 10)
	seedTasks(t, kanbanDir,
		config.TaskSeed{ID: "t1", Title: "Design API", Column: "todo", Priority: "high",
			Assignee: "alice", Tags: []string{"backend"}, Due: &past},
		config.TaskSeed{ID: "t2", Title: "Write docs", Column: "todo", Priority: "low",
			Description: "Usage guide for the CLI"},
		config.TaskSeed{ID: "t3", Title: "Build UI", Column: "in-progress", Priority: "urgent",
			Tags: []string{"frontend"}},
		config.TaskSeed{ID: "t4", Title: "Set up CI", Column: "done", Tags: []string{"ops"}, Due: &past},
	)
	return kanbanDir
}

func seedTasks(t *testing.T, kanbanDir string, seeds ...config.TaskSeed) {
	t.Helper()
	cfg, err := config.Load(kanbanDir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Tasks = append(cfg.Tasks, seeds...)
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_WithFlagDir(t *testing.T) {
	setupBoard(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Board.Name != testBoardName {
		t.Errorf("board name = %q, want %q", cfg.Board.Name, testBoardName)
	}
}

func TestLoadConfig_FromWorkingDirectory(t *testing.T) {
	kanbanDir := setupBoard(t)
	flagDir = ""
	sub := filepath.Join(filepath.Dir(kanbanDir), "src", "pkg")
	if err := os.MkdirAll(sub, 0o750); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Dir() != kanbanDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), kanbanDir)
	}
}

func TestLoadConfig_MissingBoard(t *testing.T) {
	oldFlagDir := flagDir
	flagDir = t.TempDir()
	t.Cleanup(func() { flagDir = oldFlagDir })

	_, err := loadConfig()
	assertCLIError(t, err, clierr.BoardNotFound)
}

func TestLoadConfig_InvalidConfig(t *testing.T) {
	kanbanDir := setupBoard(t)
	if err := os.WriteFile(filepath.Join(kanbanDir, config.ConfigFileName),
		[]byte("version: 2\nboard:\n  name: x\ncolumns: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := loadConfig()
	assertCLIError(t, err, clierr.InvalidInput)
}

func TestNewManagerUsesConfiguredDefaultPriority(t *testing.T) {
	kanbanDir := setupBoard(t)
	cfg, err := config.Load(kanbanDir)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Defaults.Priority = "urgent"

	m, err := newManager(cfg)
	if err != nil {
		t.Fatal(err)
	}
	tk, ok := m.AddTask("todo", "New", task.Patch{})
	if !ok || tk.Priority != "urgent" || !tk.Created.Equal(testNow) {
		t.Errorf("AddTask = %+v, %v", tk, ok)
	}
}

// --- helpers ---

func assertCLIError(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var cliErr *clierr.Error
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected *clierr.Error, got %T: %v", err, err)
	}
	if cliErr.Code != code {
		t.Errorf("code = %q, want %q", cliErr.Code, code)
	}
}

// captureStdout replaces os.Stdout with a pipe and returns it.
func captureStdout(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	t.Cleanup(func() { os.Stdout = oldStdout })
	return r, w
}

// drainPipe closes the writer and reads all content from the reader.
func drainPipe(t *testing.T, r, w *os.File) string {
	t.Helper()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String()
}

// setFlags overrides the global output flags and restores them on cleanup.
func setFlags(t *testing.T, json, table, compact bool) {
	t.Helper()
	oldJSON, oldTable, oldCompact := flagJSON, flagTable, flagCompact
	flagJSON, flagTable, flagCompact = json, table, compact
	t.Cleanup(func() {
		flagJSON, flagTable, flagCompact = oldJSON, oldTable, oldCompact
	})
}

func containsSubstring(s, substr string) bool {
	return bytes.Contains([]byte(s), []byte(substr))
}
