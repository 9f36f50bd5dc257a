package e2e_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// binPath holds the path to the compiled kanban-board binary.
var binPath string

const (
	codeBoardNotFound  = "BOARD_NOT_FOUND"
	codeTaskNotFound   = "TASK_NOT_FOUND"
	codeInvalidScript  = "INVALID_SCRIPT"
	codeInvalidPrio    = "INVALID_PRIORITY"
	codeBoardExists    = "BOARD_EXISTS"
	columnTodo         = "todo"
	columnInProgress   = "in-progress"
	columnDone         = "done"
	seededBoardContent = `version: 2
board:
  name: E2E
defaults:
  priority: medium
columns:
  - {id: todo, title: To Do, color: "#6b7280"}
  - {id: in-progress, title: In Progress, color: "#3b82f6"}
  - {id: done, title: Done, color: "#10b981", terminal: true}
tasks:
  - {id: t1, title: Design API, column: todo, priority: high, tags: [backend], due: 2000-01-01}
  - {id: t2, title: Write docs, column: todo, priority: low}
  - {id: t3, title: Build UI, column: in-progress, priority: urgent}
  - {id: t4, title: Set up CI, column: done, due: 2000-01-01}
`
)

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "kanban-board-e2e-*")
	if err != nil {
		panic("creating temp dir: " + err.Error())
	}

	binName := "kanban-board"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath = filepath.Join(tmp, binName)

	buildArgs := []string{"build", "-o", binPath}
	if os.Getenv("GOCOVERDIR") != "" {
		buildArgs = append(buildArgs, "-cover",
			"-coverpkg=github.com/antopolskiy/kanban-board/...")
	}
	buildArgs = append(buildArgs, "../cmd/kanban-board")

	//nolint:gosec,noctx // building test binary in TestMain (no context available)
	build := exec.Command("go", buildArgs...)
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		panic("building binary: " + err.Error())
	}

	code := m.Run()
	_ = os.RemoveAll(tmp)
	os.Exit(code)
}

// result captures command execution output.
type result struct {
	stdout   string
	stderr   string
	exitCode int
}

// runKanban executes the binary with --dir prepended for test isolation.
func runKanban(t *testing.T, dir string, args ...string) result {
	t.Helper()
	return runKanbanStdin(t, dir, "", args...)
}

// runKanbanStdin is runKanban with stdin fed from input.
func runKanbanStdin(t *testing.T, dir, input string, args ...string) result {
	t.Helper()

	fullArgs := append([]string{"--dir", dir}, args...)
	cmd := exec.Command(binPath, fullArgs...) //nolint:gosec,noctx // e2e test binary
	cmd.Stdin = bytes.NewBufferString(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	r := result{
		stdout: stdout.String(),
		stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("running kanban-board: %v", err)
		}
	}

	return r
}

// runKanbanJSON runs with --json and unmarshals stdout into dest.
func runKanbanJSON(t *testing.T, dir string, dest any, args ...string) result {
	t.Helper()

	r := runKanban(t, dir, append([]string{"--json"}, args...)...)
	if r.exitCode != 0 {
		return r
	}

	if err := json.Unmarshal([]byte(r.stdout), dest); err != nil {
		t.Fatalf("parsing JSON output: %v\nstdout: %s", err, r.stdout)
	}

	return r
}

// errorJSON captures the structured error JSON output.
type errorJSON struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// runKanbanJSONError runs with --json and expects a non-zero exit code.
// It parses the structured error from stdout.
func runKanbanJSONError(t *testing.T, dir string, args ...string) errorJSON {
	t.Helper()

	r := runKanban(t, dir, append([]string{"--json"}, args...)...)
	if r.exitCode == 0 {
		t.Fatalf("expected non-zero exit code, got 0\nstdout: %s", r.stdout)
	}

	var errResp errorJSON
	if err := json.Unmarshal([]byte(r.stdout), &errResp); err != nil {
		t.Fatalf("parsing error JSON: %v\nstdout: %s", err, r.stdout)
	}

	return errResp
}

// initBoard initializes a board in a fresh temp directory, returns kanban dir path.
func initBoard(t *testing.T) string {
	t.Helper()

	kanbanDir := filepath.Join(t.TempDir(), "kanban")
	if r := runKanban(t, kanbanDir, "init", "--name", "E2E"); r.exitCode != 0 {
		t.Fatalf("init board (exit %d): %s", r.exitCode, r.stderr)
	}
	return kanbanDir
}

// seededBoard writes a config with four seed tasks:
// todo[t1 t2], in-progress[t3], done[t4]. t1 and t4 are long past due.
func seededBoard(t *testing.T) string {
	t.Helper()

	kanbanDir := filepath.Join(t.TempDir(), "kanban")
	if err := os.MkdirAll(kanbanDir, 0o750); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(kanbanDir, "config.yml")
	if err := os.WriteFile(path, []byte(seededBoardContent), 0o600); err != nil {
		t.Fatal(err)
	}
	return kanbanDir
}

// writeScript writes an operation script and returns its path.
func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ops.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
