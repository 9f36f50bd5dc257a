package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/antopolskiy/kanban-board/internal/board"
	"github.com/antopolskiy/kanban-board/internal/task"
)

// JSON writes data as indented JSON to w.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// JSONError writes a structured error to w as JSON.
func JSONError(w io.Writer, code, msg string, details map[string]any) {
	resp := ErrorResponse{Error: msg, Code: code, Details: details}
	_ = JSON(w, resp) // best-effort; if w fails, nothing we can do
}

// BoardView is the serializable form of a board snapshot.
type BoardView struct {
	Name    string       `json:"name,omitempty"`
	Columns []ColumnView `json:"columns"`
}

// ColumnView is one column with its tasks resolved, in order.
type ColumnView struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Color    string      `json:"color"`
	Terminal bool        `json:"terminal,omitempty"`
	Tasks    []task.Task `json:"tasks"`
}

// NewBoardView resolves every column of b into its tasks.
func NewBoardView(name string, b *board.Board) BoardView {
	v := BoardView{Name: name}
	for _, c := range b.Columns() {
		tasks := b.ColumnTasks(c.ID)
		if tasks == nil {
			tasks = []task.Task{}
		}
		v.Columns = append(v.Columns, ColumnView{
			ID: c.ID, Title: c.Title, Color: c.Color, Terminal: c.Terminal, Tasks: tasks,
		})
	}
	return v
}
