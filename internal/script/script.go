// Package script reads and applies YAML scripts of board operations.
//
// A script is a YAML sequence of operations:
//
//	- op: add
//	  column: todo
//	  title: Write release notes
//	  as: notes
//	- op: move
//	  task: notes
//	  to: in-progress
//	  to_index: 0
//
// An add may bind the generated task id to an alias with "as". Later
// operations can use the alias wherever a task id is expected.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/antopolskiy/kanban-board/internal/clierr"
	"github.com/antopolskiy/kanban-board/internal/date"
	"github.com/antopolskiy/kanban-board/internal/task"
)

// Operation kinds.
const (
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpMove    = "move"
	OpReorder = "reorder"
	OpDrop    = "drop"
)

// Kinds lists the accepted operation kinds.
var Kinds = []string{OpAdd, OpUpdate, OpDelete, OpMove, OpReorder, OpDrop}

// Op is one scripted board operation. Which fields are used depends on Op.
type Op struct {
	Op        string `yaml:"op" json:"op"`
	Task      string `yaml:"task,omitempty" json:"task,omitempty"`
	Column    string `yaml:"column,omitempty" json:"column,omitempty"`
	From      string `yaml:"from,omitempty" json:"from,omitempty"`
	To        string `yaml:"to,omitempty" json:"to,omitempty"`
	FromIndex *int   `yaml:"from_index,omitempty" json:"from_index,omitempty"`
	ToIndex   *int   `yaml:"to_index,omitempty" json:"to_index,omitempty"`
	Over      string `yaml:"over,omitempty" json:"over,omitempty"`
	As        string `yaml:"as,omitempty" json:"as,omitempty"`

	Title       *string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description *string   `yaml:"description,omitempty" json:"description,omitempty"`
	Status      *string   `yaml:"status,omitempty" json:"status,omitempty"`
	Priority    *string   `yaml:"priority,omitempty" json:"priority,omitempty"`
	Assignee    *string   `yaml:"assignee,omitempty" json:"assignee,omitempty"`
	Tags        *[]string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Due         *string   `yaml:"due,omitempty" json:"due,omitempty"` // empty string clears
}

// Load reads and validates the script at path.
func Load(path string) ([]Op, error) {
	f, err := os.Open(path) //nolint:gosec // script path from user input
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) ([]Op, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ops []Op
	if err := dec.Decode(&ops); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, clierr.New(clierr.InvalidScript, "script is empty")
		}
		return nil, clierr.Newf(clierr.InvalidScript, "parsing script: %v", err)
	}
	if len(ops) == 0 {
		return nil, clierr.New(clierr.InvalidScript, "script is empty")
	}
	if err := Validate(ops); err != nil {
		return nil, err
	}
	return ops, nil
}

// Validate checks every operation for its required fields and parses its
// field values. Aliases must be unique.
func Validate(ops []Op) error {
	aliases := make(map[string]bool)
	for i, o := range ops {
		if err := o.validate(); err != nil {
			return opError(i, o, err)
		}
		if o.As != "" {
			if aliases[o.As] {
				return opError(i, o, fmt.Errorf("alias %q already defined", o.As))
			}
			aliases[o.As] = true
		}
	}
	return nil
}

func (o Op) validate() error {
	var missing []string
	need := func(field string, ok bool) {
		if !ok {
			missing = append(missing, field)
		}
	}

	switch o.Op {
	case OpAdd:
		need("column", o.Column != "")
		need("title", o.Title != nil && *o.Title != "")
		if o.Status != nil {
			return errors.New("add takes a column, not a status")
		}
	case OpUpdate:
		need("task", o.Task != "")
	case OpDelete:
		need("task", o.Task != "")
	case OpMove:
		need("task", o.Task != "")
		need("to", o.To != "")
	case OpReorder:
		need("column", o.Column != "")
		need("from_index", o.FromIndex != nil)
		need("to_index", o.ToIndex != nil)
	case OpDrop:
		need("task", o.Task != "")
		need("over", o.Over != "")
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", o.Op)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s requires %v", o.Op, missing)
	}
	if o.As != "" && o.Op != OpAdd {
		return errors.New("only add can define an alias")
	}

	p, err := o.Patch()
	if err != nil {
		return err
	}
	if o.Op == OpUpdate && p.IsEmpty() {
		return errors.New("update sets no fields")
	}
	return nil
}

// Patch builds the task field changes carried by the operation.
func (o Op) Patch() (task.Patch, error) {
	var p task.Patch
	if o.Title != nil {
		if err := task.ValidateTitle(*o.Title); err != nil {
			return p, err
		}
		p.Title = task.Some(*o.Title)
	}
	if o.Description != nil {
		p.Description = task.Some(*o.Description)
	}
	if o.Status != nil {
		p.Status = task.Some(*o.Status)
	}
	if o.Priority != nil {
		prio, err := task.ParsePriority(*o.Priority)
		if err != nil {
			return p, err
		}
		p.Priority = task.Some(prio)
	}
	if o.Assignee != nil {
		p.Assignee = task.Some(*o.Assignee)
	}
	if o.Tags != nil {
		p.Tags = task.Some(*o.Tags)
	}
	if o.Due != nil {
		if *o.Due == "" {
			p.Due = task.Some[*date.Date](nil)
		} else {
			d, err := date.Parse(*o.Due)
			if err != nil {
				return p, task.ValidateDate("due", *o.Due, err)
			}
			p.Due = task.Some(&d)
		}
	}
	return p, nil
}

func opError(i int, o Op, err error) error {
	details := map[string]any{"index": i + 1, "op": o.Op}
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		return clierr.Newf(cliErr.Code, "op %d (%s): %s", i+1, o.Op, cliErr.Message).WithDetails(details)
	}
	return clierr.Newf(clierr.InvalidScript, "op %d (%s): %v", i+1, o.Op, err).WithDetails(details)
}
