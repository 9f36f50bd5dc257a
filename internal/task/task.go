// Package task defines the task record, its patch type and pure queries over task lists.
package task

import (
	"slices"
	"time"

	"github.com/antopolskiy/kanban-board/internal/date"
)

// Task is a unit of work on the board. Status always equals the id of the
// column that holds the task.
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Status      string     `json:"status" yaml:"status"`
	Priority    Priority   `json:"priority" yaml:"priority"`
	Assignee    string     `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Tags        []string   `json:"tags" yaml:"tags,omitempty"`
	Created     time.Time  `json:"created" yaml:"created"`
	Due         *date.Date `json:"due,omitempty" yaml:"due,omitempty"`
}

// Clone returns a deep copy so the result shares no mutable state with t.
func (t Task) Clone() Task {
	t.Tags = slices.Clone(t.Tags)
	if t.Due != nil {
		d := *t.Due
		t.Due = &d
	}
	return t
}

// HasTag reports whether the task carries tag (exact match).
func (t Task) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// Opt is a single optional patch field. The zero value is absent.
type Opt[T any] struct {
	Value T
	Set   bool
}

// Some returns a present Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Value: v, Set: true}
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// Patch is a partial task update. Present fields overwrite, absent fields
// are preserved. Due may be set to nil to clear the due date.
type Patch struct {
	Title       Opt[string]
	Description Opt[string]
	Status      Opt[string]
	Priority    Opt[Priority]
	Assignee    Opt[string]
	Tags        Opt[[]string]
	Due         Opt[*date.Date]
}

// IsEmpty reports whether no field is present.
func (p Patch) IsEmpty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Status.Set && !p.Priority.Set &&
		!p.Assignee.Set && !p.Tags.Set && !p.Due.Set
}

// Apply returns a copy of t with the present fields of p written over it.
func (p Patch) Apply(t Task) Task {
	out := t.Clone()
	if v, ok := p.Title.Get(); ok {
		out.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		out.Description = v
	}
	if v, ok := p.Status.Get(); ok {
		out.Status = v
	}
	if v, ok := p.Priority.Get(); ok {
		out.Priority = v
	}
	if v, ok := p.Assignee.Get(); ok {
		out.Assignee = v
	}
	if v, ok := p.Tags.Get(); ok {
		out.Tags = slices.Clone(v)
		if out.Tags == nil {
			out.Tags = []string{}
		}
	}
	if v, ok := p.Due.Get(); ok {
		out.Due = nil
		if v != nil {
			d := *v
			out.Due = &d
		}
	}
	return out
}
