package task

import (
	"slices"
	"strings"
)

// Priority is a task's urgency level.
type Priority string

// Priority levels, least to most urgent.
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is assigned to new tasks unless overridden.
const DefaultPriority = PriorityMedium

// Priorities lists all levels from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid reports whether p is a known priority level.
func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// Rank returns the sort key for p: urgent=0, high=1, medium=2, low=3.
// Unknown priorities sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2 //nolint:mnd // rank order
	case PriorityLow:
		return 3 //nolint:mnd // rank order
	default:
		return len(Priorities)
	}
}

// Label returns the display label for p.
func (p Priority) Label() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// ParsePriority validates s (case-insensitive) as a priority level.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", ValidatePriority(s)
	}
	return p, nil
}

// PriorityNames returns the level names from least to most urgent.
func PriorityNames() []string {
	names := make([]string, len(Priorities))
	for i, p := range Priorities {
		names[i] = string(p)
	}
	return names
}

// SortByPriority returns a copy of tasks ordered most to least urgent.
// Tasks with equal priority keep their relative order.
func SortByPriority(tasks []Task) []Task {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b Task) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return out
}
