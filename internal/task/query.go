package task

import (
	"strings"
	"time"
)

// IsOverdue reports whether t has a due date strictly before now and is
// not sitting in a terminal column.
func IsOverdue(t Task, now time.Time, terminal bool) bool {
	if t.Due == nil {
		return false
	}
	return t.Due.Before(now) && !terminal
}

// MatchesSearch performs case-insensitive substring matching across
// title, description and tags.
func MatchesSearch(t Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Search returns the tasks matching query.
func Search(tasks []Task, query string) []Task {
	var result []Task
	for _, t := range tasks {
		if MatchesSearch(t, query) {
			result = append(result, t)
		}
	}
	return result
}

// FilterByTag returns the tasks carrying tag. Matching is case-sensitive.
func FilterByTag(tasks []Task, tag string) []Task {
	var result []Task
	for _, t := range tasks {
		if t.HasTag(tag) {
			result = append(result, t)
		}
	}
	return result
}
