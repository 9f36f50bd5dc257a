package task

import "github.com/google/uuid"

// IDPrefix is prepended to generated task ids.
const IDPrefix = "task-"

// NewID returns a fresh random task id. Ids are version 4 UUIDs, so
// collisions are not a practical concern.
func NewID() string {
	return IDPrefix + uuid.NewString()
}
