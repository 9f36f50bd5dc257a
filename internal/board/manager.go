package board

import (
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/antopolskiy/kanban-board/internal/task"
)

// Manager owns the current board snapshot and applies task operations to it.
//
// Every operation builds a new Board from the current one and publishes it
// with a single pointer swap, so Snapshot never returns a half-applied
// state. Writers are serialized; readers never block.
//
// Operations never fail with an error. Unknown ids make the call a no-op,
// reported by a false return.
type Manager struct {
	mu    sync.Mutex
	state atomic.Pointer[Board]

	log             logrus.FieldLogger
	now             func() time.Time
	newID           func() string
	defaultPriority task.Priority
}

// NewManager creates a manager seeded with b. A nil logger discards logs.
func NewManager(b *Board, log logrus.FieldLogger) *Manager {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	m := &Manager{
		log:             log,
		now:             time.Now,
		newID:           task.NewID,
		defaultPriority: task.DefaultPriority,
	}
	m.state.Store(b)
	return m
}

// SetNow overrides the clock used for creation timestamps (for testing).
func (m *Manager) SetNow(fn func() time.Time) {
	m.now = fn
}

// SetIDFunc overrides task id generation (for testing).
func (m *Manager) SetIDFunc(fn func() string) {
	m.newID = fn
}

// SetDefaultPriority sets the priority given to new tasks without an override.
func (m *Manager) SetDefaultPriority(p task.Priority) {
	m.defaultPriority = p
}

// Snapshot returns the current board.
func (m *Manager) Snapshot() *Board {
	return m.state.Load()
}

// apply runs fn against the current board under the writer lock and
// publishes its result when fn reports a change.
func (m *Manager) apply(fn func(cur *Board) (*Board, bool)) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, ok := fn(m.state.Load())
	if ok {
		m.state.Store(next)
	}
	return ok
}

// AddTask creates a task at the end of columnID. Fields present in
// overrides replace the defaults, except Status, which always equals
// columnID. Returns the new task, or false if the column is unknown.
func (m *Manager) AddTask(columnID, title string, overrides task.Patch) (task.Task, bool) {
	entry := m.log.WithFields(logrus.Fields{"op": "add", "column": columnID})

	var created task.Task
	ok := m.apply(func(cur *Board) (*Board, bool) {
		col := cur.columnIndex(columnID)
		if col < 0 {
			entry.Debug("no-op: unknown column")
			return nil, false
		}

		t := task.Task{
			ID:       m.newID(),
			Title:    title,
			Status:   columnID,
			Priority: m.defaultPriority,
			Tags:     []string{},
			Created:  m.now(),
		}
		if _, exists := cur.tasks[t.ID]; exists {
			entry.WithField("task", t.ID).Warn("no-op: generated id already in use")
			return nil, false
		}
		overrides.Status = task.Opt[string]{}
		t = overrides.Apply(t)

		next := cur.fork()
		next.tasks[t.ID] = t
		next.columns[col].TaskIDs = append(slices.Clone(cur.columns[col].TaskIDs), t.ID)
		created = t
		entry.WithField("task", t.ID).Debug("task added")
		return next, true
	})
	return created.Clone(), ok
}

// UpdateTask merges updates onto the task. A present Status that differs
// from the current one moves the task to the end of that column. A status
// naming no column is dropped and the other fields still apply.
func (m *Manager) UpdateTask(taskID string, updates task.Patch) bool {
	entry := m.log.WithFields(logrus.Fields{"op": "update", "task": taskID})

	return m.apply(func(cur *Board) (*Board, bool) {
		t, ok := cur.tasks[taskID]
		if !ok {
			entry.Debug("no-op: unknown task")
			return nil, false
		}

		dest := -1
		if status, set := updates.Status.Get(); set && status != t.Status {
			dest = cur.columnIndex(status)
			if dest < 0 {
				entry.WithField("status", status).Debug("status names no column; ignoring status")
				updates.Status = task.Opt[string]{}
			}
		}
		if updates.IsEmpty() {
			entry.Debug("no-op: empty update")
			return nil, false
		}

		next := cur.fork()
		next.tasks[taskID] = updates.Apply(t)
		if dest >= 0 {
			for i, c := range next.columns {
				if idx := c.IndexOf(taskID); idx >= 0 {
					next.columns[i].TaskIDs = slices.Delete(slices.Clone(c.TaskIDs), idx, idx+1)
					break
				}
			}
			next.columns[dest].TaskIDs = append(slices.Clone(next.columns[dest].TaskIDs), taskID)
			entry.WithField("column", next.columns[dest].ID).Debug("task moved by status change")
		}
		entry.Debug("task updated")
		return next, true
	})
}

// DeleteTask removes the task from the mapping and filters its id out of
// columnID. Column ownership is not checked. Returns false when neither
// the mapping nor the column changed.
func (m *Manager) DeleteTask(taskID, columnID string) bool {
	entry := m.log.WithFields(logrus.Fields{"op": "delete", "task": taskID, "column": columnID})

	return m.apply(func(cur *Board) (*Board, bool) {
		_, known := cur.tasks[taskID]
		col := cur.columnIndex(columnID)
		listed := col >= 0 && cur.columns[col].IndexOf(taskID) >= 0
		if !known && !listed {
			entry.Debug("no-op: unknown task")
			return nil, false
		}

		next := cur.fork()
		delete(next.tasks, taskID)
		if listed {
			next.columns[col].TaskIDs = slices.DeleteFunc(slices.Clone(cur.columns[col].TaskIDs),
				func(id string) bool { return id == taskID })
		}
		entry.Debug("task deleted")
		return next, true
	})
}

// MoveTask moves a task between or within columns. Within one column the
// task is repositioned to destIndex. Across columns it is inserted at
// destIndex in the destination and its status becomes destColumnID.
//
// The source position is taken from the live board, not from sourceIndex,
// so a stale index from an earlier snapshot cannot move the wrong task.
// destIndex is clamped to the destination's bounds.
func (m *Manager) MoveTask(taskID, sourceColumnID, destColumnID string, sourceIndex, destIndex int) bool {
	entry := m.log.WithFields(logrus.Fields{
		"op": "move", "task": taskID, "from": sourceColumnID, "to": destColumnID,
	})

	return m.apply(func(cur *Board) (*Board, bool) {
		src, dst := cur.columnIndex(sourceColumnID), cur.columnIndex(destColumnID)
		if src < 0 || dst < 0 {
			entry.Debug("no-op: unknown column")
			return nil, false
		}
		live := cur.columns[src].IndexOf(taskID)
		if live < 0 {
			entry.Debug("no-op: task not in source column")
			return nil, false
		}
		if live != sourceIndex {
			entry.WithFields(logrus.Fields{"given": sourceIndex, "live": live}).Debug("stale source index")
		}
		entry.WithField("index", destIndex).Debug("task moved")
		return cur.move(taskID, src, dst, live, destIndex), true
	})
}

// ReorderTask repositions the task at startIndex to endIndex within one
// column. Indices are clamped. Unknown or empty columns are a no-op.
func (m *Manager) ReorderTask(columnID string, startIndex, endIndex int) bool {
	entry := m.log.WithFields(logrus.Fields{"op": "reorder", "column": columnID})

	return m.apply(func(cur *Board) (*Board, bool) {
		col := cur.columnIndex(columnID)
		if col < 0 {
			entry.Debug("no-op: unknown column")
			return nil, false
		}
		if cur.columns[col].IsEmpty() {
			entry.Debug("no-op: empty column")
			return nil, false
		}
		next := cur.fork()
		next.columns[col].TaskIDs = Reposition(cur.columns[col].TaskIDs, startIndex, endIndex)
		entry.WithFields(logrus.Fields{"from": startIndex, "to": endIndex}).Debug("column reordered")
		return next, true
	})
}

// DropTask moves a dragged task onto a drop target resolved against the
// live board. If overID names a column the task goes to its end; if it
// names a task the dragged task takes that task's position.
func (m *Manager) DropTask(taskID, overID string) bool {
	entry := m.log.WithFields(logrus.Fields{"op": "drop", "task": taskID, "over": overID})

	return m.apply(func(cur *Board) (*Board, bool) {
		srcID, live, ok := cur.Owner(taskID)
		if !ok {
			entry.Debug("no-op: task not on board")
			return nil, false
		}

		var dstID string
		var destIndex int
		if c := cur.columnIndex(overID); c >= 0 {
			dstID, destIndex = overID, len(cur.columns[c].TaskIDs)
		} else if id, idx, found := cur.Owner(overID); found {
			dstID, destIndex = id, idx
		} else {
			entry.Debug("no-op: unknown drop target")
			return nil, false
		}

		entry.WithFields(logrus.Fields{"to": dstID, "index": destIndex}).Debug("drop resolved")
		return cur.move(taskID, cur.columnIndex(srcID), cur.columnIndex(dstID), live, destIndex), true
	})
}

// IsOverdue reports whether t is overdue on the current board.
func (m *Manager) IsOverdue(t task.Task, now time.Time) bool {
	return m.Snapshot().IsOverdue(t, now)
}

// move returns a new board with the task at removeAt of column src moved to
// insertAt of column dst.
func (b *Board) move(taskID string, src, dst, removeAt, insertAt int) *Board {
	next := b.fork()
	if src == dst {
		next.columns[src].TaskIDs = Reposition(b.columns[src].TaskIDs, removeAt, insertAt)
		return next
	}

	next.columns[src].TaskIDs, next.columns[dst].TaskIDs = Transfer(
		b.columns[src].TaskIDs, b.columns[dst].TaskIDs, removeAt, insertAt)
	t := next.tasks[taskID]
	t.Status = b.columns[dst].ID
	next.tasks[taskID] = t
	return next
}
