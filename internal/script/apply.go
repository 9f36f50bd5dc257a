package script

import (
	"github.com/antopolskiy/kanban-board/internal/board"
)

// Result reports the outcome of one operation.
type Result struct {
	Index   int    `json:"index"`
	Op      string `json:"op"`
	Task    string `json:"task,omitempty"`
	Applied bool   `json:"applied"`
}

// Apply validates ops and runs them in order against m. Operations the
// manager treats as no-ops are reported with Applied false; they never
// stop the script.
func Apply(m *board.Manager, ops []Op) ([]Result, error) {
	if err := Validate(ops); err != nil {
		return nil, err
	}

	r := runner{m: m, aliases: make(map[string]string)}
	results := make([]Result, 0, len(ops))
	for i, o := range ops {
		res := r.run(o)
		res.Index = i + 1
		res.Op = o.Op
		results = append(results, res)
	}
	return results, nil
}

type runner struct {
	m       *board.Manager
	aliases map[string]string
}

// resolve maps an alias to its task id. Anything else is returned as is.
func (r *runner) resolve(ref string) string {
	if id, ok := r.aliases[ref]; ok {
		return id
	}
	return ref
}

func (r *runner) run(o Op) Result {
	p, _ := o.Patch() // validated by Apply
	id := r.resolve(o.Task)

	switch o.Op {
	case OpAdd:
		t, ok := r.m.AddTask(o.Column, *o.Title, p)
		if ok && o.As != "" {
			r.aliases[o.As] = t.ID
		}
		return Result{Task: t.ID, Applied: ok}

	case OpUpdate:
		return Result{Task: id, Applied: r.m.UpdateTask(id, p)}

	case OpDelete:
		column := o.Column
		if column == "" {
			column, _, _ = r.m.Snapshot().Owner(id)
		}
		return Result{Task: id, Applied: r.m.DeleteTask(id, column)}

	case OpMove:
		snap := r.m.Snapshot()
		owner, idx, _ := snap.Owner(id)
		from := o.From
		if from == "" {
			from = owner
		}
		if o.FromIndex != nil {
			idx = *o.FromIndex
		}
		to := -1
		if o.ToIndex != nil {
			to = *o.ToIndex
		} else if c, ok := snap.Column(o.To); ok {
			to = c.TaskCount() // clamped to the end
		}
		return Result{Task: id, Applied: r.m.MoveTask(id, from, o.To, idx, to)}

	case OpReorder:
		return Result{Applied: r.m.ReorderTask(o.Column, *o.FromIndex, *o.ToIndex)}

	case OpDrop:
		return Result{Task: id, Applied: r.m.DropTask(id, r.resolve(o.Over))}
	}
	return Result{Task: id}
}
