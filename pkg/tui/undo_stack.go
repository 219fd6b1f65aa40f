package tui

import (
	"errors"
	"time"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// graphSnapshot is a point-in-time deep copy of the edited graph.
type graphSnapshot struct {
	Graph     *graph.Graph
	Timestamp time.Time
}

// UndoStack manages undo/redo history with a bounded buffer of graph
// snapshots. One snapshot per committed user action: a finished drag is
// one entry regardless of how many move events it produced.
type UndoStack struct {
	snapshots []graphSnapshot
	cursor    int // current position, -1 when empty
	capacity  int
}

// NewUndoStack creates an undo stack with the specified capacity.
func NewUndoStack(capacity int) *UndoStack {
	if capacity <= 0 {
		capacity = 100
	}
	return &UndoStack{
		snapshots: make([]graphSnapshot, 0, capacity),
		cursor:    -1,
		capacity:  capacity,
	}
}

// Push records a snapshot of the graph. Any redo history beyond the
// current cursor is discarded.
func (u *UndoStack) Push(g *graph.Graph) error {
	if g == nil {
		return errors.New("cannot push nil graph")
	}

	snapshot := graphSnapshot{Graph: g.Clone(), Timestamp: time.Now()}

	if u.cursor < len(u.snapshots)-1 {
		u.snapshots = u.snapshots[:u.cursor+1]
	}

	if len(u.snapshots) >= u.capacity {
		// Drop the oldest entry.
		copy(u.snapshots, u.snapshots[1:])
		u.snapshots[len(u.snapshots)-1] = snapshot
	} else {
		u.snapshots = append(u.snapshots, snapshot)
	}
	u.cursor = len(u.snapshots) - 1
	return nil
}

// Undo moves back one snapshot and returns a fresh copy of it. Returns
// an error when there is nothing to undo.
func (u *UndoStack) Undo() (*graph.Graph, error) {
	if !u.CanUndo() {
		return nil, errors.New("nothing to undo")
	}
	u.cursor--
	return u.snapshots[u.cursor].Graph.Clone(), nil
}

// Redo moves forward one snapshot and returns a fresh copy of it.
func (u *UndoStack) Redo() (*graph.Graph, error) {
	if !u.CanRedo() {
		return nil, errors.New("nothing to redo")
	}
	u.cursor++
	return u.snapshots[u.cursor].Graph.Clone(), nil
}

// CanUndo reports whether an earlier snapshot exists.
func (u *UndoStack) CanUndo() bool {
	return u.cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (u *UndoStack) CanRedo() bool {
	return len(u.snapshots) > 0 && u.cursor < len(u.snapshots)-1
}

// Clear resets the stack.
func (u *UndoStack) Clear() {
	u.snapshots = u.snapshots[:0]
	u.cursor = -1
}

// Size returns the number of stored snapshots.
func (u *UndoStack) Size() int {
	return len(u.snapshots)
}
