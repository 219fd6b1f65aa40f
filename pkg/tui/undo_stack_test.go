package tui

import (
	"testing"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

func snapshotGraph(x float64) *graph.Graph {
	g := graph.New("g")
	g.Nodes = []*graph.Node{{ID: "a", Type: "task", X: x, Y: 0, Width: 10, Height: 10}}
	return g
}

func TestUndoRedoWalk(t *testing.T) {
	u := NewUndoStack(10)

	if u.CanUndo() || u.CanRedo() {
		t.Fatal("empty stack offers no undo/redo")
	}

	for _, x := range []float64{0, 1, 2} {
		if err := u.Push(snapshotGraph(x)); err != nil {
			t.Fatal(err)
		}
	}

	g, err := u.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if g.Node("a").X != 1 {
		t.Errorf("undo returned x=%g, want 1", g.Node("a").X)
	}

	g, err = u.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if g.Node("a").X != 0 {
		t.Errorf("second undo returned x=%g, want 0", g.Node("a").X)
	}
	if u.CanUndo() {
		t.Error("cannot undo past the baseline snapshot")
	}

	g, err = u.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if g.Node("a").X != 1 {
		t.Errorf("redo returned x=%g, want 1", g.Node("a").X)
	}
}

func TestPushClearsRedoHistory(t *testing.T) {
	u := NewUndoStack(10)
	for _, x := range []float64{0, 1, 2} {
		_ = u.Push(snapshotGraph(x))
	}
	if _, err := u.Undo(); err != nil {
		t.Fatal(err)
	}

	_ = u.Push(snapshotGraph(99))
	if u.CanRedo() {
		t.Error("a new push must discard the redo branch")
	}
	g, err := u.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if g.Node("a").X != 1 {
		t.Errorf("undo after branch returned x=%g, want 1", g.Node("a").X)
	}
}

func TestUndoStackCapacity(t *testing.T) {
	u := NewUndoStack(3)
	for x := 0; x < 5; x++ {
		_ = u.Push(snapshotGraph(float64(x)))
	}
	if u.Size() != 3 {
		t.Fatalf("size = %d, want capacity 3", u.Size())
	}

	// Walk all the way back: the oldest surviving snapshot is x=2.
	var last *graph.Graph
	for u.CanUndo() {
		g, err := u.Undo()
		if err != nil {
			t.Fatal(err)
		}
		last = g
	}
	if last.Node("a").X != 2 {
		t.Errorf("oldest snapshot x=%g, want 2", last.Node("a").X)
	}
}

func TestUndoSnapshotsAreIsolated(t *testing.T) {
	u := NewUndoStack(10)
	g := snapshotGraph(5)
	_ = u.Push(g)

	// Mutating the live graph must not change the stored snapshot.
	g.Node("a").X = 500
	_ = u.Push(g)

	got, err := u.Undo()
	if err != nil {
		t.Fatal(err)
	}
	if got.Node("a").X != 5 {
		t.Errorf("snapshot was not isolated: x=%g, want 5", got.Node("a").X)
	}

	// And mutating the returned copy must not corrupt the stack.
	got.Node("a").X = 777
	redone, err := u.Redo()
	if err != nil {
		t.Fatal(err)
	}
	if redone.Node("a").X != 500 {
		t.Errorf("redo corrupted: x=%g, want 500", redone.Node("a").X)
	}
}
