package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskNode(id string, x, y float64) *Node {
	return &Node{
		ID: id, Type: "task",
		X: x, Y: y, Width: 120, Height: 60,
		Inputs:  []Port{{ID: "in"}},
		Outputs: []Port{{ID: "out"}},
	}
}

func TestAddNode(t *testing.T) {
	g := New("g")

	require.NoError(t, g.AddNode(taskNode("a", 0, 0)))
	assert.ErrorIs(t, g.AddNode(taskNode("a", 10, 10)), ErrNodeExists)
	assert.Error(t, g.AddNode(nil))
	assert.Error(t, g.AddNode(&Node{ID: "bad", Type: "task"})) // zero size
	assert.Len(t, g.Nodes, 1)
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	g := New("g")
	require.NoError(t, g.AddNode(taskNode("a", 0, 0)))
	require.NoError(t, g.AddNode(taskNode("b", 200, 0)))
	require.NoError(t, g.AddNode(taskNode("c", 400, 0)))
	require.NoError(t, g.AddEdge(&Edge{ID: "ab", Source: "a", Target: "b"}))
	require.NoError(t, g.AddEdge(&Edge{ID: "bc", Source: "b", Target: "c"}))
	require.NoError(t, g.AddEdge(&Edge{ID: "ac", Source: "a", Target: "c"}))

	require.NoError(t, g.RemoveNode("b"))

	assert.Nil(t, g.Node("b"))
	assert.Nil(t, g.Edge("ab"), "edges into the removed node must go with it")
	assert.Nil(t, g.Edge("bc"), "edges out of the removed node must go with it")
	assert.NotNil(t, g.Edge("ac"))

	assert.ErrorIs(t, g.RemoveNode("b"), ErrNodeNotFound)
}

func TestAddEdge(t *testing.T) {
	g := New("g")
	require.NoError(t, g.AddNode(taskNode("a", 0, 0)))
	require.NoError(t, g.AddNode(taskNode("b", 200, 0)))

	e := &Edge{ID: "e1", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in"}
	require.NoError(t, g.AddEdge(e))

	// Same endpoint tuple, different ID: still a duplicate.
	dup := &Edge{ID: "e2", Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in"}
	assert.ErrorIs(t, g.AddEdge(dup), ErrEdgeExists)

	assert.ErrorIs(t, g.AddEdge(&Edge{ID: "e3", Source: "a", Target: "ghost"}), ErrNodeNotFound)
	assert.ErrorIs(t, g.AddEdge(&Edge{ID: "e4", Source: "ghost", Target: "b"}), ErrNodeNotFound)
	assert.Error(t, g.AddEdge(&Edge{ID: "e5", Source: "a", Target: "a"}), "self-loops are rejected")
}

func TestRemoveEdge(t *testing.T) {
	g := New("g")
	require.NoError(t, g.AddNode(taskNode("a", 0, 0)))
	require.NoError(t, g.AddNode(taskNode("b", 200, 0)))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "a", Target: "b"}))

	require.NoError(t, g.RemoveEdge("e1"))
	assert.Empty(t, g.Edges)
	assert.ErrorIs(t, g.RemoveEdge("e1"), ErrEdgeNotFound)
}

func TestSelectionDerivedFromSnapshot(t *testing.T) {
	g := New("g")
	require.NoError(t, g.AddNode(taskNode("a", 0, 0)))
	require.NoError(t, g.AddNode(taskNode("b", 200, 0)))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "a", Target: "b"}))

	assert.False(t, g.HasSelection())

	g.Node("a").Selected = true
	g.Node("b").Selected = true
	g.Edge("e1").Selected = true
	assert.ElementsMatch(t, []string{"a", "b"}, g.SelectedNodeIDs())
	assert.Equal(t, []string{"e1"}, g.SelectedEdgeIDs())
	assert.True(t, g.HasSelection())

	// Deleting a selected node shrinks the derived set with no separate
	// bookkeeping to desync.
	require.NoError(t, g.RemoveNode("a"))
	assert.Equal(t, []string{"b"}, g.SelectedNodeIDs())
	assert.Empty(t, g.SelectedEdgeIDs(), "cascaded edge removal drops its selection too")
}

func TestBounds(t *testing.T) {
	g := New("g")
	_, _, _, _, ok := g.Bounds()
	assert.False(t, ok, "empty graph has no bounds")

	require.NoError(t, g.AddNode(taskNode("a", -50, 10)))
	require.NoError(t, g.AddNode(taskNode("b", 300, 200)))

	minX, minY, maxX, maxY, ok := g.Bounds()
	require.True(t, ok)
	assert.Equal(t, -50.0, minX)
	assert.Equal(t, 10.0, minY)
	assert.Equal(t, 420.0, maxX) // 300 + width 120
	assert.Equal(t, 260.0, maxY) // 200 + height 60
}

func TestCloneIsDeep(t *testing.T) {
	g := New("g")
	n := taskNode("a", 0, 0)
	n.Data = []byte(`{"label":"original"}`)
	require.NoError(t, g.AddNode(n))
	require.NoError(t, g.AddNode(taskNode("b", 200, 0)))
	require.NoError(t, g.AddEdge(&Edge{ID: "e1", Source: "a", Target: "b"}))

	c := g.Clone()
	c.Node("a").X = 999
	c.Node("a").Data[10] = 'X'
	c.Node("a").Inputs[0].ID = "mutated"
	c.Edge("e1").Label = "mutated"

	assert.Equal(t, 0.0, g.Node("a").X)
	assert.Equal(t, `{"label":"original"}`, string(g.Node("a").Data))
	assert.Equal(t, "in", g.Node("a").Inputs[0].ID)
	assert.Empty(t, g.Edge("e1").Label)
}
