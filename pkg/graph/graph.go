package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph mutations.
var (
	ErrNodeExists   = errors.New("node already exists")
	ErrNodeNotFound = errors.New("node not found")
	ErrEdgeExists   = errors.New("edge already exists")
	ErrEdgeNotFound = errors.New("edge not found")
)

// Graph is the host-owned node/edge collection the canvas engine renders
// and emits intents against. All mutation happens here, never inside the
// engine.
type Graph struct {
	Name  string  `json:"name" yaml:"name"`
	Nodes []*Node `json:"nodes" yaml:"nodes"`
	Edges []*Edge `json:"edges" yaml:"edges"`
}

// New creates an empty named graph.
func New(name string) *Graph {
	return &Graph{Name: name}
}

// Node returns the node with the given ID, or nil.
func (g *Graph) Node(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Edge returns the edge with the given ID, or nil.
func (g *Graph) Edge(id string) *Edge {
	for _, e := range g.Edges {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// AddNode appends a node, rejecting duplicates by ID.
func (g *Graph) AddNode(n *Node) error {
	if n == nil {
		return errors.New("cannot add nil node")
	}
	if err := n.Validate(); err != nil {
		return err
	}
	if g.Node(n.ID) != nil {
		return fmt.Errorf("%w: %s", ErrNodeExists, n.ID)
	}
	g.Nodes = append(g.Nodes, n)
	return nil
}

// RemoveNode deletes a node and every edge touching it.
func (g *Graph) RemoveNode(id string) error {
	idx := -1
	for i, n := range g.Nodes {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNodeNotFound, id)
	}
	g.Nodes = append(g.Nodes[:idx], g.Nodes[idx+1:]...)

	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if e.Source != id && e.Target != id {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	return nil
}

// AddEdge appends an edge. Both endpoints must exist and the
// (source, sourceHandle, target, targetHandle) tuple must be unique.
// Port-type compatibility is deliberately not checked here; that policy
// belongs to the application layer.
func (g *Graph) AddEdge(e *Edge) error {
	if e == nil {
		return errors.New("cannot add nil edge")
	}
	if err := e.Validate(); err != nil {
		return err
	}
	if g.Node(e.Source) == nil {
		return fmt.Errorf("%w: source %s", ErrNodeNotFound, e.Source)
	}
	if g.Node(e.Target) == nil {
		return fmt.Errorf("%w: target %s", ErrNodeNotFound, e.Target)
	}
	for _, ex := range g.Edges {
		if ex.Source == e.Source && ex.SourceHandle == e.SourceHandle &&
			ex.Target == e.Target && ex.TargetHandle == e.TargetHandle {
			return fmt.Errorf("%w: %s -> %s", ErrEdgeExists, e.Source, e.Target)
		}
	}
	g.Edges = append(g.Edges, e)
	return nil
}

// RemoveEdge deletes an edge by ID.
func (g *Graph) RemoveEdge(id string) error {
	for i, e := range g.Edges {
		if e.ID == id {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrEdgeNotFound, id)
}

// SelectedNodeIDs returns the IDs of all selected nodes. The selection
// set is always derived from the node snapshot, never stored separately,
// so it stays consistent with host-side deletions.
func (g *Graph) SelectedNodeIDs() []string {
	var ids []string
	for _, n := range g.Nodes {
		if n.Selected {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// SelectedEdgeIDs returns the IDs of all selected edges.
func (g *Graph) SelectedEdgeIDs() []string {
	var ids []string
	for _, e := range g.Edges {
		if e.Selected {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// HasSelection reports whether any node or edge is selected.
func (g *Graph) HasSelection() bool {
	return len(g.SelectedNodeIDs()) > 0 || len(g.SelectedEdgeIDs()) > 0
}

// Bounds returns the axis-aligned bounding box of all nodes.
// ok is false for an empty graph.
func (g *Graph) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	if len(g.Nodes) == 0 {
		return 0, 0, 0, 0, false
	}
	first := true
	for _, n := range g.Nodes {
		if first {
			minX, minY = n.X, n.Y
			maxX, maxY = n.X+n.Width, n.Y+n.Height
			first = false
			continue
		}
		if n.X < minX {
			minX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
		if n.X+n.Width > maxX {
			maxX = n.X + n.Width
		}
		if n.Y+n.Height > maxY {
			maxY = n.Y + n.Height
		}
	}
	return minX, minY, maxX, maxY, true
}

// Clone returns a deep copy of the graph, suitable for undo snapshots.
func (g *Graph) Clone() *Graph {
	c := &Graph{Name: g.Name}
	c.Nodes = make([]*Node, len(g.Nodes))
	for i, n := range g.Nodes {
		c.Nodes[i] = n.Clone()
	}
	c.Edges = make([]*Edge, len(g.Edges))
	for i, e := range g.Edges {
		c.Edges[i] = e.Clone()
	}
	return c
}
