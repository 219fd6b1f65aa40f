package canvas

import (
	"math"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// NodeRect returns a node's bounding rectangle in canvas space.
func NodeRect(n *graph.Node) Rect {
	return Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

// NodeAt returns the topmost node under the canvas point, or nil.
// Later entries in the node slice render on top, so iteration runs in
// reverse.
func NodeAt(g *graph.Graph, cx, cy float64) *graph.Node {
	if g == nil {
		return nil
	}
	for i := len(g.Nodes) - 1; i >= 0; i-- {
		if NodeRect(g.Nodes[i]).Contains(cx, cy) {
			return g.Nodes[i]
		}
	}
	return nil
}

// PortHit describes a port found under the pointer, with its derived
// canvas position.
type PortHit struct {
	Node      *graph.Node
	Port      graph.Port
	Index     int
	Direction graph.PortDirection
	X, Y      float64
}

// PortAt returns the nearest port within radius of the canvas point.
// Port positions are recomputed from node geometry on every call; they
// are never cached (spec: derive, don't cache).
func PortAt(g *graph.Graph, cx, cy, radius float64) (PortHit, bool) {
	var best PortHit
	bestDist := radius
	found := false
	if g == nil {
		return best, false
	}
	for _, n := range g.Nodes {
		for i, p := range n.Inputs {
			x, y := n.InputPortPosition(i)
			if d := math.Hypot(cx-x, cy-y); d <= bestDist {
				best = PortHit{Node: n, Port: p, Index: i, Direction: graph.PortIn, X: x, Y: y}
				bestDist = d
				found = true
			}
		}
		for i, p := range n.Outputs {
			x, y := n.OutputPortPosition(i)
			if d := math.Hypot(cx-x, cy-y); d <= bestDist {
				best = PortHit{Node: n, Port: p, Index: i, Direction: graph.PortOut, X: x, Y: y}
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}

// EdgeEndpoints resolves an edge's source and target port positions.
// An empty handle falls back to the first port on the relevant side, or
// to the vertical midpoint of the node edge when the node has no ports.
// ok is false when either endpoint node is missing; such edges are
// silently dropped from rendering, never treated as errors.
func EdgeEndpoints(g *graph.Graph, e *graph.Edge) (sx, sy, tx, ty float64, ok bool) {
	src := g.Node(e.Source)
	dst := g.Node(e.Target)
	if src == nil || dst == nil {
		return 0, 0, 0, 0, false
	}
	sx, sy, ok = portOrEdgeMid(src, e.SourceHandle, graph.PortOut)
	if !ok {
		return 0, 0, 0, 0, false
	}
	tx, ty, ok = portOrEdgeMid(dst, e.TargetHandle, graph.PortIn)
	if !ok {
		return 0, 0, 0, 0, false
	}
	return sx, sy, tx, ty, true
}

func portOrEdgeMid(n *graph.Node, handle string, dir graph.PortDirection) (x, y float64, ok bool) {
	if handle != "" {
		return hitPortPosition(n, handle, dir)
	}
	count := len(n.Inputs)
	if dir == graph.PortOut {
		count = len(n.Outputs)
	}
	if count > 0 {
		if dir == graph.PortOut {
			x, y = n.OutputPortPosition(0)
		} else {
			x, y = n.InputPortPosition(0)
		}
		return x, y, true
	}
	// Portless side: anchor at the edge midpoint.
	y = n.Y + n.Height/2
	x = n.X
	if dir == graph.PortOut {
		x = n.X + n.Width
	}
	return x, y, true
}

func hitPortPosition(n *graph.Node, handle string, dir graph.PortDirection) (x, y float64, ok bool) {
	x, y, ok = n.PortPosition(handle, dir)
	return x, y, ok
}

// VisibleEdges filters out edges whose source or target node or named
// port no longer exists. Defensive tolerance for stale edges after node
// deletion.
func VisibleEdges(g *graph.Graph) []*graph.Edge {
	if g == nil {
		return nil
	}
	visible := make([]*graph.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if _, _, _, _, ok := EdgeEndpoints(g, e); ok {
			visible = append(visible, e)
		}
	}
	return visible
}

// EdgeAt returns the visible edge whose curve passes within radius of
// the canvas point, or nil.
func EdgeAt(g *graph.Graph, cx, cy, radius, curvature float64) *graph.Edge {
	var best *graph.Edge
	bestDist := radius
	for _, e := range VisibleEdges(g) {
		sx, sy, tx, ty, ok := EdgeEndpoints(g, e)
		if !ok {
			continue
		}
		path := NewEdgePath(sx, sy, tx, ty, curvature)
		if d := path.DistanceTo(cx, cy); d <= bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}
