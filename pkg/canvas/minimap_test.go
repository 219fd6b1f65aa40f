package canvas

import (
	"testing"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

func minimapFixture() (*graph.Graph, *ViewportController, *Minimap) {
	g := graph.New("map")
	g.Nodes = []*graph.Node{
		testNode("a", 0, 0, 100, 100),
		testNode("b", 900, 400, 100, 100),
	}
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	m := NewMinimap(200, 150)
	return g, vc, m
}

func TestMinimapUniformScale(t *testing.T) {
	// Wide enough that the fit lands below the 0.1 cap, so the tighter
	// of the two axis ratios is what's under test.
	g := graph.New("wide")
	g.Nodes = []*graph.Node{
		testNode("a", 0, 0, 100, 100),
		testNode("b", 2900, 400, 100, 100),
	}
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	m := NewMinimap(200, 150)

	proj := m.Project(g, vc)

	// Padded box is (-50,-50)-(3050,550): 3100x600. Scale is the tighter
	// fit, min(200/3100, 150/600).
	want := 200.0 / 3100.0
	if !almostEqual(proj.Scale, want) {
		t.Fatalf("scale = %g, want %g", proj.Scale, want)
	}

	// Every node rectangle uses the same scale; relative geometry is
	// preserved exactly.
	if len(proj.Nodes) != 2 {
		t.Fatalf("projected %d nodes, want 2", len(proj.Nodes))
	}
	a, b := proj.Nodes[0].Rect, proj.Nodes[1].Rect
	if !almostEqual(b.X-a.X, 2900*proj.Scale) || !almostEqual(b.Y-a.Y, 400*proj.Scale) {
		t.Errorf("relative node positions distorted: a=%+v b=%+v", a, b)
	}
	if !almostEqual(a.Width, 100*proj.Scale) || !almostEqual(b.Height, 100*proj.Scale) {
		t.Errorf("node sizes not uniformly scaled: a=%+v b=%+v", a, b)
	}
}

func TestMinimapScaleCap(t *testing.T) {
	g := graph.New("tiny")
	g.Nodes = []*graph.Node{testNode("a", 0, 0, 10, 10)}
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	m := NewMinimap(200, 150)

	// Padded box 110x110 would fit at scale > 1; the cap keeps the
	// overview an overview.
	if proj := m.Project(g, vc); proj.Scale != 0.1 {
		t.Errorf("sparse graph scale = %g, want capped 0.1", proj.Scale)
	}
}

func TestMinimapEmptyGraphProjectsViewport(t *testing.T) {
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	m := NewMinimap(200, 150)

	proj := m.Project(graph.New("empty"), vc)
	if len(proj.Nodes) != 0 {
		t.Fatalf("empty graph projected %d nodes", len(proj.Nodes))
	}
	if proj.Viewport.Width <= 0 || proj.Viewport.Height <= 0 {
		t.Errorf("viewport indicator missing: %+v", proj.Viewport)
	}
}

func TestMinimapMapToCanvasRoundTrip(t *testing.T) {
	g, vc, m := minimapFixture()
	proj := m.Project(g, vc)

	// A node's projected top-left maps back to its canvas position.
	cx, cy := proj.MapToCanvas(proj.Nodes[1].Rect.X, proj.Nodes[1].Rect.Y)
	if !almostEqual(cx, 900) || !almostEqual(cy, 400) {
		t.Errorf("map->canvas = (%g, %g), want (900, 400)", cx, cy)
	}
}

func TestMinimapClickRecenters(t *testing.T) {
	g, vc, m := minimapFixture()
	proj := m.Project(g, vc)

	// Click outside the viewport indicator: one-shot recenter on the
	// clicked canvas point.
	mapX := (900.0 - proj.OffsetX) * proj.Scale
	mapY := (450.0 - proj.OffsetY) * proj.Scale
	if proj.Viewport.Contains(mapX, mapY) {
		t.Skip("fixture click landed inside the viewport indicator")
	}

	m.PointerDown(mapX, mapY, proj, vc)
	if m.Dragging() {
		t.Fatal("click outside the indicator must not start a drag")
	}

	// The clicked canvas point now sits at the container center.
	sx, sy := vc.Transform().CanvasToScreen(900, 450)
	if !almostEqual(sx, 400) || !almostEqual(sy, 300) {
		t.Errorf("recentered point maps to (%g, %g), want (400, 300)", sx, sy)
	}
}

func TestMinimapIndicatorDragPansViewport(t *testing.T) {
	g, vc, m := minimapFixture()
	proj := m.Project(g, vc)

	// Grab inside the viewport indicator.
	grabX := proj.Viewport.X + 1
	grabY := proj.Viewport.Y + 1
	m.PointerDown(grabX, grabY, proj, vc)
	if !m.Dragging() {
		t.Fatal("press inside the indicator should start a drag")
	}

	before := vc.Viewport()
	m.PointerMove(grabX+10, grabY+5, proj, vc)
	after := vc.Viewport()

	// Moving the indicator right pans the view left, inverse-scaled and
	// zoom-adjusted.
	wantDX := 10 / proj.Scale * before.Zoom
	wantDY := 5 / proj.Scale * before.Zoom
	if !almostEqual(before.X-after.X, wantDX) || !almostEqual(before.Y-after.Y, wantDY) {
		t.Errorf("pan delta = (%g, %g), want (%g, %g)",
			before.X-after.X, before.Y-after.Y, wantDX, wantDY)
	}

	m.PointerUp()
	if m.Dragging() {
		t.Error("pointer-up should end the drag")
	}
	vp := vc.Viewport()
	m.PointerMove(grabX+50, grabY+50, proj, vc)
	if vc.Viewport() != vp {
		t.Error("moves after pointer-up must not pan")
	}
}
