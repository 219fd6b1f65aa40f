package canvas

import (
	"testing"

	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

func testNode(id string, x, y, w, h float64) *graph.Node {
	return &graph.Node{ID: id, Type: "task", X: x, Y: y, Width: w, Height: h}
}

// TestZoomClampMonotonicity hammers ZoomAt with large deltas in both
// directions; zoom must never leave [min, max].
func TestZoomClampMonotonicity(t *testing.T) {
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)

	for i := 0; i < 50; i++ {
		vc.ZoomAt(400, 300, 10)
		if z := vc.Viewport().Zoom; z > 2.0 {
			t.Fatalf("zoom exceeded max after zoom-in %d: %g", i, z)
		}
	}
	if z := vc.Viewport().Zoom; z != 2.0 {
		t.Errorf("expected zoom pinned at max 2.0, got %g", z)
	}

	for i := 0; i < 50; i++ {
		vc.ZoomAt(123, 456, -10)
		if z := vc.Viewport().Zoom; z < 0.25 {
			t.Fatalf("zoom fell below min after zoom-out %d: %g", i, z)
		}
	}
	if z := vc.Viewport().Zoom; z != 0.25 {
		t.Errorf("expected zoom pinned at min 0.25, got %g", z)
	}
}

// TestZoomToCursorFixedPoint verifies the canvas point under the cursor
// is unchanged by ZoomAt, including when the request clamps.
func TestZoomToCursorFixedPoint(t *testing.T) {
	tests := []struct {
		name      string
		start     Viewport
		screenX   float64
		screenY   float64
		delta     float64
	}{
		{"zoom in at center", Viewport{X: 0, Y: 0, Zoom: 1}, 400, 300, 0.25},
		{"zoom out off-center", Viewport{X: 80, Y: -40, Zoom: 1.5}, 120, 710, -0.5},
		{"clamped request", Viewport{X: 10, Y: 10, Zoom: 1.9}, 200, 200, 5.0},
		{"tiny delta", Viewport{X: -3.5, Y: 7.25, Zoom: 0.3}, 0, 0, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vc := NewViewportController(0.25, 2.0, nil)
			vc.Resize(800, 600)
			vc.Set(tt.start)

			beforeX, beforeY := vc.Transform().ScreenToCanvas(tt.screenX, tt.screenY)
			vc.ZoomAt(tt.screenX, tt.screenY, tt.delta)
			afterX, afterY := vc.Transform().ScreenToCanvas(tt.screenX, tt.screenY)

			if !almostEqual(beforeX, afterX) || !almostEqual(beforeY, afterY) {
				t.Errorf("cursor point moved: before (%g, %g), after (%g, %g)",
					beforeX, beforeY, afterX, afterY)
			}
		})
	}
}

// TestFitViewDeterminism checks fit-view on nodes spanning
// (0,0)-(400,300): zoom capped at 1.5 and the box center mapped to the
// container center.
func TestFitViewDeterminism(t *testing.T) {
	g := graph.New("fit")
	g.Nodes = []*graph.Node{
		testNode("a", 0, 0, 100, 100),
		testNode("b", 300, 200, 100, 100),
	}

	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	vc.FitView(g)

	vp := vc.Viewport()
	if vp.Zoom > 1.5 {
		t.Errorf("fit zoom %g exceeds 1.5 cap", vp.Zoom)
	}

	// Box center (200, 150) must land on the container center.
	sx, sy := vc.Transform().CanvasToScreen(200, 150)
	if !almostEqual(sx, 400) || !almostEqual(sy, 300) {
		t.Errorf("box center maps to (%g, %g), want (400, 300)", sx, sy)
	}
}

func TestFitViewEmptyGraph(t *testing.T) {
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	vc.Set(Viewport{X: 55, Y: 66, Zoom: 1.75})

	vc.FitView(graph.New("empty"))
	vp := vc.Viewport()
	if vp.X != 0 || vp.Y != 0 || vp.Zoom != 1 {
		t.Errorf("empty fit should reset to default viewport, got %+v", vp)
	}
}

func TestResetKeepsPan(t *testing.T) {
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Set(Viewport{X: 33, Y: -12, Zoom: 1.8})

	vc.Reset()
	vp := vc.Viewport()
	if vp.Zoom != 1 {
		t.Errorf("reset zoom = %g, want 1", vp.Zoom)
	}
	if vp.X != 33 || vp.Y != -12 {
		t.Errorf("reset moved pan to (%g, %g), want (33, -12)", vp.X, vp.Y)
	}
}

// TestViewportNotification verifies every mutation reaches the host
// callback with the clamped value.
func TestViewportNotification(t *testing.T) {
	var got []Viewport
	vc := NewViewportController(0.5, 2.0, func(vp Viewport) {
		got = append(got, vp)
	})
	vc.Resize(400, 400)

	vc.Set(Viewport{X: 1, Y: 2, Zoom: 99}) // clamped to 2.0
	vc.Pan(10, 20)
	vc.Reset()

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[0].Zoom != 2.0 {
		t.Errorf("first notification zoom = %g, want clamped 2.0", got[0].Zoom)
	}
	if got[1].X != 10 || got[1].Y != 20 {
		t.Errorf("pan notification = (%g, %g), want (10, 20)", got[1].X, got[1].Y)
	}
	if got[2].Zoom != 1 {
		t.Errorf("reset notification zoom = %g, want 1", got[2].Zoom)
	}
}

func TestResizeIdempotent(t *testing.T) {
	vc := NewViewportController(0.25, 2.0, nil)
	vc.Resize(800, 600)
	vc.Resize(800, 600)
	vc.Resize(1024, 768)

	w, h := vc.ContainerSize()
	if w != 1024 || h != 768 {
		t.Errorf("container size = (%g, %g), want (1024, 768)", w, h)
	}
}
