package canvas

import "testing"

// TestSelectionOverlap covers the AABB cases: containment,
// boundary touch (excluded), and partial overlap.
func TestSelectionOverlap(t *testing.T) {
	sel := Rect{X: 0, Y: 0, Width: 100, Height: 100}

	tests := []struct {
		name string
		node Rect
		want bool
	}{
		{"fully inside", Rect{X: 50, Y: 50, Width: 20, Height: 20}, true},
		{"touching right boundary only", Rect{X: 100, Y: 0, Width: 20, Height: 20}, false},
		{"partial overlap", Rect{X: 90, Y: 90, Width: 30, Height: 30}, true},
		{"touching bottom boundary only", Rect{X: 0, Y: 100, Width: 20, Height: 20}, false},
		{"touching corner only", Rect{X: 100, Y: 100, Width: 20, Height: 20}, false},
		{"fully outside", Rect{X: 200, Y: 200, Width: 10, Height: 10}, false},
		{"selection inside node", Rect{X: -50, Y: -50, Width: 300, Height: 300}, true},
		{"one pixel overlap", Rect{X: 99, Y: 99, Width: 20, Height: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Intersects(sel); got != tt.want {
				t.Errorf("Intersects(%+v, %+v) = %v, want %v", tt.node, sel, got, tt.want)
			}
			// Symmetric.
			if got := sel.Intersects(tt.node); got != tt.want {
				t.Errorf("Intersects is not symmetric for %+v", tt.node)
			}
		})
	}
}

// TestRectNormalization verifies drag direction does not matter: a
// rectangle dragged up-left hits the same nodes as one dragged
// down-right.
func TestRectNormalization(t *testing.T) {
	forward := RectFromPoints(10, 20, 110, 120)
	backward := RectFromPoints(110, 120, 10, 20)

	if backward.Width >= 0 || backward.Height >= 0 {
		t.Fatalf("backward drag should keep raw negative extents, got %+v", backward)
	}

	n := backward.Normalize()
	if n != forward.Normalize() {
		t.Errorf("normalized rects differ: %+v vs %+v", n, forward.Normalize())
	}

	node := Rect{X: 50, Y: 50, Width: 10, Height: 10}
	if !backward.Intersects(node) {
		t.Errorf("backward-dragged rect should still hit node %+v", node)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 20}

	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(30, 30) {
		t.Error("bottom-right corner should be exclusive")
	}
	if !r.Contains(29.999, 29.999) {
		t.Error("just inside bottom-right should be inside")
	}
}
