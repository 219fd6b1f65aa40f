// Package canvas implements the interaction engine for the node-graph
// editor: viewport transform, pointer/keyboard/touch state machine,
// hit-testing, selection and edge geometry, and the minimap projection.
//
// The engine is headless. It reads the host's graph as a snapshot each
// pass, owns only the viewport and the current interaction mode, and
// requests every data mutation through callbacks.
package canvas

import "math"

// Viewport is the pan offset and zoom factor defining the visible
// window into canvas space. (X, Y) is a pixel pan offset; Zoom is a
// positive scale factor.
type Viewport struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom"`
}

// Point is a coordinate pair in either space; context decides which.
type Point struct {
	X float64
	Y float64
}

// Transform converts between screen space and canvas space for one
// viewport state. Origin is the canvas container's top-left corner in
// screen space.
type Transform struct {
	Viewport Viewport
	OriginX  float64
	OriginY  float64
}

// ScreenToCanvas converts screen pixels to canvas coordinates.
func (t Transform) ScreenToCanvas(sx, sy float64) (cx, cy float64) {
	cx = (sx - t.OriginX - t.Viewport.X) / t.Viewport.Zoom
	cy = (sy - t.OriginY - t.Viewport.Y) / t.Viewport.Zoom
	return cx, cy
}

// CanvasToScreen is the exact inverse of ScreenToCanvas.
func (t Transform) CanvasToScreen(cx, cy float64) (sx, sy float64) {
	sx = cx*t.Viewport.Zoom + t.Viewport.X + t.OriginX
	sy = cy*t.Viewport.Zoom + t.Viewport.Y + t.OriginY
	return sx, sy
}

// Snap rounds a coordinate to the nearest grid line. Idempotent: a
// snapped value snaps to itself. A non-positive grid disables snapping.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// SnapPoint snaps both coordinates of a canvas point.
func SnapPoint(x, y, grid float64) (float64, float64) {
	return Snap(x, grid), Snap(y, grid)
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
