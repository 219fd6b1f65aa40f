package canvas

import (
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

const (
	// minimapPadding is the fixed canvas-space padding around the node
	// bounding box before scaling into map space.
	minimapPadding = 50.0
	// minimapMaxScale caps the map at 10% of canvas scale so a sparse
	// graph does not produce a near-1:1 overview.
	minimapMaxScale = 0.1
)

// MinimapRect is one node rectangle projected into map space.
type MinimapRect struct {
	ID   string
	Rect Rect
}

// Projection is the derived minimap frame: every node rectangle and the
// current viewport rectangle mapped with one uniform scale.
type Projection struct {
	Scale    float64
	OffsetX  float64 // canvas origin of the projected region
	OffsetY  float64
	Nodes    []MinimapRect
	Viewport Rect // viewport indicator in map space
}

// Minimap projects the node set and viewport into a small overview and
// maps clicks back. It is kept in sync one-way from the main viewport
// and can drive it back through a ViewportController.
type Minimap struct {
	Width  float64 // map surface size in screen pixels
	Height float64

	dragging bool
	lastX    float64
	lastY    float64
}

// NewMinimap creates a projector with the given map surface size.
func NewMinimap(width, height float64) *Minimap {
	return &Minimap{Width: width, Height: height}
}

// Project computes the current frame from the node set and the main
// viewport controller.
func (m *Minimap) Project(g *graph.Graph, vc *ViewportController) Projection {
	var x0, y0, x1, y1 float64
	ok := false
	if g != nil {
		x0, y0, x1, y1, ok = g.Bounds()
	}
	if !ok {
		// No nodes: project only the viewport at the capped scale.
		vis := vc.VisibleRect()
		x0, y0 = vis.X, vis.Y
		x1, y1 = vis.X+vis.Width, vis.Y+vis.Height
	}
	x0 -= minimapPadding
	y0 -= minimapPadding
	x1 += minimapPadding
	y1 += minimapPadding

	scale := minimapMaxScale
	if w := x1 - x0; w > 0 {
		if s := m.Width / w; s < scale {
			scale = s
		}
	}
	if h := y1 - y0; h > 0 {
		if s := m.Height / h; s < scale {
			scale = s
		}
	}

	proj := Projection{Scale: scale, OffsetX: x0, OffsetY: y0}
	if g != nil {
		for _, n := range g.Nodes {
			proj.Nodes = append(proj.Nodes, MinimapRect{
				ID: n.ID,
				Rect: Rect{
					X:      (n.X - x0) * scale,
					Y:      (n.Y - y0) * scale,
					Width:  n.Width * scale,
					Height: n.Height * scale,
				},
			})
		}
	}

	vis := vc.VisibleRect()
	proj.Viewport = Rect{
		X:      (vis.X - x0) * scale,
		Y:      (vis.Y - y0) * scale,
		Width:  vis.Width * scale,
		Height: vis.Height * scale,
	}
	return proj
}

// MapToCanvas converts a point on the map surface back to canvas space.
func (p Projection) MapToCanvas(mapX, mapY float64) (cx, cy float64) {
	return p.OffsetX + mapX/p.Scale, p.OffsetY + mapY/p.Scale
}

// PointerDown handles a click on the map surface. Inside the viewport
// indicator it begins a drag that pans the main viewport; elsewhere it
// recenters the main viewport on the clicked canvas point in one shot.
func (m *Minimap) PointerDown(mapX, mapY float64, proj Projection, vc *ViewportController) {
	if proj.Viewport.Contains(mapX, mapY) {
		m.dragging = true
		m.lastX = mapX
		m.lastY = mapY
		return
	}
	cx, cy := proj.MapToCanvas(mapX, mapY)
	vc.CenterOn(cx, cy)
}

// PointerMove translates the main viewport by the inverse-scaled
// pointer delta while a drag is active.
func (m *Minimap) PointerMove(mapX, mapY float64, proj Projection, vc *ViewportController) {
	if !m.dragging {
		return
	}
	dx := (mapX - m.lastX) / proj.Scale
	dy := (mapY - m.lastY) / proj.Scale
	m.lastX = mapX
	m.lastY = mapY
	vp := vc.Viewport()
	vc.Pan(vp.X-dx*vp.Zoom, vp.Y-dy*vp.Zoom)
}

// PointerUp ends a drag.
func (m *Minimap) PointerUp() {
	m.dragging = false
}

// Dragging reports whether a viewport drag is active.
func (m *Minimap) Dragging() bool {
	return m.dragging
}
