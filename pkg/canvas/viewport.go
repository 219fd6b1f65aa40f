package canvas

import (
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

const (
	// fitPadding is the fixed canvas-space padding FitView adds around
	// the node bounding box.
	fitPadding = 50.0
	// fitMaxZoom caps FitView so a single small node does not over-zoom.
	fitMaxZoom = 1.5
)

// ViewportController owns the pan/zoom state. Every mutation clamps
// zoom to the configured bounds and notifies the host; the controller
// never persists viewport state itself.
type ViewportController struct {
	vp       Viewport
	minZoom  float64
	maxZoom  float64
	width    float64 // container size in screen pixels
	height   float64
	originX  float64 // container top-left in screen space
	originY  float64
	onChange func(Viewport)
}

// NewViewportController creates a controller with zoom bounds and an
// optional change notification callback.
func NewViewportController(minZoom, maxZoom float64, onChange func(Viewport)) *ViewportController {
	if minZoom <= 0 {
		minZoom = 0.25
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	return &ViewportController{
		vp:       Viewport{X: 0, Y: 0, Zoom: 1},
		minZoom:  minZoom,
		maxZoom:  maxZoom,
		onChange: onChange,
	}
}

// Viewport returns the current viewport.
func (c *ViewportController) Viewport() Viewport {
	return c.vp
}

// Transform returns the screen/canvas transform for the current state.
func (c *ViewportController) Transform() Transform {
	return Transform{Viewport: c.vp, OriginX: c.originX, OriginY: c.originY}
}

// Bounds returns the configured zoom bounds.
func (c *ViewportController) Bounds() (minZoom, maxZoom float64) {
	return c.minZoom, c.maxZoom
}

// ContainerSize returns the last observed container dimensions.
func (c *ViewportController) ContainerSize() (w, h float64) {
	return c.width, c.height
}

// Resize records the container size. Idempotent: repeated notifications
// simply overwrite the stored size.
func (c *ViewportController) Resize(width, height float64) {
	c.width = width
	c.height = height
}

// SetOrigin records the container's top-left corner in screen space.
func (c *ViewportController) SetOrigin(x, y float64) {
	c.originX = x
	c.originY = y
}

// Set stores a viewport, clamping zoom to bounds, and notifies.
func (c *ViewportController) Set(vp Viewport) {
	vp.Zoom = clamp(vp.Zoom, c.minZoom, c.maxZoom)
	c.vp = vp
	c.notify()
}

// Pan sets the pan offset directly, leaving zoom untouched.
func (c *ViewportController) Pan(x, y float64) {
	c.vp.X = x
	c.vp.Y = y
	c.notify()
}

// ZoomAt applies a zoom delta keeping the canvas point under the given
// screen position fixed. The identity holds at the clamped zoom value,
// not the unclamped request. Out-of-range requests are silently
// clamped, never rejected.
func (c *ViewportController) ZoomAt(screenX, screenY, delta float64) {
	oldZoom := c.vp.Zoom
	newZoom := clamp(oldZoom+delta, c.minZoom, c.maxZoom)
	if newZoom == oldZoom {
		return
	}
	px := screenX - c.originX
	py := screenY - c.originY
	ratio := newZoom / oldZoom
	c.vp = Viewport{
		X:    px - (px-c.vp.X)*ratio,
		Y:    py - (py-c.vp.Y)*ratio,
		Zoom: newZoom,
	}
	c.notify()
}

// ZoomStep zooms by delta toward the container center. Toolbar and
// keyboard zoom use this.
func (c *ViewportController) ZoomStep(delta float64) {
	c.ZoomAt(c.originX+c.width/2, c.originY+c.height/2, delta)
}

// FitView frames all nodes: bounding box plus fixed padding, zoom
// capped at 1.5, pan centering the box in the container. An empty graph
// resets to the default viewport.
func (c *ViewportController) FitView(g *graph.Graph) {
	var x0, y0, x1, y1 float64
	ok := false
	if g != nil {
		x0, y0, x1, y1, ok = g.Bounds()
	}
	if !ok {
		c.Set(Viewport{X: 0, Y: 0, Zoom: 1})
		return
	}

	x0 -= fitPadding
	y0 -= fitPadding
	x1 += fitPadding
	y1 += fitPadding
	boxW := x1 - x0
	boxH := y1 - y0

	zoom := fitMaxZoom
	if boxW > 0 {
		if z := c.width / boxW; z < zoom {
			zoom = z
		}
	}
	if boxH > 0 {
		if z := c.height / boxH; z < zoom {
			zoom = z
		}
	}
	zoom = clamp(zoom, c.minZoom, c.maxZoom)

	centerX := x0 + boxW/2
	centerY := y0 + boxH/2
	c.Set(Viewport{
		X:    c.width/2 - centerX*zoom,
		Y:    c.height/2 - centerY*zoom,
		Zoom: zoom,
	})
}

// CenterOn recenters the viewport on a canvas point at the current
// zoom. The minimap's one-shot navigation uses this.
func (c *ViewportController) CenterOn(cx, cy float64) {
	c.Set(Viewport{
		X:    c.width/2 - cx*c.vp.Zoom,
		Y:    c.height/2 - cy*c.vp.Zoom,
		Zoom: c.vp.Zoom,
	})
}

// Reset restores zoom to 1. Pan is left unchanged.
func (c *ViewportController) Reset() {
	c.Set(Viewport{X: c.vp.X, Y: c.vp.Y, Zoom: 1})
}

func (c *ViewportController) notify() {
	if c.onChange != nil {
		c.onChange(c.vp)
	}
}

// VisibleRect returns the canvas-space rectangle currently shown in the
// container.
func (c *ViewportController) VisibleRect() Rect {
	return Rect{
		X:      -c.vp.X / c.vp.Zoom,
		Y:      -c.vp.Y / c.vp.Zoom,
		Width:  c.width / c.vp.Zoom,
		Height: c.height / c.vp.Zoom,
	}
}
