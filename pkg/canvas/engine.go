package canvas

import (
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// Options configures the canvas engine.
type Options struct {
	MinZoom       float64
	MaxZoom       float64
	GridSize      float64
	SnapToGrid    bool
	ShowGrid      bool
	ShowMinimap   bool
	ReadOnly      bool
	Curvature     float64 // edge bezier curvature factor
	PortHitRadius float64 // canvas units
	EdgeHitRadius float64 // canvas units
}

// DefaultOptions returns the standard editor configuration.
func DefaultOptions() Options {
	return Options{
		MinZoom:       0.25,
		MaxZoom:       2.0,
		GridSize:      20,
		SnapToGrid:    true,
		ShowGrid:      true,
		ShowMinimap:   true,
		Curvature:     0.25,
		PortHitRadius: 8,
		EdgeHitRadius: 6,
	}
}

// Callbacks are the one-way intents the engine emits to the host. The
// engine never mutates the node/edge arrays itself; the host applies
// the mutation and feeds a fresh snapshot back in. Nil callbacks are
// skipped.
type Callbacks struct {
	OnNodeSelect        func(ids []string, additive bool)
	OnNodeDrag          func(id string, x, y float64)
	OnNodeDragEnd       func(ids []string, positions map[string]Point)
	OnEdgeCreate        func(sourceNode, sourcePort, targetNode, targetPort string)
	OnEdgeSelect        func(id string) // "" clears edge selection
	OnViewportChange    func(Viewport)
	OnCanvasClick       func() // empty-canvas click: deselect all
	OnCanvasContextMenu func(x, y float64)
	OnNodeContextMenu   func(id string, x, y float64)
	OnEdgeContextMenu   func(id string, x, y float64)
	OnDeleteSelected    func()
	OnCopy              func()
	OnPaste             func(x, y float64)
	OnUndo              func()
	OnRedo              func()
	OnSelectAll         func()
	OnFitView           func()
}

// PointerButton identifies which button a pointer event carries.
type PointerButton int

const (
	ButtonLeft PointerButton = iota
	ButtonRight
)

// PointerEvent is a normalized pointer event in screen coordinates.
// Mouse and synthesized single-touch input both arrive as this type.
type PointerEvent struct {
	X, Y   float64
	Button PointerButton
	Shift  bool
	Ctrl   bool
	Meta   bool
}

func (e PointerEvent) additive() bool {
	return e.Shift || e.Ctrl || e.Meta
}

// Interaction modes form a sum type: one mode active at a time, each
// carrying only its own payload, so illegal combinations (dragging and
// selecting at once) are unrepresentable.
type mode interface {
	name() string
}

type idleMode struct{}

func (idleMode) name() string { return "idle" }

type panMode struct {
	originX, originY float64 // pointerScreen - viewport pan at press
}

func (panMode) name() string { return "panning" }

type dragMode struct {
	anchorID string
	offsetX  float64 // pointerCanvas - anchor position at press
	offsetY  float64
	start    map[string]Point // positions of all selected nodes at press
	moved    bool
}

func (dragMode) name() string { return "dragging-node" }

type boxMode struct {
	startX, startY float64
	endX, endY     float64
	additive       bool
}

func (boxMode) name() string { return "box-selecting" }

type draftMode struct {
	sourceNode     string
	sourcePort     string
	startX, startY float64
	endX, endY     float64
}

func (draftMode) name() string { return "drafting-edge" }

// Engine is the canvas interaction state machine. It consumes pointer,
// keyboard, and touch events, owns the viewport and the current mode,
// and emits intents through Callbacks. Single-threaded by design: all
// transitions run synchronously inside the event handler that triggered
// them.
type Engine struct {
	opts     Options
	cb       Callbacks
	graph    *graph.Graph
	viewport *ViewportController
	mode     mode

	// last known pointer position in canvas space; paste target
	lastCanvasX float64
	lastCanvasY float64

	// two-finger pinch state; while active the single-pointer machine
	// is bypassed entirely
	pinchActive bool
	pinchDist   float64
}

// NewEngine creates an engine with the given options and host
// callbacks.
func NewEngine(opts Options, cb Callbacks) *Engine {
	e := &Engine{
		opts: opts,
		cb:   cb,
		mode: idleMode{},
	}
	e.viewport = NewViewportController(opts.MinZoom, opts.MaxZoom, cb.OnViewportChange)
	return e
}

// SetGraph replaces the engine's graph snapshot. The engine never
// retains node pointers across a gesture; every move re-resolves nodes
// by ID against the current snapshot, so the host may swap the arrays
// between pointer-down and pointer-up.
func (e *Engine) SetGraph(g *graph.Graph) {
	e.graph = g
}

// Graph returns the current snapshot.
func (e *Engine) Graph() *graph.Graph {
	return e.graph
}

// Viewport returns the engine's viewport controller.
func (e *Engine) Viewport() *ViewportController {
	return e.viewport
}

// Options returns the current options.
func (e *Engine) Options() Options {
	return e.opts
}

// SetReadOnly toggles read-only mode. Suppression happens at the point
// of interaction-mode entry, so flipping mid-gesture does not abort an
// in-flight drag.
func (e *Engine) SetReadOnly(ro bool) {
	e.opts.ReadOnly = ro
}

// SetSnapToGrid toggles grid snapping for subsequent drags.
func (e *Engine) SetSnapToGrid(snap bool) {
	e.opts.SnapToGrid = snap
}

// SetShowGrid toggles the grid display flag.
func (e *Engine) SetShowGrid(show bool) {
	e.opts.ShowGrid = show
}

// Mode returns the current interaction mode name, for status display
// and tests.
func (e *Engine) Mode() string {
	return e.mode.name()
}

// Resize forwards a container-size notification to the viewport.
func (e *Engine) Resize(width, height float64) {
	e.viewport.Resize(width, height)
}

// PointerDown runs the transition priority against the element
// under the pointer: output port, node, edge, then background.
func (e *Engine) PointerDown(ev PointerEvent) {
	if e.pinchActive {
		return
	}
	cx, cy := e.viewport.Transform().ScreenToCanvas(ev.X, ev.Y)
	e.lastCanvasX, e.lastCanvasY = cx, cy

	if ev.Button == ButtonRight {
		e.contextMenu(ev, cx, cy)
		return
	}

	// 1. Output port: begin drafting an edge.
	if !e.opts.ReadOnly {
		if hit, ok := PortAt(e.graph, cx, cy, e.opts.PortHitRadius); ok && hit.Direction == graph.PortOut {
			e.mode = draftMode{
				sourceNode: hit.Node.ID,
				sourcePort: hit.Port.ID,
				startX:     hit.X,
				startY:     hit.Y,
				endX:       cx,
				endY:       cy,
			}
			return
		}
	}

	// 2. Node: select (unless already selected) and arm a drag.
	if n := NodeAt(e.graph, cx, cy); n != nil {
		if !n.Selected {
			e.emitNodeSelect([]string{n.ID}, ev.additive())
		}
		if e.opts.ReadOnly {
			return
		}
		start := map[string]Point{n.ID: {X: n.X, Y: n.Y}}
		if e.graph != nil {
			for _, sel := range e.graph.Nodes {
				if sel.Selected {
					start[sel.ID] = Point{X: sel.X, Y: sel.Y}
				}
			}
		}
		e.mode = dragMode{
			anchorID: n.ID,
			offsetX:  cx - n.X,
			offsetY:  cy - n.Y,
			start:    start,
		}
		return
	}

	// 3. Edge under the pointer: click-select, no mode change.
	if edge := EdgeAt(e.graph, cx, cy, e.opts.EdgeHitRadius/e.viewport.Viewport().Zoom, e.opts.Curvature); edge != nil {
		if e.cb.OnEdgeSelect != nil {
			e.cb.OnEdgeSelect(edge.ID)
		}
		return
	}

	// 4. Background: Shift starts a box-selection, otherwise pan and
	// clear the selection.
	if ev.Shift && !e.opts.ReadOnly {
		e.mode = boxMode{startX: cx, startY: cy, endX: cx, endY: cy, additive: ev.Shift}
		return
	}
	vp := e.viewport.Viewport()
	e.mode = panMode{originX: ev.X - vp.X, originY: ev.Y - vp.Y}
	if e.cb.OnCanvasClick != nil {
		e.cb.OnCanvasClick()
	}
}

// PointerMove updates only the active mode's derived state.
func (e *Engine) PointerMove(ev PointerEvent) {
	if e.pinchActive {
		return
	}
	cx, cy := e.viewport.Transform().ScreenToCanvas(ev.X, ev.Y)
	e.lastCanvasX, e.lastCanvasY = cx, cy

	switch m := e.mode.(type) {
	case panMode:
		e.viewport.Pan(ev.X-m.originX, ev.Y-m.originY)

	case dragMode:
		e.moveDrag(m, cx, cy)

	case boxMode:
		m.endX, m.endY = cx, cy
		e.mode = m

	case draftMode:
		// Free end follows the pointer, unsnapped.
		m.endX, m.endY = cx, cy
		e.mode = m
	}
}

// moveDrag recomputes the anchor's target and applies the same delta to
// every other selected node, so a group drag moves rigidly.
func (e *Engine) moveDrag(m dragMode, cx, cy float64) {
	anchorStart, ok := m.start[m.anchorID]
	if !ok || e.graph == nil || e.graph.Node(m.anchorID) == nil {
		// Anchor vanished mid-gesture (host deleted it); abandon.
		e.mode = idleMode{}
		return
	}

	targetX := cx - m.offsetX
	targetY := cy - m.offsetY
	if e.opts.SnapToGrid {
		// Snap after offset subtraction: the node's anchor corner, not
		// the cursor, lands on the grid.
		targetX, targetY = SnapPoint(targetX, targetY, e.opts.GridSize)
	}
	dx := targetX - anchorStart.X
	dy := targetY - anchorStart.Y

	for id, startPos := range m.start {
		if e.graph.Node(id) == nil {
			continue
		}
		if e.cb.OnNodeDrag != nil {
			e.cb.OnNodeDrag(id, startPos.X+dx, startPos.Y+dy)
		}
	}
	m.moved = true
	e.mode = m
}

// PointerUp commits the active gesture and always returns to idle.
func (e *Engine) PointerUp(ev PointerEvent) {
	if e.pinchActive {
		return
	}
	cx, cy := e.viewport.Transform().ScreenToCanvas(ev.X, ev.Y)
	e.lastCanvasX, e.lastCanvasY = cx, cy

	switch m := e.mode.(type) {
	case dragMode:
		e.finishDrag(m)
	case boxMode:
		e.finishBoxSelect(m)
	case draftMode:
		e.finishDraft(m, cx, cy)
	}
	e.mode = idleMode{}
}

// PointerLeave is treated identically to pointer-up, guaranteeing the
// machine returns to idle even when the pointer exits the container
// mid-gesture.
func (e *Engine) PointerLeave(ev PointerEvent) {
	e.PointerUp(ev)
}

// Wheel routes scroll deltas into zoom-at-cursor.
func (e *Engine) Wheel(ev PointerEvent, delta float64) {
	e.viewport.ZoomAt(ev.X, ev.Y, delta)
}

// finishDrag emits one atomic commit with the settled position of every
// dragged node, so the host can do a single undo-stack push.
func (e *Engine) finishDrag(m dragMode) {
	if !m.moved || e.graph == nil {
		return
	}
	ids := make([]string, 0, len(m.start))
	positions := make(map[string]Point, len(m.start))
	for id := range m.start {
		n := e.graph.Node(id)
		if n == nil {
			continue
		}
		ids = append(ids, id)
		positions[id] = Point{X: n.X, Y: n.Y}
	}
	if len(ids) > 0 && e.cb.OnNodeDragEnd != nil {
		e.cb.OnNodeDragEnd(ids, positions)
	}
}

// finishBoxSelect evaluates the strict AABB test against all nodes and
// emits the matched IDs.
func (e *Engine) finishBoxSelect(m boxMode) {
	if e.graph == nil {
		return
	}
	sel := RectFromPoints(m.startX, m.startY, m.endX, m.endY)
	var ids []string
	for _, n := range e.graph.Nodes {
		if NodeRect(n).Intersects(sel) {
			ids = append(ids, n.ID)
		}
	}
	e.emitNodeSelect(ids, m.additive)
}

// finishDraft completes an edge draft when released over an input port
// on a different node. Anything else is a normal "gesture did not
// complete": no intent, no error.
func (e *Engine) finishDraft(m draftMode, cx, cy float64) {
	hit, ok := PortAt(e.graph, cx, cy, e.opts.PortHitRadius)
	if !ok || hit.Direction != graph.PortIn || hit.Node.ID == m.sourceNode {
		return
	}
	if e.cb.OnEdgeCreate != nil {
		// Port-type compatibility is the host's call, made after this
		// intent, not the engine's.
		e.cb.OnEdgeCreate(m.sourceNode, m.sourcePort, hit.Node.ID, hit.Port.ID)
	}
}

// Cancel aborts any in-progress gesture without committing, and clears
// the selection. Bound to Escape.
func (e *Engine) Cancel() {
	e.mode = idleMode{}
	if e.cb.OnCanvasClick != nil {
		e.cb.OnCanvasClick()
	}
}

func (e *Engine) contextMenu(ev PointerEvent, cx, cy float64) {
	if n := NodeAt(e.graph, cx, cy); n != nil {
		if e.cb.OnNodeContextMenu != nil {
			e.cb.OnNodeContextMenu(n.ID, cx, cy)
		}
		return
	}
	if edge := EdgeAt(e.graph, cx, cy, e.opts.EdgeHitRadius/e.viewport.Viewport().Zoom, e.opts.Curvature); edge != nil {
		if e.cb.OnEdgeContextMenu != nil {
			e.cb.OnEdgeContextMenu(edge.ID, cx, cy)
		}
		return
	}
	if e.cb.OnCanvasContextMenu != nil {
		e.cb.OnCanvasContextMenu(cx, cy)
	}
}

func (e *Engine) emitNodeSelect(ids []string, additive bool) {
	if e.cb.OnNodeSelect != nil {
		e.cb.OnNodeSelect(ids, additive)
	}
}

// SelectionRect returns the in-progress box-selection rectangle in
// canvas space. ok is false outside box-selecting mode. The rectangle
// is normalized for rendering only; the stored corners stay raw.
func (e *Engine) SelectionRect() (Rect, bool) {
	m, ok := e.mode.(boxMode)
	if !ok {
		return Rect{}, false
	}
	return RectFromPoints(m.startX, m.startY, m.endX, m.endY).Normalize(), true
}

// DraftLine returns the in-progress draft edge endpoints in canvas
// space. ok is false outside drafting-edge mode.
func (e *Engine) DraftLine() (x1, y1, x2, y2 float64, ok bool) {
	m, isDraft := e.mode.(draftMode)
	if !isDraft {
		return 0, 0, 0, 0, false
	}
	return m.startX, m.startY, m.endX, m.endY, true
}

// LastPointerCanvas returns the last known pointer position in canvas
// space; paste intents target it.
func (e *Engine) LastPointerCanvas() (x, y float64) {
	return e.lastCanvasX, e.lastCanvasY
}
