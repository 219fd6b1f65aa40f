package tui

import (
	"fmt"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
	"github.com/flowcanvas/flowcanvas/pkg/graph"
)

// pointerStep is how far one arrow press moves the virtual pointer, in
// screen cells. Uppercase vim keys move by coarseStep.
const (
	pointerStep = 1
	coarseStep  = 5
)

// GraphSaver persists a graph document. Satisfied by
// storage.FilesystemGraphStore.
type GraphSaver interface {
	Save(g *graph.Graph) error
}

// Editor is the terminal host for the canvas engine. The terminal has
// no mouse guarantee, so the editor drives the engine through a virtual
// pointer: arrow keys move it, space presses and releases the button,
// and every movement while the button is held becomes a pointer-move.
// All graph mutation happens here, in engine callbacks; the engine only
// emits intents.
type Editor struct {
	graph   *graph.Graph
	engine  *canvas.Engine
	minimap *canvas.Minimap
	toolbar *canvas.Toolbar
	undo    *UndoStack
	dash    *canvas.DashAnimator
	store   GraphSaver

	// virtual pointer, screen coordinates
	pointerX   float64
	pointerY   float64
	buttonHeld bool

	clipboard []*graph.Node
	status    string
	dirty     bool
}

// NewEditor creates an editor for the given graph. store may be nil,
// which disables saving.
func NewEditor(g *graph.Graph, opts canvas.Options, store GraphSaver) *Editor {
	ed := &Editor{
		graph:   g,
		minimap: canvas.NewMinimap(32, 12),
		undo:    NewUndoStack(100),
		dash:    canvas.NewDashAnimator(6),
		store:   store,
	}
	ed.dash.Start()

	ed.engine = canvas.NewEngine(opts, canvas.Callbacks{
		OnNodeSelect:     ed.applyNodeSelect,
		OnNodeDrag:       ed.applyNodeDrag,
		OnNodeDragEnd:    ed.commitDrag,
		OnEdgeCreate:     ed.applyEdgeCreate,
		OnEdgeSelect:     ed.applyEdgeSelect,
		OnCanvasClick:    ed.clearSelection,
		OnDeleteSelected: ed.deleteSelection,
		OnCopy:           ed.copySelection,
		OnPaste:          ed.pasteClipboard,
		OnUndo:           ed.undoLast,
		OnRedo:           ed.redoLast,
		OnSelectAll:      ed.selectAll,
	})
	ed.engine.SetGraph(g)
	ed.toolbar = canvas.NewToolbar(ed.engine)

	// Baseline snapshot so the first undo returns here.
	_ = ed.undo.Push(g)
	return ed
}

// Engine exposes the interaction engine, mainly for rendering and tests.
func (ed *Editor) Engine() *canvas.Engine { return ed.engine }

// Graph returns the edited graph.
func (ed *Editor) Graph() *graph.Graph { return ed.graph }

// Status returns the one-line message for the status bar.
func (ed *Editor) Status() string { return ed.status }

// Pointer returns the virtual pointer position in screen coordinates.
func (ed *Editor) Pointer() (x, y float64) { return ed.pointerX, ed.pointerY }

// ButtonHeld reports whether the virtual button is down.
func (ed *Editor) ButtonHeld() bool { return ed.buttonHeld }

// Advance moves time-based visuals forward: the marching-dash pattern
// on animated edges. The app loop calls this once per frame tick.
func (ed *Editor) Advance(dt float64) {
	ed.dash.Advance(dt)
}

// Resize forwards the terminal size to the viewport.
func (ed *Editor) Resize(width, height int) {
	ed.engine.Resize(float64(width), float64(height))
	ed.clampPointer(float64(width), float64(height))
}

// HandleKey is the editor's full key map. Keys that drive the virtual
// pointer are consumed here; everything else is translated into the
// engine's keyboard contract.
func (ed *Editor) HandleKey(ev canvas.KeyEvent) {
	if ev.IsSpecial {
		switch ev.Special {
		case "Up":
			ed.movePointer(0, -pointerStep)
		case "Down":
			ed.movePointer(0, pointerStep)
		case "Left":
			ed.movePointer(-pointerStep, 0)
		case "Right":
			ed.movePointer(pointerStep, 0)
		case "Enter":
			ed.click(false)
		default:
			ed.engine.HandleKey(ev)
		}
		return
	}

	switch ev.Key {
	case 'h':
		ed.movePointer(-pointerStep, 0)
	case 'j':
		ed.movePointer(0, pointerStep)
	case 'k':
		ed.movePointer(0, -pointerStep)
	case 'l':
		ed.movePointer(pointerStep, 0)
	case 'H':
		ed.movePointer(-coarseStep, 0)
	case 'J':
		ed.movePointer(0, coarseStep)
	case 'K':
		ed.movePointer(0, -coarseStep)
	case 'L':
		ed.movePointer(coarseStep, 0)
	case ' ':
		ed.toggleButton(false)
	case 'v':
		// Shift-click press: box selection from the background.
		ed.toggleButton(true)
	case 'x':
		ed.engine.HandleKey(canvas.KeyEvent{IsSpecial: true, Special: "Delete"})
	case 'u':
		ed.engine.HandleKey(canvas.KeyEvent{Key: 'z', Ctrl: true})
	case 'r':
		ed.engine.HandleKey(canvas.KeyEvent{Key: 'z', Ctrl: true, Shift: true})
	case 'y':
		ed.engine.HandleKey(canvas.KeyEvent{Key: 'c', Ctrl: true})
	case 'p':
		ed.engine.HandleKey(canvas.KeyEvent{Key: 'v', Ctrl: true})
	case 'f':
		ed.toolbar.FitView()
	case '+', '=':
		ed.toolbar.ZoomIn()
	case '-':
		ed.toolbar.ZoomOut()
	case '1':
		ed.toolbar.ResetZoom()
	case 'g':
		ed.toolbar.ToggleGrid()
	case 't':
		ed.toolbar.ToggleSnap()
	case 'a':
		ed.addNodeAtPointer()
	case 'A':
		ed.engine.HandleKey(canvas.KeyEvent{Key: 'a', Ctrl: true})
	case 's':
		ed.save()
	default:
		ed.engine.HandleKey(ev)
	}
}

func (ed *Editor) movePointer(dx, dy float64) {
	ed.pointerX += dx
	ed.pointerY += dy
	w, h := ed.engine.Viewport().ContainerSize()
	ed.clampPointer(w, h)
	ed.engine.PointerMove(ed.pointerEvent(false))
}

func (ed *Editor) clampPointer(w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	if ed.pointerX < 0 {
		ed.pointerX = 0
	}
	if ed.pointerY < 0 {
		ed.pointerY = 0
	}
	if ed.pointerX > w-1 {
		ed.pointerX = w - 1
	}
	if ed.pointerY > h-1 {
		ed.pointerY = h - 1
	}
}

// toggleButton presses or releases the virtual button. shift marks the
// press as additive/box-select, mirroring a Shift-click.
func (ed *Editor) toggleButton(shift bool) {
	if ed.buttonHeld {
		ed.buttonHeld = false
		ed.engine.PointerUp(ed.pointerEvent(shift))
		return
	}
	ed.buttonHeld = true
	ed.engine.PointerDown(ed.pointerEvent(shift))
}

// click is a press-and-release at the current pointer position.
func (ed *Editor) click(shift bool) {
	if ed.buttonHeld {
		// A held button turns Enter into the release.
		ed.toggleButton(shift)
		return
	}
	ed.engine.PointerDown(ed.pointerEvent(shift))
	ed.engine.PointerUp(ed.pointerEvent(shift))
}

func (ed *Editor) pointerEvent(shift bool) canvas.PointerEvent {
	return canvas.PointerEvent{X: ed.pointerX, Y: ed.pointerY, Shift: shift}
}

// --- engine callbacks: the host side of the intent contract ---

func (ed *Editor) applyNodeSelect(ids []string, additive bool) {
	if !additive {
		for _, n := range ed.graph.Nodes {
			n.Selected = false
		}
		for _, e := range ed.graph.Edges {
			e.Selected = false
		}
	}
	for _, id := range ids {
		if n := ed.graph.Node(id); n != nil {
			n.Selected = true
		}
	}
	ed.status = fmt.Sprintf("%d selected", len(ed.graph.SelectedNodeIDs()))
}

func (ed *Editor) applyNodeDrag(id string, x, y float64) {
	if n := ed.graph.Node(id); n != nil {
		n.X, n.Y = x, y
		n.Dragging = true
	}
}

func (ed *Editor) commitDrag(ids []string, positions map[string]canvas.Point) {
	for _, id := range ids {
		if n := ed.graph.Node(id); n != nil {
			n.Dragging = false
			if p, ok := positions[id]; ok {
				n.X, n.Y = p.X, p.Y
			}
		}
	}
	ed.markChanged(fmt.Sprintf("moved %d node(s)", len(ids)))
}

func (ed *Editor) applyEdgeCreate(sourceNode, sourcePort, targetNode, targetPort string) {
	e := &graph.Edge{
		ID:           graph.NewEdgeID(),
		Source:       sourceNode,
		SourceHandle: sourcePort,
		Target:       targetNode,
		TargetHandle: targetPort,
	}
	if err := ed.graph.AddEdge(e); err != nil {
		ed.status = fmt.Sprintf("edge rejected: %v", err)
		return
	}
	ed.markChanged(fmt.Sprintf("connected %s -> %s", sourceNode, targetNode))
}

func (ed *Editor) applyEdgeSelect(id string) {
	for _, e := range ed.graph.Edges {
		e.Selected = e.ID == id
	}
	for _, n := range ed.graph.Nodes {
		n.Selected = false
	}
}

func (ed *Editor) clearSelection() {
	for _, n := range ed.graph.Nodes {
		n.Selected = false
	}
	for _, e := range ed.graph.Edges {
		e.Selected = false
	}
}

func (ed *Editor) deleteSelection() {
	nodeIDs := ed.graph.SelectedNodeIDs()
	edgeIDs := ed.graph.SelectedEdgeIDs()
	for _, id := range nodeIDs {
		_ = ed.graph.RemoveNode(id)
	}
	for _, id := range edgeIDs {
		// May already be gone via node cascade.
		_ = ed.graph.RemoveEdge(id)
	}
	ed.markChanged(fmt.Sprintf("deleted %d node(s), %d edge(s)", len(nodeIDs), len(edgeIDs)))
}

func (ed *Editor) copySelection() {
	ed.clipboard = ed.clipboard[:0]
	for _, n := range ed.graph.Nodes {
		if n.Selected {
			ed.clipboard = append(ed.clipboard, n.Clone())
		}
	}
	ed.status = fmt.Sprintf("copied %d node(s)", len(ed.clipboard))
}

// pasteClipboard inserts copies at the paste target, preserving the
// copied nodes' relative arrangement around their bounding-box corner.
func (ed *Editor) pasteClipboard(x, y float64) {
	if len(ed.clipboard) == 0 {
		return
	}
	minX, minY := ed.clipboard[0].X, ed.clipboard[0].Y
	for _, n := range ed.clipboard[1:] {
		if n.X < minX {
			minX = n.X
		}
		if n.Y < minY {
			minY = n.Y
		}
	}

	ed.clearSelection()
	for _, src := range ed.clipboard {
		n := src.Clone()
		n.ID = graph.NewNodeID()
		n.X = x + (src.X - minX)
		n.Y = y + (src.Y - minY)
		n.Selected = true
		if err := ed.graph.AddNode(n); err != nil {
			ed.status = fmt.Sprintf("paste failed: %v", err)
			return
		}
	}
	ed.markChanged(fmt.Sprintf("pasted %d node(s)", len(ed.clipboard)))
}

func (ed *Editor) selectAll() {
	for _, n := range ed.graph.Nodes {
		n.Selected = true
	}
}

func (ed *Editor) undoLast() {
	g, err := ed.undo.Undo()
	if err != nil {
		ed.status = "nothing to undo"
		return
	}
	ed.replaceGraph(g)
	ed.status = "undo"
}

func (ed *Editor) redoLast() {
	g, err := ed.undo.Redo()
	if err != nil {
		ed.status = "nothing to redo"
		return
	}
	ed.replaceGraph(g)
	ed.status = "redo"
}

func (ed *Editor) replaceGraph(g *graph.Graph) {
	ed.graph = g
	ed.engine.SetGraph(g)
	ed.dirty = true
}

// addNodeAtPointer creates a default task node under the virtual
// pointer, snapped like a dropped node.
func (ed *Editor) addNodeAtPointer() {
	if ed.engine.Options().ReadOnly {
		return
	}
	cx, cy := ed.engine.Viewport().Transform().ScreenToCanvas(ed.pointerX, ed.pointerY)
	if ed.engine.Options().SnapToGrid {
		cx, cy = canvas.SnapPoint(cx, cy, ed.engine.Options().GridSize)
	}
	n := &graph.Node{
		ID:      graph.NewNodeID(),
		Type:    "task",
		X:       cx,
		Y:       cy,
		Width:   120,
		Height:  60,
		Inputs:  []graph.Port{{ID: "in"}},
		Outputs: []graph.Port{{ID: "out"}},
	}
	if err := ed.graph.AddNode(n); err != nil {
		ed.status = fmt.Sprintf("add failed: %v", err)
		return
	}
	ed.markChanged("added " + n.ID)
}

func (ed *Editor) save() {
	if ed.store == nil {
		ed.status = "no store configured"
		return
	}
	if err := ed.store.Save(ed.graph); err != nil {
		ed.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	ed.dirty = false
	ed.status = "saved " + ed.graph.Name
}

// markChanged pushes an undo snapshot after a committed mutation.
func (ed *Editor) markChanged(msg string) {
	_ = ed.undo.Push(ed.graph)
	ed.dirty = true
	ed.status = msg
}

// Dirty reports whether the graph has unsaved changes.
func (ed *Editor) Dirty() bool { return ed.dirty }
