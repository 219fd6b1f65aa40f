package canvas

// toolbarZoomStep is the zoom delta per toolbar click.
const toolbarZoomStep = 0.1

// Toolbar surfaces zoom, grid, and undo affordances by calling into the
// viewport controller and host callbacks. Not algorithmically
// significant; button chrome is the host's concern.
type Toolbar struct {
	engine *Engine
}

// NewToolbar creates a toolbar adapter bound to an engine.
func NewToolbar(engine *Engine) *Toolbar {
	return &Toolbar{engine: engine}
}

// ZoomIn zooms one step toward the container center.
func (t *Toolbar) ZoomIn() {
	t.engine.Viewport().ZoomStep(toolbarZoomStep)
}

// ZoomOut zooms one step out from the container center.
func (t *Toolbar) ZoomOut() {
	t.engine.Viewport().ZoomStep(-toolbarZoomStep)
}

// FitView frames all nodes.
func (t *Toolbar) FitView() {
	t.engine.Viewport().FitView(t.engine.Graph())
	if t.engine.cb.OnFitView != nil {
		t.engine.cb.OnFitView()
	}
}

// ResetZoom restores zoom to 1 without moving the pan.
func (t *Toolbar) ResetZoom() {
	t.engine.Viewport().Reset()
}

// ToggleGrid flips the grid display flag and returns the new state.
func (t *Toolbar) ToggleGrid() bool {
	show := !t.engine.Options().ShowGrid
	t.engine.SetShowGrid(show)
	return show
}

// ToggleSnap flips grid snapping and returns the new state.
func (t *Toolbar) ToggleSnap() bool {
	snap := !t.engine.Options().SnapToGrid
	t.engine.SetSnapToGrid(snap)
	return snap
}

// Undo forwards to the host; no-op in read-only mode.
func (t *Toolbar) Undo() {
	if t.engine.Options().ReadOnly {
		return
	}
	if t.engine.cb.OnUndo != nil {
		t.engine.cb.OnUndo()
	}
}

// Redo forwards to the host; no-op in read-only mode.
func (t *Toolbar) Redo() {
	if t.engine.Options().ReadOnly {
		return
	}
	if t.engine.cb.OnRedo != nil {
		t.engine.cb.OnRedo()
	}
}
