package canvas

// KeyEvent is a normalized keyboard event. Printable keys arrive in
// Key; named keys (Delete, Escape, ...) arrive in Special with
// IsSpecial set.
type KeyEvent struct {
	Key       rune
	Ctrl      bool
	Shift     bool
	Meta      bool
	IsSpecial bool
	Special   string
}

func (e KeyEvent) chord() bool {
	return e.Ctrl || e.Meta
}

// HandleKey processes a keyboard event. The host calls this only while
// the canvas has focus. Mutating intents (delete, paste) are suppressed
// in read-only mode; view operations always work.
func (e *Engine) HandleKey(ev KeyEvent) {
	if ev.IsSpecial {
		switch ev.Special {
		case "Escape":
			e.Cancel()
		case "Delete", "Backspace":
			e.deleteSelection()
		}
		return
	}

	if !ev.chord() {
		return
	}

	switch ev.Key {
	case 'c':
		if e.cb.OnCopy != nil {
			e.cb.OnCopy()
		}
	case 'v':
		if !e.opts.ReadOnly && e.cb.OnPaste != nil {
			e.cb.OnPaste(e.lastCanvasX, e.lastCanvasY)
		}
	case 'z':
		if e.opts.ReadOnly {
			return
		}
		if ev.Shift {
			if e.cb.OnRedo != nil {
				e.cb.OnRedo()
			}
		} else if e.cb.OnUndo != nil {
			e.cb.OnUndo()
		}
	case 'y':
		if !e.opts.ReadOnly && e.cb.OnRedo != nil {
			e.cb.OnRedo()
		}
	case 'a':
		if e.cb.OnSelectAll != nil {
			e.cb.OnSelectAll()
		}
	case '0':
		e.viewport.FitView(e.graph)
		if e.cb.OnFitView != nil {
			e.cb.OnFitView()
		}
	case '+', '=':
		e.viewport.ZoomStep(0.1)
	case '-':
		e.viewport.ZoomStep(-0.1)
	}
}

// deleteSelection emits a delete intent only when a selection exists
// and the canvas is not read-only.
func (e *Engine) deleteSelection() {
	if e.opts.ReadOnly || e.graph == nil || !e.graph.HasSelection() {
		return
	}
	if e.cb.OnDeleteSelected != nil {
		e.cb.OnDeleteSelected()
	}
}
