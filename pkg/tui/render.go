package tui

import (
	"fmt"
	"math"

	"github.com/dshills/goterm"

	"github.com/flowcanvas/flowcanvas/pkg/canvas"
)

// ScreenInterface is the subset of goterm.Screen the renderer needs.
// Tests substitute a buffer-backed fake.
type ScreenInterface interface {
	Size() (width, height int)
	Clear()
	Show() error
	SetCell(x, y int, cell goterm.Cell)
	DrawText(x, y int, text string, fg, bg goterm.Color, style goterm.Style)
}

// Editor color scheme.
var (
	colorNode     = goterm.ColorRGB(120, 170, 255)
	colorSelected = goterm.ColorRGB(255, 210, 80)
	colorEdge     = goterm.ColorRGB(130, 130, 150)
	colorPort     = goterm.ColorRGB(90, 220, 140)
	colorGrid     = goterm.ColorRGB(55, 55, 65)
	colorDraft    = goterm.ColorRGB(255, 140, 90)
	colorMinimap  = goterm.ColorRGB(100, 100, 120)
	colorStatus   = goterm.ColorRGB(200, 200, 210)
	colorPointer  = goterm.ColorRGB(255, 255, 255)
	colorBG       = goterm.ColorDefault()
)

// Render draws one frame: grid, edges, nodes, interaction overlays,
// minimap, status bar, then the virtual pointer on top.
func (ed *Editor) Render(screen ScreenInterface) error {
	w, h := screen.Size()
	if w <= 0 || h <= 1 {
		return nil
	}
	// Bottom row is the status bar.
	canvasH := h - 1
	ed.Resize(w, canvasH)

	screen.Clear()

	tr := ed.engine.Viewport().Transform()
	opts := ed.engine.Options()

	if opts.ShowGrid {
		ed.drawGrid(screen, tr, w, canvasH, opts.GridSize)
	}
	ed.drawEdges(screen, tr, w, canvasH, opts.Curvature)
	ed.drawNodes(screen, tr, w, canvasH)
	ed.drawSelectionRect(screen, tr, w, canvasH)
	ed.drawDraftLine(screen, tr, w, canvasH)
	if opts.ShowMinimap {
		ed.drawMinimap(screen, w, canvasH)
	}
	ed.drawStatusBar(screen, w, h-1)
	ed.drawPointer(screen, w, canvasH)

	return screen.Show()
}

func (ed *Editor) drawGrid(screen ScreenInterface, tr canvas.Transform, w, h int, grid float64) {
	if grid <= 0 {
		return
	}
	vis := ed.engine.Viewport().VisibleRect()
	startX := math.Floor(vis.X/grid) * grid
	startY := math.Floor(vis.Y/grid) * grid
	for gy := startY; gy <= vis.Y+vis.Height; gy += grid {
		for gx := startX; gx <= vis.X+vis.Width; gx += grid {
			sx, sy := tr.CanvasToScreen(gx, gy)
			plot(screen, sx, sy, w, h, goterm.NewCell('·', colorGrid, colorBG, goterm.StyleDim))
		}
	}
}

func (ed *Editor) drawEdges(screen ScreenInterface, tr canvas.Transform, w, h int, curvature float64) {
	g := ed.graph
	for _, e := range canvas.VisibleEdges(g) {
		sx, sy, tx, ty, ok := canvas.EdgeEndpoints(g, e)
		if !ok {
			continue
		}
		path := canvas.NewEdgePath(sx, sy, tx, ty, curvature)

		fg := colorEdge
		style := goterm.StyleNone
		if e.Selected {
			fg = colorSelected
			style = goterm.StyleBold
		}

		// Sample density follows the on-screen chord length. Animated
		// edges sample one dot per cell so the dash gaps survive
		// rounding.
		x1, y1 := tr.CanvasToScreen(sx, sy)
		x2, y2 := tr.CanvasToScreen(tx, ty)
		chord := math.Hypot(x2-x1, y2-y1)
		n := int(chord) * 2
		phase := -1
		if e.Animated {
			n = int(chord)
			phase = int(ed.dash.Offset())
		}
		if n < 8 {
			n = 8
		}
		for i, p := range path.Sample(n) {
			if phase >= 0 && (i+phase)%3 == 0 {
				continue
			}
			px, py := tr.CanvasToScreen(p.X, p.Y)
			plot(screen, px, py, w, h, goterm.NewCell('·', fg, colorBG, style))
		}

		plot(screen, x2, y2, w, h, goterm.NewCell(arrowRune(sx, tx), fg, colorBG, style))

		if e.Label != "" {
			mx, my := path.Midpoint()
			lx, ly := tr.CanvasToScreen(mx, my)
			drawTextClipped(screen, int(lx)-len(e.Label)/2, int(ly), w, h, e.Label, fg, goterm.StyleNone)
		}
	}
}

// arrowRune picks the arrowhead glyph from the edge's dominant
// horizontal direction.
func arrowRune(sx, tx float64) rune {
	if tx < sx {
		return '◀'
	}
	return '▶'
}

func (ed *Editor) drawNodes(screen ScreenInterface, tr canvas.Transform, w, h int) {
	for _, n := range ed.graph.Nodes {
		x1f, y1f := tr.CanvasToScreen(n.X, n.Y)
		x2f, y2f := tr.CanvasToScreen(n.X+n.Width, n.Y+n.Height)
		x1, y1, x2, y2 := int(x1f), int(y1f), int(x2f), int(y2f)
		if x2 <= x1 {
			x2 = x1 + 1
		}
		if y2 <= y1 {
			y2 = y1 + 1
		}

		fg := colorNode
		style := goterm.StyleNone
		if n.Selected {
			fg = colorSelected
			style = goterm.StyleBold
		}

		drawBox(screen, x1, y1, x2, y2, w, h, fg, style)

		label := n.DisplayLabel()
		maxLen := x2 - x1 - 1
		if maxLen > 0 && len(label) > maxLen {
			label = label[:maxLen]
		}
		if y2 > y1+1 {
			drawTextClipped(screen, x1+1, y1+1, w, h, label, fg, style)
		}

		for i := range n.Inputs {
			px, py := n.InputPortPosition(i)
			sx, sy := tr.CanvasToScreen(px, py)
			plot(screen, sx, sy, w, h, goterm.NewCell('◧', colorPort, colorBG, goterm.StyleNone))
		}
		for i := range n.Outputs {
			px, py := n.OutputPortPosition(i)
			sx, sy := tr.CanvasToScreen(px, py)
			plot(screen, sx, sy, w, h, goterm.NewCell('◨', colorPort, colorBG, goterm.StyleNone))
		}
	}
}

func (ed *Editor) drawSelectionRect(screen ScreenInterface, tr canvas.Transform, w, h int) {
	r, ok := ed.engine.SelectionRect()
	if !ok {
		return
	}
	x1f, y1f := tr.CanvasToScreen(r.X, r.Y)
	x2f, y2f := tr.CanvasToScreen(r.X+r.Width, r.Y+r.Height)
	drawDashedBox(screen, int(x1f), int(y1f), int(x2f), int(y2f), w, h, colorSelected)
}

func (ed *Editor) drawDraftLine(screen ScreenInterface, tr canvas.Transform, w, h int) {
	x1, y1, x2, y2, ok := ed.engine.DraftLine()
	if !ok {
		return
	}
	sx1, sy1 := tr.CanvasToScreen(x1, y1)
	sx2, sy2 := tr.CanvasToScreen(x2, y2)
	steps := int(math.Hypot(sx2-sx1, sy2-sy1))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		plot(screen, sx1+(sx2-sx1)*t, sy1+(sy2-sy1)*t, w, h,
			goterm.NewCell('+', colorDraft, colorBG, goterm.StyleBold))
	}
}

func (ed *Editor) drawMinimap(screen ScreenInterface, w, h int) {
	mapW := int(ed.minimap.Width)
	mapH := int(ed.minimap.Height)
	if w < mapW+2 || h < mapH+2 {
		return
	}
	originX := w - mapW - 1
	originY := 1

	proj := ed.minimap.Project(ed.graph, ed.engine.Viewport())

	drawBox(screen, originX-1, originY-1, originX+mapW, originY+mapH, w, h, colorMinimap, goterm.StyleDim)

	for _, nr := range proj.Nodes {
		plot(screen, float64(originX)+nr.Rect.X, float64(originY)+nr.Rect.Y, w, h,
			goterm.NewCell('▪', colorNode, colorBG, goterm.StyleNone))
	}

	vp := proj.Viewport
	drawDashedBox(screen,
		originX+int(vp.X), originY+int(vp.Y),
		originX+int(vp.X+vp.Width), originY+int(vp.Y+vp.Height),
		w, h, colorMinimap)
}

func (ed *Editor) drawStatusBar(screen ScreenInterface, w, y int) {
	vp := ed.engine.Viewport().Viewport()
	opts := ed.engine.Options()

	dirty := ""
	if ed.dirty {
		dirty = " *"
	}
	ro := ""
	if opts.ReadOnly {
		ro = " [read-only]"
	}
	left := fmt.Sprintf(" %s%s%s | %s | %.0f%% | %d nodes, %d edges",
		ed.graph.Name, dirty, ro, ed.engine.Mode(), vp.Zoom*100,
		len(ed.graph.Nodes), len(ed.graph.Edges))
	if ed.status != "" {
		left += " | " + ed.status
	}
	drawTextClipped(screen, 0, y, w, y+1, left, colorStatus, goterm.StyleNone)
}

func (ed *Editor) drawPointer(screen ScreenInterface, w, h int) {
	glyph := '┼'
	if ed.buttonHeld {
		glyph = '╋'
	}
	plot(screen, ed.pointerX, ed.pointerY, w, h,
		goterm.NewCell(glyph, colorPointer, colorBG, goterm.StyleBold))
}

// plot sets one cell from float screen coordinates, clipping to bounds.
func plot(screen ScreenInterface, fx, fy float64, w, h int, cell goterm.Cell) {
	x, y := int(math.Round(fx)), int(math.Round(fy))
	if x < 0 || x >= w || y < 0 || y >= h {
		return
	}
	screen.SetCell(x, y, cell)
}

func drawTextClipped(screen ScreenInterface, x, y, w, h int, text string, fg goterm.Color, style goterm.Style) {
	if y < 0 || y >= h {
		return
	}
	for i, ch := range text {
		cx := x + i
		if cx < 0 {
			continue
		}
		if cx >= w {
			break
		}
		screen.SetCell(cx, y, goterm.NewCell(ch, fg, colorBG, style))
	}
}

func drawBox(screen ScreenInterface, x1, y1, x2, y2, w, h int, fg goterm.Color, style goterm.Style) {
	for x := x1 + 1; x < x2; x++ {
		plot(screen, float64(x), float64(y1), w, h, goterm.NewCell('─', fg, colorBG, style))
		plot(screen, float64(x), float64(y2), w, h, goterm.NewCell('─', fg, colorBG, style))
	}
	for y := y1 + 1; y < y2; y++ {
		plot(screen, float64(x1), float64(y), w, h, goterm.NewCell('│', fg, colorBG, style))
		plot(screen, float64(x2), float64(y), w, h, goterm.NewCell('│', fg, colorBG, style))
	}
	plot(screen, float64(x1), float64(y1), w, h, goterm.NewCell('┌', fg, colorBG, style))
	plot(screen, float64(x2), float64(y1), w, h, goterm.NewCell('┐', fg, colorBG, style))
	plot(screen, float64(x1), float64(y2), w, h, goterm.NewCell('└', fg, colorBG, style))
	plot(screen, float64(x2), float64(y2), w, h, goterm.NewCell('┘', fg, colorBG, style))
}

func drawDashedBox(screen ScreenInterface, x1, y1, x2, y2, w, h int, fg goterm.Color) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for x := x1; x <= x2; x += 2 {
		plot(screen, float64(x), float64(y1), w, h, goterm.NewCell('╌', fg, colorBG, goterm.StyleNone))
		plot(screen, float64(x), float64(y2), w, h, goterm.NewCell('╌', fg, colorBG, goterm.StyleNone))
	}
	for y := y1; y <= y2; y += 2 {
		plot(screen, float64(x1), float64(y), w, h, goterm.NewCell('╎', fg, colorBG, goterm.StyleNone))
		plot(screen, float64(x2), float64(y), w, h, goterm.NewCell('╎', fg, colorBG, goterm.StyleNone))
	}
}
