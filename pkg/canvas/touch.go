package canvas

import "math"

// pinchZoomFactor converts pinch-distance deltas (screen pixels) into
// zoom deltas.
const pinchZoomFactor = 0.005

// TouchPoint is one active touch in screen coordinates.
type TouchPoint struct {
	ID   int
	X, Y float64
}

// TouchStart routes touch input. A single touch is synthesized into the
// pointer state machine; two simultaneous touches begin a pinch that
// bypasses the single-pointer machine entirely while both are down. Any
// gesture in progress when the second finger lands is abandoned without
// committing.
func (e *Engine) TouchStart(touches []TouchPoint) {
	switch len(touches) {
	case 1:
		e.PointerDown(PointerEvent{X: touches[0].X, Y: touches[0].Y})
	case 2:
		e.mode = idleMode{}
		e.pinchActive = true
		e.pinchDist = touchDistance(touches[0], touches[1])
	}
}

// TouchMove advances either the synthesized pointer or the pinch.
// Pinch deltas route into zoom-at-cursor centered on the touch
// midpoint.
func (e *Engine) TouchMove(touches []TouchPoint) {
	if e.pinchActive {
		if len(touches) < 2 {
			return
		}
		dist := touchDistance(touches[0], touches[1])
		midX := (touches[0].X + touches[1].X) / 2
		midY := (touches[0].Y + touches[1].Y) / 2
		e.viewport.ZoomAt(midX, midY, (dist-e.pinchDist)*pinchZoomFactor)
		e.pinchDist = dist
		return
	}
	if len(touches) == 1 {
		e.PointerMove(PointerEvent{X: touches[0].X, Y: touches[0].Y})
	}
}

// TouchEnd completes the gesture. When a pinch ends the engine returns
// to idle; the finger that remains down is ignored until lifted.
func (e *Engine) TouchEnd(remaining []TouchPoint, lifted TouchPoint) {
	if e.pinchActive {
		if len(remaining) < 2 {
			e.pinchActive = false
			e.mode = idleMode{}
		}
		return
	}
	if len(remaining) == 0 {
		e.PointerUp(PointerEvent{X: lifted.X, Y: lifted.Y})
	}
}

func touchDistance(a, b TouchPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
