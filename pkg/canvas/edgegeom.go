package canvas

import "math"

// minControlOffset is the smallest horizontal control-point offset, so
// short edges still leave their ports with a horizontal tangent.
const minControlOffset = 50.0

// EdgePath is a single cubic bezier from an output port to an input
// port, with horizontal-flow control points: both tangents are
// horizontal at the endpoints regardless of vertical distance.
type EdgePath struct {
	X1, Y1 float64 // source endpoint
	C1, C2 Point   // control points
	X2, Y2 float64 // target endpoint
}

// NewEdgePath computes the bezier for the given endpoints. The control
// offset is max(50, |dx|*curvature, |dy|*0.5); control points sit at
// source.x+offset and target.x-offset at their endpoint's y.
func NewEdgePath(sx, sy, tx, ty, curvature float64) EdgePath {
	offset := controlOffset(sx, sy, tx, ty, curvature)
	return EdgePath{
		X1: sx, Y1: sy,
		C1: Point{X: sx + offset, Y: sy},
		C2: Point{X: tx - offset, Y: ty},
		X2: tx, Y2: ty,
	}
}

func controlOffset(sx, sy, tx, ty, curvature float64) float64 {
	offset := minControlOffset
	if dx := math.Abs(tx-sx) * curvature; dx > offset {
		offset = dx
	}
	if dy := math.Abs(ty-sy) * 0.5; dy > offset {
		offset = dy
	}
	return offset
}

// PointAt evaluates the exact cubic-bezier point formula at t in [0,1].
// Labels placed with this stay centered on the curve rather than on the
// straight chord.
func (p EdgePath) PointAt(t float64) (x, y float64) {
	t = clamp(t, 0, 1)
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	x = b0*p.X1 + b1*p.C1.X + b2*p.C2.X + b3*p.X2
	y = b0*p.Y1 + b1*p.C1.Y + b2*p.C2.Y + b3*p.Y2
	return x, y
}

// Midpoint is the curve point at t = 0.5, the default label anchor.
func (p EdgePath) Midpoint() (x, y float64) {
	return p.PointAt(0.5)
}

// Sample returns n+1 points along the curve, endpoint to endpoint.
// Used for terminal rendering and distance-based edge hit-testing.
func (p EdgePath) Sample(n int) []Point {
	if n < 1 {
		n = 1
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		x, y := p.PointAt(float64(i) / float64(n))
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

// DistanceTo returns the shortest distance from a point to the sampled
// curve.
func (p EdgePath) DistanceTo(x, y float64) float64 {
	best := math.MaxFloat64
	for _, pt := range p.Sample(32) {
		dx := pt.X - x
		dy := pt.Y - y
		if d := math.Hypot(dx, dy); d < best {
			best = d
		}
	}
	return best
}

// Arrowhead computes the 3-point triangle at the target endpoint. The
// angle comes from the straight source-target chord, not the curve
// tangent; an intentional approximation that reads fine visually.
func Arrowhead(sx, sy, tx, ty, size float64) [3]Point {
	angle := math.Atan2(ty-sy, tx-sx)
	spread := math.Pi / 7
	return [3]Point{
		{X: tx, Y: ty},
		{X: tx - size*math.Cos(angle-spread), Y: ty - size*math.Sin(angle-spread)},
		{X: tx - size*math.Cos(angle+spread), Y: ty - size*math.Sin(angle+spread)},
	}
}

// DashAnimator advances the dash offset for edges marked animated.
// Purely cosmetic: it affects no engine invariant. The host drives it
// from its frame loop and stops it on unmount or when no animated edge
// remains.
type DashAnimator struct {
	offset  float64
	speed   float64 // dash units per second
	running bool
}

// NewDashAnimator creates an animator with the given speed in dash
// units per second.
func NewDashAnimator(speed float64) *DashAnimator {
	return &DashAnimator{speed: speed}
}

// Start begins advancing the offset on subsequent Advance calls.
func (a *DashAnimator) Start() { a.running = true }

// Stop freezes the offset; Advance becomes a no-op.
func (a *DashAnimator) Stop() { a.running = false }

// Running reports whether the animator is active.
func (a *DashAnimator) Running() bool { return a.running }

// Advance moves the offset forward by the elapsed seconds, wrapping at
// a large period to keep the value small.
func (a *DashAnimator) Advance(dt float64) {
	if !a.running || dt <= 0 {
		return
	}
	a.offset = math.Mod(a.offset+a.speed*dt, 1e6)
}

// Offset returns the current dash offset.
func (a *DashAnimator) Offset() float64 { return a.offset }
