package canvas

// Rect is an axis-aligned rectangle in canvas space. Width and height
// may be negative while a box-selection drag is in progress; callers
// normalize before hit-testing or rendering.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectFromPoints builds the unnormalized rectangle spanned by a drag
// from (x1, y1) to (x2, y2).
func RectFromPoints(x1, y1, x2, y2 float64) Rect {
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Normalize returns an equivalent rectangle with non-negative width and
// height, regardless of drag direction.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether the point lies inside the normalized
// rectangle (right/bottom edges exclusive).
func (r Rect) Contains(x, y float64) bool {
	n := r.Normalize()
	return x >= n.X && x < n.X+n.Width && y >= n.Y && y < n.Y+n.Height
}

// Intersects performs a strict AABB overlap test between the normalized
// rectangles. Zero-area overlap (shared edge or corner) does not count
// as an intersection.
func (r Rect) Intersects(other Rect) bool {
	a := r.Normalize()
	b := other.Normalize()
	return a.X < b.X+b.Width &&
		a.X+a.Width > b.X &&
		a.Y < b.Y+b.Height &&
		a.Y+a.Height > b.Y
}

// Center returns the rectangle's center point.
func (r Rect) Center() (x, y float64) {
	n := r.Normalize()
	return n.X + n.Width/2, n.Y + n.Height/2
}
