// Package geom provides the 2D vector and rectangle math used by the canvas
// engine. All geometry is float32; scalar math goes through chewxy/math32 to
// stay in single precision throughout.
package geom

import "github.com/chewxy/math32"

// Vector2 is a 2D point or displacement.
type Vector2 struct {
	X float32
	Y float32
}

// V2 constructs a Vector2.
func V2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns v + o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

// MulScalar returns v scaled by s.
func (v Vector2) MulScalar(s float32) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// DivScalar returns v divided by s. Division by zero yields zero rather
// than Inf so a degenerate transform cannot poison downstream math.
func (v Vector2) DivScalar(s float32) Vector2 {
	if s == 0 {
		return Vector2{}
	}
	return Vector2{v.X / s, v.Y / s}
}

// Length returns the Euclidean length of v.
func (v Vector2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vector2) DistanceTo(o Vector2) float32 {
	return v.Sub(o).Length()
}

// Dot returns the dot product of v and o.
func (v Vector2) Dot(o Vector2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Lerp linearly interpolates from v to o by t in [0, 1].
func (v Vector2) Lerp(o Vector2, t float32) Vector2 {
	return Vector2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)}
}

// Rect is an axis-aligned rectangle, Min inclusive, Max exclusive for
// containment purposes on the far edges.
type Rect struct {
	Min Vector2
	Max Vector2
}

// R constructs a Rect from two corner coordinates.
func R(x0, y0, x1, y1 float32) Rect {
	return Rect{Min: Vector2{x0, y0}, Max: Vector2{x1, y1}}
}

// RectAt constructs a Rect centered at c with the given size.
func RectAt(c Vector2, size Vector2) Rect {
	half := size.MulScalar(0.5)
	return Rect{Min: c.Sub(half), Max: c.Add(half)}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Size returns the extents as a vector.
func (r Rect) Size() Vector2 {
	return Vector2{r.Width(), r.Height()}
}

// Center returns the midpoint of r.
func (r Rect) Center() Vector2 {
	return Vector2{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

// IsEmpty reports whether r has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Inflate grows r by d on every side. Negative d shrinks it.
func (r Rect) Inflate(d float32) Rect {
	return Rect{
		Min: Vector2{r.Min.X - d, r.Min.Y - d},
		Max: Vector2{r.Max.X + d, r.Max.Y + d},
	}
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Vector2{math32.Min(r.Min.X, o.Min.X), math32.Min(r.Min.Y, o.Min.Y)},
		Max: Vector2{math32.Max(r.Max.X, o.Max.X), math32.Max(r.Max.Y, o.Max.Y)},
	}
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Vector2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// EaseOutCubic is the easing curve used for view transitions: fast start,
// gentle settle.
func EaseOutCubic(t float32) float32 {
	u := 1 - t
	return 1 - u*u*u
}

// SegmentDistance returns the minimum distance from p to the line segment ab.
func SegmentDistance(p, a, b Vector2) float32 {
	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		return p.DistanceTo(a)
	}
	t := Clamp(p.Sub(a).Dot(ab)/lenSq, 0, 1)
	closest := a.Add(ab.MulScalar(t))
	return p.DistanceTo(closest)
}

// PolylineDistance returns the minimum distance from p to a polyline given as
// a sequence of points. A single point degenerates to point distance; an empty
// polyline returns +Inf.
func PolylineDistance(p Vector2, points []Vector2) float32 {
	switch len(points) {
	case 0:
		return math32.Inf(1)
	case 1:
		return p.DistanceTo(points[0])
	}
	best := math32.Inf(1)
	for i := 0; i < len(points)-1; i++ {
		if d := SegmentDistance(p, points[i], points[i+1]); d < best {
			best = d
		}
	}
	return best
}
