// Package viewport owns the screen/canvas coordinate mapping for one canvas:
// a uniform-scale affine transform with clamped zoom bounds, anchor-preserving
// zoom, zoom-to-fit, and tick-driven animated transitions between transforms.
package viewport

import (
	"time"

	"github.com/mindweave/mindweave/internal/geom"
)

// Transform maps canvas space to screen space: screen = canvas*Scale + Translation.
type Transform struct {
	Translation geom.Vector2
	Scale       float32
}

// Identity returns the identity transform (scale 1, no translation).
func Identity() Transform {
	return Transform{Scale: 1}
}

// CanvasToScreen applies the forward transform.
func (t Transform) CanvasToScreen(p geom.Vector2) geom.Vector2 {
	return p.MulScalar(t.Scale).Add(t.Translation)
}

// ScreenToCanvas applies the inverse transform.
func (t Transform) ScreenToCanvas(p geom.Vector2) geom.Vector2 {
	return p.Sub(t.Translation).DivScalar(t.Scale)
}

// lerp interpolates between two transforms. Scale is interpolated directly;
// for the short transitions used here the visual difference from a
// log-space interpolation is not worth the extra math.
func (t Transform) lerp(to Transform, f float32) Transform {
	return Transform{
		Translation: t.Translation.Lerp(to.Translation, f),
		Scale:       geom.Lerp(t.Scale, to.Scale, f),
	}
}

// transition is an in-flight animated change of transform. The start time is
// captured lazily on the first tick so transitions are deterministic under a
// test-controlled clock.
type transition struct {
	from     Transform
	to       Transform
	start    time.Time
	duration time.Duration
}

// View is the viewport state for a single canvas. It is owned by exactly one
// engine instance and must only be used from the thread that owns the canvas.
type View struct {
	transform Transform
	minZoom   float32
	maxZoom   float32
	animDur   time.Duration
	anim      *transition
}

// New creates a View with the identity transform and the given zoom bounds.
// Inverted bounds are swapped rather than rejected.
func New(minZoom, maxZoom float32) *View {
	if minZoom > maxZoom {
		minZoom, maxZoom = maxZoom, minZoom
	}
	if minZoom <= 0 {
		minZoom = 0.01
	}
	return &View{
		transform: Identity(),
		minZoom:   minZoom,
		maxZoom:   maxZoom,
		animDur:   300 * time.Millisecond,
	}
}

// SetAnimationDuration changes the duration used for animated transitions.
// A duration of zero makes every animated call apply immediately.
func (v *View) SetAnimationDuration(d time.Duration) {
	v.animDur = d
}

// Transform returns the current (possibly mid-animation) transform.
func (v *View) Transform() Transform {
	return v.transform
}

// Zoom reports the current uniform scale.
func (v *View) Zoom() float32 {
	return v.transform.Scale
}

// MinZoom returns the lower zoom bound.
func (v *View) MinZoom() float32 { return v.minZoom }

// MaxZoom returns the upper zoom bound.
func (v *View) MaxZoom() float32 { return v.maxZoom }

// Animating reports whether a transition is in flight.
func (v *View) Animating() bool {
	return v.anim != nil
}

// ScreenToCanvas converts a screen point through the current transform.
func (v *View) ScreenToCanvas(p geom.Vector2) geom.Vector2 {
	return v.transform.ScreenToCanvas(p)
}

// CanvasToScreen converts a canvas point through the current transform.
func (v *View) CanvasToScreen(p geom.Vector2) geom.Vector2 {
	return v.transform.CanvasToScreen(p)
}

// Pan shifts the view by a screen-space delta. A user-initiated pan always
// supersedes an in-flight transition.
func (v *View) Pan(delta geom.Vector2) {
	v.anim = nil
	v.transform.Translation = v.transform.Translation.Add(delta)
}

// ZoomToPoint zooms so that the canvas point currently under screenAnchor
// stays under it. targetScale is clamped to the zoom bounds, never rejected.
func (v *View) ZoomToPoint(screenAnchor geom.Vector2, targetScale float32, animate bool) {
	scale := geom.Clamp(targetScale, v.minZoom, v.maxZoom)
	canvas := v.transform.ScreenToCanvas(screenAnchor)
	next := Transform{
		Translation: screenAnchor.Sub(canvas.MulScalar(scale)),
		Scale:       scale,
	}
	v.apply(next, animate)
}

// ZoomToFit computes the maximal scale at which contentBounds, padded on every
// side, fits entirely within viewportSize, clamps it to the zoom bounds, and
// centers the content. Degenerate content bounds or a viewport too small for
// the padding leave the transform unchanged.
func (v *View) ZoomToFit(contentBounds geom.Rect, viewportSize geom.Vector2, padding float32, animate bool) {
	if contentBounds.IsEmpty() {
		return
	}
	availW := viewportSize.X - 2*padding
	availH := viewportSize.Y - 2*padding
	if availW <= 0 || availH <= 0 {
		return
	}
	scale := min(availW/contentBounds.Width(), availH/contentBounds.Height())
	scale = geom.Clamp(scale, v.minZoom, v.maxZoom)

	viewCenter := viewportSize.MulScalar(0.5)
	next := Transform{
		Translation: viewCenter.Sub(contentBounds.Center().MulScalar(scale)),
		Scale:       scale,
	}
	v.apply(next, animate)
}

// SetTransform replaces the transform directly, clamping scale to the zoom
// bounds and cancelling any in-flight transition.
func (v *View) SetTransform(t Transform) {
	t.Scale = geom.Clamp(t.Scale, v.minZoom, v.maxZoom)
	v.anim = nil
	v.transform = t
}

// CancelAnimation stops an in-flight transition, freezing the view at its
// current intermediate transform.
func (v *View) CancelAnimation() {
	v.anim = nil
}

// Tick advances an in-flight transition. It returns true while the view is
// still animating, so the host knows to keep scheduling frames.
func (v *View) Tick(now time.Time) bool {
	if v.anim == nil {
		return false
	}
	a := v.anim
	if a.start.IsZero() {
		a.start = now
	}
	f := float32(1)
	if a.duration > 0 {
		f = geom.Clamp(float32(now.Sub(a.start))/float32(a.duration), 0, 1)
	}
	v.transform = a.from.lerp(a.to, geom.EaseOutCubic(f))
	if f >= 1 {
		v.transform = a.to
		v.anim = nil
		return false
	}
	return true
}

// apply either starts a transition to next or jumps straight to it. Starting
// a new transition replaces the in-flight one; targets never compose.
func (v *View) apply(next Transform, animate bool) {
	if !animate || v.animDur <= 0 {
		v.anim = nil
		v.transform = next
		return
	}
	v.anim = &transition{
		from:     v.transform,
		to:       next,
		duration: v.animDur,
	}
}
