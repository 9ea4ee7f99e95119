package viewport

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/mindweave/mindweave/internal/geom"
)

const epsilon = 1e-3

func approxEqual(a, b float32) bool {
	return math32.Abs(a-b) < epsilon
}

func approxVec(a, b geom.Vector2) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}

func TestTransformRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tf   Transform
		p    geom.Vector2
	}{
		{"identity", Identity(), geom.V2(12, 34)},
		{"scaled", Transform{Scale: 2.5}, geom.V2(-7, 9)},
		{"scaled and translated", Transform{Translation: geom.V2(100, -40), Scale: 0.5}, geom.V2(3.25, -8.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tf.ScreenToCanvas(tt.tf.CanvasToScreen(tt.p))
			if !approxVec(got, tt.p) {
				t.Errorf("round trip = %v, want %v", got, tt.p)
			}
		})
	}
}

func TestZoomClamping(t *testing.T) {
	v := New(0.1, 10)

	v.ZoomToPoint(geom.V2(0, 0), 50, false)
	if !approxEqual(v.Zoom(), 10) {
		t.Errorf("zoom above max = %v, want 10", v.Zoom())
	}

	v.ZoomToPoint(geom.V2(0, 0), 0.001, false)
	if !approxEqual(v.Zoom(), 0.1) {
		t.Errorf("zoom below min = %v, want 0.1", v.Zoom())
	}
}

func TestZoomToPointPreservesAnchor(t *testing.T) {
	v := New(0.1, 10)
	v.SetTransform(Transform{Translation: geom.V2(30, -20), Scale: 1.5})

	anchor := geom.V2(200, 150)
	before := v.ScreenToCanvas(anchor)

	v.ZoomToPoint(anchor, 3, false)

	after := v.ScreenToCanvas(anchor)
	if !approxVec(before, after) {
		t.Errorf("canvas point under anchor moved: before %v, after %v", before, after)
	}
	if !approxEqual(v.Zoom(), 3) {
		t.Errorf("zoom = %v, want 3", v.Zoom())
	}
}

func TestZoomToFit(t *testing.T) {
	v := New(0.1, 10)

	content := geom.R(100, 100, 500, 400) // 400x300
	viewport := geom.V2(800, 600)
	v.ZoomToFit(content, viewport, 50, false)

	// Padded area is 700x500, so scale = min(700/400, 500/300).
	wantScale := float32(500) / 300
	if !approxEqual(v.Zoom(), wantScale) {
		t.Errorf("fit scale = %v, want %v", v.Zoom(), wantScale)
	}

	center := v.CanvasToScreen(content.Center())
	if !approxVec(center, geom.V2(400, 300)) {
		t.Errorf("content center maps to %v, want viewport center (400,300)", center)
	}
}

func TestZoomToFitDegenerate(t *testing.T) {
	v := New(0.1, 10)
	v.SetTransform(Transform{Translation: geom.V2(5, 5), Scale: 2})
	before := v.Transform()

	tests := []struct {
		name    string
		content geom.Rect
		size    geom.Vector2
		padding float32
	}{
		{"empty bounds", geom.R(10, 10, 10, 10), geom.V2(800, 600), 50},
		{"inverted bounds", geom.R(10, 10, 0, 0), geom.V2(800, 600), 50},
		{"padding exceeds viewport", geom.R(0, 0, 100, 100), geom.V2(80, 60), 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.ZoomToFit(tt.content, tt.size, tt.padding, false)
			if v.Transform() != before {
				t.Errorf("transform changed to %v, want unchanged %v", v.Transform(), before)
			}
		})
	}
}

func TestAnimatedTransition(t *testing.T) {
	v := New(0.1, 10)
	v.SetAnimationDuration(100 * time.Millisecond)

	v.ZoomToPoint(geom.V2(0, 0), 4, true)
	if !v.Animating() {
		t.Fatal("expected transition in flight")
	}
	if !approxEqual(v.Zoom(), 1) {
		t.Errorf("zoom changed before first tick: %v", v.Zoom())
	}

	start := time.Now()
	if !v.Tick(start) {
		t.Fatal("Tick at start reported animation complete")
	}

	v.Tick(start.Add(50 * time.Millisecond))
	mid := v.Zoom()
	if mid <= 1 || mid >= 4 {
		t.Errorf("mid-transition zoom = %v, want between 1 and 4", mid)
	}
	// Ease-out front-loads the motion.
	if mid < geom.Lerp(1, 4, 0.5) {
		t.Errorf("mid-transition zoom = %v, want past the linear midpoint", mid)
	}

	if v.Tick(start.Add(150 * time.Millisecond)) {
		t.Error("Tick past duration still reported animating")
	}
	if !approxEqual(v.Zoom(), 4) {
		t.Errorf("final zoom = %v, want 4", v.Zoom())
	}
	if v.Animating() {
		t.Error("Animating() true after completion")
	}
}

func TestNewTransitionReplacesInFlight(t *testing.T) {
	v := New(0.1, 10)
	v.SetAnimationDuration(100 * time.Millisecond)

	v.ZoomToPoint(geom.V2(0, 0), 4, true)
	start := time.Now()
	v.Tick(start)
	v.Tick(start.Add(30 * time.Millisecond))

	// Replace mid-flight with a different target.
	v.ZoomToPoint(geom.V2(0, 0), 2, true)
	v.Tick(start.Add(40 * time.Millisecond))
	if !v.Tick(start.Add(60 * time.Millisecond)) {
		t.Fatal("replacement transition ended early")
	}
	v.Tick(start.Add(200 * time.Millisecond))
	if !approxEqual(v.Zoom(), 2) {
		t.Errorf("final zoom = %v, want replacement target 2", v.Zoom())
	}
}

func TestPanCancelsAnimation(t *testing.T) {
	v := New(0.1, 10)
	v.SetAnimationDuration(100 * time.Millisecond)
	v.ZoomToPoint(geom.V2(0, 0), 4, true)

	v.Pan(geom.V2(10, -5))
	if v.Animating() {
		t.Error("pan left transition in flight")
	}
	if !approxVec(v.Transform().Translation, geom.V2(10, -5)) {
		t.Errorf("translation = %v, want (10,-5)", v.Transform().Translation)
	}

	if v.Tick(time.Now()) {
		t.Error("Tick after cancel reported animating")
	}
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	v := New(0.1, 10)
	v.SetAnimationDuration(0)

	v.ZoomToPoint(geom.V2(0, 0), 3, true)
	if v.Animating() {
		t.Error("zero-duration call left transition in flight")
	}
	if !approxEqual(v.Zoom(), 3) {
		t.Errorf("zoom = %v, want 3", v.Zoom())
	}
}

func TestNewSwapsInvertedBounds(t *testing.T) {
	v := New(10, 0.1)
	if v.MinZoom() != 0.1 || v.MaxZoom() != 10 {
		t.Errorf("bounds = [%v, %v], want [0.1, 10]", v.MinZoom(), v.MaxZoom())
	}
}
