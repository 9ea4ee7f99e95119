package geom

import (
	"testing"

	"github.com/chewxy/math32"
)

const epsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math32.Abs(a-b) < epsilon
}

func TestRectContains(t *testing.T) {
	r := R(10, 10, 30, 20)

	tests := []struct {
		name string
		p    Vector2
		want bool
	}{
		{"center", V2(20, 15), true},
		{"min corner inclusive", V2(10, 10), true},
		{"max corner exclusive", V2(30, 20), false},
		{"left of rect", V2(9.9, 15), false},
		{"below rect", V2(20, 25), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRectInflateAndUnion(t *testing.T) {
	r := R(0, 0, 10, 10).Inflate(5)
	if r.Min.X != -5 || r.Max.Y != 15 {
		t.Errorf("Inflate(5) = %v, want Min(-5,-5) Max(15,15)", r)
	}

	u := R(0, 0, 10, 10).Union(R(5, -5, 20, 8))
	want := R(0, -5, 20, 10)
	if u != want {
		t.Errorf("Union = %v, want %v", u, want)
	}
}

func TestRectIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"normal", R(0, 0, 10, 10), false},
		{"zero width", R(5, 0, 5, 10), true},
		{"zero height", R(0, 5, 10, 5), true},
		{"inverted", R(10, 10, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentDistance(t *testing.T) {
	tests := []struct {
		name string
		p    Vector2
		a, b Vector2
		want float32
	}{
		{"perpendicular to middle", V2(5, 3), V2(0, 0), V2(10, 0), 3},
		{"beyond end clamps to endpoint", V2(13, 4), V2(0, 0), V2(10, 0), 5},
		{"before start clamps to start", V2(-3, 4), V2(0, 0), V2(10, 0), 5},
		{"on segment", V2(5, 0), V2(0, 0), V2(10, 0), 0},
		{"degenerate segment", V2(3, 4), V2(0, 0), V2(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentDistance(tt.p, tt.a, tt.b)
			if !approxEqual(got, tt.want) {
				t.Errorf("SegmentDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPolylineDistance(t *testing.T) {
	// L-shaped path: (0,0) -> (10,0) -> (10,10)
	path := []Vector2{V2(0, 0), V2(10, 0), V2(10, 10)}

	if got := PolylineDistance(V2(12, 5), path); !approxEqual(got, 2) {
		t.Errorf("distance to vertical leg = %v, want 2", got)
	}
	if got := PolylineDistance(V2(5, -3), path); !approxEqual(got, 3) {
		t.Errorf("distance to horizontal leg = %v, want 3", got)
	}
	if got := PolylineDistance(V2(1, 2), nil); !math32.IsInf(got, 1) {
		t.Errorf("empty polyline = %v, want +Inf", got)
	}
}

func TestEaseOutCubic(t *testing.T) {
	if got := EaseOutCubic(0); !approxEqual(got, 0) {
		t.Errorf("EaseOutCubic(0) = %v, want 0", got)
	}
	if got := EaseOutCubic(1); !approxEqual(got, 1) {
		t.Errorf("EaseOutCubic(1) = %v, want 1", got)
	}
	// Ease-out: first half covers more than half the distance.
	if got := EaseOutCubic(0.5); got <= 0.5 {
		t.Errorf("EaseOutCubic(0.5) = %v, want > 0.5", got)
	}
}

func TestDivScalarZero(t *testing.T) {
	if got := V2(3, 4).DivScalar(0); got != (Vector2{}) {
		t.Errorf("DivScalar(0) = %v, want zero vector", got)
	}
}
