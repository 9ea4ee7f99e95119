package gesture

import (
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/mindweave/mindweave/internal/geom"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRecognizer() *Recognizer {
	return NewRecognizer(Config{
		DragThreshold:      4,
		LongPressDelay:     500 * time.Millisecond,
		DoubleTapWindow:    300 * time.Millisecond,
		DoubleTapTolerance: 8,
	})
}

func kinds(events []Event) []Kind {
	out := make([]Kind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

func expectKinds(t *testing.T, events []Event, want ...Kind) {
	t.Helper()
	got := kinds(events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestTapEmittedAfterDoubleTapWindow(t *testing.T) {
	r := newTestRecognizer()

	expectKinds(t, r.PointerDown(0, Mouse, geom.V2(10, 10), 0, t0))
	expectKinds(t, r.PointerUp(0, geom.V2(10, 10), 0, t0.Add(50*time.Millisecond)))

	// Still inside the window: withheld.
	expectKinds(t, r.Tick(t0.Add(200*time.Millisecond)))

	events := r.Tick(t0.Add(400 * time.Millisecond))
	expectKinds(t, events, Tap)
	if events[0].Pos != geom.V2(10, 10) {
		t.Errorf("tap pos = %v, want press position", events[0].Pos)
	}

	// Flushed exactly once.
	expectKinds(t, r.Tick(t0.Add(500*time.Millisecond)))
}

func TestDoubleTapSuppressesSingleTap(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(10, 10), 0, t0)
	r.PointerUp(0, geom.V2(10, 10), 0, t0.Add(40*time.Millisecond))
	r.PointerDown(0, Mouse, geom.V2(12, 11), 0, t0.Add(150*time.Millisecond))
	events := r.PointerUp(0, geom.V2(12, 11), 0, t0.Add(190*time.Millisecond))

	expectKinds(t, events, DoubleTap)

	// No trailing single tap later.
	expectKinds(t, r.Tick(t0.Add(2*time.Second)))
}

func TestSecondTapFarAwayDoesNotMerge(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(10, 10), 0, t0)
	r.PointerUp(0, geom.V2(10, 10), 0, t0.Add(40*time.Millisecond))
	r.PointerDown(0, Mouse, geom.V2(100, 100), 0, t0.Add(100*time.Millisecond))
	events := r.PointerUp(0, geom.V2(100, 100), 0, t0.Add(140*time.Millisecond))

	// The old tap flushes immediately; the new one is withheld.
	expectKinds(t, events, Tap)
	if events[0].Pos != geom.V2(10, 10) {
		t.Errorf("flushed tap pos = %v, want first tap position", events[0].Pos)
	}

	events = r.Tick(t0.Add(time.Second))
	expectKinds(t, events, Tap)
	if events[0].Pos != geom.V2(100, 100) {
		t.Errorf("second tap pos = %v, want (100,100)", events[0].Pos)
	}
}

func TestTapsFromDifferentDevicesDoNotMerge(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(10, 10), 0, t0)
	r.PointerUp(0, geom.V2(10, 10), 0, t0.Add(40*time.Millisecond))
	r.PointerDown(1, Touch, geom.V2(11, 10), 0, t0.Add(120*time.Millisecond))
	events := r.PointerUp(1, geom.V2(11, 10), 0, t0.Add(160*time.Millisecond))

	// Same spot, inside the window, but a different device kind: the mouse
	// tap flushes as a single tap and the touch tap is withheld.
	expectKinds(t, events, Tap)
	if events[0].Device != Mouse {
		t.Errorf("flushed tap device = %v, want Mouse", events[0].Device)
	}

	events = r.Tick(t0.Add(time.Second))
	expectKinds(t, events, Tap)
	if events[0].Device != Touch {
		t.Errorf("withheld tap device = %v, want Touch", events[0].Device)
	}
}

func TestTapCarriesReleaseModifiers(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(5, 5), 0, t0)
	r.PointerUp(0, geom.V2(5, 5), ModShift|ModCtrl, t0.Add(30*time.Millisecond))
	events := r.Tick(t0.Add(time.Second))

	expectKinds(t, events, Tap)
	if !events[0].Mods.Has(ModShift) || !events[0].Mods.Has(ModCtrl) {
		t.Errorf("mods = %v, want shift+ctrl sampled at release", events[0].Mods)
	}
}

func TestDragThreshold(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(10, 10), 0, t0)

	// Sub-threshold jitter stays a press.
	expectKinds(t, r.PointerMove(0, geom.V2(12, 10), t0.Add(20*time.Millisecond)))

	events := r.PointerMove(0, geom.V2(20, 10), t0.Add(40*time.Millisecond))
	expectKinds(t, events, DragStart, DragUpdate)
	if events[0].Pos != geom.V2(10, 10) {
		t.Errorf("DragStart pos = %v, want press position", events[0].Pos)
	}
	if events[1].Delta != geom.V2(10, 0) {
		t.Errorf("first DragUpdate delta = %v, want total movement (10,0)", events[1].Delta)
	}

	events = r.PointerMove(0, geom.V2(25, 13), t0.Add(60*time.Millisecond))
	expectKinds(t, events, DragUpdate)
	if events[0].Delta != geom.V2(5, 3) {
		t.Errorf("incremental delta = %v, want (5,3)", events[0].Delta)
	}

	events = r.PointerUp(0, geom.V2(30, 13), 0, t0.Add(80*time.Millisecond))
	expectKinds(t, events, DragEnd)
	if events[0].Canceled {
		t.Error("released drag reported as canceled")
	}

	// A completed drag never becomes a tap.
	expectKinds(t, r.Tick(t0.Add(time.Second)))
}

func TestDragEndVelocity(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(0, 0), 0, t0)
	r.PointerMove(0, geom.V2(10, 0), t0.Add(100*time.Millisecond))
	events := r.PointerUp(0, geom.V2(20, 0), 0, t0.Add(200*time.Millisecond))

	expectKinds(t, events, DragEnd)
	// 10 units over the final 100ms.
	if v := events[0].Velocity.X; math32.Abs(v-100) > 1 {
		t.Errorf("velocity.X = %v, want ~100 units/s", v)
	}
}

func TestLongPressFiresFromTick(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Touch, geom.V2(10, 10), 0, t0)
	expectKinds(t, r.Tick(t0.Add(400*time.Millisecond)))

	events := r.Tick(t0.Add(600 * time.Millisecond))
	expectKinds(t, events, LongPress)
	if events[0].Pos != geom.V2(10, 10) {
		t.Errorf("long press pos = %v, want press position", events[0].Pos)
	}

	// Fires once.
	expectKinds(t, r.Tick(t0.Add(700*time.Millisecond)))

	// Release after a long press is not a tap.
	expectKinds(t, r.PointerUp(0, geom.V2(10, 10), 0, t0.Add(800*time.Millisecond)))
	expectKinds(t, r.Tick(t0.Add(2*time.Second)))
}

func TestMovementBeforeDeadlineCancelsLongPress(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Touch, geom.V2(10, 10), 0, t0)
	events := r.PointerMove(0, geom.V2(30, 10), t0.Add(100*time.Millisecond))
	expectKinds(t, events, DragStart, DragUpdate)

	// Deadline passes while dragging: no LongPress.
	expectKinds(t, r.Tick(t0.Add(time.Second)))
}

func TestDragAfterLongPress(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Touch, geom.V2(10, 10), 0, t0)
	expectKinds(t, r.Tick(t0.Add(600*time.Millisecond)), LongPress)

	events := r.PointerMove(0, geom.V2(40, 10), t0.Add(700*time.Millisecond))
	expectKinds(t, events, DragStart, DragUpdate)
}

func TestPinchScaling(t *testing.T) {
	r := newTestRecognizer()

	expectKinds(t, r.PointerDown(1, Touch, geom.V2(100, 100), 0, t0))
	expectKinds(t, r.PointerDown(2, Touch, geom.V2(200, 100), 0, t0.Add(20*time.Millisecond)))

	// Spread widens 100 -> 150 and the midpoint shifts left.
	events := r.PointerMove(1, geom.V2(50, 100), t0.Add(50*time.Millisecond))
	expectKinds(t, events, ScaleUpdate, PanUpdate)
	if !events[0].First {
		t.Error("first pinch update not flagged First")
	}
	if math32.Abs(events[0].Scale-1.5) > 1e-3 {
		t.Errorf("scale = %v, want 1.5 (spread 150/100)", events[0].Scale)
	}

	events = r.PointerMove(2, geom.V2(250, 100), t0.Add(70*time.Millisecond))
	expectKinds(t, events, ScaleUpdate, PanUpdate)
	if events[0].First {
		t.Error("second pinch update flagged First")
	}
	if math32.Abs(events[0].Scale-2) > 1e-3 {
		t.Errorf("scale = %v, want 2", events[0].Scale)
	}

	// Lifting a finger ends the pinch; the survivor does not become a drag.
	expectKinds(t, r.PointerUp(1, geom.V2(50, 100), 0, t0.Add(100*time.Millisecond)))
	expectKinds(t, r.PointerMove(2, geom.V2(400, 100), t0.Add(120*time.Millisecond)))
	expectKinds(t, r.Tick(t0.Add(2*time.Second)))
}

func TestPinchCancelsActiveDrag(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(1, Touch, geom.V2(100, 100), 0, t0)
	expectKinds(t, r.PointerMove(1, geom.V2(130, 100), t0.Add(30*time.Millisecond)), DragStart, DragUpdate)

	events := r.PointerDown(2, Touch, geom.V2(200, 100), 0, t0.Add(60*time.Millisecond))
	expectKinds(t, events, DragEnd)
	if !events[0].Canceled {
		t.Error("drag ended by pinch start should be canceled")
	}
	if events[0].Pointer != 1 {
		t.Errorf("canceled pointer = %d, want 1", events[0].Pointer)
	}
}

func TestPointerCancelDuringDrag(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(0, 0), 0, t0)
	r.PointerMove(0, geom.V2(20, 0), t0.Add(20*time.Millisecond))

	events := r.PointerCancel(0, t0.Add(40*time.Millisecond))
	expectKinds(t, events, DragEnd)
	if !events[0].Canceled {
		t.Error("canceled drag not flagged")
	}
}

func TestPointerCancelDuringPressIsSilent(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(0, 0), 0, t0)
	expectKinds(t, r.PointerCancel(0, t0.Add(20*time.Millisecond)))
	expectKinds(t, r.Tick(t0.Add(time.Second)))
}

func TestResetDropsEverythingSilently(t *testing.T) {
	r := newTestRecognizer()

	r.PointerDown(0, Mouse, geom.V2(0, 0), 0, t0)
	r.PointerUp(0, geom.V2(0, 0), 0, t0.Add(20*time.Millisecond))
	r.PointerDown(1, Touch, geom.V2(50, 50), 0, t0.Add(30*time.Millisecond))

	r.Reset()

	expectKinds(t, r.Tick(t0.Add(2*time.Second)))
	expectKinds(t, r.PointerMove(1, geom.V2(200, 200), t0.Add(40*time.Millisecond)))
}

func TestHover(t *testing.T) {
	r := newTestRecognizer()

	events := r.Hover(geom.V2(33, 44), ModAlt, t0)
	expectKinds(t, events, Hover)
	if events[0].Pos != geom.V2(33, 44) || !events[0].Mods.Has(ModAlt) {
		t.Errorf("hover event = %+v, want pos and mods preserved", events[0])
	}
}
