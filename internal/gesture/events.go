// Package gesture classifies raw pointer input into high-level gestures:
// taps, double taps, long presses, drags, pans, pinch scaling and hover.
//
// The recognizer holds one small state machine per active pointer and a
// parallel scaling state that takes over when two touch pointers are down.
// It owns no timers; deadlines (long press, double-tap merge) fire from
// Tick, which the host calls from its frame loop. All methods must be
// called from the single thread that owns the canvas.
package gesture

import (
	"time"

	"github.com/mindweave/mindweave/internal/geom"
)

// Kind identifies a classified gesture event.
type Kind int

const (
	// Tap is a press and release without significant movement. It is
	// emitted only after the double-tap window expires without a second
	// tap, so a DoubleTap is never preceded by a Tap at the same spot.
	Tap Kind = iota

	// DoubleTap is two taps close together in time and position.
	DoubleTap

	// LongPress is a press held past the long-press delay without
	// significant movement.
	LongPress

	// DragStart begins a drag once movement exceeds the drag threshold.
	// Pos carries the original press position.
	DragStart

	// DragUpdate reports drag movement. Delta is relative to the previous
	// drag event.
	DragUpdate

	// DragEnd finishes a drag. Velocity carries the release velocity;
	// Canceled is set when the drag was aborted rather than released.
	DragEnd

	// PanUpdate reports two-finger pan movement of the pinch focal point.
	PanUpdate

	// ScaleUpdate reports pinch scaling. Scale is the ratio of the current
	// finger spread to the spread when the pinch began; Focal is the
	// current midpoint. First marks the first update of a pinch.
	ScaleUpdate

	// Hover reports pointer movement with no buttons pressed.
	Hover
)

// String returns the event kind name for logs and test output.
func (k Kind) String() string {
	switch k {
	case Tap:
		return "Tap"
	case DoubleTap:
		return "DoubleTap"
	case LongPress:
		return "LongPress"
	case DragStart:
		return "DragStart"
	case DragUpdate:
		return "DragUpdate"
	case DragEnd:
		return "DragEnd"
	case PanUpdate:
		return "PanUpdate"
	case ScaleUpdate:
		return "ScaleUpdate"
	case Hover:
		return "Hover"
	}
	return "Unknown"
}

// Device identifies the kind of pointing device behind a pointer.
type Device int

const (
	Mouse Device = iota
	Touch
	Stylus
)

// Modifiers is a bitset of keyboard modifiers sampled when the gesture's
// initiating press happened.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether all modifiers in m are set.
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}

// Event is one classified gesture event. Positions are in screen space;
// the consumer converts through the viewport transform as needed.
type Event struct {
	Kind     Kind
	Pointer  int
	Device   Device
	Pos      geom.Vector2
	Delta    geom.Vector2
	Scale    float32
	Focal    geom.Vector2
	Velocity geom.Vector2
	First    bool
	Canceled bool
	Mods     Modifiers
	Time     time.Time
}

// Config holds the recognizer's tuning thresholds. All distances are in
// screen units.
type Config struct {
	// DragThreshold is the movement past which a press becomes a drag.
	DragThreshold float32

	// LongPressDelay is how long a press must hold still to long-press.
	LongPressDelay time.Duration

	// DoubleTapWindow is the maximum gap between two taps that merge into
	// a double tap. Single taps are withheld for this long.
	DoubleTapWindow time.Duration

	// DoubleTapTolerance is the maximum distance between two taps that
	// merge into a double tap.
	DoubleTapTolerance float32
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		DragThreshold:      4,
		LongPressDelay:     500 * time.Millisecond,
		DoubleTapWindow:    300 * time.Millisecond,
		DoubleTapTolerance: 8,
	}
}
