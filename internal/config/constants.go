// Package config provides tuning constants and user settings for the canvas
// engine and the demo application.
package config

import "time"

// =============================================================================
// Zoom and Viewport
// =============================================================================

const (
	// MinZoom is the lower bound for the viewport scale
	MinZoom = 0.1

	// MaxZoom is the upper bound for the viewport scale
	MaxZoom = 10.0

	// WheelZoomFactor is the per-notch scale multiplier for wheel zoom
	WheelZoomFactor = 1.1

	// DoubleTapZoomFactor is the scale multiplier applied when double-tapping
	// empty canvas
	DoubleTapZoomFactor = 1.5

	// ZoomToFitPadding is the padding kept around content when fitting the
	// view, in screen units
	ZoomToFitPadding = 50.0

	// EdgeHitTolerance is the distance within which a point hits an edge,
	// in screen units
	EdgeHitTolerance = 6.0
)

// =============================================================================
// Gesture Thresholds
// =============================================================================

const (
	// DragThreshold is the screen-space movement past which a press becomes
	// a drag
	DragThreshold = 4.0

	// LongPressDelay is how long a press must hold still to long-press
	LongPressDelay = 500 * time.Millisecond

	// DoubleTapWindow is the maximum gap between two taps that merge into a
	// double tap
	DoubleTapWindow = 300 * time.Millisecond

	// DoubleTapTolerance is the maximum distance between two taps that merge
	// into a double tap, in screen units
	DoubleTapTolerance = 8.0
)

// =============================================================================
// Animation Durations
// =============================================================================

const (
	// DefaultAnimationDuration is the standard duration for zoom/fit
	// transitions
	DefaultAnimationDuration = 300 * time.Millisecond

	// FastAnimationDuration is the duration for small zoom steps
	FastAnimationDuration = 200 * time.Millisecond

	// NotificationDuration is the default duration notifications remain
	// visible
	NotificationDuration = 1500 * time.Millisecond
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate while animations are running
	NormalFPS = 60

	// InteractionFPS is the refresh rate during drags, where input latency
	// matters more than smoothness
	InteractionFPS = 30

	// IdleFPS is the refresh rate when nothing is moving
	IdleFPS = 10

	// CPUUpdateInterval is the interval between CPU usage samples in the
	// status bar
	CPUUpdateInterval = 500 * time.Millisecond
)

// =============================================================================
// Node Defaults
// =============================================================================

const (
	// DefaultNodeWidth is the default width for new nodes, in canvas units
	DefaultNodeWidth = 16.0

	// DefaultNodeHeight is the default height for new nodes, in canvas units
	DefaultNodeHeight = 3.0

	// MaxLogMessages is the number of log lines kept in the in-app buffer
	MaxLogMessages = 100
)

// AnimationsEnabled globally toggles animated transitions. Set from the user
// config or the --no-animations flag before the program starts.
var AnimationsEnabled = true

// GetAnimationDuration returns the standard animation duration, or zero when
// animations are disabled.
func GetAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return DefaultAnimationDuration
}

// GetFastAnimationDuration returns the fast animation duration, or zero when
// animations are disabled.
func GetFastAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return FastAnimationDuration
}
