// Package engine wires the canvas pieces together: it feeds raw pointer
// input through the gesture recognizer and routes the classified gestures to
// selection, drag sessions, panning and zooming. One Engine instance serves
// one canvas; every collaborator is injected, nothing is global.
package engine

import (
	"context"
	"time"

	log "charm.land/log/v2"

	"github.com/mindweave/mindweave/internal/config"
	"github.com/mindweave/mindweave/internal/dragsession"
	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/gesture"
	"github.com/mindweave/mindweave/internal/hittest"
	"github.com/mindweave/mindweave/internal/layoutparams"
	"github.com/mindweave/mindweave/internal/scene"
	"github.com/mindweave/mindweave/internal/viewport"
)

// dragMode says what a pointer's drag is editing.
type dragMode int

const (
	dragNode dragMode = iota
	dragPan
)

// LongPressHandler is invoked when a long press fires. nodeID is empty when
// the press landed on empty canvas. Positions are in canvas space.
type LongPressHandler func(nodeID string, pos geom.Vector2)

// Engine routes input for one canvas.
type Engine struct {
	logger   *log.Logger
	doc      scene.Document
	view     *viewport.View
	rec      *gesture.Recognizer
	drags    *dragsession.Manager
	registry *layoutparams.Registry

	viewportSize  geom.Vector2
	fitPadding    float32
	wheelFactor   float32
	edgeTolerance float32
	onLongPress   LongPressHandler

	dragModes map[int]dragMode
	pinchBase float32
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithGestureConfig overrides the recognizer thresholds.
func WithGestureConfig(cfg gesture.Config) Option {
	return func(e *Engine) { e.rec = gesture.NewRecognizer(cfg) }
}

// WithZoomBounds overrides the viewport zoom bounds.
func WithZoomBounds(minZoom, maxZoom float32) Option {
	return func(e *Engine) { e.view = viewport.New(minZoom, maxZoom) }
}

// WithAnimationDuration sets the duration of animated view transitions.
// Zero disables animation.
func WithAnimationDuration(d time.Duration) Option {
	return func(e *Engine) { e.view.SetAnimationDuration(d) }
}

// WithRegistry attaches a layout registry.
func WithRegistry(r *layoutparams.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithLongPressHandler sets the long-press callback.
func WithLongPressHandler(h LongPressHandler) Option {
	return func(e *Engine) { e.onLongPress = h }
}

// WithFitPadding overrides the zoom-to-fit padding, in screen units.
func WithFitPadding(p float32) Option {
	return func(e *Engine) { e.fitPadding = p }
}

// New creates an engine editing doc. Options are applied in order, so
// WithAnimationDuration must come after WithZoomBounds.
func New(doc scene.Document, opts ...Option) *Engine {
	e := &Engine{
		logger:        log.Default(),
		doc:           doc,
		view:          viewport.New(config.MinZoom, config.MaxZoom),
		rec:           gesture.NewRecognizer(gesture.DefaultConfig()),
		registry:      layoutparams.NewRegistry(),
		fitPadding:    config.ZoomToFitPadding,
		wheelFactor:   config.WheelZoomFactor,
		edgeTolerance: config.EdgeHitTolerance,
		dragModes:     make(map[int]dragMode),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.drags = dragsession.NewManager(doc, e.rec.Config().DragThreshold)
	return e
}

// View exposes the viewport for rendering.
func (e *Engine) View() *viewport.View {
	return e.view
}

// Document returns the document the engine edits.
func (e *Engine) Document() scene.Document {
	return e.doc
}

// Registry returns the layout registry.
func (e *Engine) Registry() *layoutparams.Registry {
	return e.registry
}

// SetViewportSize records the render surface size used by zoom-to-fit.
func (e *Engine) SetViewportSize(size geom.Vector2) {
	e.viewportSize = size
}

// Interacting reports whether a drag session is open, for hosts that lower
// their frame rate during interactions.
func (e *Engine) Interacting() bool {
	return e.drags.ActiveCount() > 0
}

// PointerDown feeds a press into the recognizer.
func (e *Engine) PointerDown(pointer int, device gesture.Device, pos geom.Vector2, mods gesture.Modifiers, now time.Time) {
	e.dispatch(e.rec.PointerDown(pointer, device, pos, mods, now))
}

// PointerMove feeds movement into the recognizer.
func (e *Engine) PointerMove(pointer int, pos geom.Vector2, now time.Time) {
	e.dispatch(e.rec.PointerMove(pointer, pos, now))
}

// PointerUp feeds a release into the recognizer.
func (e *Engine) PointerUp(pointer int, pos geom.Vector2, mods gesture.Modifiers, now time.Time) {
	e.dispatch(e.rec.PointerUp(pointer, pos, mods, now))
}

// PointerCancel aborts a pointer sequence.
func (e *Engine) PointerCancel(pointer int, now time.Time) {
	e.dispatch(e.rec.PointerCancel(pointer, now))
}

// Hover feeds button-less movement into the recognizer.
func (e *Engine) Hover(pos geom.Vector2, mods gesture.Modifiers, now time.Time) {
	e.dispatch(e.rec.Hover(pos, mods, now))
}

// Wheel zooms by one notch at the cursor. Positive deltaY zooms in.
func (e *Engine) Wheel(pos geom.Vector2, deltaY float32, now time.Time) {
	factor := e.wheelFactor
	if deltaY < 0 {
		factor = 1 / factor
	}
	e.view.ZoomToPoint(pos, e.view.Zoom()*factor, false)
}

// Tick advances time-based state: withheld taps, long-press deadlines, and
// view transitions. It returns true while an animation is still running.
func (e *Engine) Tick(now time.Time) bool {
	e.dispatch(e.rec.Tick(now))
	return e.view.Tick(now)
}

// CancelInteractions tears down all transient interaction state, restoring
// dragged nodes. Called when the host loses focus.
func (e *Engine) CancelInteractions() {
	e.drags.CancelAll()
	e.rec.Reset()
	e.view.CancelAnimation()
	e.dragModes = make(map[int]dragMode)
}

// ZoomToFitContent fits all visible content into the viewport.
func (e *Engine) ZoomToFitContent(animate bool) {
	snap := scene.Capture(e.doc)
	e.view.ZoomToFit(snap.ContentBounds(), e.viewportSize, e.fitPadding, animate)
}

// ZoomToFitNode fits one node into the viewport.
func (e *Engine) ZoomToFitNode(id string, animate bool) {
	snap := scene.Capture(e.doc)
	n, ok := snap.NodeByID(id)
	if !ok {
		return
	}
	e.view.ZoomToFit(n.Bounds, e.viewportSize, e.fitPadding, animate)
}

// ComputeLayout runs the named layout against a snapshot of the document.
// Safe to call from a worker goroutine: it only reads the snapshot taken at
// call time.
func (e *Engine) ComputeLayout(ctx context.Context, layoutID string) (map[string]geom.Vector2, error) {
	return e.registry.RequestApply(ctx, layoutID, scene.Capture(e.doc))
}

// ApplyPositions moves nodes to computed centers and fits the view. Runs on
// the canvas thread.
func (e *Engine) ApplyPositions(positions map[string]geom.Vector2, animate bool) {
	for id, center := range positions {
		e.doc.SetNodePosition(id, center)
	}
	e.ZoomToFitContent(animate)
}

// ApplyLayout computes and applies a layout synchronously.
func (e *Engine) ApplyLayout(ctx context.Context, layoutID string, animate bool) error {
	positions, err := e.ComputeLayout(ctx, layoutID)
	if err != nil {
		return err
	}
	e.ApplyPositions(positions, animate)
	return nil
}

func (e *Engine) dispatch(events []gesture.Event) {
	for _, ev := range events {
		e.handle(ev)
	}
}

func (e *Engine) handle(ev gesture.Event) {
	switch ev.Kind {
	case gesture.Tap:
		e.handleTap(ev)
	case gesture.DoubleTap:
		e.handleDoubleTap(ev)
	case gesture.LongPress:
		e.handleLongPress(ev)
	case gesture.DragStart:
		e.handleDragStart(ev)
	case gesture.DragUpdate:
		e.handleDragUpdate(ev)
	case gesture.DragEnd:
		e.handleDragEnd(ev)
	case gesture.PanUpdate:
		e.view.Pan(ev.Delta)
	case gesture.ScaleUpdate:
		e.handleScale(ev)
	case gesture.Hover:
		e.handleHover(ev)
	}
}

func (e *Engine) handleTap(ev gesture.Event) {
	canvas := e.view.ScreenToCanvas(ev.Pos)
	snap := scene.Capture(e.doc)
	additive := ev.Mods.Has(gesture.ModShift) || ev.Mods.Has(gesture.ModCtrl)

	if id, ok := hittest.NodeAt(snap, canvas); ok {
		e.doc.SelectNode(id, additive)
		return
	}
	if _, ok := hittest.EdgeAt(snap, canvas, e.edgeTolerance/e.view.Zoom()); ok {
		// Edge taps are surfaced through selection-free hover for now; a
		// tap on an edge only clears node selection.
		e.doc.ClearSelection()
		return
	}
	if !additive {
		e.doc.ClearSelection()
	}
}

func (e *Engine) handleDoubleTap(ev gesture.Event) {
	canvas := e.view.ScreenToCanvas(ev.Pos)
	snap := scene.Capture(e.doc)

	if id, ok := hittest.NodeAt(snap, canvas); ok {
		e.ZoomToFitNode(id, true)
		return
	}
	e.view.ZoomToPoint(ev.Pos, e.view.Zoom()*config.DoubleTapZoomFactor, true)
}

func (e *Engine) handleLongPress(ev gesture.Event) {
	if e.onLongPress == nil {
		return
	}
	canvas := e.view.ScreenToCanvas(ev.Pos)
	id, _ := hittest.NodeAt(scene.Capture(e.doc), canvas)
	e.onLongPress(id, canvas)
}

func (e *Engine) handleDragStart(ev gesture.Event) {
	canvas := e.view.ScreenToCanvas(ev.Pos)
	snap := scene.Capture(e.doc)

	id, ok := hittest.NodeAt(snap, canvas)
	if !ok {
		e.dragModes[ev.Pointer] = dragPan
		return
	}

	e.dragModes[ev.Pointer] = dragNode
	// The session threshold lives in canvas units; rescale from screen.
	e.drags.SetThreshold(e.rec.Config().DragThreshold / e.view.Zoom())
	if err := e.drags.Begin(ev.Pointer, id, canvas); err != nil {
		e.logger.Error("drag session rejected", "node", id, "pointer", ev.Pointer, "err", err)
		e.dragModes[ev.Pointer] = dragPan
	}
}

func (e *Engine) handleDragUpdate(ev gesture.Event) {
	switch e.dragModes[ev.Pointer] {
	case dragNode:
		e.drags.Update(ev.Pointer, e.view.ScreenToCanvas(ev.Pos))
	case dragPan:
		e.view.Pan(ev.Delta)
	}
}

func (e *Engine) handleDragEnd(ev gesture.Event) {
	mode := e.dragModes[ev.Pointer]
	delete(e.dragModes, ev.Pointer)
	if mode != dragNode {
		return
	}
	if ev.Canceled {
		e.drags.Cancel(ev.Pointer)
		return
	}
	e.drags.End(ev.Pointer, e.view.ScreenToCanvas(ev.Pos))
}

func (e *Engine) handleScale(ev gesture.Event) {
	if ev.First {
		e.pinchBase = e.view.Zoom()
	}
	e.view.ZoomToPoint(ev.Focal, e.pinchBase*ev.Scale, false)
}

func (e *Engine) handleHover(ev gesture.Event) {
	canvas := e.view.ScreenToCanvas(ev.Pos)
	id, _ := hittest.NodeAt(scene.Capture(e.doc), canvas)
	e.doc.SetHovered(id)
}
