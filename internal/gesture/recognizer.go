package gesture

import (
	"sort"
	"time"

	"github.com/mindweave/mindweave/internal/geom"
)

type phase int

const (
	phasePressed phase = iota
	phaseDragging
	phaseLongPressed
	phaseConsumed
)

// pointerState tracks one active pointer from down to up.
type pointerState struct {
	device   Device
	mods     Modifiers
	downPos  geom.Vector2
	downTime time.Time
	lastPos  geom.Vector2
	lastTime time.Time
	prevPos  geom.Vector2
	prevTime time.Time
	phase    phase
}

// velocity estimates the release velocity from the last two samples.
func (p *pointerState) velocity() geom.Vector2 {
	dt := p.lastTime.Sub(p.prevTime)
	if dt <= 0 {
		return geom.Vector2{}
	}
	return p.lastPos.Sub(p.prevPos).DivScalar(float32(dt.Seconds()))
}

// pendingTap is a tap withheld until the double-tap window expires.
type pendingTap struct {
	pointer int
	device  Device
	pos     geom.Vector2
	mods    Modifiers
	at      time.Time
}

// scaleState is the parallel pinch state active while two touch pointers
// are down. It tracks the first two touch pointers; extra touch pointers
// are consumed without joining the pinch.
type scaleState struct {
	a, b        int
	startSpread float32
	lastFocal   geom.Vector2
	emitted     bool
}

// Recognizer turns raw pointer input into gesture events. Zero value is not
// usable; construct with NewRecognizer.
type Recognizer struct {
	cfg      Config
	pointers map[int]*pointerState
	pending  *pendingTap
	scaling  *scaleState
}

// NewRecognizer creates a recognizer with the given thresholds.
func NewRecognizer(cfg Config) *Recognizer {
	return &Recognizer{
		cfg:      cfg,
		pointers: make(map[int]*pointerState),
	}
}

// Config returns the active thresholds.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// PointerDown registers a press. Two simultaneous touch presses begin a
// pinch, which cancels any drag those pointers were performing.
func (r *Recognizer) PointerDown(pointer int, device Device, pos geom.Vector2, mods Modifiers, now time.Time) []Event {
	r.pointers[pointer] = &pointerState{
		device:   device,
		mods:     mods,
		downPos:  pos,
		downTime: now,
		lastPos:  pos,
		lastTime: now,
		prevPos:  pos,
		prevTime: now,
	}

	if device != Touch {
		return nil
	}
	if r.scaling != nil {
		// Third and later fingers ride along without affecting the pinch.
		r.pointers[pointer].phase = phaseConsumed
		return nil
	}

	touches := r.touchPointers()
	if len(touches) < 2 {
		return nil
	}

	var events []Event
	a, b := touches[0], touches[1]
	for _, id := range []int{a, b} {
		ps := r.pointers[id]
		if ps.phase == phaseDragging {
			events = append(events, Event{
				Kind:     DragEnd,
				Pointer:  id,
				Device:   ps.device,
				Pos:      ps.lastPos,
				Mods:     ps.mods,
				Canceled: true,
				Time:     now,
			})
		}
		ps.phase = phaseConsumed
	}
	pa, pb := r.pointers[a], r.pointers[b]
	r.scaling = &scaleState{
		a:           a,
		b:           b,
		startSpread: pa.lastPos.DistanceTo(pb.lastPos),
		lastFocal:   pa.lastPos.Lerp(pb.lastPos, 0.5),
	}
	return events
}

// PointerMove advances a pointer. Crossing the drag threshold converts a
// press (or an already-fired long press) into a drag; during a pinch it
// produces scale and pan updates instead.
func (r *Recognizer) PointerMove(pointer int, pos geom.Vector2, now time.Time) []Event {
	ps, ok := r.pointers[pointer]
	if !ok {
		return nil
	}
	ps.prevPos, ps.prevTime = ps.lastPos, ps.lastTime
	ps.lastPos, ps.lastTime = pos, now

	if s := r.scaling; s != nil && (pointer == s.a || pointer == s.b) {
		return r.scaleMove(now)
	}

	switch ps.phase {
	case phasePressed, phaseLongPressed:
		if pos.DistanceTo(ps.downPos) < r.cfg.DragThreshold {
			return nil
		}
		ps.phase = phaseDragging
		return []Event{
			{
				Kind:    DragStart,
				Pointer: pointer,
				Device:  ps.device,
				Pos:     ps.downPos,
				Mods:    ps.mods,
				First:   true,
				Time:    now,
			},
			{
				Kind:    DragUpdate,
				Pointer: pointer,
				Device:  ps.device,
				Pos:     pos,
				Delta:   pos.Sub(ps.downPos),
				Mods:    ps.mods,
				Time:    now,
			},
		}
	case phaseDragging:
		return []Event{{
			Kind:    DragUpdate,
			Pointer: pointer,
			Device:  ps.device,
			Pos:     pos,
			Delta:   pos.Sub(ps.prevPos),
			Mods:    ps.mods,
			Time:    now,
		}}
	}
	return nil
}

func (r *Recognizer) scaleMove(now time.Time) []Event {
	s := r.scaling
	pa, pb := r.pointers[s.a], r.pointers[s.b]
	if pa == nil || pb == nil {
		return nil
	}
	focal := pa.lastPos.Lerp(pb.lastPos, 0.5)
	spread := pa.lastPos.DistanceTo(pb.lastPos)
	ratio := float32(1)
	if s.startSpread > 0 {
		ratio = spread / s.startSpread
	}

	events := []Event{{
		Kind:  ScaleUpdate,
		Scale: ratio,
		Focal: focal,
		First: !s.emitted,
		Time:  now,
	}}
	if delta := focal.Sub(s.lastFocal); delta != (geom.Vector2{}) {
		events = append(events, Event{
			Kind:  PanUpdate,
			Pos:   focal,
			Delta: delta,
			Time:  now,
		})
	}
	s.emitted = true
	s.lastFocal = focal
	return events
}

// PointerUp releases a pointer. A sub-threshold release becomes a tap,
// merging with a pending tap from the same device kind into a double tap
// when it qualifies; the single tap is otherwise withheld until the
// double-tap window expires. Tap and double-tap events carry the modifier
// state at release; drag events keep the modifiers of their press.
func (r *Recognizer) PointerUp(pointer int, pos geom.Vector2, mods Modifiers, now time.Time) []Event {
	ps, ok := r.pointers[pointer]
	if !ok {
		return nil
	}
	ps.prevPos, ps.prevTime = ps.lastPos, ps.lastTime
	ps.lastPos, ps.lastTime = pos, now
	delete(r.pointers, pointer)

	if s := r.scaling; s != nil && (pointer == s.a || pointer == s.b) {
		r.endScaling()
		return nil
	}

	switch ps.phase {
	case phasePressed:
		if p := r.pending; p != nil &&
			p.device == ps.device &&
			now.Sub(p.at) <= r.cfg.DoubleTapWindow &&
			pos.DistanceTo(p.pos) <= r.cfg.DoubleTapTolerance {
			r.pending = nil
			return []Event{{
				Kind:    DoubleTap,
				Pointer: pointer,
				Device:  ps.device,
				Pos:     pos,
				Mods:    mods,
				Time:    now,
			}}
		}
		if p := r.pending; p != nil {
			// Unrelated tap: flush the old one now, withhold the new one.
			flushed := Event{
				Kind:    Tap,
				Pointer: p.pointer,
				Device:  p.device,
				Pos:     p.pos,
				Mods:    p.mods,
				Time:    now,
			}
			r.pending = &pendingTap{pointer: pointer, device: ps.device, pos: pos, mods: mods, at: now}
			return []Event{flushed}
		}
		r.pending = &pendingTap{pointer: pointer, device: ps.device, pos: pos, mods: mods, at: now}
		return nil
	case phaseDragging:
		return []Event{{
			Kind:     DragEnd,
			Pointer:  pointer,
			Device:   ps.device,
			Pos:      pos,
			Velocity: ps.velocity(),
			Mods:     ps.mods,
			Time:     now,
		}}
	}
	// A released long press or consumed pointer produces nothing.
	return nil
}

// PointerCancel aborts a pointer without a release, as when the host loses
// focus or the platform steals the sequence.
func (r *Recognizer) PointerCancel(pointer int, now time.Time) []Event {
	ps, ok := r.pointers[pointer]
	if !ok {
		return nil
	}
	delete(r.pointers, pointer)

	if s := r.scaling; s != nil && (pointer == s.a || pointer == s.b) {
		r.endScaling()
		return nil
	}
	if ps.phase == phaseDragging {
		return []Event{{
			Kind:     DragEnd,
			Pointer:  pointer,
			Device:   ps.device,
			Pos:      ps.lastPos,
			Mods:     ps.mods,
			Canceled: true,
			Time:     now,
		}}
	}
	return nil
}

// endScaling tears down the pinch. Surviving touch pointers stay consumed
// so lifting one finger does not turn the other into a drag.
func (r *Recognizer) endScaling() {
	r.scaling = nil
	for _, ps := range r.pointers {
		if ps.device == Touch {
			ps.phase = phaseConsumed
		}
	}
}

// Hover reports button-less pointer movement.
func (r *Recognizer) Hover(pos geom.Vector2, mods Modifiers, now time.Time) []Event {
	return []Event{{
		Kind: Hover,
		Pos:  pos,
		Mods: mods,
		Time: now,
	}}
}

// Tick fires time-based transitions: it flushes a withheld tap once the
// double-tap window has expired, and fires long presses whose deadline has
// passed with the pointer still within the drag threshold.
func (r *Recognizer) Tick(now time.Time) []Event {
	var events []Event

	if p := r.pending; p != nil && now.Sub(p.at) > r.cfg.DoubleTapWindow {
		r.pending = nil
		events = append(events, Event{
			Kind:    Tap,
			Pointer: p.pointer,
			Device:  p.device,
			Pos:     p.pos,
			Mods:    p.mods,
			Time:    now,
		})
	}

	var due []int
	for id, ps := range r.pointers {
		if ps.phase == phasePressed && now.Sub(ps.downTime) >= r.cfg.LongPressDelay {
			due = append(due, id)
		}
	}
	sort.Ints(due)
	for _, id := range due {
		ps := r.pointers[id]
		ps.phase = phaseLongPressed
		events = append(events, Event{
			Kind:    LongPress,
			Pointer: id,
			Device:  ps.device,
			Pos:     ps.downPos,
			Mods:    ps.mods,
			Time:    now,
		})
	}
	return events
}

// Reset drops all pointer state without emitting anything. Used on focus
// loss together with the host's own interaction teardown.
func (r *Recognizer) Reset() {
	r.pointers = make(map[int]*pointerState)
	r.pending = nil
	r.scaling = nil
}

// touchPointers returns the active touch pointer ids in ascending order.
func (r *Recognizer) touchPointers() []int {
	var ids []int
	for id, ps := range r.pointers {
		if ps.device == Touch && ps.phase != phaseConsumed {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
