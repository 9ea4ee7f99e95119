// Package dragsession manages live node-drag edits. A session tracks one
// pointer dragging one node: updates apply provisional positions through the
// document, ending commits a single undo-recordable move, and cancelling
// restores the pre-drag position. Until the pointer travels past the
// threshold nothing is moved at all, so an accidental wiggle on release
// still counts as a tap.
package dragsession

import (
	"errors"
	"fmt"

	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/scene"
)

// ErrReentrantDrag is returned when Begin is called for a pointer that
// already has an open session.
var ErrReentrantDrag = errors.New("drag session already active for pointer")

// Committer is the subset of document behavior a session commits through.
// scene.MemDocument satisfies it; hosts with their own documents provide
// the explicit before-position so undo restores the pre-drag center.
type Committer interface {
	CommitMove(id string, before, after geom.Vector2)
}

// Session is one in-flight drag. The threshold is captured at Begin so a
// zoom change mid-drag cannot retroactively reclassify it.
type Session struct {
	Pointer   int
	NodeID    string
	origin    geom.Vector2 // pointer position at Begin, canvas space
	preCenter geom.Vector2 // node center before any provisional update
	last      geom.Vector2
	threshold float32
	crossed   bool
}

// Crossed reports whether the drag has moved past the threshold.
func (s *Session) Crossed() bool {
	return s.crossed
}

// Manager owns the open sessions for one canvas, at most one per pointer.
type Manager struct {
	doc       scene.Document
	threshold float32
	sessions  map[int]*Session
}

// NewManager creates a Manager editing through doc. threshold is in canvas
// units; callers rescale it when the zoom changes.
func NewManager(doc scene.Document, threshold float32) *Manager {
	return &Manager{
		doc:       doc,
		threshold: threshold,
		sessions:  make(map[int]*Session),
	}
}

// SetThreshold updates the movement threshold for sessions begun afterwards.
func (m *Manager) SetThreshold(threshold float32) {
	m.threshold = threshold
}

// Active returns the open session for a pointer, if any.
func (m *Manager) Active(pointer int) (*Session, bool) {
	s, ok := m.sessions[pointer]
	return s, ok
}

// ActiveCount returns the number of open sessions.
func (m *Manager) ActiveCount() int {
	return len(m.sessions)
}

// Begin opens a session for pointer dragging nodeID from origin (canvas
// space). A second Begin for the same pointer without an intervening End or
// Cancel fails with ErrReentrantDrag and leaves the open session untouched.
func (m *Manager) Begin(pointer int, nodeID string, origin geom.Vector2) error {
	if _, open := m.sessions[pointer]; open {
		return fmt.Errorf("begin drag of %s: %w", nodeID, ErrReentrantDrag)
	}
	center, ok := nodeCenter(m.doc, nodeID)
	if !ok {
		return fmt.Errorf("begin drag: node %s not found", nodeID)
	}
	m.sessions[pointer] = &Session{
		Pointer:   pointer,
		NodeID:    nodeID,
		origin:    origin,
		preCenter: center,
		last:      origin,
		threshold: m.threshold,
	}
	return nil
}

// Update moves the session's node provisionally. Before the pointer has
// traveled threshold distance from the origin nothing happens; once crossed
// the node tracks the pointer for good.
func (m *Manager) Update(pointer int, pos geom.Vector2) {
	s, ok := m.sessions[pointer]
	if !ok {
		return
	}
	s.last = pos
	if !s.crossed {
		if pos.DistanceTo(s.origin) < s.threshold {
			return
		}
		s.crossed = true
	}
	m.doc.SetNodePosition(s.NodeID, s.preCenter.Add(pos.Sub(s.origin)))
}

// End closes a session. A drag that crossed the threshold commits one
// undo-recordable move to the final position; one that never crossed is a
// no-op so the release reads as a tap.
func (m *Manager) End(pointer int, pos geom.Vector2) {
	s, ok := m.sessions[pointer]
	if !ok {
		return
	}
	delete(m.sessions, pointer)
	if !s.crossed {
		return
	}
	final := s.preCenter.Add(pos.Sub(s.origin))
	if c, ok := m.doc.(Committer); ok {
		c.CommitMove(s.NodeID, s.preCenter, final)
		return
	}
	m.doc.CommitNodePosition(s.NodeID, final)
}

// Cancel aborts a session, restoring the node's pre-drag position without
// recording anything.
func (m *Manager) Cancel(pointer int) {
	s, ok := m.sessions[pointer]
	if !ok {
		return
	}
	delete(m.sessions, pointer)
	if s.crossed {
		m.doc.SetNodePosition(s.NodeID, s.preCenter)
	}
}

// CancelAll aborts every open session, restoring positions. Used on focus
// loss.
func (m *Manager) CancelAll() {
	for pointer := range m.sessions {
		m.Cancel(pointer)
	}
}

func nodeCenter(doc scene.Document, id string) (geom.Vector2, bool) {
	for _, n := range doc.Nodes() {
		if n.ID == id {
			return n.Bounds.Center(), true
		}
	}
	return geom.Vector2{}, false
}
