package dragsession

import (
	"errors"
	"testing"

	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/scene"
)

func newDocWithNode(t *testing.T) (*scene.MemDocument, string) {
	t.Helper()
	doc := scene.NewMemDocument()
	id := doc.AddNode("n", geom.V2(100, 100), geom.V2(20, 10))
	return doc, id
}

func center(t *testing.T, doc *scene.MemDocument, id string) geom.Vector2 {
	t.Helper()
	n, ok := scene.Capture(doc).NodeByID(id)
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n.Bounds.Center()
}

func TestDragMovesNodeAfterThreshold(t *testing.T) {
	doc, id := newDocWithNode(t)
	m := NewManager(doc, 4)

	if err := m.Begin(0, id, geom.V2(100, 100)); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// Sub-threshold movement leaves the node in place.
	m.Update(0, geom.V2(102, 100))
	if got := center(t, doc, id); got != geom.V2(100, 100) {
		t.Errorf("center = %v, want unmoved before threshold", got)
	}

	m.Update(0, geom.V2(110, 105))
	if got := center(t, doc, id); got != geom.V2(110, 105) {
		t.Errorf("center = %v, want tracking pointer (110,105)", got)
	}
}

func TestEndCommitsOneUndoableMove(t *testing.T) {
	doc, id := newDocWithNode(t)
	m := NewManager(doc, 4)

	m.Begin(0, id, geom.V2(100, 100))
	m.Update(0, geom.V2(120, 100))
	m.Update(0, geom.V2(140, 110))
	m.End(0, geom.V2(140, 110))

	if got := center(t, doc, id); got != geom.V2(140, 110) {
		t.Errorf("committed center = %v, want (140,110)", got)
	}

	if !doc.Undo() {
		t.Fatal("commit should be undoable")
	}
	if got := center(t, doc, id); got != geom.V2(100, 100) {
		t.Errorf("after undo center = %v, want pre-drag (100,100)", got)
	}
	if doc.Undo() {
		t.Error("whole drag should be one edit, not one per update")
	}
}

func TestSubThresholdEndIsNoOp(t *testing.T) {
	doc, id := newDocWithNode(t)
	m := NewManager(doc, 4)

	m.Begin(0, id, geom.V2(100, 100))
	m.Update(0, geom.V2(101, 101))
	m.End(0, geom.V2(101, 101))

	if got := center(t, doc, id); got != geom.V2(100, 100) {
		t.Errorf("center = %v, want untouched", got)
	}
	if doc.Undo() {
		t.Error("no-op end must not record an edit")
	}
}

func TestReentrantBegin(t *testing.T) {
	doc, id := newDocWithNode(t)
	m := NewManager(doc, 4)

	if err := m.Begin(0, id, geom.V2(100, 100)); err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	err := m.Begin(0, id, geom.V2(100, 100))
	if !errors.Is(err, ErrReentrantDrag) {
		t.Fatalf("second Begin error = %v, want ErrReentrantDrag", err)
	}

	// The original session survives.
	m.Update(0, geom.V2(120, 100))
	if got := center(t, doc, id); got != geom.V2(120, 100) {
		t.Errorf("center = %v, original session should still track", got)
	}
}

func TestBeginUnknownNode(t *testing.T) {
	doc, _ := newDocWithNode(t)
	m := NewManager(doc, 4)

	if err := m.Begin(0, "missing", geom.V2(0, 0)); err == nil {
		t.Fatal("Begin with unknown node should fail")
	}
	if m.ActiveCount() != 0 {
		t.Error("failed Begin left a session open")
	}
}

func TestCancelRestoresPosition(t *testing.T) {
	doc, id := newDocWithNode(t)
	m := NewManager(doc, 4)

	m.Begin(0, id, geom.V2(100, 100))
	m.Update(0, geom.V2(150, 130))
	m.Cancel(0)

	if got := center(t, doc, id); got != geom.V2(100, 100) {
		t.Errorf("center = %v, want restored (100,100)", got)
	}
	if doc.Undo() {
		t.Error("cancel must not record an edit")
	}
}

func TestIndependentPointerSessions(t *testing.T) {
	doc := scene.NewMemDocument()
	a := doc.AddNode("a", geom.V2(0, 0), geom.V2(10, 10))
	b := doc.AddNode("b", geom.V2(100, 0), geom.V2(10, 10))
	m := NewManager(doc, 4)

	if err := m.Begin(1, a, geom.V2(0, 0)); err != nil {
		t.Fatalf("Begin a: %v", err)
	}
	if err := m.Begin(2, b, geom.V2(100, 0)); err != nil {
		t.Fatalf("Begin b: %v", err)
	}

	m.Update(1, geom.V2(20, 0))
	m.Update(2, geom.V2(100, 30))

	if got := center(t, doc, a); got != geom.V2(20, 0) {
		t.Errorf("a center = %v, want (20,0)", got)
	}
	if got := center(t, doc, b); got != geom.V2(100, 30) {
		t.Errorf("b center = %v, want (100,30)", got)
	}

	m.CancelAll()
	if got := center(t, doc, a); got != geom.V2(0, 0) {
		t.Errorf("a center after CancelAll = %v, want (0,0)", got)
	}
	if m.ActiveCount() != 0 {
		t.Errorf("sessions after CancelAll = %d, want 0", m.ActiveCount())
	}
}
