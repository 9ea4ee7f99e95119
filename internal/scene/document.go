package scene

import (
	"github.com/google/uuid"

	"github.com/mindweave/mindweave/internal/geom"
)

// nodeRecord is the mutable backing state for one node. Center and size are
// stored rather than bounds so drags only touch the center.
type nodeRecord struct {
	id       string
	label    string
	center   geom.Vector2
	size     geom.Vector2
	z        int
	visible  bool
	selected bool
	hovered  bool
}

type edgeRecord struct {
	id      string
	source  string
	target  string
	visible bool
}

// positionEdit is one undo-recordable move.
type positionEdit struct {
	nodeID string
	before geom.Vector2
	after  geom.Vector2
}

// MemDocument is the in-memory Document used by the demo application and
// tests. Nodes keep insertion order; selection raises a node to the top of
// the z-order. Committed moves are undoable.
type MemDocument struct {
	nodes []*nodeRecord
	edges []*edgeRecord
	nextZ int

	undo []positionEdit
	redo []positionEdit
}

// NewMemDocument creates an empty document.
func NewMemDocument() *MemDocument {
	return &MemDocument{nextZ: 1}
}

// AddNode inserts a node centered at center and returns its generated ID.
func (d *MemDocument) AddNode(label string, center, size geom.Vector2) string {
	id := uuid.New().String()
	d.nodes = append(d.nodes, &nodeRecord{
		id:      id,
		label:   label,
		center:  center,
		size:    size,
		z:       d.nextZ,
		visible: true,
	})
	d.nextZ++
	return id
}

// AddEdge connects two nodes and returns the edge ID. Unknown endpoints are
// accepted; the edge simply renders nowhere until both nodes exist.
func (d *MemDocument) AddEdge(source, target string) string {
	id := uuid.New().String()
	d.edges = append(d.edges, &edgeRecord{
		id:      id,
		source:  source,
		target:  target,
		visible: true,
	})
	return id
}

// RemoveNode deletes a node and every edge touching it.
func (d *MemDocument) RemoveNode(id string) {
	for i, n := range d.nodes {
		if n.id == id {
			d.nodes = append(d.nodes[:i], d.nodes[i+1:]...)
			break
		}
	}
	kept := d.edges[:0]
	for _, e := range d.edges {
		if e.source != id && e.target != id {
			kept = append(kept, e)
		}
	}
	d.edges = kept
}

// Nodes implements Document.
func (d *MemDocument) Nodes() []Node {
	out := make([]Node, 0, len(d.nodes))
	for _, n := range d.nodes {
		out = append(out, Node{
			ID:       n.id,
			Label:    n.label,
			Bounds:   geom.RectAt(n.center, n.size),
			Z:        n.z,
			Visible:  n.visible,
			Selected: n.selected,
			Hovered:  n.hovered,
		})
	}
	return out
}

// Edges implements Document. Edge paths are straight segments between the
// current node centers, recomputed on every read so they track drags.
func (d *MemDocument) Edges() []Edge {
	out := make([]Edge, 0, len(d.edges))
	for _, e := range d.edges {
		src := d.find(e.source)
		dst := d.find(e.target)
		if src == nil || dst == nil {
			continue
		}
		out = append(out, Edge{
			ID:      e.id,
			Source:  e.source,
			Target:  e.target,
			Path:    []geom.Vector2{src.center, dst.center},
			Visible: e.visible && src.visible && dst.visible,
		})
	}
	return out
}

// SetNodePosition implements Document. Provisional; not undo-recorded.
func (d *MemDocument) SetNodePosition(id string, center geom.Vector2) {
	if n := d.find(id); n != nil {
		n.center = center
	}
}

// CommitNodePosition implements Document. The edit records the position the
// node held before the surrounding drag's provisional updates only if the
// caller passes it via SetNodePosition first; here the previous center is
// whatever the node currently holds, so callers commit the final position
// after restoring or keeping the provisional one.
func (d *MemDocument) CommitNodePosition(id string, center geom.Vector2) {
	n := d.find(id)
	if n == nil {
		return
	}
	d.undo = append(d.undo, positionEdit{nodeID: id, before: n.center, after: center})
	d.redo = nil
	n.center = center
}

// CommitMove records a move from an explicit before position. Drag sessions
// use this so undo restores the pre-drag center, not the last provisional one.
func (d *MemDocument) CommitMove(id string, before, after geom.Vector2) {
	n := d.find(id)
	if n == nil {
		return
	}
	d.undo = append(d.undo, positionEdit{nodeID: id, before: before, after: after})
	d.redo = nil
	n.center = after
}

// Undo reverts the most recent committed move. It reports whether anything
// was undone.
func (d *MemDocument) Undo() bool {
	if len(d.undo) == 0 {
		return false
	}
	edit := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	if n := d.find(edit.nodeID); n != nil {
		n.center = edit.before
	}
	d.redo = append(d.redo, edit)
	return true
}

// Redo reapplies the most recently undone move.
func (d *MemDocument) Redo() bool {
	if len(d.redo) == 0 {
		return false
	}
	edit := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	if n := d.find(edit.nodeID); n != nil {
		n.center = edit.after
	}
	d.undo = append(d.undo, edit)
	return true
}

// SelectNode implements Document. Selecting raises the node above everything
// else so it also wins subsequent hit tests.
func (d *MemDocument) SelectNode(id string, additive bool) {
	if !additive {
		for _, n := range d.nodes {
			n.selected = false
		}
	}
	if n := d.find(id); n != nil {
		n.selected = true
		n.z = d.nextZ
		d.nextZ++
	}
}

// ClearSelection implements Document.
func (d *MemDocument) ClearSelection() {
	for _, n := range d.nodes {
		n.selected = false
	}
}

// SetHovered implements Document.
func (d *MemDocument) SetHovered(id string) {
	for _, n := range d.nodes {
		n.hovered = n.id == id
	}
}

// SelectedIDs returns the IDs of all selected nodes in insertion order.
func (d *MemDocument) SelectedIDs() []string {
	var out []string
	for _, n := range d.nodes {
		if n.selected {
			out = append(out, n.id)
		}
	}
	return out
}

func (d *MemDocument) find(id string) *nodeRecord {
	for _, n := range d.nodes {
		if n.id == id {
			return n
		}
	}
	return nil
}
