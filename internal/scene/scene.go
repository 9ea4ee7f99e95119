// Package scene defines the read view of a mindmap graph (nodes, edges,
// snapshots) and the Document collaborator the engine edits through. The
// engine never mutates graph state directly; it goes through a Document so
// hosts can plug in their own storage.
package scene

import "github.com/mindweave/mindweave/internal/geom"

// Node is the read view of one mindmap node.
type Node struct {
	ID       string
	Label    string
	Bounds   geom.Rect
	Z        int
	Visible  bool
	Selected bool
	Hovered  bool
}

// Edge is the read view of one edge. Path holds the polyline the edge is
// drawn along, in canvas coordinates, endpoints included.
type Edge struct {
	ID      string
	Source  string
	Target  string
	Path    []geom.Vector2
	Visible bool
}

// Snapshot is an immutable copy of the graph taken at one frame. Hit testing
// and layout computation operate on snapshots so a mid-frame edit cannot
// shift what was tested.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

// ContentBounds returns the union of all visible node bounds. The zero Rect
// is returned when nothing is visible; callers treat that as degenerate.
func (s Snapshot) ContentBounds() geom.Rect {
	var bounds geom.Rect
	first := true
	for _, n := range s.Nodes {
		if !n.Visible {
			continue
		}
		if first {
			bounds = n.Bounds
			first = false
			continue
		}
		bounds = bounds.Union(n.Bounds)
	}
	return bounds
}

// NodeByID returns the node with the given ID, if present.
func (s Snapshot) NodeByID(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Document is the collaborator the engine edits a graph through. All methods
// are called from the single thread that owns the canvas.
type Document interface {
	// Nodes returns the current nodes in ascending insertion order. The
	// returned slice is owned by the caller.
	Nodes() []Node

	// Edges returns the current edges. The returned slice is owned by the
	// caller.
	Edges() []Edge

	// SetNodePosition moves a node's center to a provisional position. It is
	// called repeatedly during a drag and must not be undo-recorded.
	SetNodePosition(id string, center geom.Vector2)

	// CommitNodePosition finalizes a node's position as a single
	// undo-recordable edit.
	CommitNodePosition(id string, center geom.Vector2)

	// SelectNode marks a node selected. When additive is false the previous
	// selection is cleared first.
	SelectNode(id string, additive bool)

	// ClearSelection deselects everything.
	ClearSelection()

	// SetHovered marks at most one node hovered; an empty id clears hover.
	SetHovered(id string)
}

// Capture takes a snapshot of a document.
func Capture(d Document) Snapshot {
	return Snapshot{Nodes: d.Nodes(), Edges: d.Edges()}
}
