// Package hittest resolves canvas points to scene elements. Nodes win by
// z-order; edges by proximity within a tolerance band. Missing everything is
// an ordinary result, not an error.
package hittest

import (
	"github.com/chewxy/math32"

	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/scene"
)

// NodeAt returns the topmost visible node whose bounds contain p. When two
// nodes share a Z value the one earlier in snapshot order wins, keeping the
// result deterministic.
func NodeAt(snap scene.Snapshot, p geom.Vector2) (string, bool) {
	var (
		bestID string
		bestZ  int
		found  bool
	)
	for _, n := range snap.Nodes {
		if !n.Visible || !n.Bounds.Contains(p) {
			continue
		}
		if !found || n.Z > bestZ {
			bestID = n.ID
			bestZ = n.Z
			found = true
		}
	}
	return bestID, found
}

// EdgeAt returns the visible edge whose polyline passes closest to p, if any
// edge comes within tolerance. The closest edge wins; on an exact distance
// tie the one earlier in snapshot order wins.
func EdgeAt(snap scene.Snapshot, p geom.Vector2, tolerance float32) (string, bool) {
	var (
		bestID   string
		bestDist = math32.Inf(1)
	)
	for _, e := range snap.Edges {
		if !e.Visible {
			continue
		}
		if d := geom.PolylineDistance(p, e.Path); d < bestDist {
			bestID = e.ID
			bestDist = d
		}
	}
	if bestDist > tolerance {
		return "", false
	}
	return bestID, true
}
