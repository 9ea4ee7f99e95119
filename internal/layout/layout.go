// Package layout provides the built-in layout computers. They are
// deliberately simple reference implementations of the collaborator
// contract: read a snapshot and a configuration, return new centers, never
// touch the live document.
package layout

import (
	"context"
	"errors"
	"sort"

	"github.com/chewxy/math32"

	"github.com/mindweave/mindweave/internal/geom"
	"github.com/mindweave/mindweave/internal/layoutparams"
	"github.com/mindweave/mindweave/internal/scene"
)

// Built-in layout ids.
const (
	RadialID = "radial"
	GridID   = "grid"
)

// RegisterBuiltins adds the built-in layouts to a registry.
func RegisterBuiltins(r *layoutparams.Registry) {
	r.Register(RadialID, radialDefaults, Radial{})
	r.Register(GridID, gridDefaults, Grid{})
}

func radialDefaults() *layoutparams.Configuration {
	return layoutparams.NewConfiguration(
		layoutparams.RangeParam("radius", "Radius", 50, 500, 200, 10),
		layoutparams.RangeParam("start_angle", "Start angle", 0, 360, 0, 15),
		layoutparams.BoolParam("clockwise", "Clockwise", true),
	)
}

func gridDefaults() *layoutparams.Configuration {
	return layoutparams.NewConfiguration(
		layoutparams.RangeParam("spacing", "Spacing", 10, 200, 60, 5),
		layoutparams.RangeParam("columns", "Columns", 1, 20, 4, 1),
		layoutparams.ChoiceParam("order", "Order", []string{"insertion", "label"}, "insertion"),
	)
}

// Radial arranges visible nodes on a circle around their current centroid.
// The first node goes at start_angle; the rest follow at even steps.
type Radial struct{}

// Compute implements layoutparams.Computer.
func (Radial) Compute(ctx context.Context, cfg *layoutparams.Configuration, snap scene.Snapshot) (map[string]geom.Vector2, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodes := visibleNodes(snap)
	if len(nodes) == 0 {
		return nil, errors.New("nothing to lay out")
	}

	var centroid geom.Vector2
	for _, n := range nodes {
		centroid = centroid.Add(n.Bounds.Center())
	}
	centroid = centroid.DivScalar(float32(len(nodes)))

	radius := float32(cfg.Float("radius"))
	start := float32(cfg.Float("start_angle")) * math32.Pi / 180
	step := 2 * math32.Pi / float32(len(nodes))
	if cfg.Bool("clockwise") {
		step = -step
	}

	positions := make(map[string]geom.Vector2, len(nodes))
	for i, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		angle := start + step*float32(i)
		positions[n.ID] = centroid.Add(geom.V2(
			radius*math32.Cos(angle),
			radius*math32.Sin(angle),
		))
	}
	return positions, nil
}

// Grid arranges visible nodes in rows, anchored at the current top-left of
// the content bounds.
type Grid struct{}

// Compute implements layoutparams.Computer.
func (Grid) Compute(ctx context.Context, cfg *layoutparams.Configuration, snap scene.Snapshot) (map[string]geom.Vector2, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	nodes := visibleNodes(snap)
	if len(nodes) == 0 {
		return nil, errors.New("nothing to lay out")
	}
	if cfg.String("order") == "label" {
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].Label < nodes[j].Label
		})
	}

	spacing := float32(cfg.Float("spacing"))
	columns := int(cfg.Float("columns"))
	if columns < 1 {
		columns = 1
	}

	origin := snap.ContentBounds().Min
	positions := make(map[string]geom.Vector2, len(nodes))
	for i, n := range nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		col := i % columns
		row := i / columns
		positions[n.ID] = origin.Add(geom.V2(
			float32(col)*spacing,
			float32(row)*spacing,
		))
	}
	return positions, nil
}

func visibleNodes(snap scene.Snapshot) []scene.Node {
	out := make([]scene.Node, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		if n.Visible {
			out = append(out, n)
		}
	}
	return out
}
