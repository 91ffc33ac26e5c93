// SPDX-License-Identifier: MIT
package network

import (
	"context"
	"errors"
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/bfs"
	"github.com/katalvlaran/netroute/core"
)

// ErrBadWeight indicates a negative or NaN link weight.
var ErrBadWeight = errors.New("network: bad link weight")

// Edge is an ordered pair of vertex ids.
type Edge struct {
	Source string
	Target string
}

// Graph is a weighted road graph over canonical coordinates.
// A Graph is owned by whoever built it; concurrent reads are safe.
type Graph struct {
	keyer  Keyer
	core   *core.Graph
	points map[string]orb.Point
}

// NewGraph returns an empty Graph whose vertex ids come from keyer.
func NewGraph(keyer Keyer) *Graph {
	return &Graph{
		keyer: keyer,
		core: core.NewGraph(
			core.WithDirected(true),
			core.WithWeighted(),
			core.WithMultiEdges(),
			core.WithLoops(),
		),
		points: make(map[string]orb.Point),
	}
}

// AddLink inserts the directed edges a→b and b→a, both weighted w.
// A link whose endpoints share one vertex id adds the vertex but no edges.
//
// Errors:
//   - ErrBadWeight if w is negative or NaN.
func (g *Graph) AddLink(a, b orb.Point, w float64) error {
	if w < 0 || math.IsNaN(w) {
		return ErrBadWeight
	}
	ida, idb := g.addPoint(a), g.addPoint(b)
	if ida == idb {
		return g.core.AddVertex(ida)
	}
	if _, err := g.core.AddEdge(ida, idb, w); err != nil {
		return err
	}
	if _, err := g.core.AddEdge(idb, ida, w); err != nil {
		return err
	}

	return nil
}

// addPoint records the first coordinate seen for p's vertex id.
func (g *Graph) addPoint(p orb.Point) string {
	id := g.keyer.Key(p)
	if _, ok := g.points[id]; !ok {
		g.points[id] = p
	}

	return id
}

// Core exposes the underlying core.Graph for search algorithms.
func (g *Graph) Core() *core.Graph { return g.core }

// Keyer returns the canonicaliser that produced the vertex ids.
func (g *Graph) Keyer() Keyer { return g.keyer }

// VertexID returns the canonical vertex id of p, whether or not it is present.
func (g *Graph) VertexID(p orb.Point) string { return g.keyer.Key(p) }

// HasVertex reports whether p's vertex is in the graph.
func (g *Graph) HasVertex(p orb.Point) bool { return g.core.HasVertex(g.keyer.Key(p)) }

// Point returns the coordinate stored for vertex id.
func (g *Graph) Point(id string) (orb.Point, bool) {
	p, ok := g.points[id]

	return p, ok
}

// Vertices returns all vertex ids sorted ascending.
func (g *Graph) Vertices() []string { return g.core.Vertices() }

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.core.VertexCount() }

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return g.core.EdgeCount() }

// Cost returns the cheapest edge weight from a to b.
func (g *Graph) Cost(a, b orb.Point) (float64, bool) {
	return g.cost(g.keyer.Key(a), g.keyer.Key(b))
}

func (g *Graph) cost(from, to string) (float64, bool) {
	best, found := math.Inf(1), false
	for _, e := range g.core.EdgesBetween(from, to) {
		if e.Weight < best {
			best, found = e.Weight, true
		}
	}

	return best, found
}

// EdgeCosts returns the edge-cost map: the cheapest weight of every
// directed vertex pair present in the graph.
func (g *Graph) EdgeCosts() map[Edge]float64 {
	out := make(map[Edge]float64, g.core.EdgeCount())
	for _, e := range g.core.Edges() {
		k := Edge{Source: e.From, Target: e.To}
		if w, ok := out[k]; !ok || e.Weight < w {
			out[k] = e.Weight
		}
	}

	return out
}

// Components labels each vertex with its connected component index and
// returns the number of components.
func (g *Graph) Components(ctx context.Context) (map[string]int, int, error) {
	return bfs.Components(ctx, g.core)
}
