// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: Read-only summaries over a Graph.
// Policy:
//   - No algorithms or hidden state here.
//   - Concurrency model and invariants are defined in types.go/doc.go.

package core

// GraphStats is a read-only snapshot of configuration flags and catalog sizes.
type GraphStats struct {
	DirectedDefault bool // default orientation of new edges
	Weighted        bool // non-zero weights permitted
	AllowsMulti     bool // parallel edges permitted
	AllowsLoops     bool // self-loops permitted

	VertexCount         int // number of vertices
	EdgeCount           int // number of edges in the catalog
	DirectedEdgeCount   int // edges with Directed == true
	UndirectedEdgeCount int // edges with Directed == false
	TotalWeight         float64
}

// Stats produces a deterministic, read-only snapshot of configuration flags and catalog sizes,
// including a classification of edges by their Directed flag and the summed edge weight.
//
// Implementation:
//   - Stage 1: Acquire muVert.RLock, snapshot flags and vertex count, then release.
//   - Stage 2: Acquire muEdgeAdj.RLock, scan the edge catalog once, then release.
//
// Complexity:
//   - Time O(V+E), Space O(1) plus the returned struct.
func (g *Graph) Stats() *GraphStats {
	g.muVert.RLock()
	stats := GraphStats{
		DirectedDefault: g.directed,
		Weighted:        g.weighted,
		AllowsMulti:     g.allowMulti,
		AllowsLoops:     g.allowLoops,
		VertexCount:     len(g.vertices),
	}
	g.muVert.RUnlock()

	g.muEdgeAdj.RLock()
	stats.EdgeCount = len(g.edges)
	var e *Edge
	for _, e = range g.edges {
		if e.Directed {
			stats.DirectedEdgeCount++
		} else {
			stats.UndirectedEdgeCount++
		}
		stats.TotalWeight += e.Weight
	}
	g.muEdgeAdj.RUnlock()

	return &stats
}
