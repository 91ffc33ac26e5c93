// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs) and adjacency helpers.
// Determinism:
//   - Neighbors() sorts by edge sequence.
//   - NeighborIDs() returns unique IDs sorted lex asc.
// Concurrency:
//   - Read operations hold muVert and muEdgeAdj read locks.
//   - Helpers are called only under the muEdgeAdj write lock by mutating code.

package core

import "sort"

// Other returns the endpoint of e opposite to id.
// For a self-loop, or when id is not an endpoint, e.To is returned.
func (e *Edge) Other(id string) string {
	if e.To == id && e.From != id {
		return e.From
	}

	return e.To
}

// Neighbors returns all edges leaving the given vertex id.
//
// Neighborhood policy:
//   - Directed edges: include only edges with e.From == id (outgoing edges).
//   - Undirected edges: include incident edges; self-loops appear once.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrVertexNotFound: if the vertex does not exist.
//
// Complexity:
//   - Time O(d log d), Space O(d), where d is the number of incident edges.
//
// Notes:
//   - Returned *Edge values are live catalog entries; treat them as read-only.
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	// Same lock order as mutators (muVert -> muEdgeAdj).
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}

	var out []*Edge
	var eid string
	var e *Edge
	for _, edgeSet := range g.adjacencyList[id] {
		for eid = range edgeSet {
			e = g.edges[eid]
			if e.IsNil() {
				continue
			}
			if e.Directed && e.From != id {
				continue
			}
			out = append(out, e)
		}
	}
	sortEdges(out)

	return out, nil
}

// NeighborIDs returns the unique set of vertex IDs adjacent to id, sorted lexicographically ascending.
//
// Errors:
//   - Same as Neighbors.
//
// Complexity:
//   - Time O(d log d), Space O(d).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	edges, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(edges))
	out := make([]string, 0, len(edges))
	var e *Edge
	var nbr string
	for _, e = range edges {
		nbr = e.Other(id)
		if _, ok := seen[nbr]; ok {
			continue
		}
		seen[nbr] = struct{}{}
		out = append(out, nbr)
	}
	sort.Strings(out)

	return out, nil
}

// ensureAdjacency guarantees that adjacencyList[from] and adjacencyList[from][to] are initialized.
// Must be called ONLY under muEdgeAdj write lock.
func ensureAdjacency(g *Graph, from, to string) {
	if g.adjacencyList[from] == nil {
		g.adjacencyList[from] = make(map[string]map[string]struct{})
	}
	if g.adjacencyList[from][to] == nil {
		g.adjacencyList[from][to] = make(map[string]struct{})
	}
}

// removeAdjacency removes e.ID from adjacency buckets for the edge endpoints,
// including the mirrored bucket of an undirected non-loop edge.
// Must be called ONLY under muEdgeAdj write lock.
func removeAdjacency(g *Graph, e *Edge) {
	if m := g.adjacencyList[e.From][e.To]; m != nil {
		delete(m, e.ID)
		if len(m) == 0 {
			delete(g.adjacencyList[e.From], e.To)
		}
	}
	if !e.Directed && e.From != e.To {
		if m := g.adjacencyList[e.To][e.From]; m != nil {
			delete(m, e.ID)
			if len(m) == 0 {
				delete(g.adjacencyList[e.To], e.From)
			}
		}
	}
}

// cleanupAdjacency prunes empty nested adjacency buckets after bulk removals.
// Top-level buckets are kept so that existing vertices remain addressable.
// Must be called ONLY under muEdgeAdj write lock.
func cleanupAdjacency(g *Graph) {
	for _, toMap := range g.adjacencyList {
		for v, edgeSet := range toMap {
			if len(edgeSet) == 0 {
				delete(toMap, v)
			}
		}
	}
}
