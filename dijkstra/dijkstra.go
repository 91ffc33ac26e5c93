// Package dijkstra implements Dijkstra's shortest-path algorithm on weighted graphs.
//
// Dijkstra computes the minimum-cost path from a single source vertex to all
// other reachable vertices in a graph with non-negative edge weights.
// It processes vertices in order of increasing distance using a min-heap priority queue,
// relaxing edges and updating distances accordingly.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
//
// Notes on implementation choices:
//
//   - We perform an upfront scan of all edges (O(E)) to detect negative weights and fail fast.
//   - We treat any edge with weight ≥ InfEdgeThreshold as an impassable "wall".
//   - We stop exploring once the minimum distance in the heap exceeds MaxDistance.
//   - We stop as soon as Target is popped: distances are settled in non-decreasing
//     order, so no shorter path to Target can appear afterwards.
//   - We use a "lazy" decrease-key strategy: pushing duplicates into the heap and ignoring stale entries.
package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/katalvlaran/netroute/core"
)

// Dijkstra computes shortest distances from the source vertex (Options.Source)
// to the vertices of the weighted graph g.
//
// Returns:
//
//   - dist: map from vertex ID to minimum distance (+Inf if unreachable or not settled
//     before an early exit).
//   - prev: optional predecessor map if ReturnPath=true (nil otherwise).
//     prev[v] == u means the shortest path to v goes through u.
//     For unreachable v, prev[v] == "".
//   - err:  error if inputs are invalid or if a negative weight is detected.
//
// Preconditions and validation (in order):
//  1. Source string must be non-empty (ErrEmptySource).
//  2. g must be non-nil (ErrNilGraph).
//  3. g must be weighted (ErrUnweightedGraph).
//  4. g must contain Source, and Target when set (ErrVertexNotFound).
//  5. No edge in g can have negative weight (ErrNegativeWeight).
func Dijkstra(g *core.Graph, opts ...Option) (map[string]float64, map[string]string, error) {
	// 1) Build Options
	cfg := DefaultOptions("")
	var opt Option
	for _, opt = range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if cfg.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.Weighted() {
		return nil, nil, ErrUnweightedGraph
	}
	if !g.HasVertex(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: source %q", ErrVertexNotFound, cfg.Source)
	}
	if cfg.Target != "" && !g.HasVertex(cfg.Target) {
		return nil, nil, fmt.Errorf("%w: target %q", ErrVertexNotFound, cfg.Target)
	}

	// 3) Pre-scan all edges to detect negative weights. Fail fast with ErrNegativeWeight.
	var e *core.Edge
	for _, e = range g.Edges() {
		if e.Weight < 0 || math.IsNaN(e.Weight) {
			return nil, nil, fmt.Errorf("%w: edge %s→%s weight=%g", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	// 4) Prepare data structures for the algorithm.
	V := g.VertexCount()
	var prev map[string]string
	if cfg.ReturnPath {
		prev = make(map[string]string, V)
	}
	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[string]float64, V),
		prev:    prev,
		visited: make(map[string]bool, V),
		pq:      make(nodePQ, 0, V),
	}

	// 5) Initialize algorithm state and run main loop.
	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	return r.dist, r.prev, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph        // The input graph; read-only within Dijkstra.
	options Options            // Configuration options (Source, thresholds, etc.).
	dist    map[string]float64 // Maps vertex ID → current best distance from Source.
	prev    map[string]string  // Maps vertex ID → predecessor on the shortest path.
	visited map[string]bool    // Tracks if a vertex's distance is finalized.
	pq      nodePQ             // Min-heap of *nodeItem for lazy priority queue.
	seq     uint64             // Push counter used to break distance ties deterministically.
}

// init sets up initial distances, predecessors, visited flags, and pushes Source=0 into the heap.
func (r *runner) init() {
	for _, v := range r.g.Vertices() {
		r.dist[v] = math.Inf(1)
		r.visited[v] = false
		if r.prev != nil {
			r.prev[v] = ""
		}
	}
	r.dist[r.options.Source] = 0

	heap.Init(&r.pq)
	r.push(r.options.Source, 0)
}

// push adds a heap entry stamped with the next sequence number.
func (r *runner) push(id string, d float64) {
	r.seq++
	heap.Push(&r.pq, &nodeItem{id: id, dist: d, seq: r.seq})
}

// process is the core loop of Dijkstra's algorithm. It repeatedly extracts the vertex
// with the minimum distance from the source and relaxes its outgoing edges.
//
// Loop termination conditions:
//
//   - The heap becomes empty (all reachable vertices processed).
//   - The minimum distance in the heap exceeds MaxDistance.
//   - The popped vertex is Target.
func (r *runner) process() error {
	cfg := r.options
	var u string
	var d float64
	for r.pq.Len() > 0 {
		// 1) Pop the smallest-distance item from the heap.
		item := heap.Pop(&r.pq).(*nodeItem)
		u = item.id
		d = item.dist

		// 2) Skip stale heap entries.
		if r.visited[u] {
			continue
		}

		// 3) Beyond MaxDistance nothing else can be settled.
		if d > cfg.MaxDistance {
			break
		}

		// 4) Mark u as visited. Its shortest distance d is now final.
		r.visited[u] = true

		// 5) Early exit: the target's distance is final.
		if cfg.Target != "" && u == cfg.Target {
			break
		}

		// 6) Relax all outgoing edges from u.
		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each edge leaving vertex u and attempts to improve distances to its neighbors.
// Assumes r.dist[u] is finalized before calling relax(u).
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}

	var e *core.Edge
	var v string
	var newDist float64
	for _, e = range neighbors {
		// Undirected edges are listed from both endpoints; walk to the far side.
		v = e.Other(u)
		if r.visited[v] {
			continue
		}

		if e.Weight >= r.options.InfEdgeThreshold {
			continue
		}

		newDist = r.dist[u] + e.Weight
		if newDist > r.options.MaxDistance {
			continue
		}
		// Strict improvement only; equal distances keep the first predecessor found.
		if newDist >= r.dist[v] {
			continue
		}

		r.dist[v] = newDist
		if r.prev != nil {
			r.prev[v] = u
		}
		r.push(v, newDist)
	}

	return nil
}

// nodeItem represents a vertex and its current distance from the source.
type nodeItem struct {
	id   string  // vertex ID
	dist float64 // distance from source
	seq  uint64  // insertion order, breaks ties
}

// nodePQ is a min-heap (priority queue) of *nodeItem, ordered by nodeItem.dist ascending
// and then by insertion order.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority; ties go to the earlier push.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].seq < pq[j].seq
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
