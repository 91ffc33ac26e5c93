// Package dijkstra provides an implementation of Dijkstra's shortest-path
// algorithm on weighted core.Graph values with non-negative float64 edge costs.
//
// Overview:
//
//   - Dijkstra computes the minimum-cost path from a single source vertex to
//     reachable vertices in O((V + E) log V) time.
//   - It relies on a min-heap (priority queue) to always expand the next-closest vertex.
//   - Supports optional path reconstruction, a Target for early termination,
//     distance caps, and "impassable" edge thresholds.
//
// Early termination:
//
//   - WithTarget(id) stops the main loop as soon as id is popped from the heap.
//     The check sits directly in the pop step; there are no callbacks.
//
// API reference:
//
//	func Dijkstra(g *core.Graph, opts ...Option) (dist map[string]float64, prev map[string]string, err error)
//	func PathTo(dist map[string]float64, prev map[string]string, source, target string) ([]string, error)
//
// Thread safety:
//
//   - Dijkstra only reads g; it is not safe if the same *core.Graph is modified concurrently.
package dijkstra
