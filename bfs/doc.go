// Package bfs walks a core.Graph breadth first, counting hops and ignoring
// edge weights.
//
// The routing code uses it for two things:
//
//   - Components labels the connected islands of a road network, so
//     network summaries can report how fragmented a layer is.
//   - Reachable tells whether two split vertices share an island, so a
//     route request between islands fails before any Dijkstra run.
//
// Neighbors come from core.Graph.NeighborIDs, which is sorted, so the
// discovery order and the component numbering are deterministic.
//
// Time is O(V + E) and memory O(V).
package bfs
