// Package core provides a thread-safe in-memory Graph implementation with a
// minimal, composable API surface. The routing packages build their road
// networks on top of it.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Weighted vs. unweighted edges (WithWeighted); weights are float64 costs
//   - Parallel edges / multi-graphs (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - Constant-time edge operations via nested maps:
//     adjacencyList[from][to][edgeID] = struct{}{}
//   - Collision-free atomic Edge.ID generation ("e1", "e2", …)
//   - Separate sync.RWMutex for vertices (muVert) and edges+adjacency (muEdgeAdj)
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error         // O(1)
//	HasVertex(id string) bool          // O(1)
//	RemoveVertex(id string) error      // O(E)
//
//	// Edge lifecycle
//	AddEdge(from,to string, weight float64) (edgeID string, err error) // O(1)
//	RemoveEdge(edgeID string) error    // O(1)
//	HasEdge(from,to string) bool       // O(1)
//	EdgesBetween(from,to string) []*Edge
//
//	// Query
//	Neighbors(id string) ([]*Edge, error)    // O(d·log d)
//	NeighborIDs(id string) ([]string, error) // O(d·log d), unique, sorted
//	Vertices() []string                      // O(V·log V)
//	Edges() []*Edge                          // O(E·log E)
//	Stats() *GraphStats                      // O(V+E)
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrBadWeight           – negative/NaN weight, or non-zero weight on unweighted graph
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
package core
