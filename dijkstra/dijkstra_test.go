// Package dijkstra_test contains unit tests for the Dijkstra implementation.
// These tests validate correct behavior under various configurations, including
// basic functionality, directed edge pairs, MaxDistance, InfEdgeThreshold,
// early termination on a target, and predecessor-chain reconstruction.
package dijkstra_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/netroute/core"
	"github.com/katalvlaran/netroute/dijkstra"
)

// twoWay adds both directions of a road segment, the way network.Graph does.
func twoWay(t *testing.T, g *core.Graph, a, b string, w float64) {
	t.Helper()
	if _, err := g.AddEdge(a, b, w); err != nil {
		t.Fatalf("AddEdge(%s,%s): %v", a, b, err)
	}
	if _, err := g.AddEdge(b, a, w); err != nil {
		t.Fatalf("AddEdge(%s,%s): %v", b, a, err)
	}
}

func newRoadGraph() *core.Graph {
	return core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
}

// ------------------------------------------------------------------------
// 1. Validation Tests: Ensure errors are returned for invalid inputs.
// ------------------------------------------------------------------------

func TestDijkstra_EmptySource(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _, err := dijkstra.Dijkstra(g)
	if err != dijkstra.ErrEmptySource {
		t.Fatalf("Expected ErrEmptySource, got %v", err)
	}
}

func TestDijkstra_NilGraphWithSource(t *testing.T) {
	_, _, err := dijkstra.Dijkstra(nil, dijkstra.Source("X"))
	if err != dijkstra.ErrNilGraph {
		t.Fatalf("Expected ErrNilGraph when graph is nil, got %v", err)
	}
}

func TestDijkstra_UnweightedGraph(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddVertex("A")
	_, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	if err != dijkstra.ErrUnweightedGraph {
		t.Fatalf("Expected ErrUnweightedGraph, got %v", err)
	}
}

func TestDijkstra_SourceOrTargetNotFound(t *testing.T) {
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 1)
	if _, _, err := dijkstra.Dijkstra(g, dijkstra.Source("X")); !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Fatalf("Expected ErrVertexNotFound for source, got %v", err)
	}
	if _, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithTarget("Z")); !errors.Is(err, dijkstra.ErrVertexNotFound) {
		t.Fatalf("Expected ErrVertexNotFound for target, got %v", err)
	}
}

func TestDijkstra_OptionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Expected panic for negative MaxDistance")
		}
	}()
	opts := dijkstra.DefaultOptions("A")
	dijkstra.WithMaxDistance(-1)(&opts)
}

// ------------------------------------------------------------------------
// 2. Basic Functionality
// ------------------------------------------------------------------------

func TestDijkstra_Diamond(t *testing.T) {
	// A-B=1, A-C=4, B-D=1, C-D=1: shortest A→D = 2 via B.
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 1)
	twoWay(t, g, "A", "C", 4)
	twoWay(t, g, "B", "D", 1)
	twoWay(t, g, "C", "D", 1)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithReturnPath())
	if err != nil {
		t.Fatal(err)
	}
	if dist["D"] != 2 {
		t.Errorf("dist[D] = %g; want 2", dist["D"])
	}
	if dist["C"] != 3 {
		t.Errorf("dist[C] = %g; want 3 (via D)", dist["C"])
	}
	path, err := dijkstra.PathTo(dist, prev, "A", "D")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"A", "B", "D"}
	if len(path) != len(want) {
		t.Fatalf("path = %v; want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path = %v; want %v", path, want)
		}
	}
}

func TestDijkstra_UndirectedEdgesWalkFarSide(t *testing.T) {
	// Mirrored undirected edges are stored once; B must still reach A.
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("A", "B", 1.5)
	_, _ = g.AddEdge("B", "C", 2)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("C"))
	if err != nil {
		t.Fatal(err)
	}
	if dist["A"] != 3.5 {
		t.Errorf("dist[A] = %g; want 3.5", dist["A"])
	}
}

func TestDijkstra_DirectedPairsOnly(t *testing.T) {
	// One-way edge A→B: B cannot reach A.
	g := newRoadGraph()
	_, _ = g.AddEdge("A", "B", 1)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("B"))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(dist["A"], 1) {
		t.Errorf("dist[A] = %g; want +Inf", dist["A"])
	}
}

func TestDijkstra_ParallelEdgesPickCheapest(t *testing.T) {
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 5)
	twoWay(t, g, "A", "B", 2)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"))
	if err != nil {
		t.Fatal(err)
	}
	if dist["B"] != 2 {
		t.Errorf("dist[B] = %g; want 2", dist["B"])
	}
}

// ------------------------------------------------------------------------
// 3. Early termination, MaxDistance, InfEdgeThreshold
// ------------------------------------------------------------------------

func TestDijkstra_TargetStopsEarly(t *testing.T) {
	// Chain A-B-C-D, each 1. Stopping at B leaves D unsettled.
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 1)
	twoWay(t, g, "B", "C", 1)
	twoWay(t, g, "C", "D", 1)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithTarget("B"), dijkstra.WithReturnPath())
	if err != nil {
		t.Fatal(err)
	}
	if dist["B"] != 1 {
		t.Errorf("dist[B] = %g; want 1", dist["B"])
	}
	if !math.IsInf(dist["D"], 1) {
		t.Errorf("dist[D] = %g; want +Inf after early exit", dist["D"])
	}
	if prev["B"] != "A" {
		t.Errorf("prev[B] = %q; want A", prev["B"])
	}
}

func TestDijkstra_MaxDistanceLimits(t *testing.T) {
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 1)
	twoWay(t, g, "B", "C", 1)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithMaxDistance(1))
	if err != nil {
		t.Fatal(err)
	}
	if dist["B"] != 1 || !math.IsInf(dist["C"], 1) {
		t.Errorf("unexpected distances: %v", dist)
	}
}

func TestDijkstra_InfThresholdStopsHeavyEdge(t *testing.T) {
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 2)
	twoWay(t, g, "B", "C", 4)
	twoWay(t, g, "A", "C", 10)

	dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithInfEdgeThreshold(5))
	if err != nil {
		t.Fatal(err)
	}
	if dist["C"] != 6 {
		t.Errorf("dist[C] = %g; want 6", dist["C"])
	}
}

// ------------------------------------------------------------------------
// 4. PathTo
// ------------------------------------------------------------------------

func TestPathTo_Unreachable(t *testing.T) {
	g := newRoadGraph()
	twoWay(t, g, "A", "B", 1)
	twoWay(t, g, "X", "Y", 1)

	dist, prev, err := dijkstra.Dijkstra(g, dijkstra.Source("A"), dijkstra.WithReturnPath())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dijkstra.PathTo(dist, prev, "A", "Y"); !errors.Is(err, dijkstra.ErrNoPath) {
		t.Fatalf("Expected ErrNoPath, got %v", err)
	}
	if _, err := dijkstra.PathTo(dist, nil, "A", "B"); !errors.Is(err, dijkstra.ErrNoPath) {
		t.Fatalf("Expected ErrNoPath without prev map, got %v", err)
	}
	path, err := dijkstra.PathTo(dist, prev, "A", "A")
	if err != nil || len(path) != 1 || path[0] != "A" {
		t.Fatalf("PathTo(A,A) = %v, %v; want [A]", path, err)
	}
}
