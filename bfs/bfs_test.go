package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/netroute/bfs"
	"github.com/katalvlaran/netroute/core"
)

// roadGraph builds the two-way weighted graph shape used by the network package.
func roadGraph(t *testing.T, links ...[2]string) *core.Graph {
	t.Helper()
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
	for _, l := range links {
		if _, err := g.AddEdge(l[0], l[1], 1.5); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
		if _, err := g.AddEdge(l[1], l[0], 1.5); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
	}

	return g
}

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	if _, err := bfs.BFS(nil, "A"); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	g := core.NewGraph()
	if _, err := bfs.BFS(g, "missing"); !errors.Is(err, bfs.ErrStartVertexNotFound) {
		t.Errorf("missing start: want ErrStartVertexNotFound, got %v", err)
	}
	_ = g.AddVertex("A")
	if _, err := bfs.BFS(g, "A", bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_WeightedRoadGraph walks a weighted graph, counting hops only.
func TestBFS_WeightedRoadGraph(t *testing.T) {
	g := roadGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "D"})
	res, err := bfs.BFS(g, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A", "B", "D", "C"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	if res.Depth["C"] != 2 {
		t.Errorf("Depth[C] = %d; want 2", res.Depth["C"])
	}
}

// TestBFS_MaxDepthAndTarget checks depth limiting and the early stop.
func TestBFS_MaxDepthAndTarget(t *testing.T) {
	g := roadGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"A", "D"})

	res, err := bfs.BFS(g, "A", bfs.WithMaxDepth(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := res.Depth["C"]; ok {
		t.Errorf("C should be beyond MaxDepth=1")
	}

	res, err = bfs.BFS(g, "A", bfs.WithTarget("B"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
}

// TestBFS_Cancel checks that a cancelled context aborts the walk.
func TestBFS_Cancel(t *testing.T) {
	g := roadGraph(t, [2]string{"A", "B"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := bfs.BFS(g, "A", bfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// TestReachable reports hop counts within a component and ErrNotReached across islands.
func TestReachable(t *testing.T) {
	g := roadGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"X", "Y"})
	ctx := context.Background()

	hops, err := bfs.Reachable(ctx, g, "A", "C")
	if err != nil || hops != 2 {
		t.Errorf("Reachable(A, C) = %d, %v; want 2, nil", hops, err)
	}
	if hops, err = bfs.Reachable(ctx, g, "A", "A"); err != nil || hops != 0 {
		t.Errorf("Reachable(A, A) = %d, %v; want 0, nil", hops, err)
	}
	if _, err = bfs.Reachable(ctx, g, "A", "Y"); !errors.Is(err, bfs.ErrNotReached) {
		t.Errorf("Reachable(A, Y): want ErrNotReached, got %v", err)
	}
	if _, err = bfs.Reachable(ctx, g, "A", "missing"); !errors.Is(err, bfs.ErrNotReached) {
		t.Errorf("Reachable(A, missing): want ErrNotReached, got %v", err)
	}
	if _, err = bfs.Reachable(ctx, g, "missing", "A"); !errors.Is(err, bfs.ErrStartVertexNotFound) {
		t.Errorf("Reachable(missing, A): want ErrStartVertexNotFound, got %v", err)
	}
}

// TestComponents labels two islands and an isolated vertex.
func TestComponents(t *testing.T) {
	g := roadGraph(t, [2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"X", "Y"})
	_ = g.AddVertex("M")

	labels, count, err := bfs.Components(context.Background(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d; want 3", count)
	}
	if labels["A"] != labels["C"] || labels["A"] == labels["X"] {
		t.Errorf("unexpected labels: %v", labels)
	}
	if labels["A"] != 0 || labels["M"] != 1 || labels["X"] != 2 {
		t.Errorf("labels not ordered by smallest vertex ID: %v", labels)
	}

	if _, _, err = bfs.Components(context.Background(), nil); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
}
