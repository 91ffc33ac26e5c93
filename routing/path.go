// SPDX-License-Identifier: MIT
package routing

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/bfs"
	"github.com/katalvlaran/netroute/dijkstra"
	"github.com/katalvlaran/netroute/geom"
)

// Route is a found path.
type Route struct {
	// Path is the ordered coordinate sequence from source to destination.
	Path orb.LineString

	// Cost is the summed edge weight along the path.
	Cost float64

	// Vertices are the graph vertex ids visited, source first.
	Vertices []string

	// Condensed reports whether the path came from a condensed graph.
	Condensed bool
}

// FindPath runs Dijkstra from snap.Source and stops as soon as
// snap.Destination is settled.
//
// Path assembly:
//   - Condensed snapshots expand every edge into the shortest stored line
//     joining its endpoints, oriented in travel direction.
//   - Non-condensed snapshots append each edge's endpoints.
//   - Consecutive duplicate coordinates are removed.
//
// A hop-count walk runs first, so endpoints on different islands fail
// without a Dijkstra run.
//
// Errors:
//   - ErrUnreachable if either vertex is missing, the endpoints lie in
//     different components, the destination was not settled, or the cost
//     is not positive.
//   - Wrapped dijkstra errors for malformed graphs.
func FindPath(snap *Snapshot) (*Route, error) {
	if snap == nil || snap.Graph == nil {
		return nil, fmt.Errorf("%w: empty snapshot", ErrUnreachable)
	}
	g := snap.Graph
	src, dst := g.VertexID(snap.Source), g.VertexID(snap.Destination)
	if !g.Core().HasVertex(src) || !g.Core().HasVertex(dst) {
		return nil, fmt.Errorf("%w: split vertex not in graph", ErrUnreachable)
	}
	_, err := bfs.Reachable(context.Background(), g.Core(), src, dst)
	if errors.Is(err, bfs.ErrNotReached) {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("routing: reachability: %w", err)
	}

	dist, prev, err := dijkstra.Dijkstra(g.Core(),
		dijkstra.Source(src),
		dijkstra.WithTarget(dst),
		dijkstra.WithReturnPath(),
	)
	if err != nil {
		return nil, fmt.Errorf("routing: search: %w", err)
	}
	cost := dist[dst]
	if math.IsInf(cost, 1) || cost <= 0 {
		return nil, fmt.Errorf("%w: cost %g", ErrUnreachable, cost)
	}
	ids, err := dijkstra.PathTo(dist, prev, src, dst)
	if errors.Is(err, dijkstra.ErrNoPath) {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if err != nil {
		return nil, err
	}

	path, err := assemble(snap, ids)
	if err != nil {
		return nil, err
	}

	return &Route{Path: path, Cost: cost, Vertices: ids, Condensed: snap.Condensed}, nil
}

// assemble turns a vertex sequence into coordinates.
func assemble(snap *Snapshot, ids []string) (orb.LineString, error) {
	g := snap.Graph
	out := make(orb.LineString, 0, 2*len(ids))
	for i := 1; i < len(ids); i++ {
		a, okA := g.Point(ids[i-1])
		b, okB := g.Point(ids[i])
		if !okA || !okB {
			return nil, fmt.Errorf("routing: unknown vertex on path %q→%q", ids[i-1], ids[i])
		}
		if snap.Condensed {
			if ls, ok := snap.Lines.LineBetween(a, b); ok {
				out = append(out, ls...)
				continue
			}
		}
		out = append(out, a, b)
	}

	return geom.Dedupe(out), nil
}
