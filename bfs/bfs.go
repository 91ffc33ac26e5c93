package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/netroute/core"
)

// ErrNeighbors is returned when fetching neighbors from the graph fails.
var ErrNeighbors = errors.New("bfs: neighbor iteration error")

type queueItem struct {
	id    string
	depth int
}

// walker holds the mutable state of one or more walks over the same graph.
type walker struct {
	graph *core.Graph
	opts  Options
	queue []queueItem
	head  int
	res   *Result
	done  bool
}

// BFS walks g from startID.
//
// Errors: ErrGraphNil, ErrStartVertexNotFound, ErrOptionViolation,
// ErrNeighbors, or the context error on cancellation.
func BFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	w := newWalker(g, o, g.VertexCount())
	w.enqueue(startID, 0)

	return w.res, w.loop()
}

// Reachable returns the hop count from 'from' to 'to', or ErrNotReached
// when they lie in different components. The walk stops at 'to'.
func Reachable(ctx context.Context, g *core.Graph, from, to string) (int, error) {
	if g != nil && !g.HasVertex(to) {
		return 0, fmt.Errorf("%w: %q", ErrNotReached, to)
	}
	res, err := BFS(g, from, WithContext(ctx), WithTarget(to))
	if err != nil {
		return 0, err
	}
	d, ok := res.Depth[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q from %q", ErrNotReached, to, from)
	}

	return d, nil
}

// Components labels every vertex of g with the index of its connected
// component. Components are numbered from 0 in the order their smallest
// vertex ID appears.
//
// On a graph whose links are stored as directed pairs the result equals
// the undirected components.
func Components(ctx context.Context, g *core.Graph) (map[string]int, int, error) {
	if g == nil {
		return nil, 0, ErrGraphNil
	}
	o := DefaultOptions()
	WithContext(ctx)(&o)

	vertices := g.Vertices()
	labels := make(map[string]int, len(vertices))
	w := newWalker(g, o, len(vertices))
	count := 0
	for _, v := range vertices {
		if _, seen := w.res.Depth[v]; seen {
			continue
		}
		start := len(w.res.Order)
		w.enqueue(v, 0)
		if err := w.loop(); err != nil {
			return nil, 0, err
		}
		for _, id := range w.res.Order[start:] {
			labels[id] = count
		}
		count++
	}

	return labels, count, nil
}

func newWalker(g *core.Graph, o Options, n int) *walker {
	return &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order: make([]string, 0, n),
			Depth: make(map[string]int, n),
		},
	}
}

// enqueue records id as discovered at depth d.
func (w *walker) enqueue(id string, d int) {
	w.res.Depth[id] = d
	w.res.Order = append(w.res.Order, id)
	w.queue = append(w.queue, queueItem{id: id, depth: d})
	if w.opts.Target != "" && id == w.opts.Target {
		w.done = true
	}
}

// loop drains the queue, stopping early once the target is discovered.
func (w *walker) loop() error {
	for !w.done && w.head < len(w.queue) {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[w.head]
		w.head++
		if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
			continue
		}
		neighbors, err := w.graph.NeighborIDs(item.id)
		if err != nil {
			return fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, item.id, err)
		}
		for _, nbr := range neighbors {
			if _, seen := w.res.Depth[nbr]; seen {
				continue
			}
			w.enqueue(nbr, item.depth+1)
			if w.done {
				return nil
			}
		}
	}

	return nil
}
