// SPDX-License-Identifier: MIT
package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/layer"
	"github.com/katalvlaran/netroute/network"
	"github.com/katalvlaran/netroute/snap"
)

// System is one routing session: a network layer, a source and a
// destination click, and the tuning knobs. Methods are serialised by a
// mutex, so a System runs one analysis at a time. Use one System per
// concurrent analysis; they may share a layer and an index.
type System struct {
	mu     sync.Mutex
	opts   Options
	keyer  network.Keyer
	layer  layer.FeatureSource
	index  *network.Index
	source *endpoint
	dest   *endpoint
}

// endpoint is one resolved user click.
type endpoint struct {
	click orb.Point
	snap  *snap.IntersectionPackage
	split Split
}

// NewSystem returns a System configured by opts.
//
// Errors:
//   - ErrConfiguration for invalid knobs.
func NewSystem(opts ...Option) (*System, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	k, err := network.NewKeyer(o.Precision)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return &System{opts: o, keyer: k}, nil
}

// SetAnalysisLayer sets the network layer and indexes its lines.
// Previously resolved clicks are discarded.
func (s *System) SetAnalysisLayer(src layer.FeatureSource) (err error) {
	if src == nil {
		return fmt.Errorf("%w: nil analysis layer", ErrConfiguration)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.recoverInto("set layer", &err)

	idx, err := network.NewIndex(src, s.keyer)
	if err != nil {
		return s.fail("set layer", err)
	}
	s.layer, s.index, s.source, s.dest = src, idx, nil, nil
	s.opts.Logger.Debug("analysis layer indexed", "lines", idx.Len())

	return nil
}

// SetAnalysisNetwork sets a layer together with an index already built
// from it, so several Systems can share one index.
func (s *System) SetAnalysisNetwork(src layer.FeatureSource, idx *network.Index) error {
	if src == nil || idx == nil {
		return fmt.Errorf("%w: nil analysis layer or index", ErrConfiguration)
	}
	if idx.Keyer().Precision() != s.keyer.Precision() {
		return fmt.Errorf("%w: index precision %d, want %d", ErrConfiguration, idx.Keyer().Precision(), s.keyer.Precision())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layer, s.index, s.source, s.dest = src, idx, nil, nil

	return nil
}

// SetUserSource snaps p onto the network and splits the nearest line.
func (s *System) SetUserSource(p orb.Point) error {
	return s.setEndpoint("source", p, &s.source)
}

// SetUserDestination snaps p onto the network and splits the nearest line.
func (s *System) SetUserDestination(p orb.Point) error {
	return s.setEndpoint("destination", p, &s.dest)
}

func (s *System) setEndpoint(role string, p orb.Point, slot **endpoint) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := "set " + role
	defer s.recoverInto(op, &err)

	if s.layer == nil {
		return fmt.Errorf("%w: analysis layer not set", ErrConfiguration)
	}
	pkg, err := snap.Resolve(s.layer, p,
		snap.WithMaxTolerance(float64(s.opts.MaxTolerance)),
		snap.WithGrowValue(s.opts.GrowValue),
		snap.WithMaxIterations(s.opts.MaxIterations),
		snap.WithLogger(s.opts.Logger),
	)
	if err != nil {
		*slot = nil
		if KindOf(err) == KindNoCandidate {
			s.opts.Logger.Info("no network line near click", "role", role, "x", p[0], "y", p[1])
			return err
		}
		return s.fail(op, err)
	}
	split, err := NewSplit(pkg.ClosestLine, pkg.IntersectionPoint)
	if err != nil {
		*slot = nil
		return s.fail(op, err)
	}
	*slot = &endpoint{click: p, snap: pkg, split: split}
	s.opts.Logger.Debug("click snapped", "role", role,
		"x", pkg.IntersectionPoint[0], "y", pkg.IntersectionPoint[1],
		"distance", pkg.Distance, "iterations", pkg.Iterations)

	return nil
}

// UserSource returns the source click, if set.
func (s *System) UserSource() (orb.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return orb.Point{}, false
	}

	return s.source.click, true
}

// UserDestination returns the destination click, if set.
func (s *System) UserDestination() (orb.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dest == nil {
		return orb.Point{}, false
	}

	return s.dest.click, true
}

// SourceSnap returns the snap result of the source click, if set.
func (s *System) SourceSnap() (*snap.IntersectionPackage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.source == nil {
		return nil, false
	}

	return s.source.snap, true
}

// DestinationSnap returns the snap result of the destination click, if set.
func (s *System) DestinationSnap() (*snap.IntersectionPackage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dest == nil {
		return nil, false
	}

	return s.dest.snap, true
}

// MaxTolerance returns the snap tolerance.
func (s *System) MaxTolerance() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.opts.MaxTolerance
}

// SetMaxTolerance changes the snap tolerance for later clicks.
func (s *System) SetMaxTolerance(t int) error {
	if t <= 0 {
		return fmt.Errorf("%w: max tolerance %d", ErrConfiguration, t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.MaxTolerance = t

	return nil
}

// GrowValue returns the initial snap envelope half-width.
func (s *System) GrowValue() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.opts.GrowValue
}

// SetGrowValue changes the initial snap envelope half-width for later clicks.
func (s *System) SetGrowValue(g float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.opts
	o.GrowValue = g
	if err := o.validate(); err != nil {
		return err
	}
	s.opts.GrowValue = g

	return nil
}

// UseCondensedGraph reports the default graph mode.
func (s *System) UseCondensedGraph() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.opts.Condensed
}

// SetUseCondensedGraph sets the default graph mode.
func (s *System) SetUseCondensedGraph(c bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Condensed = c
}

// PerformShortestPathAnalysis rebuilds the graph around the current splits
// and searches it. useCondensed selects the condensed (BETA) graph.
//
// Errors:
//   - ErrConfiguration if the layer, source or destination is not set.
//   - ErrUnreachable if no path exists.
//   - *Failure (matching ErrUnexpected) for anything else, including
//     recovered panics.
func (s *System) PerformShortestPathAnalysis(useCondensed bool) (route *Route, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.recoverInto("analysis", &err)

	switch {
	case s.layer == nil || s.index == nil:
		return nil, fmt.Errorf("%w: analysis layer not set", ErrConfiguration)
	case s.source == nil:
		return nil, fmt.Errorf("%w: user source not set", ErrConfiguration)
	case s.dest == nil:
		return nil, fmt.Errorf("%w: user destination not set", ErrConfiguration)
	}

	snapshot, err := Rebuild(s.index, s.source.split, s.dest.split, useCondensed)
	if err != nil {
		return nil, s.fail("rebuild", err)
	}
	s.opts.Logger.Debug("graph rebuilt",
		"condensed", useCondensed,
		"vertices", snapshot.Graph.VertexCount(),
		"edges", snapshot.Graph.EdgeCount())

	route, err = FindPath(snapshot)
	switch KindOf(err) {
	case KindNone:
	case KindUnreachable:
		s.opts.Logger.Info("destination unreachable", "condensed", useCondensed)
		return nil, err
	default:
		return nil, s.fail("search", err)
	}
	s.opts.Logger.Info("route found",
		"condensed", useCondensed, "cost", route.Cost, "points", len(route.Path))

	return route, nil
}

// Analyze runs PerformShortestPathAnalysis in the default graph mode.
func (s *System) Analyze() (*Route, error) {
	return s.PerformShortestPathAnalysis(s.UseCondensedGraph())
}

// NetworkStats summarises the analysis layer's coarse graph.
func (s *System) NetworkStats(ctx context.Context) (network.Stats, error) {
	s.mu.Lock()
	idx := s.index
	s.mu.Unlock()
	if idx == nil {
		return network.Stats{}, fmt.Errorf("%w: analysis layer not set", ErrConfiguration)
	}

	return network.Summarize(ctx, idx)
}

// fail logs an unexpected error and wraps it in a *Failure.
func (s *System) fail(op string, cause error) error {
	s.opts.Logger.Error("routing failure", slog.String("op", op), slog.Any("err", cause))

	return &Failure{Op: op, Cause: cause}
}

// recoverInto converts a panic into a *Failure stored in *err.
// It must be deferred directly.
func (s *System) recoverInto(op string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = s.fail(op, fmt.Errorf("panic: %v", r))
}
