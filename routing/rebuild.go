// SPDX-License-Identifier: MIT
package routing

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/geom"
	"github.com/katalvlaran/netroute/network"
)

// lengthTolerance is the length difference under which a coarse edge is
// taken to be the split line.
const lengthTolerance = 1e-9

// Snapshot is one rebuilt routing graph. It is never mutated after Rebuild
// returns, so it may be searched concurrently.
type Snapshot struct {
	// Graph is the rebuilt graph.
	Graph *network.Graph

	// Lines is the line index plus the four split lines.
	Lines *network.Index

	// Source and Destination are the split vertices.
	Source      orb.Point
	Destination orb.Point

	// SourceSplit and DestinationSplit are the splits the graph was built
	// around. DestinationSplit differs from the input when the destination
	// was re-split on a source half.
	SourceSplit      Split
	DestinationSplit Split

	// Condensed reports the mode the graph was built in.
	Condensed bool
}

// Rebuild builds a fresh routing graph around the source and destination
// splits. It is a pure function of its inputs.
//
// Non-condensed mode: every line of idx plus the four split lines adds a
// link between each consecutive coordinate pair, weighted by distance. When
// both splits cut the same line, the destination is re-split on the source
// half holding it so that the two split vertices are joined directly.
//
// Condensed mode (BETA, approximate): every coarse edge is kept, except that
// an edge equal to the source or destination line (same endpoints and
// length) is replaced by first→split and split→last links weighted by the
// part lengths. Paths found on this graph are not guaranteed shortest.
//
// Errors:
//   - ErrInvalidSplit if a split is degenerate.
func Rebuild(idx *network.Index, source, destination Split, condensed bool) (*Snapshot, error) {
	k := idx.Keyer()
	if err := source.validate(k); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := destination.validate(k); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	var (
		g   *network.Graph
		err error
	)
	if condensed {
		g, err = buildCondensed(idx, source, destination)
	} else {
		if destination, err = resplitOnSource(k, source, destination); err != nil {
			return nil, err
		}
		g, err = buildFull(idx, source, destination)
	}
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Graph:            g,
		Lines:            idx.WithLines(source.Parts[0], source.Parts[1], destination.Parts[0], destination.Parts[1]),
		Source:           source.Point(),
		Destination:      destination.Point(),
		SourceSplit:      source,
		DestinationSplit: destination,
		Condensed:        condensed,
	}, nil
}

// resplitOnSource re-cuts the destination on the source half holding it
// when both splits share one line. Ties go to the first half.
func resplitOnSource(k network.Keyer, source, destination Split) (Split, error) {
	if !sameLine(k, source.Original, destination.Original) {
		return destination, nil
	}
	p := destination.Point()
	half := source.Parts[0]
	p0, err0 := geom.NearestPoint(source.Parts[0], p)
	p1, err1 := geom.NearestPoint(source.Parts[1], p)
	if err0 != nil || err1 != nil {
		return Split{}, fmt.Errorf("%w: source parts", ErrInvalidSplit)
	}
	if p1.Distance < p0.Distance {
		half = source.Parts[1]
	}

	return NewSplit(half, p)
}

// buildFull links every consecutive coordinate pair.
func buildFull(idx *network.Index, source, destination Split) (*network.Graph, error) {
	g := network.NewGraph(idx.Keyer())
	lines := make([]orb.LineString, 0, idx.Len()+4)
	lines = append(lines, idx.Lines()...)
	lines = append(lines, source.Parts[0], source.Parts[1], destination.Parts[0], destination.Parts[1])

	for i, ls := range lines {
		for j := 1; j < len(ls); j++ {
			if err := g.AddLink(ls[j-1], ls[j], geom.Distance(ls[j-1], ls[j])); err != nil {
				return nil, fmt.Errorf("routing: line %d: %w", i, err)
			}
		}
	}

	return g, nil
}

// buildCondensed keeps coarse edges and reroutes the split lines through
// their split vertices.
func buildCondensed(idx *network.Index, source, destination Split) (*network.Graph, error) {
	k := idx.Keyer()
	g := network.NewGraph(k)
	srcEnds := network.EndPointsOf(source.Original)
	dstEnds := network.EndPointsOf(destination.Original)

	for i, ep := range idx.EndPoints() {
		matched := false
		for _, s := range [...]struct {
			ends  network.LineEndPoints
			split Split
		}{{srcEnds, source}, {dstEnds, destination}} {
			if !sameEnds(k, ep, s.ends) {
				continue
			}
			matched = true
			if err := linkSplit(g, s.split); err != nil {
				return nil, fmt.Errorf("routing: line %d: %w", i, err)
			}
		}
		if matched {
			continue
		}
		if err := g.AddLink(ep.First, ep.Last, ep.Length); err != nil {
			return nil, fmt.Errorf("routing: line %d: %w", i, err)
		}
	}

	return g, nil
}

// linkSplit adds first→split and split→last links weighted by part length.
func linkSplit(g *network.Graph, s Split) error {
	a, b := s.Parts[0], s.Parts[1]
	if err := g.AddLink(a[0], a[len(a)-1], geom.Length(a)); err != nil {
		return err
	}

	return g.AddLink(b[0], b[len(b)-1], geom.Length(b))
}

// sameEnds reports whether two summaries describe the same line, in either
// direction.
func sameEnds(k network.Keyer, a, b network.LineEndPoints) bool {
	if math.Abs(a.Length-b.Length) > lengthTolerance {
		return false
	}
	af, al := k.Key(a.First), k.Key(a.Last)
	bf, bl := k.Key(b.First), k.Key(b.Last)

	return (af == bf && al == bl) || (af == bl && al == bf)
}
