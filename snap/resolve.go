// SPDX-License-Identifier: MIT
package snap

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/geom"
	"github.com/katalvlaran/netroute/layer"
)

// Resolve snaps query onto the nearest line of src.
//
// Implementation:
//   - Stage 1: half-width h starts at min(GrowValue, MaxTolerance).
//   - Stage 2: query the square envelope of half-width h around query.
//     LineStrings and MultiLineString parts with two or more coordinates are
//     candidates; everything else is ignored.
//   - Stage 3: if a candidate exists, return the one at minimal distance
//     (the first seen wins ties, candidates arrive in ascending feature id).
//   - Stage 4: otherwise double h, clamping the final attempt to exactly
//     MaxTolerance, until the tolerance or the iteration cap is exhausted.
//
// A line lying within MaxTolerance of query is therefore always found.
// The winning candidate is not re-checked against MaxTolerance: envelope
// corners reach MaxTolerance·√2.
//
// Errors:
//   - ErrNilSource, ErrBadTolerance, ErrBadGrowValue, ErrBadIterations.
//   - ErrNoCandidate when nothing was found.
//   - Wrapped layer errors.
//
// Complexity: O(iterations × query cost + candidates × line size).
func Resolve(src layer.FeatureSource, query orb.Point, opts ...Option) (*IntersectionPackage, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if src == nil {
		return nil, ErrNilSource
	}
	limit, err := o.validate()
	if err != nil {
		return nil, err
	}
	if err = src.Open(); err != nil {
		return nil, fmt.Errorf("snap: open layer: %w", err)
	}

	half := math.Min(o.GrowValue, o.MaxTolerance)
	for i := 1; i <= limit; i++ {
		view := orb.Bound{
			Min: orb.Point{query[0] - half, query[1] - half},
			Max: orb.Point{query[0] + half, query[1] + half},
		}
		geoms, err := src.GeometriesInView(view)
		if err != nil {
			return nil, fmt.Errorf("snap: query view: %w", err)
		}

		best, ok := nearest(geoms, query)
		o.Logger.Debug("snap iteration",
			"iteration", i, "half_width", half, "geometries", len(geoms), "found", ok)
		if ok {
			best.ClickPoint = query
			best.Iterations = i

			return best, nil
		}

		if half >= o.MaxTolerance {
			break
		}
		half = math.Min(half*2, o.MaxTolerance)
	}

	return nil, fmt.Errorf("%w: %v within %g", ErrNoCandidate, query, o.MaxTolerance)
}

// nearest returns the candidate line closest to p.
func nearest(geoms []orb.Geometry, p orb.Point) (*IntersectionPackage, bool) {
	var best *IntersectionPackage
	for _, g := range geoms {
		for _, ls := range geom.Lines(g) {
			proj, err := geom.NearestPoint(ls, p)
			if err != nil {
				continue
			}
			if best == nil || proj.Distance < best.Distance {
				best = &IntersectionPackage{
					IntersectionPoint: proj.Point,
					ClosestLine:       ls,
					Distance:          proj.Distance,
				}
			}
		}
	}

	return best, best != nil
}
