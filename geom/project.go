// SPDX-License-Identifier: MIT
package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Projection is the nearest point on a line to some query point.
type Projection struct {
	// Point is the nearest point on the line.
	Point orb.Point

	// Distance is the Euclidean distance from the query point to Point.
	Distance float64

	// Segment is the index i of the segment ls[i]→ls[i+1] holding Point.
	Segment int

	// Measure is the distance along the line from its first coordinate to Point.
	Measure float64
}

// NearestPoint projects p onto ls.
//
// Implementation:
//   - Stage 1: planar.DistanceFromWithIndex finds the nearest segment
//     (the first one on ties).
//   - Stage 2: clamp the orthogonal foot of p to that segment. Feet at the
//     segment ends return the stored vertex itself, so vertex identity holds.
//   - Stage 3: accumulate the measure up to the segment start.
//
// Errors:
//   - ErrDegenerateLine if ls has fewer than two coordinates.
//
// Complexity: O(n) for n coordinates.
func NearestPoint(ls orb.LineString, p orb.Point) (Projection, error) {
	if len(ls) < 2 {
		return Projection{}, ErrDegenerateLine
	}

	_, seg := planar.DistanceFromWithIndex(ls, p)
	a, b := ls[seg], ls[seg+1]
	foot := projectOnSegment(a, b, p)

	measure := 0.0
	for i := 0; i < seg; i++ {
		measure += planar.Distance(ls[i], ls[i+1])
	}
	measure += planar.Distance(a, foot)

	return Projection{
		Point:    foot,
		Distance: planar.Distance(p, foot),
		Segment:  seg,
		Measure:  measure,
	}, nil
}

// Locate returns the measure of p's projection on ls and its fraction of the
// total length. The fraction is 0 for zero-length lines.
func Locate(ls orb.LineString, p orb.Point) (measure, fraction float64, err error) {
	proj, err := NearestPoint(ls, p)
	if err != nil {
		return 0, 0, err
	}
	total := planar.Length(ls)
	if total == 0 {
		return proj.Measure, 0, nil
	}

	return proj.Measure, proj.Measure / total, nil
}

// projectOnSegment returns the point of segment a→b closest to p.
func projectOnSegment(a, b, p orb.Point) orb.Point {
	dx, dy := b[0]-a[0], b[1]-a[1]
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return a
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / len2
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}

	return orb.Point{a[0] + t*dx, a[1] + t*dy}
}
