// SPDX-License-Identifier: MIT
package geom

import (
	"github.com/paulmach/orb"
)

// SubLine extracts the part of ls between the measures from and to.
// Measures are clamped to [0, Length(ls)] and swapped when from > to.
// Vertices strictly between the two measures are kept; the two ends are the
// stored vertex when a measure falls exactly on one, interpolated otherwise.
// The result always holds at least two coordinates.
//
// Errors:
//   - ErrDegenerateLine if ls has fewer than two coordinates.
func SubLine(ls orb.LineString, from, to float64) (orb.LineString, error) {
	if len(ls) < 2 {
		return nil, ErrDegenerateLine
	}
	cum := measures(ls)
	total := cum[len(cum)-1]
	from, to = clamp(from, total), clamp(to, total)
	if from > to {
		from, to = to, from
	}

	out := make(orb.LineString, 0, len(ls)+2)
	out = append(out, pointAt(ls, cum, from))
	for i, v := range ls {
		if cum[i] > from && cum[i] < to {
			out = append(out, v)
		}
	}
	out = append(out, pointAt(ls, cum, to))

	return out, nil
}

// Split cuts ls at the projection of p into the part before and the part
// after it. The projected point is shared as the last coordinate of first and
// the first coordinate of second.
//
// Implementation:
//   - Stage 1: NearestPoint gives the split point and its measure m.
//   - Stage 2: SplitAtMeasure(m) extracts both sub-lines.
//   - Stage 3: pin the shared ends to the projected point so both halves
//     reference the same coordinate value.
//
// Splitting at an existing vertex or endpoint never fails: an endpoint split
// yields a zero-length two-coordinate line on that side.
//
// Errors:
//   - ErrDegenerateLine if ls has fewer than two coordinates.
func Split(ls orb.LineString, p orb.Point) (first, second orb.LineString, err error) {
	proj, err := NearestPoint(ls, p)
	if err != nil {
		return nil, nil, err
	}
	if first, second, err = SplitAtMeasure(ls, proj.Measure); err != nil {
		return nil, nil, err
	}
	first[len(first)-1] = proj.Point
	second[0] = proj.Point

	return first, second, nil
}

// SplitAtMeasure cuts ls at the given measure (distance along the line).
// The coordinate at m is shared by both parts.
//
// Errors:
//   - ErrDegenerateLine if ls has fewer than two coordinates.
func SplitAtMeasure(ls orb.LineString, m float64) (first, second orb.LineString, err error) {
	if first, err = SubLine(ls, 0, m); err != nil {
		return nil, nil, err
	}
	if second, err = SubLine(ls, m, Length(ls)); err != nil {
		return nil, nil, err
	}

	return first, second, nil
}

// pointAt returns the coordinate at measure m, preferring stored vertices.
func pointAt(ls orb.LineString, cum []float64, m float64) orb.Point {
	last := len(ls) - 1
	for i := 0; i < last; i++ {
		if m == cum[i] {
			return ls[i]
		}
		if m < cum[i+1] {
			seg := cum[i+1] - cum[i]
			t := (m - cum[i]) / seg
			a, b := ls[i], ls[i+1]

			return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
		}
	}

	return ls[last]
}

func clamp(m, total float64) float64 {
	switch {
	case m < 0:
		return 0
	case m > total:
		return total
	}

	return m
}
