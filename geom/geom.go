// SPDX-License-Identifier: MIT
package geom

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// ErrDegenerateLine indicates a line-string with fewer than two coordinates.
var ErrDegenerateLine = errors.New("geom: line has fewer than two coordinates")

// Distance returns the Euclidean distance between a and b.
func Distance(a, b orb.Point) float64 {
	return planar.Distance(a, b)
}

// Length returns the Euclidean length of ls.
func Length(ls orb.LineString) float64 {
	return planar.Length(ls)
}

// Reverse returns a reversed copy of ls; the input is left untouched.
func Reverse(ls orb.LineString) orb.LineString {
	out := ls.Clone()
	out.Reverse()

	return out
}

// Dedupe returns a copy of ls without consecutive duplicate coordinates.
func Dedupe(ls orb.LineString) orb.LineString {
	out := make(orb.LineString, 0, len(ls))
	for i, p := range ls {
		if i > 0 && p.Equal(out[len(out)-1]) {
			continue
		}
		out = append(out, p)
	}

	return out
}

// Lines flattens a geometry into its line-strings.
// LineStrings are returned as-is, MultiLineStrings are decomposed into their
// parts, every other geometry type yields nil.
func Lines(g orb.Geometry) []orb.LineString {
	switch v := g.(type) {
	case orb.LineString:
		return []orb.LineString{v}
	case orb.MultiLineString:
		out := make([]orb.LineString, len(v))
		copy(out, v)

		return out
	default:
		return nil
	}
}

// measures returns the cumulative distance along ls at each coordinate.
func measures(ls orb.LineString) []float64 {
	cum := make([]float64, len(ls))
	for i := 1; i < len(ls); i++ {
		cum[i] = cum[i-1] + planar.Distance(ls[i-1], ls[i])
	}

	return cum
}
