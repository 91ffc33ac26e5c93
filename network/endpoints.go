// SPDX-License-Identifier: MIT
package network

import (
	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/geom"
)

// LineEndPoints is the immutable summary of one line: its first and last
// coordinate and its length.
type LineEndPoints struct {
	First  orb.Point
	Last   orb.Point
	Length float64
}

// EndPointsOf summarises ls. ls must hold at least one coordinate.
func EndPointsOf(ls orb.LineString) LineEndPoints {
	return LineEndPoints{
		First:  ls[0],
		Last:   ls[len(ls)-1],
		Length: geom.Length(ls),
	}
}
