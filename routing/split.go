// SPDX-License-Identifier: MIT
package routing

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/geom"
	"github.com/katalvlaran/netroute/network"
)

// Split is a network line cut at a snapped point.
// Parts[0] runs from the line start to the split point, Parts[1] from the
// split point to the line end.
type Split struct {
	Original orb.LineString
	Parts    [2]orb.LineString
}

// NewSplit cuts line at the projection of p.
func NewSplit(line orb.LineString, p orb.Point) (Split, error) {
	first, second, err := geom.Split(line, p)
	if err != nil {
		return Split{}, fmt.Errorf("%w: %v", ErrInvalidSplit, err)
	}

	return Split{Original: line, Parts: [2]orb.LineString{first, second}}, nil
}

// Point returns the split point.
func (s Split) Point() orb.Point {
	return s.Parts[0][len(s.Parts[0])-1]
}

// validate checks that the split is usable under keyer k.
func (s Split) validate(k network.Keyer) error {
	if len(s.Original) < 2 || len(s.Parts[0]) < 2 || len(s.Parts[1]) < 2 {
		return fmt.Errorf("%w: degenerate line", ErrInvalidSplit)
	}
	if k.Key(s.Point()) != k.Key(s.Parts[1][0]) {
		return fmt.Errorf("%w: parts do not share the split point", ErrInvalidSplit)
	}

	return nil
}

// sameLine reports whether a and b hold the same coordinates under k.
func sameLine(k network.Keyer, a, b orb.LineString) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if k.Key(a[i]) != k.Key(b[i]) {
			return false
		}
	}

	return true
}
