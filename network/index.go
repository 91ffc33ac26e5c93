// SPDX-License-Identifier: MIT
package network

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/katalvlaran/netroute/geom"
	"github.com/katalvlaran/netroute/layer"
)

// ErrNilSource indicates NewIndex was called without a feature source.
var ErrNilSource = errors.New("network: nil feature source")

// NoFeature is the feature id of lines that did not come from the layer,
// such as split parts added with WithLines.
const NoFeature = ^uint64(0)

// pairKey identifies an unordered pair of vertex ids.
type pairKey struct{ a, b string }

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}

	return pairKey{a, b}
}

// Index is the line-endpoint index of a network layer.
// An Index is never mutated after construction; WithLines returns a copy.
type Index struct {
	keyer     Keyer
	lines     []orb.LineString
	ends      []LineEndPoints
	features  []uint64
	byFeature map[uint64][]int
	byPair    map[pairKey]int
}

// NewIndex enumerates every feature in the extent of src.
//
// Implementation:
//   - Stage 1: Open src and list the object ids inside its extent.
//   - Stage 2: Look each geometry up by id; MultiLineStrings are decomposed
//     into their parts.
//   - Stage 3: Skip other geometry types and lines with fewer than two
//     coordinates without error.
//
// Errors:
//   - ErrNilSource, or any wrapped layer error.
func NewIndex(src layer.FeatureSource, keyer Keyer) (*Index, error) {
	if src == nil {
		return nil, ErrNilSource
	}
	if err := src.Open(); err != nil {
		return nil, fmt.Errorf("network: open layer: %w", err)
	}
	ext, err := src.Extent()
	if err != nil {
		return nil, fmt.Errorf("network: layer extent: %w", err)
	}
	ids, err := src.ObjectIDsInView(ext)
	if err != nil {
		return nil, fmt.Errorf("network: list features: %w", err)
	}

	idx := &Index{
		keyer:     keyer,
		lines:     make([]orb.LineString, 0, len(ids)),
		ends:      make([]LineEndPoints, 0, len(ids)),
		features:  make([]uint64, 0, len(ids)),
		byFeature: make(map[uint64][]int, len(ids)),
		byPair:    make(map[pairKey]int, len(ids)),
	}
	var g orb.Geometry
	for _, id := range ids {
		if g, err = src.GeometryByID(id); err != nil {
			return nil, fmt.Errorf("network: feature %d: %w", id, err)
		}
		for _, ls := range geom.Lines(g) {
			idx.add(id, ls)
		}
	}

	return idx, nil
}

// WithLines returns a copy of idx holding the extra lines as well.
// idx itself is left unchanged.
func (idx *Index) WithLines(extra ...orb.LineString) *Index {
	out := &Index{
		keyer:     idx.keyer,
		lines:     append(make([]orb.LineString, 0, len(idx.lines)+len(extra)), idx.lines...),
		ends:      append(make([]LineEndPoints, 0, len(idx.ends)+len(extra)), idx.ends...),
		features:  append(make([]uint64, 0, len(idx.features)+len(extra)), idx.features...),
		byFeature: make(map[uint64][]int, len(idx.byFeature)),
		byPair:    make(map[pairKey]int, len(idx.byPair)+len(extra)),
	}
	for k, v := range idx.byFeature {
		out.byFeature[k] = v
	}
	for k, v := range idx.byPair {
		out.byPair[k] = v
	}
	for _, ls := range extra {
		out.add(NoFeature, ls)
	}

	return out
}

// add stores one line; lines with fewer than two coordinates are ignored.
// Among lines joining the same endpoints the shortest wins the pair lookup.
func (idx *Index) add(feature uint64, ls orb.LineString) {
	if len(ls) < 2 {
		return
	}
	i := len(idx.lines)
	ep := EndPointsOf(ls)
	idx.lines = append(idx.lines, ls)
	idx.ends = append(idx.ends, ep)
	idx.features = append(idx.features, feature)
	if feature != NoFeature {
		idx.byFeature[feature] = append(idx.byFeature[feature], i)
	}

	key := newPairKey(idx.keyer.Key(ep.First), idx.keyer.Key(ep.Last))
	if j, ok := idx.byPair[key]; !ok || ep.Length < idx.ends[j].Length {
		idx.byPair[key] = i
	}
}

// Keyer returns the coordinate canonicaliser used by the index.
func (idx *Index) Keyer() Keyer { return idx.keyer }

// Len returns the number of stored lines.
func (idx *Index) Len() int { return len(idx.lines) }

// Lines returns the stored lines in insertion order. Do not modify them.
func (idx *Index) Lines() []orb.LineString { return idx.lines }

// EndPoints returns the LineEndPoints of every stored line, in Lines order.
func (idx *Index) EndPoints() []LineEndPoints { return idx.ends }

// Feature returns the lines decomposed from the feature with the given id.
func (idx *Index) Feature(id uint64) ([]orb.LineString, bool) {
	pos, ok := idx.byFeature[id]
	if !ok {
		return nil, false
	}
	out := make([]orb.LineString, len(pos))
	for i, p := range pos {
		out[i] = idx.lines[p]
	}

	return out, true
}

// LineBetween returns the shortest stored line whose endpoints are a and b
// in either order, oriented to start at a.
func (idx *Index) LineBetween(a, b orb.Point) (orb.LineString, bool) {
	ka, kb := idx.keyer.Key(a), idx.keyer.Key(b)
	i, ok := idx.byPair[newPairKey(ka, kb)]
	if !ok {
		return nil, false
	}
	ls := idx.lines[i]
	if idx.keyer.Key(ls[0]) != ka {
		return geom.Reverse(ls), true
	}

	return ls, true
}
