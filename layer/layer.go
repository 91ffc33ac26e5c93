// SPDX-License-Identifier: MIT
// Package layer defines the feature-source boundary consumed by the routing
// core and supplies an in-memory, R-tree indexed implementation.
//
// A FeatureSource is a read-only, externally owned collection of geometries
// keyed by numeric object id. The routing core opens it (idempotently) before
// each query and never writes to it.
package layer

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Sentinel errors for feature sources.
var (
	// ErrFeatureNotFound indicates a lookup of an unknown object id.
	ErrFeatureNotFound = errors.New("layer: feature not found")

	// ErrDuplicateID indicates an attempt to add two features with the same id.
	ErrDuplicateID = errors.New("layer: duplicate feature id")

	// ErrNilGeometry indicates an attempt to add a feature without geometry.
	ErrNilGeometry = errors.New("layer: nil geometry")

	// ErrInvalidBound indicates a bound the spatial index cannot hold,
	// such as one with NaN or infinite coordinates.
	ErrInvalidBound = errors.New("layer: invalid bound")
)

// FeatureSource is the minimal capability set the routing core needs from a
// network layer.
type FeatureSource interface {
	// Open prepares the source for queries. Calling it again is a no-op.
	Open() error

	// FeatureCount returns the number of features in the source.
	FeatureCount() (int, error)

	// Extent returns the bounding box of every feature.
	Extent() (orb.Bound, error)

	// ObjectIDsInView returns the ids of features whose bounds intersect b,
	// in ascending order.
	ObjectIDsInView(b orb.Bound) ([]uint64, error)

	// GeometryByID returns the geometry stored under id.
	GeometryByID(id uint64) (orb.Geometry, error)

	// GeometriesInView returns the geometries whose bounds intersect b,
	// ordered by ascending id.
	GeometriesInView(b orb.Bound) ([]orb.Geometry, error)
}

// R-tree fan-out, as used for chart indexes elsewhere.
const (
	minChildren = 25
	maxChildren = 50
)

// Rectangles are widened by max(pad, relPad*|coord|) on every side so that
// rtreego accepts zero-size sides and boundary-touching queries still
// intersect. The relative term keeps the padding above float64 resolution
// for large projected coordinates.
const (
	pad    = 1e-9
	relPad = 1e-12
)

// feature is one indexed geometry; it implements rtreego.Spatial.
type feature struct {
	id    uint64
	geom  orb.Geometry
	bound orb.Bound
	rect  rtreego.Rect
}

// Bounds returns the padded R-tree rectangle computed on Add.
func (f *feature) Bounds() rtreego.Rect {
	return f.rect
}

// toRect converts b to a padded R-tree rectangle.
func toRect(b orb.Bound) (rtreego.Rect, error) {
	for _, v := range [...]float64{b.Min[0], b.Min[1], b.Max[0], b.Max[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rtreego.Rect{}, fmt.Errorf("%w: %v", ErrInvalidBound, b)
		}
	}
	minX, maxX := widen(b.Min[0], b.Max[0])
	minY, maxY := widen(b.Min[1], b.Max[1])
	rect, err := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{maxX - minX, maxY - minY})
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("%w: %v: %v", ErrInvalidBound, b, err)
	}

	return rect, nil
}

// widen pads the interval [lo, hi] on both sides.
func widen(lo, hi float64) (float64, float64) {
	p := math.Max(pad, math.Max(math.Abs(lo), math.Abs(hi))*relPad)

	return lo - p, hi + p
}

// MemoryLayer is an in-memory FeatureSource backed by an R-tree.
// It is safe for concurrent readers once populated.
type MemoryLayer struct {
	mu       sync.RWMutex
	features map[uint64]*feature
	tree     *rtreego.Rtree
	extent   orb.Bound
	dirty    bool
}

// NewMemoryLayer returns an empty layer.
func NewMemoryLayer() *MemoryLayer {
	return &MemoryLayer{features: make(map[uint64]*feature), dirty: true}
}

// Add stores g under id. The spatial index is rebuilt on the next Open.
func (l *MemoryLayer) Add(id uint64, g orb.Geometry) error {
	if g == nil {
		return fmt.Errorf("%w: id %d", ErrNilGeometry, id)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.features[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	b := g.Bound()
	rect, err := toRect(b)
	if err != nil {
		return fmt.Errorf("id %d: %w", id, err)
	}
	l.features[id] = &feature{id: id, geom: g, bound: b, rect: rect}
	l.dirty = true

	return nil
}

// Open builds the R-tree if features changed since the last call.
func (l *MemoryLayer) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.dirty {
		return nil
	}

	tree := rtreego.NewTree(2, minChildren, maxChildren)
	var extent orb.Bound
	first := true
	for _, f := range l.features {
		tree.Insert(f)
		if first {
			extent, first = f.bound, false
			continue
		}
		extent = extent.Union(f.bound)
	}
	l.tree, l.extent, l.dirty = tree, extent, false

	return nil
}

// FeatureCount returns the number of stored features.
func (l *MemoryLayer) FeatureCount() (int, error) {
	if err := l.Open(); err != nil {
		return 0, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.features), nil
}

// Extent returns the union of all feature bounds; empty layers yield a zero bound.
func (l *MemoryLayer) Extent() (orb.Bound, error) {
	if err := l.Open(); err != nil {
		return orb.Bound{}, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.extent, nil
}

// ObjectIDsInView returns ids of features whose bound intersects b, ascending.
func (l *MemoryLayer) ObjectIDsInView(b orb.Bound) ([]uint64, error) {
	found, err := l.search(b)
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, len(found))
	for i, f := range found {
		ids[i] = f.id
	}

	return ids, nil
}

// GeometryByID returns the geometry stored under id.
func (l *MemoryLayer) GeometryByID(id uint64) (orb.Geometry, error) {
	if err := l.Open(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	f, ok := l.features[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrFeatureNotFound, id)
	}

	return f.geom, nil
}

// GeometriesInView returns geometries whose bound intersects b, by ascending id.
func (l *MemoryLayer) GeometriesInView(b orb.Bound) ([]orb.Geometry, error) {
	found, err := l.search(b)
	if err != nil {
		return nil, err
	}
	out := make([]orb.Geometry, len(found))
	for i, f := range found {
		out[i] = f.geom
	}

	return out, nil
}

// search queries the R-tree, drops padding-only hits and sorts by id.
func (l *MemoryLayer) search(b orb.Bound) ([]*feature, error) {
	if err := l.Open(); err != nil {
		return nil, err
	}
	query, err := toRect(b)
	if err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	hits := l.tree.SearchIntersect(query)
	out := make([]*feature, 0, len(hits))
	for _, h := range hits {
		f := h.(*feature)
		if f.bound.Intersects(b) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })

	return out, nil
}
