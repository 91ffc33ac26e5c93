// SPDX-License-Identifier: MIT
package layer

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

// OpenShapefile loads the polyline records of an ESRI shapefile.
// Record numbers (from 0) become feature ids. Single-part records are
// stored as LineStrings, multi-part ones as MultiLineStrings; records of
// other shape types are skipped.
func OpenShapefile(path string) (*MemoryLayer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layer: %w", err)
	}
	defer r.Close()

	l := NewMemoryLayer()
	for r.Next() {
		n, shape := r.Shape()
		var parts []int32
		var points []shp.Point
		switch s := shape.(type) {
		case *shp.PolyLine:
			parts, points = s.Parts, s.Points
		case *shp.PolyLineZ:
			parts, points = s.Parts, s.Points
		case *shp.PolyLineM:
			parts, points = s.Parts, s.Points
		default:
			continue
		}
		g := polylineGeometry(parts, points)
		if g == nil {
			continue
		}
		if err = l.Add(uint64(n), g); err != nil {
			return nil, err
		}
	}
	if err = r.Err(); err != nil {
		return nil, fmt.Errorf("layer: read shapefile: %w", err)
	}

	return l, nil
}

// polylineGeometry splits a flat point slice at the part offsets.
func polylineGeometry(parts []int32, points []shp.Point) orb.Geometry {
	if len(parts) == 0 {
		parts = []int32{0}
	}
	mls := make(orb.MultiLineString, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || start >= end {
			continue
		}
		ls := make(orb.LineString, 0, end-start)
		for _, p := range points[start:end] {
			ls = append(ls, orb.Point{p.X, p.Y})
		}
		mls = append(mls, ls)
	}

	switch len(mls) {
	case 0:
		return nil
	case 1:
		return mls[0]
	default:
		return mls
	}
}
