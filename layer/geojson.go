// SPDX-License-Identifier: MIT
package layer

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON builds a MemoryLayer from a GeoJSON FeatureCollection.
//
// Feature ids that are non-negative integers (as JSON numbers or numeric
// strings) are kept; other features get sequential ids after the largest
// kept one. Features with a null geometry are skipped.
func LoadGeoJSON(r io.Reader) (*MemoryLayer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("layer: read geojson: %w", err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("layer: decode geojson: %w", err)
	}

	ids := make([]uint64, len(fc.Features))
	kept := make([]bool, len(fc.Features))
	taken := make(map[uint64]bool, len(fc.Features))
	var next uint64
	for i, f := range fc.Features {
		id, ok := featureID(f.ID)
		if !ok || taken[id] {
			continue
		}
		ids[i], kept[i], taken[id] = id, true, true
		if id >= next {
			next = id + 1
		}
	}

	l := NewMemoryLayer()
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if !kept[i] {
			ids[i] = next
			next++
		}
		if err = l.Add(ids[i], f.Geometry); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// OpenGeoJSONFile loads a GeoJSON FeatureCollection from path.
func OpenGeoJSONFile(path string) (*MemoryLayer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("layer: %w", err)
	}
	defer f.Close()

	return LoadGeoJSON(f)
}

func featureID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case float64:
		if id < 0 || id != math.Trunc(id) || id > 1<<53 {
			return 0, false
		}
		return uint64(id), true
	case string:
		n, err := strconv.ParseUint(id, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
