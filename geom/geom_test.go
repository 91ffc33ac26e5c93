// SPDX-License-Identifier: MIT
package geom_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netroute/geom"
)

const eps = 1e-9

// bent is an L-shaped line with one interior bend at (10,0).
var bent = orb.LineString{{0, 0}, {10, 0}, {10, 10}}

func TestNearestPoint(t *testing.T) {
	proj, err := geom.NearestPoint(bent, orb.Point{4, 3})
	require.NoError(t, err)
	require.Equal(t, orb.Point{4, 0}, proj.Point)
	require.InDelta(t, 3, proj.Distance, eps)
	require.Equal(t, 0, proj.Segment)
	require.InDelta(t, 4, proj.Measure, eps)

	proj, err = geom.NearestPoint(bent, orb.Point{12, 5})
	require.NoError(t, err)
	require.Equal(t, orb.Point{10, 5}, proj.Point)
	require.Equal(t, 1, proj.Segment)
	require.InDelta(t, 15, proj.Measure, eps)

	// Beyond the end clamps to the stored endpoint.
	proj, err = geom.NearestPoint(bent, orb.Point{-3, 0})
	require.NoError(t, err)
	require.Equal(t, bent[0], proj.Point)

	_, err = geom.NearestPoint(orb.LineString{{1, 1}}, orb.Point{0, 0})
	require.ErrorIs(t, err, geom.ErrDegenerateLine)
}

func TestLocate(t *testing.T) {
	m, f, err := geom.Locate(bent, orb.Point{10, 5})
	require.NoError(t, err)
	require.InDelta(t, 15, m, eps)
	require.InDelta(t, 0.75, f, eps)

	m, f, err = geom.Locate(orb.LineString{{2, 2}, {2, 2}}, orb.Point{0, 0})
	require.NoError(t, err)
	require.Zero(t, m)
	require.Zero(t, f)
}

func TestSubLine(t *testing.T) {
	sub, err := geom.SubLine(bent, 5, 15)
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{5, 0}, {10, 0}, {10, 5}}, sub)

	// Swapped and out-of-range measures are normalised.
	sub, err = geom.SubLine(bent, 100, -1)
	require.NoError(t, err)
	require.Equal(t, bent, sub)

	// An empty range still yields two coordinates.
	sub, err = geom.SubLine(bent, 10, 10)
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{10, 0}, {10, 0}}, sub)
}

// TestSplit_ReconstructsOriginal checks that both halves share the split
// point and together reproduce the original coordinates and length.
func TestSplit_ReconstructsOriginal(t *testing.T) {
	lines := []orb.LineString{
		bent,
		{{0, 0}, {1, 1}, {2, 0}, {3, 1}, {4, 0}},
		{{-5, -5}, {5, 5}},
	}
	for _, ls := range lines {
		total := geom.Length(ls)
		for _, frac := range []float64{0.1, 0.3, 0.6, 0.9} {
			first, second, err := geom.SplitAtMeasure(ls, frac*total)
			require.NoError(t, err)
			require.Equal(t, first[len(first)-1], second[0], "split point must be shared")

			joined := append(first.Clone(), second[1:]...)
			require.InDelta(t, total, geom.Length(first)+geom.Length(second), eps)
			require.InDelta(t, total, geom.Length(joined), eps)

			// Dropping the inserted split point gives back the original vertices.
			var kept orb.LineString
			for _, p := range joined {
				if p.Equal(first[len(first)-1]) && !containsPoint(ls, p) {
					continue
				}
				kept = append(kept, p)
			}
			require.Equal(t, ls, kept)
		}
	}
}

func TestSplit_AtVertex(t *testing.T) {
	first, second, err := geom.Split(bent, orb.Point{10, 0})
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{0, 0}, {10, 0}}, first)
	require.Equal(t, orb.LineString{{10, 0}, {10, 10}}, second)
}

func TestSplit_AtEndpoints(t *testing.T) {
	first, second, err := geom.Split(bent, orb.Point{0, 0})
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{0, 0}, {0, 0}}, first)
	require.Zero(t, geom.Length(first))
	require.Equal(t, bent, second)

	first, second, err = geom.Split(bent, orb.Point{10, 10})
	require.NoError(t, err)
	require.Equal(t, bent, first)
	require.Equal(t, orb.LineString{{10, 10}, {10, 10}}, second)

	_, _, err = geom.Split(nil, orb.Point{})
	require.ErrorIs(t, err, geom.ErrDegenerateLine)
}

func TestSplit_OffLinePoint(t *testing.T) {
	first, second, err := geom.Split(bent, orb.Point{13, 4})
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{0, 0}, {10, 0}, {10, 4}}, first)
	require.Equal(t, orb.LineString{{10, 4}, {10, 10}}, second)
}

func TestHelpers(t *testing.T) {
	require.Equal(t, orb.LineString{{10, 10}, {10, 0}, {0, 0}}, geom.Reverse(bent))
	require.Equal(t, orb.Point{0, 0}, bent[0], "Reverse must not mutate its input")

	require.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}},
		geom.Dedupe(orb.LineString{{0, 0}, {0, 0}, {1, 0}, {1, 0}, {2, 0}}))

	require.InDelta(t, 5, geom.Distance(orb.Point{0, 0}, orb.Point{3, 4}), eps)
	require.InDelta(t, 20, geom.Length(bent), eps)

	require.Len(t, geom.Lines(orb.MultiLineString{bent, bent}), 2)
	require.Len(t, geom.Lines(bent), 1)
	require.Nil(t, geom.Lines(orb.Point{1, 1}))
}

func containsPoint(ls orb.LineString, p orb.Point) bool {
	for _, v := range ls {
		if v.Equal(p) {
			return true
		}
	}

	return false
}
