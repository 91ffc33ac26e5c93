// SPDX-License-Identifier: MIT
package routing_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netroute/routing"
)

func mustSplit(t *testing.T, ls orb.LineString, p orb.Point) routing.Split {
	t.Helper()
	s, err := routing.NewSplit(ls, p)
	require.NoError(t, err)

	return s
}

// TestRebuild_Idempotent rebuilds twice from identical inputs and expects
// identical vertex and edge sets, with nothing leaking into the index.
func TestRebuild_Idempotent(t *testing.T) {
	idx := newIndex(t, bends)
	src := mustSplit(t, bends[0], orb.Point{1, 0})
	dst := mustSplit(t, bends[2], orb.Point{15, 10})

	for _, condensed := range []bool{false, true} {
		a, err := routing.Rebuild(idx, src, dst, condensed)
		require.NoError(t, err)
		b, err := routing.Rebuild(idx, src, dst, condensed)
		require.NoError(t, err)

		require.Equal(t, a.Graph.Vertices(), b.Graph.Vertices())
		require.Equal(t, a.Graph.EdgeCosts(), b.Graph.EdgeCosts())
		require.Equal(t, a.Graph.EdgeCount(), b.Graph.EdgeCount())
		require.Equal(t, len(bends), idx.Len(), "input index must not grow")
		require.Equal(t, idx.Len()+4, a.Lines.Len(), "split lines are always indexed")
	}
}

func TestRebuild_Full(t *testing.T) {
	idx := newIndex(t, bends)
	src := mustSplit(t, bends[0], orb.Point{1, 0})
	dst := mustSplit(t, bends[2], orb.Point{15, 10})

	snap, err := routing.Rebuild(idx, src, dst, false)
	require.NoError(t, err)
	require.False(t, snap.Condensed)
	require.Equal(t, orb.Point{1, 0}, snap.Source)
	require.Equal(t, orb.Point{15, 10}, snap.Destination)

	g := snap.Graph
	// Every coordinate is a vertex: 6 line vertices + 2 split points.
	require.Equal(t, 8, g.VertexCount())
	require.True(t, g.HasVertex(orb.Point{5, 0}))
	w, ok := g.Cost(orb.Point{1, 0}, orb.Point{5, 0})
	require.True(t, ok)
	require.InDelta(t, 4, w, 1e-9)
	w, ok = g.Cost(orb.Point{15, 10}, orb.Point{10, 10})
	require.True(t, ok)
	require.InDelta(t, 5, w, 1e-9)
}

func TestRebuild_Condensed(t *testing.T) {
	idx := newIndex(t, bends)
	src := mustSplit(t, bends[0], orb.Point{1, 0})
	dst := mustSplit(t, bends[2], orb.Point{15, 10})

	snap, err := routing.Rebuild(idx, src, dst, true)
	require.NoError(t, err)
	require.True(t, snap.Condensed)

	g := snap.Graph
	require.False(t, g.HasVertex(orb.Point{5, 0}), "interior vertices stay collapsed")

	// The split lines are rerouted through their split vertices.
	_, ok := g.Cost(orb.Point{0, 0}, orb.Point{10, 0})
	require.False(t, ok)
	w, ok := g.Cost(orb.Point{0, 0}, orb.Point{1, 0})
	require.True(t, ok)
	require.InDelta(t, 1, w, 1e-9)
	w, ok = g.Cost(orb.Point{10, 0}, orb.Point{1, 0})
	require.True(t, ok)
	require.InDelta(t, 9, w, 1e-9)

	// Unaffected lines keep one coarse edge pair.
	w, ok = g.Cost(orb.Point{10, 10}, orb.Point{10, 0})
	require.True(t, ok)
	require.InDelta(t, 10, w, 1e-9)
}

func TestRebuild_SameLineResplitsDestination(t *testing.T) {
	line := orb.LineString{{0, 0}, {10, 0}}
	idx := newIndex(t, []orb.LineString{line})

	for _, tc := range []struct {
		name     string
		src, dst orb.Point
	}{
		{"destination ahead", orb.Point{2, 0}, orb.Point{7, 0}},
		{"destination behind", orb.Point{7, 0}, orb.Point{2, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := routing.Rebuild(idx, mustSplit(t, line, tc.src), mustSplit(t, line, tc.dst), false)
			require.NoError(t, err)

			w, ok := snap.Graph.Cost(tc.src, tc.dst)
			require.True(t, ok, "split vertices must be linked directly")
			require.InDelta(t, 5, w, 1e-9)
			got := snap.DestinationSplit.Point()
			require.InDelta(t, tc.dst[0], got[0], 1e-9)
			require.InDelta(t, tc.dst[1], got[1], 1e-9)
		})
	}
}

func TestRebuild_InvalidSplit(t *testing.T) {
	idx := newIndex(t, corner)
	good := mustSplit(t, corner[0], orb.Point{5, 0})

	bad := routing.Split{Original: corner[1], Parts: [2]orb.LineString{{{10, 0}}, {{10, 0}, {10, 10}}}}
	_, err := routing.Rebuild(idx, good, bad, false)
	require.ErrorIs(t, err, routing.ErrInvalidSplit)

	gap := routing.Split{Original: corner[1], Parts: [2]orb.LineString{{{10, 0}, {10, 4}}, {{10, 5}, {10, 10}}}}
	_, err = routing.Rebuild(idx, gap, good, true)
	require.ErrorIs(t, err, routing.ErrInvalidSplit)

	_, err = routing.NewSplit(orb.LineString{{1, 1}}, orb.Point{1, 1})
	require.ErrorIs(t, err, routing.ErrInvalidSplit)
}
