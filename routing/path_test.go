// SPDX-License-Identifier: MIT
package routing_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netroute/geom"
	"github.com/katalvlaran/netroute/network"
	"github.com/katalvlaran/netroute/routing"
)

// TestFindPath_DiamondOptimal: A-B=1, A-C=4, B-D=1, C-D=1 routes A→D via B
// with cost 2.
func TestFindPath_DiamondOptimal(t *testing.T) {
	a, b, c, d := orb.Point{0, 0}, orb.Point{1, -1}, orb.Point{1, 1}, orb.Point{2, 0}
	g := network.NewGraph(network.DefaultKeyer())
	require.NoError(t, g.AddLink(a, b, 1))
	require.NoError(t, g.AddLink(a, c, 4))
	require.NoError(t, g.AddLink(b, d, 1))
	require.NoError(t, g.AddLink(c, d, 1))

	route, err := routing.FindPath(&routing.Snapshot{Graph: g, Source: a, Destination: d})
	require.NoError(t, err)
	require.Equal(t, orb.LineString{a, b, d}, route.Path)
	require.Equal(t, 2.0, route.Cost)
	require.Equal(t, []string{g.VertexID(a), g.VertexID(b), g.VertexID(d)}, route.Vertices)
}

// TestFindPath_NoPathIsUnreachable: disconnected vertices give an error and
// no route, never a zero-length result.
func TestFindPath_NoPathIsUnreachable(t *testing.T) {
	g := network.NewGraph(network.DefaultKeyer())
	require.NoError(t, g.AddLink(orb.Point{0, 0}, orb.Point{1, 0}, 1))
	require.NoError(t, g.AddLink(orb.Point{5, 5}, orb.Point{6, 5}, 1))

	route, err := routing.FindPath(&routing.Snapshot{Graph: g, Source: orb.Point{0, 0}, Destination: orb.Point{6, 5}})
	require.ErrorIs(t, err, routing.ErrUnreachable)
	require.Contains(t, err.Error(), "vertex not reached")
	require.Nil(t, route)

	// Missing vertex.
	_, err = routing.FindPath(&routing.Snapshot{Graph: g, Source: orb.Point{0, 0}, Destination: orb.Point{9, 9}})
	require.ErrorIs(t, err, routing.ErrUnreachable)

	// Zero cost counts as no path.
	_, err = routing.FindPath(&routing.Snapshot{Graph: g, Source: orb.Point{0, 0}, Destination: orb.Point{0, 0}})
	require.ErrorIs(t, err, routing.ErrUnreachable)

	_, err = routing.FindPath(nil)
	require.ErrorIs(t, err, routing.ErrUnreachable)
}

func TestFindPath_FullAndCondensedAgreeOnBends(t *testing.T) {
	idx := newIndex(t, bends)
	src := mustSplit(t, bends[0], orb.Point{1, 0})
	dst := mustSplit(t, bends[2], orb.Point{20, 10})
	want := orb.LineString{{1, 0}, {5, 0}, {10, 0}, {10, 5}, {10, 10}, {20, 10}}

	for _, condensed := range []bool{false, true} {
		snap, err := routing.Rebuild(idx, src, dst, condensed)
		require.NoError(t, err)
		route, err := routing.FindPath(snap)
		require.NoError(t, err)
		require.Equal(t, want, route.Path, "condensed=%v", condensed)
		require.InDelta(t, 29, route.Cost, 1e-9)
		require.InDelta(t, 29, geom.Length(route.Path), 1e-9)
		require.Equal(t, condensed, route.Condensed)
	}
}

func TestFindPath_CondensedOrientsLines(t *testing.T) {
	// Travel runs against the stored direction of the second line.
	lines := []orb.LineString{
		{{0, 0}, {5, 0}, {10, 0}},
		{{10, 10}, {10, 5}, {10, 0}},
	}
	idx := newIndex(t, lines)
	snap, err := routing.Rebuild(idx,
		mustSplit(t, lines[0], orb.Point{2, 0}),
		mustSplit(t, lines[1], orb.Point{10, 8}),
		true)
	require.NoError(t, err)

	route, err := routing.FindPath(snap)
	require.NoError(t, err)
	require.Equal(t, orb.LineString{{2, 0}, {5, 0}, {10, 0}, {10, 5}, {10, 8}}, route.Path)
	require.InDelta(t, 16, route.Cost, 1e-9)
}
