// SPDX-License-Identifier: MIT
package routing_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netroute/layer"
	"github.com/katalvlaran/netroute/network"
)

// Named networks shared by the routing tests.
var (
	// corner is two lines meeting at (10,0).
	corner = []orb.LineString{
		{{0, 0}, {10, 0}},
		{{10, 0}, {10, 10}},
	}

	// bends is a three-line chain with interior vertices.
	bends = []orb.LineString{
		{{0, 0}, {5, 0}, {10, 0}},
		{{10, 0}, {10, 5}, {10, 10}},
		{{10, 10}, {20, 10}},
	}

	// islands are two disconnected lines.
	islands = []orb.LineString{
		{{0, 0}, {10, 0}},
		{{100, 0}, {110, 0}},
	}
)

// newLayer stores lines under ids 1..n.
func newLayer(t *testing.T, lines []orb.LineString) *layer.MemoryLayer {
	t.Helper()
	l := layer.NewMemoryLayer()
	for i, ls := range lines {
		require.NoError(t, l.Add(uint64(i+1), ls))
	}

	return l
}

// newIndex indexes lines with the default keyer.
func newIndex(t *testing.T, lines []orb.LineString) *network.Index {
	t.Helper()
	idx, err := network.NewIndex(newLayer(t, lines), network.DefaultKeyer())
	require.NoError(t, err)

	return idx
}
