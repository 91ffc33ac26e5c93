// SPDX-License-Identifier: MIT
// Package netroute computes shortest paths over networks of polylines
// (roads, pipes, cables) between two arbitrary map clicks.
//
// A click rarely lands on the network. It is snapped to the nearest line
// by querying a doubling envelope around it, and that line is split at the
// snapped point. The network graph is then rebuilt with the split pieces
// in place and searched with an early-exit Dijkstra.
//
// Packages:
//
//	core/       directed, weighted multigraph with sorted, deterministic views
//	bfs/        breadth-first traversal and connected components
//	dijkstra/   single-source shortest paths with early exit and path recovery
//	geom/       planar projection, sub-lines and line splitting
//	layer/      feature sources: an R-tree backed in-memory layer, GeoJSON and shapefile loading
//	network/    vertex keys, endpoint index, network graph construction
//	snap/       click-to-line resolution with a doubling envelope
//	routing/    graph reconstruction, path assembly, the System facade
//	config/     TOML configuration and rotating log files
//	server/     HTTP API
//	cmd/netroute  command-line front end
//
// Quick start:
//
//	src, _ := layer.OpenGeoJSONFile("roads.geojson")
//	sys, _ := routing.NewSystem(routing.WithMaxTolerance(50))
//	_ = sys.SetAnalysisLayer(src)
//	_ = sys.SetUserSource(orb.Point{1, 0.5})
//	_ = sys.SetUserDestination(orb.Point{10.5, 9})
//	route, err := sys.Analyze()
//
// Two graph modes exist. The full graph has one vertex per polyline vertex
// and is exact. The condensed graph has one edge per polyline and is
// smaller, but its answers are approximate when a click splits a line
// another route would also use.
package netroute
