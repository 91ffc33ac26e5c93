// SPDX-License-Identifier: MIT
// Package routing finds shortest paths between two clicked points on a
// network of lines.
//
// What
//
//   - Split cuts the line nearest to a click at the snapped point.
//   - Rebuild is a pure function producing a fresh Snapshot graph around the
//     source and destination splits, in full-fidelity or condensed mode.
//   - FindPath runs Dijkstra with an early exit on the destination and
//     assembles the path as one line-string.
//   - System is the facade of one routing session: analysis layer, user
//     source and destination, tuning knobs and PerformShortestPathAnalysis.
//
// Modes
//
//	Non-condensed graphs make every coordinate of every line a vertex, so the
//	path follows the network exactly. Condensed graphs (BETA) keep one edge
//	per line and only reroute the two split lines through their split
//	vertices. They are smaller but only approximate: when both clicks land on
//	the same line the condensed route detours through a line endpoint.
//
// Concurrency
//
//	A System serialises its methods with a mutex. A Snapshot is immutable, so
//	independent analyses may run in parallel on separate Systems sharing one
//	layer and one network.Index.
//
// Errors
//
//	Every error maps onto one ErrorKind through KindOf:
//	  - KindConfiguration: ErrConfiguration, missing layer/source/destination
//	    or an invalid knob.
//	  - KindNoCandidate:   snap.ErrNoCandidate, no line within tolerance.
//	  - KindUnreachable:   ErrUnreachable, no path between the split vertices.
//	  - KindUnexpected:    *Failure wrapping any other error or a recovered
//	    panic; errors.Is(err, ErrUnexpected) holds and Cause keeps the reason.
//
// Usage
//
//	sys, err := routing.NewSystem(routing.WithMaxTolerance(100), routing.WithGrowValue(5))
//	if err != nil { ... }
//	if err = sys.SetAnalysisLayer(src); err != nil { ... }
//	if err = sys.SetUserSource(orb.Point{1, 0}); err != nil { ... }
//	if err = sys.SetUserDestination(orb.Point{10, 9}); err != nil { ... }
//	route, err := sys.PerformShortestPathAnalysis(false)
package routing
