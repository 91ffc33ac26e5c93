// SPDX-License-Identifier: MIT
// Package network turns a layer of line features into a routable graph.
//
// What
//
//   - Index enumerates the lines of a FeatureSource, keeps each original
//     line-string and its LineEndPoints summary, and answers "which line
//     joins these two endpoints" in either order.
//   - Keyer canonicalises coordinates into vertex ids by rounding to a fixed
//     number of decimals, so floating-point noise never splits a vertex.
//   - Graph wraps core.Graph. Every link is stored as a pair of directed
//     edges (a→b and b→a) of equal weight; the weight lives on the edge, so
//     the edge set and the edge-cost map cannot diverge.
//   - BuildGraph produces the coarse graph: one link per line between its
//     first and last coordinate, weighted by the line length. Interior
//     vertices are not graph vertices in this mode.
//
// Errors
//
//   - ErrBadPrecision  if a Keyer precision is outside [0, 15].
//   - ErrBadWeight     if a link weight is negative or NaN.
//   - ErrNilSource     if NewIndex receives a nil source.
//   - Layer errors from the FeatureSource are wrapped and returned.
package network
