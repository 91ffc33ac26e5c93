// SPDX-License-Identifier: MIT
// Package geom provides the planar geometry primitives used by the routing
// packages: distances, nearest-point projection, linear referencing and line
// splitting.
//
// What
//
//   - Distance and Length wrap orb/planar for Euclidean measures.
//   - NearestPoint projects a point onto a line and reports the segment and
//     the measure (distance along the line) of the projection.
//   - Locate, SubLine and Split implement linear referencing: a split is the
//     pair of sub-lines before and after the measure of the split point.
//   - Reverse and Dedupe are small coordinate-sequence helpers.
//
// Units
//
//	All values are in the linear unit of the input coordinates. No projection
//	or unit conversion is performed, so mixing degrees and metres produces
//	meaningless costs.
//
// Split invariants
//
//   - The split point is the last coordinate of the first part and the
//     first coordinate of the second part.
//   - Both parts always hold at least two coordinates. Splitting at an
//     endpoint yields a zero-length two-coordinate part on that side.
//   - Concatenating the parts and dropping the shared point reproduces the
//     original coordinate sequence when the split point is interior.
//
// Errors
//
//   - ErrDegenerateLine if a line has fewer than two coordinates.
package geom
