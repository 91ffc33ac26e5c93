// SPDX-License-Identifier: MIT
// Package core_test contains test helpers for netroute/core.
//
// Purpose:
//   - Provide small, deterministic fixtures and assertion utilities for core.Graph.
//   - Keep core tests stdlib-only.

package core_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/netroute/core"
)

// Common vertex IDs used across core tests.
const (
	VertexEmpty = ""

	VertexA = "A"
	VertexB = "B"
	VertexC = "C"
	VertexX = "X"
)

// Common weights used across core tests (avoid magic numbers in test bodies).
const (
	Weight0   = 0.0
	Weight1   = 1.0
	Weight2_5 = 2.5
)

// NewRoadGraph returns a graph configured the way the network package builds one:
// directed edge pairs, float weights, parallel edges and loops permitted.
func NewRoadGraph() *core.Graph {
	return core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
}

// MustNoError FAILS the test if err != nil.
func MustNoError(t *testing.T, err error, op string) {
	t.Helper()
	if err == nil {
		return
	}
	t.Fatalf("%s: unexpected error: %v", op, err)
}

// MustErrorIs FAILS the test unless errors.Is(err, target).
func MustErrorIs(t *testing.T, err error, target error, op string) {
	t.Helper()
	if errors.Is(err, target) {
		return
	}
	t.Fatalf("%s: got error %v; want %v", op, err, target)
}

// MustTrue FAILS the test if cond is false.
func MustTrue(t *testing.T, cond bool, op string) {
	t.Helper()
	if cond {
		return
	}
	t.Fatalf("%s: condition is false", op)
}

// MustEqualInt FAILS the test if got != want.
func MustEqualInt(t *testing.T, got, want int, op string) {
	t.Helper()
	if got == want {
		return
	}
	t.Fatalf("%s: got %d; want %d", op, got, want)
}
