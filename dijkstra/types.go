// Package dijkstra defines core types and configuration options
// for Dijkstra's shortest-path algorithm on weighted graphs.
//
// Options:
//
//	– Source:           ID of the starting vertex (must be non-empty and present in the graph).
//	– Target:           optional ID of a destination vertex; the search stops once it is settled.
//	– ReturnPath:       if true, return the predecessor map for path reconstruction.
//	– MaxDistance:      optional cap on distances to explore; vertices beyond this are skipped.
//	– InfEdgeThreshold: edges with weight >= this threshold are treated as impassable.
//
// Errors (sentinel):
//
//	– ErrEmptySource     if the provided source ID is empty.
//	– ErrNilGraph        if the provided graph pointer is nil.
//	– ErrUnweightedGraph if the graph is not configured to support weights.
//	– ErrVertexNotFound  if the source (or target) vertex does not exist in the graph.
//	– ErrNegativeWeight  if a negative or NaN edge weight is detected in the graph.
//	– ErrBadMaxDistance  if MaxDistance < 0.
//	– ErrBadInfThreshold if InfEdgeThreshold <= 0.
//	– ErrNoPath          if PathTo is asked for a vertex that was never reached.
package dijkstra

import (
	"errors"
	"math"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrEmptySource indicates that the provided source vertex ID is empty.
	ErrEmptySource = errors.New("dijkstra: source vertex ID is empty")

	// ErrNilGraph indicates that a nil *core.Graph was passed to Dijkstra.
	ErrNilGraph = errors.New("dijkstra: graph is nil")

	// ErrUnweightedGraph indicates that the graph was not marked as weighted.
	ErrUnweightedGraph = errors.New("dijkstra: graph must be weighted")

	// ErrVertexNotFound indicates that the source or target vertex does not exist
	// in the provided graph.
	ErrVertexNotFound = errors.New("dijkstra: vertex not found in graph")

	// ErrNegativeWeight indicates that a negative (or NaN) edge weight was detected in the graph.
	ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")

	// ErrBadInfThreshold indicates that InfEdgeThreshold was set to zero or negative.
	ErrBadInfThreshold = errors.New("dijkstra: InfEdgeThreshold must be positive")

	// ErrNoPath indicates that no predecessor chain links the source to the requested vertex.
	ErrNoPath = errors.New("dijkstra: no path to vertex")
)

// Options configures the behavior of the Dijkstra algorithm.
//
// Source           – starting vertex ID (must be non-empty and present in the graph).
// Target           – optional destination; when set, the search stops as soon as
//
//	Target is popped from the heap (its distance is final at that point).
//
// ReturnPath       – if true, return the predecessor map; otherwise prev map is nil.
// MaxDistance      – optional cap on distances to explore. Default is +Inf (no cap).
// InfEdgeThreshold – treat edges with weight ≥ this threshold as impassable. Default is +Inf.
type Options struct {
	Source           string  // The ID of the source vertex
	Target           string  // Optional early-exit vertex
	ReturnPath       bool    // Whether to return the predecessor map
	MaxDistance      float64 // Maximum distance to explore
	InfEdgeThreshold float64 // Weight threshold above which edges are non-traversable
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the Source field of Options to the given string.
// Must be called to specify the starting vertex ID.
func Source(str string) Option {
	return func(o *Options) {
		o.Source = str
	}
}

// WithTarget enables early termination once the given vertex is settled.
func WithTarget(str string) Option {
	return func(o *Options) {
		o.Target = str
	}
}

// WithReturnPath enables generation of the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance sets a maximum distance threshold.
// Must pass a non-negative value; negative values panic with ErrBadMaxDistance.
func WithMaxDistance(max float64) Option {
	return func(o *Options) {
		if max < 0 || math.IsNaN(max) {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = max
	}
}

// WithInfEdgeThreshold defines a weight threshold at or above which edges are
// considered non-traversable.
// Must pass a positive value; zero or negative values panic with ErrBadInfThreshold.
func WithInfEdgeThreshold(threshold float64) Option {
	return func(o *Options) {
		if threshold <= 0 || math.IsNaN(threshold) {
			panic(ErrBadInfThreshold.Error())
		}
		o.InfEdgeThreshold = threshold
	}
}

// DefaultOptions returns an Options struct initialized with sensible defaults
// for the given source vertex ID.
//
// Defaults:
//   - Source:           <as passed> (validated in Dijkstra).
//   - Target:           "" (explore every reachable vertex).
//   - ReturnPath:       false.
//   - MaxDistance:      +Inf.
//   - InfEdgeThreshold: +Inf.
func DefaultOptions(source string) Options {
	return Options{
		Source:           source,
		ReturnPath:       false,
		MaxDistance:      math.Inf(1),
		InfEdgeThreshold: math.Inf(1),
	}
}
