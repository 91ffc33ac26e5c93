// SPDX-License-Identifier: MIT
// Package snap maps an arbitrary query point onto the nearest line of a
// network layer, searching a square envelope that doubles in size until a
// candidate line is found or the tolerance is exhausted.
package snap

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
)

// Sentinel errors for point snapping.
var (
	// ErrNoCandidate indicates that no line was found within the tolerance.
	ErrNoCandidate = errors.New("snap: no candidate line in range")

	// ErrBadTolerance indicates a non-positive or NaN maximum tolerance.
	ErrBadTolerance = errors.New("snap: max tolerance must be > 0")

	// ErrBadGrowValue indicates a non-positive or NaN initial half-width.
	ErrBadGrowValue = errors.New("snap: grow value must be > 0")

	// ErrBadIterations indicates a negative iteration cap.
	ErrBadIterations = errors.New("snap: max iterations must be >= 0")

	// ErrNilSource indicates Resolve was called without a feature source.
	ErrNilSource = errors.New("snap: nil feature source")
)

// Defaults for the resolver knobs.
const (
	DefaultMaxTolerance = 100.0
	DefaultGrowValue    = 5.0

	// HardMaxIterations bounds the search whatever the options say.
	HardMaxIterations = 64
)

// IntersectionPackage is the result of one snap query.
type IntersectionPackage struct {
	// ClickPoint is the query point as given.
	ClickPoint orb.Point

	// IntersectionPoint is the nearest point on ClosestLine.
	IntersectionPoint orb.Point

	// ClosestLine is the candidate line nearest to ClickPoint.
	ClosestLine orb.LineString

	// Distance is the Euclidean distance ClickPoint→IntersectionPoint.
	Distance float64

	// Iterations is the number of envelope queries issued.
	Iterations int
}

// Options configures Resolve.
type Options struct {
	// MaxTolerance is the largest envelope half-width searched.
	MaxTolerance float64

	// GrowValue is the initial envelope half-width; it doubles per iteration.
	GrowValue float64

	// MaxIterations caps envelope queries. 0 derives the cap from
	// log2(MaxTolerance/GrowValue) + 2; HardMaxIterations always applies.
	MaxIterations int

	// Logger receives one debug record per iteration.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the resolver defaults: tolerance 100, grow value 5,
// derived iteration cap, discarded logs.
func DefaultOptions() Options {
	return Options{
		MaxTolerance: DefaultMaxTolerance,
		GrowValue:    DefaultGrowValue,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// WithMaxTolerance sets the maximum envelope half-width.
func WithMaxTolerance(t float64) Option {
	return func(o *Options) { o.MaxTolerance = t }
}

// WithGrowValue sets the initial envelope half-width.
func WithGrowValue(g float64) Option {
	return func(o *Options) { o.GrowValue = g }
}

// WithMaxIterations caps the number of envelope queries.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithLogger sets the logger; nil keeps the current one.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// validate checks the knobs and resolves the effective iteration cap.
func (o *Options) validate() (int, error) {
	if !(o.MaxTolerance > 0) || math.IsInf(o.MaxTolerance, 1) {
		return 0, fmt.Errorf("%w: %g", ErrBadTolerance, o.MaxTolerance)
	}
	if !(o.GrowValue > 0) || math.IsInf(o.GrowValue, 1) {
		return 0, fmt.Errorf("%w: %g", ErrBadGrowValue, o.GrowValue)
	}
	if o.MaxIterations < 0 {
		return 0, fmt.Errorf("%w: %d", ErrBadIterations, o.MaxIterations)
	}

	return IterationCap(o.MaxTolerance, o.GrowValue, o.MaxIterations), nil
}

// IterationCap returns the number of envelope queries allowed for the given
// knobs: explicit when limit > 0, otherwise enough doublings to reach the
// tolerance plus one clamped attempt. Never exceeds HardMaxIterations.
func IterationCap(tolerance, grow float64, limit int) int {
	n := limit
	if n == 0 {
		n = 1
		switch ratio := tolerance / grow; {
		case ratio > math.Exp2(HardMaxIterations):
			n = HardMaxIterations
		case ratio > 1:
			n = int(math.Ceil(math.Log2(ratio))) + 2
		}
	}
	if n > HardMaxIterations {
		n = HardMaxIterations
	}

	return n
}
