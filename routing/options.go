// SPDX-License-Identifier: MIT
package routing

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/netroute/network"
)

// Defaults of the routing knobs.
const (
	DefaultMaxTolerance = 100
	DefaultGrowValue    = 5.0
)

// Options holds the tuning knobs of a System.
type Options struct {
	// MaxTolerance is the largest snap envelope half-width.
	MaxTolerance int

	// GrowValue is the initial snap envelope half-width.
	GrowValue float64

	// Condensed is the graph mode used when a caller does not choose one.
	Condensed bool

	// Precision is the decimal precision of vertex ids.
	Precision int

	// MaxIterations caps snap queries; 0 derives it from the knobs.
	MaxIterations int

	// Logger receives analysis logs.
	Logger *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns tolerance 100, grow value 5, non-condensed graphs,
// precision 9 and discarded logs.
func DefaultOptions() Options {
	return Options{
		MaxTolerance: DefaultMaxTolerance,
		GrowValue:    DefaultGrowValue,
		Precision:    network.DefaultPrecision,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// WithMaxTolerance sets the snap tolerance.
func WithMaxTolerance(t int) Option {
	return func(o *Options) { o.MaxTolerance = t }
}

// WithGrowValue sets the initial snap envelope half-width.
func WithGrowValue(g float64) Option {
	return func(o *Options) { o.GrowValue = g }
}

// WithCondensed sets the default graph mode.
func WithCondensed(c bool) Option {
	return func(o *Options) { o.Condensed = c }
}

// WithPrecision sets the vertex id precision.
func WithPrecision(p int) Option {
	return func(o *Options) { o.Precision = p }
}

// WithMaxIterations caps snap envelope queries.
func WithMaxIterations(n int) Option {
	return func(o *Options) { o.MaxIterations = n }
}

// WithLogger sets the logger; nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// validate reports invalid knobs as ErrConfiguration.
func (o Options) validate() error {
	switch {
	case o.MaxTolerance <= 0:
		return fmt.Errorf("%w: max tolerance %d", ErrConfiguration, o.MaxTolerance)
	case !(o.GrowValue > 0) || math.IsInf(o.GrowValue, 1):
		return fmt.Errorf("%w: grow value %g", ErrConfiguration, o.GrowValue)
	case o.Precision < 0 || o.Precision > network.MaxPrecision:
		return fmt.Errorf("%w: precision %d", ErrConfiguration, o.Precision)
	case o.MaxIterations < 0:
		return fmt.Errorf("%w: max iterations %d", ErrConfiguration, o.MaxIterations)
	}

	return nil
}
