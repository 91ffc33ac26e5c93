package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartVertexNotFound is returned when the start vertex is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrOptionViolation is returned for an invalid Option.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNotReached is returned by Reachable when the target lies in
	// another component.
	ErrNotReached = errors.New("bfs: vertex not reached")
)

// Option configures a walk.
type Option func(*Options)

// Options holds the walk parameters.
type Options struct {
	// Ctx is checked once per dequeued vertex.
	Ctx context.Context

	// MaxDepth, if > 0, stops expanding past that many hops.
	MaxDepth int

	// Target, if set, ends the walk once that vertex is discovered.
	Target string

	err error
}

// DefaultOptions walks the whole component with a background context.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits the walk to d hops; 0 means no limit.
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// WithTarget stops the walk as soon as id is discovered.
func WithTarget(id string) Option {
	return func(o *Options) {
		o.Target = id
	}
}

// Result is the outcome of a walk.
type Result struct {
	// Order lists discovered vertices, start first.
	Order []string

	// Depth maps each discovered vertex to its hop count from the start.
	Depth map[string]int
}
