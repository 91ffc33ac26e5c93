// SPDX-License-Identifier: MIT
package routing

import (
	"errors"

	"github.com/katalvlaran/netroute/snap"
)

// Sentinel errors for routing.
var (
	// ErrConfiguration indicates an analysis invoked before the layer, the
	// source or the destination were set, or an invalid tuning knob.
	ErrConfiguration = errors.New("routing: configuration error")

	// ErrUnreachable indicates that the destination was never settled or
	// that the path cost is not positive.
	ErrUnreachable = errors.New("routing: destination unreachable")

	// ErrInvalidSplit indicates a split with a degenerate original line or
	// parts that do not share the split point.
	ErrInvalidSplit = errors.New("routing: invalid split")

	// ErrUnexpected matches every *Failure via errors.Is.
	ErrUnexpected = errors.New("routing: unexpected failure")
)

// Failure carries an unexpected error or recovered panic from one routing
// operation. The cause is preserved for diagnosis.
type Failure struct {
	// Op names the operation that failed, e.g. "analysis".
	Op string

	// Cause is the underlying error.
	Cause error
}

// Error implements error.
func (f *Failure) Error() string {
	if f.Cause == nil {
		return ErrUnexpected.Error() + " in " + f.Op
	}

	return ErrUnexpected.Error() + " in " + f.Op + ": " + f.Cause.Error()
}

// Unwrap returns the cause.
func (f *Failure) Unwrap() error { return f.Cause }

// Is reports whether target is ErrUnexpected.
func (f *Failure) Is(target error) bool { return target == ErrUnexpected }

// ErrorKind is the four-way classification of routing errors.
type ErrorKind int

// Error kinds.
const (
	KindNone ErrorKind = iota
	KindConfiguration
	KindNoCandidate
	KindUnreachable
	KindUnexpected
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfiguration:
		return "configuration"
	case KindNoCandidate:
		return "no_candidate"
	case KindUnreachable:
		return "unreachable"
	default:
		return "unexpected"
	}
}

// KindOf classifies err. Anything unrecognised is KindUnexpected.
func KindOf(err error) ErrorKind {
	var f *Failure
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &f):
		return KindUnexpected
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, snap.ErrNoCandidate):
		return KindNoCandidate
	case errors.Is(err, ErrUnreachable):
		return KindUnreachable
	default:
		return KindUnexpected
	}
}
