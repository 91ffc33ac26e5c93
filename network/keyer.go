// SPDX-License-Identifier: MIT
package network

import (
	"errors"
	"math"
	"strconv"

	"github.com/paulmach/orb"
)

// DefaultPrecision is the number of decimals kept by DefaultKeyer.
const DefaultPrecision = 9

// MaxPrecision bounds Keyer precision; float64 carries ~15 significant digits.
const MaxPrecision = 15

// ErrBadPrecision indicates a Keyer precision outside [0, MaxPrecision].
var ErrBadPrecision = errors.New("network: precision out of range")

// Keyer maps coordinates to canonical vertex ids.
// Two points that round to the same decimals share one vertex.
type Keyer struct {
	precision int
	scale     float64
}

// NewKeyer returns a Keyer rounding to precision decimals.
func NewKeyer(precision int) (Keyer, error) {
	if precision < 0 || precision > MaxPrecision {
		return Keyer{}, ErrBadPrecision
	}

	return Keyer{precision: precision, scale: math.Pow10(precision)}, nil
}

// DefaultKeyer returns a Keyer with DefaultPrecision.
func DefaultKeyer() Keyer {
	k, _ := NewKeyer(DefaultPrecision)

	return k
}

// Precision returns the number of decimals kept.
func (k Keyer) Precision() int { return k.precision }

// Key returns the vertex id of p, e.g. "10.000000000 0.000000000".
func (k Keyer) Key(p orb.Point) string {
	if k.scale == 0 {
		k = DefaultKeyer()
	}
	buf := make([]byte, 0, 48)
	buf = strconv.AppendFloat(buf, k.round(p[0]), 'f', k.precision, 64)
	buf = append(buf, ' ')
	buf = strconv.AppendFloat(buf, k.round(p[1]), 'f', k.precision, 64)

	return string(buf)
}

// Canonical returns p rounded the same way Key rounds it.
func (k Keyer) Canonical(p orb.Point) orb.Point {
	if k.scale == 0 {
		k = DefaultKeyer()
	}

	return orb.Point{k.round(p[0]), k.round(p[1])}
}

func (k Keyer) round(v float64) float64 {
	r := math.Round(v*k.scale) / k.scale
	if r == 0 {
		return 0 // drop negative zero
	}

	return r
}
