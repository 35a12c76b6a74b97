package mathutil

import (
	"fmt"
	"sort"
)

// OutOfRange selects what an Interp1D returns for query points outside
// its abscissa domain.
type OutOfRange int

const (
	// ZeroFill returns 0 outside the domain.
	ZeroFill OutOfRange = iota
	// Clamp returns the boundary ordinate outside the domain.
	Clamp
)

// Interp1D is a piecewise-linear interpolant over strictly ascending
// abscissae. It is immutable after construction.
type Interp1D struct {
	xs, ys []float64
	oob    OutOfRange
}

// NewInterp1D builds a linear interpolant from parallel x/y slices.
// The x values must be strictly ascending.
func NewInterp1D(xs, ys []float64, oob OutOfRange) (*Interp1D, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("interp: length mismatch: %d x vs %d y", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("interp: need at least 2 points, got %d", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("interp: abscissae not strictly ascending at index %d", i)
		}
	}
	cx := make([]float64, len(xs))
	cy := make([]float64, len(ys))
	copy(cx, xs)
	copy(cy, ys)
	return &Interp1D{xs: cx, ys: cy, oob: oob}, nil
}

// Min returns the smallest abscissa.
func (p *Interp1D) Min() float64 { return p.xs[0] }

// Max returns the largest abscissa.
func (p *Interp1D) Max() float64 { return p.xs[len(p.xs)-1] }

// In reports whether x lies inside the interpolation domain.
func (p *Interp1D) In(x float64) bool { return x >= p.xs[0] && x <= p.xs[len(p.xs)-1] }

// At evaluates the interpolant at x.
func (p *Interp1D) At(x float64) float64 {
	n := len(p.xs)
	if x < p.xs[0] {
		if p.oob == Clamp {
			return p.ys[0]
		}
		return 0
	}
	if x > p.xs[n-1] {
		if p.oob == Clamp {
			return p.ys[n-1]
		}
		return 0
	}
	// Index of the first abscissa strictly greater than x.
	i := sort.SearchFloat64s(p.xs, x)
	if i < n && p.xs[i] == x {
		return p.ys[i]
	}
	lo, hi := i-1, i
	t := (x - p.xs[lo]) / (p.xs[hi] - p.xs[lo])
	return p.ys[lo] + t*(p.ys[hi]-p.ys[lo])
}
