// Package mathutil provides the numerical kernels used by the flare
// model: log-spaced grids, 1D linear interpolation, adaptive quadrature
// and the modified Bessel function of the second kind.
package mathutil

import "math"

// Logspace returns n values spaced evenly on a log10 scale between
// 10^lo and 10^hi inclusive.
func Logspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = math.Pow(10, lo)
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = math.Pow(10, lo+float64(i)*step)
	}
	return out
}

// Linspace returns n values spaced evenly between lo and hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
