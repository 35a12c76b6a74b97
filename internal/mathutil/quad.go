package mathutil

import "math"

const maxQuadDepth = 50

// AdaptiveSimpson integrates f over [a, b] by recursive Simpson
// bisection, refining until the local error estimate falls below tol
// relative to the running whole-interval estimate.
func AdaptiveSimpson(f func(float64) float64, a, b, tol float64) float64 {
	fa, fb := f(a), f(b)
	m := 0.5 * (a + b)
	fm := f(m)
	whole := simpson(fa, fm, fb, a, b)
	eps := tol * math.Max(math.Abs(whole), 1e-300)
	return simpsonRec(f, a, b, fa, fm, fb, whole, eps, maxQuadDepth)
}

func simpson(fa, fm, fb, a, b float64) float64 {
	return (b - a) / 6.0 * (fa + 4*fm + fb)
}

func simpsonRec(f func(float64) float64, a, b, fa, fm, fb, whole, eps float64, depth int) float64 {
	m := 0.5 * (a + b)
	lm := 0.5 * (a + m)
	rm := 0.5 * (m + b)
	flm, frm := f(lm), f(rm)
	left := simpson(fa, flm, fm, a, m)
	right := simpson(fm, frm, fb, m, b)
	if depth <= 0 || math.Abs(left+right-whole) <= 15*eps {
		// Richardson extrapolation term.
		return left + right + (left+right-whole)/15.0
	}
	return simpsonRec(f, a, m, fa, flm, fm, left, eps/2, depth-1) +
		simpsonRec(f, m, b, fm, frm, fb, right, eps/2, depth-1)
}
