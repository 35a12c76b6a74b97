// Package synchrotron computes single-particle synchrotron emissivity
// from the standard spectral kernel F(x) and integrates it against a
// particle distribution to produce the radiated nu*L_nu spectrum.
package synchrotron

import (
	"fmt"
	"math"

	"github.com/astrosim/pulsarsed/internal/mathutil"
)

const (
	// KernelXMin and KernelXMax bound the tabulated frequency ratio
	// x = nu/nu_c. F(x) is negligible outside this range and treated
	// as zero there.
	KernelXMin = 1e-20
	KernelXMax = 1e2

	// KernelGridSize is the number of tabulated x values.
	KernelGridSize = 99

	// kernelUpperBound truncates the infinite tail of the defining
	// integral; K_5/3 at this argument is far below double precision.
	kernelUpperBound = 1e5
)

// Kernel is the tabulated synchrotron spectral shape F(x), interpolated
// linearly in log10-log10 space. Immutable after construction.
type Kernel struct {
	interp *mathutil.Interp1D
	log10X []float64
	log10F []float64
}

// Build tabulates F(x) = x * int_x^inf K_5/3(y) dy on a log grid over
// [KernelXMin, KernelXMax] by adaptive quadrature in ln-space.
func Build() *Kernel {
	log10X := mathutil.Linspace(math.Log10(KernelXMin), math.Log10(KernelXMax), KernelGridSize)
	log10F := make([]float64, KernelGridSize)
	for i, lx := range log10X {
		x := math.Pow(10, lx)
		integral := mathutil.AdaptiveSimpson(func(u float64) float64 {
			y := math.Exp(u)
			return y * mathutil.BesselK(5.0/3.0, y)
		}, math.Log(x), math.Log(kernelUpperBound), 1e-10)
		log10F[i] = math.Log10(x * integral)
	}
	k, err := FromTable(log10X, log10F)
	if err != nil {
		// The built grid is ascending by construction.
		panic(fmt.Sprintf("synchrotron: building kernel: %v", err))
	}
	return k
}

// FromTable constructs the kernel from precomputed log10(x), log10(F)
// columns, e.g. loaded from the flat tables shipped with the tool.
func FromTable(log10X, log10F []float64) (*Kernel, error) {
	interp, err := mathutil.NewInterp1D(log10X, log10F, mathutil.ZeroFill)
	if err != nil {
		return nil, fmt.Errorf("synchrotron: kernel table: %w", err)
	}
	cx := make([]float64, len(log10X))
	cf := make([]float64, len(log10F))
	copy(cx, log10X)
	copy(cf, log10F)
	return &Kernel{interp: interp, log10X: cx, log10F: cf}, nil
}

// F evaluates the kernel at frequency ratio x. Ratios outside the
// tabulated domain contribute zero emissivity.
func (k *Kernel) F(x float64) float64 {
	if x < KernelXMin || x > KernelXMax {
		return 0
	}
	return math.Pow(10, k.interp.At(math.Log10(x)))
}

// Table returns copies of the tabulated log10(x) and log10(F) columns.
func (k *Kernel) Table() (log10X, log10F []float64) {
	cx := make([]float64, len(k.log10X))
	cf := make([]float64, len(k.log10F))
	copy(cx, k.log10X)
	copy(cf, k.log10F)
	return cx, cf
}
