package distribution

import (
	"math"
	"sort"

	"github.com/astrosim/pulsarsed/internal/mathutil"
	"github.com/astrosim/pulsarsed/internal/params"
)

// GridSize is the number of points in the Lorentz-factor grid.
const GridSize = 99

// GammaGrid returns the log-spaced Lorentz-factor grid on
// [1, gammaMax].
func GammaGrid(gammaMax float64) []float64 {
	return mathutil.Logspace(0, math.Log10(gammaMax), GridSize)
}

// TimeGridMode selects how the time grid relates to the pericenter
// crossing.
type TimeGridMode string

const (
	// TimeGridPericenter covers the disk crossing only.
	TimeGridPericenter TimeGridMode = "pericenter"
	// TimeGridExtended follows the cooling distribution past the
	// crossing out to the accretion timescale.
	TimeGridExtended TimeGridMode = "extended"
)

// pericenterFractions are the sampled times in units of the pericenter
// time.
var pericenterFractions = []float64{1e-6, 1e-4, 1e-2, 1}

// extendedFractions additionally sample the post-crossing cooling
// phase; the accretion time is merged in per parameter set.
var extendedFractions = []float64{1e-6, 1e-4, 1e-2, 1, 10, 50, 100}

// TimeGrid returns the time offsets, in seconds since disk entry, at
// which the distribution is evaluated. The grid is strictly ascending;
// a large alpha viscosity can place the accretion time inside the
// fixed fractions, so the merged grid is sorted and deduplicated.
func TimeGrid(mode TimeGridMode, d params.Derived) []float64 {
	var fractions []float64
	switch mode {
	case TimeGridExtended:
		fractions = append(append([]float64{}, extendedFractions...),
			d.AccretionTime/d.PericenterTime)
		sort.Float64s(fractions)
	default:
		fractions = pericenterFractions
	}
	times := make([]float64, 0, len(fractions))
	for _, f := range fractions {
		t := f * d.PericenterTime
		if n := len(times); n > 0 && t <= times[n-1] {
			continue
		}
		times = append(times, t)
	}
	return times
}
