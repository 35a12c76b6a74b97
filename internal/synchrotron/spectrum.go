package synchrotron

import (
	"math"
	"sync"

	"github.com/astrosim/pulsarsed/internal/distribution"
	"github.com/astrosim/pulsarsed/internal/mathutil"
	"github.com/astrosim/pulsarsed/internal/physconst"
)

// FreqGridSize is the number of points in the photon frequency grid.
const FreqGridSize = 99

// FreqGrid returns the photon frequency grid in Hz, log-spaced over
// [1e7, 1e28].
func FreqGrid() []float64 {
	return mathutil.Logspace(7, 28, FreqGridSize)
}

// PowerTable is the radiated nu*L_nu power in erg/s per time step and
// frequency, derived from a particle distribution table.
type PowerTable struct {
	Times []float64   // seconds since disk entry
	Freqs []float64   // Hz
	Power [][]float64 // [time index][frequency index]
}

// Spectrum integrates single-particle emissivity against the particle
// distribution over the Lorentz-factor grid with a fixed-log-step
// Riemann sum, and scales by frequency to give nu*L_nu.
func Spectrum(dist *distribution.Table, freqs []float64, magField float64, k *Kernel) *PowerTable {
	gamma := dist.Gamma
	dln := math.Log(gamma[1]) - math.Log(gamma[0])

	// Single-particle emissivity P(nu, gamma), zero outside the
	// kernel domain.
	prefactor := math.Sqrt(3) * math.Pow(physconst.ElectricCharge, 3) * magField /
		(physconst.ElectronMass * physconst.SpeedLight * physconst.SpeedLight)
	xCoeff := 4 * math.Pi * physconst.ElectronMass * physconst.SpeedLight /
		(3 * physconst.ElectricCharge * magField)

	single := make([][]float64, len(freqs))
	for i, nu := range freqs {
		single[i] = make([]float64, len(gamma))
		for j, g := range gamma {
			x := xCoeff * nu / (g * g)
			single[i][j] = prefactor * k.F(x)
		}
	}

	out := &PowerTable{
		Times: dist.Times,
		Freqs: freqs,
		Power: make([][]float64, len(dist.Times)),
	}

	// Time steps are independent once the emissivity grid is built.
	var wg sync.WaitGroup
	for ti := range dist.Times {
		wg.Add(1)
		go func(ti int) {
			defer wg.Done()
			row := make([]float64, len(freqs))
			for fi, nu := range freqs {
				sum := 0.0
				for j, g := range gamma {
					sum += g * dln * single[fi][j] * dist.N[ti][j]
				}
				row[fi] = nu * sum
			}
			out.Power[ti] = row
		}(ti)
	}
	wg.Wait()
	return out
}
