// Package distribution computes the evolving energy distribution of
// electrons accelerated at the pulsar-disk shock, following the
// injection/cooling solution of Christie et al. 2017 (eqns. 8 and 9).
package distribution

import (
	"fmt"
	"math"

	"github.com/astrosim/pulsarsed/internal/mathutil"
	"github.com/astrosim/pulsarsed/internal/params"
)

// Table is the particle distribution N(gamma, t) per unit Lorentz
// factor, one row per time step. Write-once, read-many.
type Table struct {
	Gamma []float64   // Lorentz-factor grid
	Times []float64   // seconds since disk entry
	N     [][]float64 // [time index][gamma index]
}

// Evolve computes the distribution table over the given grids. Rows at
// or before the pericenter time come from the four-branch cooling
// solution; later rows adiabatically remap the last crossing row, so
// at least one grid time must not exceed the pericenter time.
func Evolve(p params.Params, d params.Derived, gamma, times []float64) (*Table, error) {
	tbl := &Table{
		Gamma: gamma,
		Times: times,
		N:     make([][]float64, len(times)),
	}

	lastCrossing := -1
	for i, t := range times {
		if t <= d.PericenterTime {
			tbl.N[i] = injectionRow(p, d, gamma, t)
			lastCrossing = i
			continue
		}
		if lastCrossing < 0 {
			return nil, fmt.Errorf("distribution: time grid starts after the pericenter time %g", d.PericenterTime)
		}
		row, err := remapRow(d, gamma, tbl.N[lastCrossing], t-d.PericenterTime)
		if err != nil {
			return nil, err
		}
		tbl.N[i] = row
	}
	return tbl, nil
}

// Branch is a half-open Lorentz-factor range (Lo, Hi) on which one of
// the four piecewise solution terms applies. An empty range (Hi <= Lo)
// contributes nothing.
type Branch struct {
	Lo, Hi float64
}

// In reports whether g lies strictly inside the branch range.
func (br Branch) In(g float64) bool { return g > br.Lo && g < br.Hi }

// Empty reports whether the range selects no Lorentz factors.
func (br Branch) Empty() bool { return br.Hi <= br.Lo }

// Branches returns the four solution ranges at time t, in the order of
// eqn. 8: uncooled injection, cooled high-energy tail, the cooled pile
// below gamma_min, and the low-energy cooling tail.
func Branches(p params.Params, d params.Derived, t float64) [4]Branch {
	gc1 := d.GammaCool1(t)
	gc2 := d.GammaCool2(p.GammaMin, t)
	return [4]Branch{
		{Lo: p.GammaMin, Hi: gc1},
		{Lo: gc1, Hi: d.GammaMax},
		{Lo: gc1, Hi: p.GammaMin},
		{Lo: gc2, Hi: p.GammaMin},
	}
}

// injectionRow evaluates the piecewise solution during the crossing.
// Each term is computed only where its range predicate holds; a term
// whose cooling factor 1-b*g*t is non-positive has left the valid
// domain and contributes zero.
func injectionRow(p params.Params, d params.Derived, gamma []float64, t float64) []float64 {
	br := Branches(p, d, t)
	slope := p.ParticleSlope
	b := d.CoolingB

	row := make([]float64, len(gamma))
	for i, g := range gamma {
		sum := 0.0
		if br[0].In(g) {
			if u := 1 - b*g*t; u > 0 {
				sum += 1 - math.Pow(u, slope-1)
			}
		}
		if br[1].In(g) {
			sum += 1 - math.Pow(d.GammaMax/g, 1-slope)
		}
		if br[2].In(g) {
			sum += (1 - math.Pow(d.GammaMax/p.GammaMin, 1-slope)) *
				math.Pow(p.GammaMin/g, 1-slope)
		}
		if br[3].In(g) {
			if u := 1 - b*t*g; u > 0 {
				sum += math.Pow(p.GammaMin/g, 1-slope) - math.Pow(u, slope-1)
			}
		}
		row[i] = sum * d.InjectionNorm * math.Pow(g, -1-slope) / (b * (slope - 1))
	}
	return row
}

// remapRow evolves the last crossing row by the adiabatic-cooling
// transform of eqn. 9: N(g, t) = N_tp(g/g_t) / g_t^2 with
// g_t = 1 - b*g*(t - t_p). The source row is interpolated linearly
// over ln(gamma); queries outside its domain, and Lorentz factors
// whose g_t has gone non-positive, map to zero.
func remapRow(d params.Derived, gamma, base []float64, dt float64) ([]float64, error) {
	lng := make([]float64, len(gamma))
	for i, g := range gamma {
		lng[i] = math.Log(g)
	}
	interp, err := mathutil.NewInterp1D(lng, base, mathutil.ZeroFill)
	if err != nil {
		return nil, fmt.Errorf("distribution: %w", err)
	}

	row := make([]float64, len(gamma))
	for i, g := range gamma {
		gt := 1 - d.CoolingB*g*dt
		if gt <= 0 {
			continue
		}
		row[i] = interp.At(math.Log(g/gt)) / (gt * gt)
	}
	return row, nil
}

// TotalParticles integrates row i over the Lorentz-factor grid with
// the fixed-log-step Riemann rule shared with the spectrum engine.
func (t *Table) TotalParticles(i int) float64 {
	if len(t.Gamma) < 2 {
		return 0
	}
	dln := math.Log(t.Gamma[1]) - math.Log(t.Gamma[0])
	sum := 0.0
	for j, g := range t.Gamma {
		sum += g * dln * t.N[i][j]
	}
	return sum
}
