package params

import (
	"math"

	"github.com/astrosim/pulsarsed/internal/physconst"
)

// Derived collects the quantities computed from a Params value. All
// scalings follow the parametric forms in Christie et al. 2017.
type Derived struct {
	// PericenterTime is the disk-crossing time at pericenter, s.
	PericenterTime float64 `yaml:"pericenter_time" json:"pericenter_time"`
	// AccretionTime is the disk accretion timescale, s.
	AccretionTime float64 `yaml:"accretion_time" json:"accretion_time"`
	// MagField is the field strength at the pericenter distance, G.
	MagField float64 `yaml:"mag_field" json:"mag_field"`
	// GammaMax is the Bohm-limited maximum Lorentz factor.
	GammaMax float64 `yaml:"gamma_max" json:"gamma_max"`
	// InjectionNorm normalizes the injected power-law distribution.
	InjectionNorm float64 `yaml:"injection_norm" json:"injection_norm"`
	// CoolingB is the synchrotron cooling coefficient b in 1/s, so
	// that a particle of Lorentz factor g cools as g/(1+b*g*t).
	CoolingB float64 `yaml:"cooling_b" json:"cooling_b"`
}

// Derive maps the input parameters to the derived constants. It is a
// pure function; pathological inputs produce non-finite values, which
// Validate guards against.
func (p Params) Derive() Derived {
	scale := (p.EpsilonB / 0.1) * (p.BondiNumDen / 100.0) * (p.BondiRadius / 1e17)

	tp := 3e7 * math.Pow(p.PericenterDist/1e16, 1.5)
	bfield := 0.007 * math.Sqrt(scale) / (p.PericenterDist / 1e16)
	gmax := 1.4e9 * math.Pow(scale, -0.25) * math.Sqrt(p.PericenterDist/1e16)

	norm := p.EpsilonE * p.SpinDownL * (p.ParticleSlope - 2) /
		(physconst.ElectronMass * physconst.SpeedLight * physconst.SpeedLight *
			(math.Pow(p.GammaMin, 2-p.ParticleSlope) - math.Pow(gmax, 2-p.ParticleSlope)))

	cool := bfield * bfield * physconst.ThomsonCrossSection /
		(6 * math.Pi * physconst.ElectronMass * physconst.SpeedLight)

	return Derived{
		PericenterTime: tp,
		AccretionTime:  600 * tp * (0.01 / p.AlphaViscosity),
		MagField:       bfield,
		GammaMax:       gmax,
		InjectionNorm:  norm,
		CoolingB:       cool,
	}
}

// GammaCool1 is the time-dependent cooling break descending from
// GammaMax: gc1(t) = gmax / (1 + t*b*gmax).
func (d Derived) GammaCool1(t float64) float64 {
	return d.GammaMax / (1 + t*d.CoolingB*d.GammaMax)
}

// GammaCool2 is the cooling break descending from gamma_min:
// gc2(t) = gmin / (1 + t*b*gmin).
func (d Derived) GammaCool2(gammaMin, t float64) float64 {
	return gammaMin / (1 + t*d.CoolingB*gammaMin)
}
