// Package params holds the physical input parameters of the pulsar-disk
// encounter and the quantities derived from them.
package params

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSpinDownL      = 1e35
	DefaultParticleSlope  = 2.2
	DefaultEpsilonE       = 0.1
	DefaultEpsilonB       = 0.1
	DefaultBondiNumDen    = 100.0
	DefaultGammaMin       = 100.0
	DefaultPericenterDist = 1e15
	DefaultBondiRadius    = 1e17
	DefaultAlphaViscosity = 0.01
)

// Params is the full set of free inputs of the model, in CGS units.
// A Params value is never mutated after construction.
type Params struct {
	// SpinDownL is the pulsar spin-down luminosity in erg/s.
	SpinDownL float64 `yaml:"spin_down_luminosity"`
	// ParticleSlope is the power-law index p of the injected
	// distribution; the model requires p > 2.
	ParticleSlope float64 `yaml:"particle_slope"`
	// EpsilonE and EpsilonB are the fractions of the shock energy in
	// accelerated electrons and magnetic fields.
	EpsilonE float64 `yaml:"epsilon_e"`
	EpsilonB float64 `yaml:"epsilon_b"`
	// BondiNumDen is the particle number density at the Bondi radius
	// in cm^-3.
	BondiNumDen float64 `yaml:"bondi_num_den"`
	// GammaMin is the minimum Lorentz factor of the injected
	// distribution.
	GammaMin float64 `yaml:"gamma_min"`
	// PericenterDist and BondiRadius are in cm.
	PericenterDist float64 `yaml:"pericenter_dist"`
	BondiRadius    float64 `yaml:"bondi_radius"`
	// AlphaViscosity is the disk alpha-viscosity parameter, used for
	// the accretion timescale.
	AlphaViscosity float64 `yaml:"alpha_viscosity"`
}

func Default() Params {
	return Params{
		SpinDownL:      DefaultSpinDownL,
		ParticleSlope:  DefaultParticleSlope,
		EpsilonE:       DefaultEpsilonE,
		EpsilonB:       DefaultEpsilonB,
		BondiNumDen:    DefaultBondiNumDen,
		GammaMin:       DefaultGammaMin,
		PericenterDist: DefaultPericenterDist,
		BondiRadius:    DefaultBondiRadius,
		AlphaViscosity: DefaultAlphaViscosity,
	}
}

// Validate rejects parameter combinations for which the derived
// quantities are non-finite or non-physical.
func (p Params) Validate() error {
	if p.SpinDownL <= 0 {
		return fmt.Errorf("spin-down luminosity must be positive, got %g", p.SpinDownL)
	}
	if p.ParticleSlope <= 2 {
		return fmt.Errorf("particle slope must exceed 2, got %g", p.ParticleSlope)
	}
	if p.EpsilonE <= 0 || p.EpsilonE > 1 {
		return fmt.Errorf("epsilon_e must be in (0, 1], got %g", p.EpsilonE)
	}
	if p.EpsilonB <= 0 || p.EpsilonB > 1 {
		return fmt.Errorf("epsilon_b must be in (0, 1], got %g", p.EpsilonB)
	}
	if p.BondiNumDen <= 0 {
		return fmt.Errorf("bondi number density must be positive, got %g", p.BondiNumDen)
	}
	if p.GammaMin <= 1 {
		return fmt.Errorf("gamma_min must exceed 1, got %g", p.GammaMin)
	}
	if p.PericenterDist <= 0 {
		return fmt.Errorf("pericenter distance must be positive, got %g", p.PericenterDist)
	}
	if p.BondiRadius <= 0 {
		return fmt.Errorf("bondi radius must be positive, got %g", p.BondiRadius)
	}
	if p.AlphaViscosity <= 0 {
		return fmt.Errorf("alpha viscosity must be positive, got %g", p.AlphaViscosity)
	}
	d := p.Derive()
	if p.GammaMin >= d.GammaMax {
		return fmt.Errorf("gamma_min %g must lie below gamma_max %g", p.GammaMin, d.GammaMax)
	}
	return nil
}

func Load(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, err
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, err
	}
	return p, nil
}

func Save(path string, p Params) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
