package params

import (
	"math"
	"path/filepath"
	"testing"
)

func relErr(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

func TestDerive(t *testing.T) {
	p, ok := GetPreset("ir-flare")
	if !ok {
		t.Fatal("ir-flare preset missing")
	}
	d := p.Derive()

	tests := []struct {
		name      string
		got, want float64
	}{
		{"pericenter_time", d.PericenterTime, 9.4868329805e+05},
		{"accretion_time", d.AccretionTime, 600 * 9.4868329805e+05},
		{"mag_field", d.MagField, 0.07},
		{"gamma_max", d.GammaMax, 4.4271887242e+08},
		{"injection_norm", d.InjectionNorm, 6.4289581710e+39},
		{"cooling_b", d.CoolingB, 6.3279528998e-12},
	}
	for _, tt := range tests {
		if relErr(tt.got, tt.want) > 1e-8 {
			t.Errorf("%s: expected %.10e, got %.10e", tt.name, tt.want, tt.got)
		}
	}
}

func TestCoolingBreaks(t *testing.T) {
	p := Presets["ir-flare"]
	d := p.Derive()

	// At t=0 the breaks sit at the distribution extremes.
	if got := d.GammaCool1(0); relErr(got, d.GammaMax) > 1e-14 {
		t.Errorf("gc1(0): expected gamma_max %g, got %g", d.GammaMax, got)
	}
	if got := d.GammaCool2(p.GammaMin, 0); relErr(got, p.GammaMin) > 1e-14 {
		t.Errorf("gc2(0): expected gamma_min %g, got %g", p.GammaMin, got)
	}

	// At the pericenter time the cooled break has moved well below
	// gamma_max.
	gc1 := d.GammaCool1(d.PericenterTime)
	if gc1 >= d.GammaMax {
		t.Errorf("gc1(tp) %g should be below gamma_max %g", gc1, d.GammaMax)
	}
	if relErr(gc1, 1.6651452799e+05) > 1e-8 {
		t.Errorf("gc1(tp): expected 1.6651e5, got %g", gc1)
	}
	if gc2 := d.GammaCool2(p.GammaMin, d.PericenterTime); relErr(gc2, 9.9940003785e+01) > 1e-8 {
		t.Errorf("gc2(tp): expected 99.94, got %g", gc2)
	}

	// Breaks decrease monotonically with time.
	prev := math.Inf(1)
	for _, tv := range []float64{0, 1, 1e3, 1e6, 1e9} {
		g := d.GammaCool1(tv)
		if g > prev {
			t.Fatalf("gc1 not non-increasing at t=%g", tv)
		}
		prev = g
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero luminosity", func(p *Params) { p.SpinDownL = 0 }},
		{"slope at 2", func(p *Params) { p.ParticleSlope = 2 }},
		{"epsilon_e above 1", func(p *Params) { p.EpsilonE = 1.5 }},
		{"negative epsilon_b", func(p *Params) { p.EpsilonB = -0.1 }},
		{"zero density", func(p *Params) { p.BondiNumDen = 0 }},
		{"gamma_min below 1", func(p *Params) { p.GammaMin = 0.5 }},
		{"zero pericenter", func(p *Params) { p.PericenterDist = 0 }},
		{"zero bondi radius", func(p *Params) { p.BondiRadius = 0 }},
		{"zero viscosity", func(p *Params) { p.AlphaViscosity = 0 }},
		{"gamma_min above gamma_max", func(p *Params) { p.GammaMin = 1e12 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		p, ok := GetPreset(name)
		if !ok {
			t.Fatalf("preset %s missing", name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if _, ok := GetPreset("nonexistent"); ok {
		t.Error("expected miss for nonexistent preset")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")

	p := Presets["single-pulsar"]
	if err := Save(path, p); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != p {
		t.Errorf("roundtrip mismatch: expected %+v, got %+v", p, got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
