package params

import "sort"

// Presets are the named parameter sets shipped with the tool.
// "ir-flare" reproduces the short pericenter-only IR flare setup;
// "single-pulsar" is the full Sgr A* encounter followed out to the
// accretion timescale.
var Presets = map[string]Params{
	"ir-flare": {
		SpinDownL:      1e35,
		ParticleSlope:  2.2,
		EpsilonE:       0.1,
		EpsilonB:       0.1,
		BondiNumDen:    100,
		GammaMin:       100,
		PericenterDist: 1e15,
		BondiRadius:    1e17,
		AlphaViscosity: 0.01,
	},
	"single-pulsar": {
		SpinDownL:      3e35,
		ParticleSlope:  2.2,
		EpsilonE:       0.1,
		EpsilonB:       0.1,
		BondiNumDen:    100,
		GammaMin:       1e3,
		PericenterDist: 5e16,
		BondiRadius:    1e17,
		AlphaViscosity: 0.01,
	},
}

func GetPreset(name string) (Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
