// Package physconst defines physical constants in CGS units, the unit
// system used throughout the pulsar-disk model.
package physconst

const (
	// ElectronMass is the electron rest mass in grams.
	ElectronMass = 9.10938e-28

	// SpeedLight is the speed of light in cm/s.
	SpeedLight = 3e10

	// ThomsonCrossSection is the Thomson cross-section in cm^2.
	ThomsonCrossSection = 6.6524e-25

	// ElectricCharge is the elementary charge in statcoulomb.
	ElectricCharge = 4.8032068e-10
)
