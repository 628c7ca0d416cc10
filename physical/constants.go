// Package physical holds the physical constants used by the noise models.
package physical

// Boltzmann is the Boltzmann constant kB in J/K (exact, 2019 SI).
const Boltzmann = 1.380649e-23

// NanometersPerMeter converts metres to nanometres.
const NanometersPerMeter = 1e9

// MetersPerNanometer converts nanometres to metres.
const MetersPerNanometer = 1e-9
