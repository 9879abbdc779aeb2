package models

// EnergySource identifies a generation fuel classified as clean energy.
// The value is the fuel name used by the Carbon Intensity API.
type EnergySource string

// The closed set of fuels counted as clean energy.
const (
	Biomass EnergySource = "biomass"
	Nuclear EnergySource = "nuclear"
	Hydro   EnergySource = "hydro"
	Wind    EnergySource = "wind"
	Solar   EnergySource = "solar"
)

var cleanSources = map[string]struct{}{
	string(Biomass): {},
	string(Nuclear): {},
	string(Hydro):   {},
	string(Wind):    {},
	string(Solar):   {},
}

// IsCleanSource reports whether fuel names a clean energy source.
// Matching is exact and case-sensitive.
func IsCleanSource(fuel string) bool {
	_, ok := cleanSources[fuel]
	return ok
}

// CleanSources returns the clean fuel names in a stable order.
func CleanSources() []EnergySource {
	return []EnergySource{Biomass, Nuclear, Hydro, Wind, Solar}
}
