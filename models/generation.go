package models

import (
	"time"
)

// FuelShare is one fuel's share of the generation mix for a single interval
type FuelShare struct {
	Fuel       string  `json:"fuel"` // fuel name as reported by the provider
	Percentage float64 `json:"perc"` // share of total generation, 0-100
}

// GenerationSample represents one half-hour generation-mix observation.
// Mix percentages cover all fuels, not just clean ones, and sum to ~100.
type GenerationSample struct {
	From time.Time   `json:"from"` // interval start (UTC, inclusive)
	To   time.Time   `json:"to"`   // interval end (UTC, exclusive)
	Mix  []FuelShare `json:"generationmix"`
}

// CleanMix returns the mix entries whose fuel is a clean energy source,
// preserving the provider's ordering.
func (s GenerationSample) CleanMix() []FuelShare {
	clean := make([]FuelShare, 0, len(s.Mix))
	for _, share := range s.Mix {
		if IsCleanSource(share.Fuel) {
			clean = append(clean, share)
		}
	}
	return clean
}

// CleanPercentage is the total clean-energy share of this sample.
// Duplicate fuel entries are summed as-is; no clamping is applied.
func (s GenerationSample) CleanPercentage() float64 {
	var total float64
	for _, share := range s.Mix {
		if IsCleanSource(share.Fuel) {
			total += share.Percentage
		}
	}
	return total
}
