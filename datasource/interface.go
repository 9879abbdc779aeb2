package datasource

import (
	"context"
	"time"

	"chargecast/models"
)

// Clock supplies the current instant. Injected so date arithmetic is
// deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, reporting wall-clock time in UTC.
type SystemClock struct{}

// Now returns the current UTC instant
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// GenerationProvider is an interface for services that can fetch
// forecasted generation-mix data
type GenerationProvider interface {
	// FetchGenerationMix fetches half-hour generation samples for [from, to).
	// A range the provider has no data for yields an empty slice, not an error.
	FetchGenerationMix(ctx context.Context, from, to time.Time) ([]models.GenerationSample, error)

	// Name returns the provider's name
	Name() string
}
