package datasource

import (
	"context"
	"fmt"
	"time"

	"chargecast/models"

	"golang.org/x/time/rate"
)

// RateLimitedProvider wraps a GenerationProvider with rate limiting
type RateLimitedProvider struct {
	provider GenerationProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimitedProvider creates a new rate limited generation provider
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedProvider(provider GenerationProvider, rps float64, burst int) *RateLimitedProvider {
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [Rate Limited]", provider.Name()),
	}
}

// FetchGenerationMix fetches generation data, respecting rate limits
func (r *RateLimitedProvider) FetchGenerationMix(ctx context.Context, from, to time.Time) ([]models.GenerationSample, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying provider
	return r.provider.FetchGenerationMix(ctx, from, to)
}

// Name returns the provider name
func (r *RateLimitedProvider) Name() string {
	return r.name
}

// Verify that the rate limited provider implements the required interface
var _ GenerationProvider = (*RateLimitedProvider)(nil)
