package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chargecast/metrics"
	"chargecast/models"
)

// DefaultCarbonIntensityURL is the production endpoint of the UK National
// Grid Carbon Intensity API.
const DefaultCarbonIntensityURL = "https://api.carbonintensity.org.uk"

// instantLayout is the timestamp format the Carbon Intensity API uses in
// URLs and response bodies (minute precision, always UTC).
const instantLayout = "2006-01-02T15:04Z"

// CarbonIntensityProvider implements the GenerationProvider interface
type CarbonIntensityProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewCarbonIntensityProvider creates a new Carbon Intensity API provider.
// An empty baseURL selects the production endpoint.
func NewCarbonIntensityProvider(baseURL string, timeout time.Duration) *CarbonIntensityProvider {
	if baseURL == "" {
		baseURL = DefaultCarbonIntensityURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CarbonIntensityProvider{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (p *CarbonIntensityProvider) Name() string {
	return "CarbonIntensity"
}

// FetchGenerationMix fetches forecasted half-hour generation samples for
// [from, to) from the /generation/{from}/{to} endpoint.
func (p *CarbonIntensityProvider) FetchGenerationMix(ctx context.Context, from, to time.Time) (samples []models.GenerationSample, err error) {
	start := time.Now()
	defer func() {
		metrics.ObserveFetch(p.Name(), time.Since(start), err != nil)
	}()

	// Build URL
	endpoint := fmt.Sprintf("%s/generation/%s/%s",
		p.baseURL, from.UTC().Format(instantLayout), to.UTC().Format(instantLayout))

	// Create request
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// Read response body
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Check for error status code
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Parse response
	var response struct {
		Data []struct {
			From          string `json:"from"`
			To            string `json:"to"`
			GenerationMix []struct {
				Fuel string  `json:"fuel"`
				Perc float64 `json:"perc"`
			} `json:"generationmix"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	// Convert response to our model, preserving the chronological ordering
	// of the payload (the window scan depends on positional adjacency).
	samples = make([]models.GenerationSample, 0, len(response.Data))
	for _, item := range response.Data {
		sampleFrom, err := time.Parse(instantLayout, item.From)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sample start %q: %w", item.From, err)
		}
		sampleTo, err := time.Parse(instantLayout, item.To)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sample end %q: %w", item.To, err)
		}

		mix := make([]models.FuelShare, 0, len(item.GenerationMix))
		for _, share := range item.GenerationMix {
			mix = append(mix, models.FuelShare{
				Fuel:       share.Fuel,
				Percentage: share.Perc,
			})
		}

		samples = append(samples, models.GenerationSample{
			From: sampleFrom,
			To:   sampleTo,
			Mix:  mix,
		})
	}

	return samples, nil
}

// Verify that the provider implements the required interface
var _ GenerationProvider = (*CarbonIntensityProvider)(nil)
