package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"chargecast/datasource"
	"chargecast/models"
)

const (
	// dayLayout is the partition key format for daily grouping
	dayLayout = "2006-01-02"

	// samplesPerHour reflects the provider's half-hour bucketing
	samplesPerHour = 2

	threeDayLookahead = 3
	windowLookahead   = 2

	minWindowHours = 1
	maxWindowHours = 6
)

// Aggregator derives clean-energy summaries from forecasted generation-mix
// data. It is stateless and safe for concurrent use.
type Aggregator struct {
	provider datasource.GenerationProvider
	clock    datasource.Clock
	logger   *slog.Logger
}

// New creates an Aggregator with the given collaborators. A nil logger
// falls back to slog.Default.
func New(provider datasource.GenerationProvider, clock datasource.Clock, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		provider: provider,
		clock:    clock,
		logger:   logger,
	}
}

// ThreeDayAverages fetches forecasted generation data for the next three days
// and calculates, per calendar day, the average share of each clean energy
// source and the total clean energy percentage.
func (a *Aggregator) ThreeDayAverages(ctx context.Context) ([]models.DailySummary, error) {
	samples, err := a.fetchRange(ctx, threeDayLookahead)
	if err != nil {
		return nil, err
	}

	// Partition by the UTC calendar date of each sample's start instant
	byDate := make(map[string][]models.GenerationSample)
	for _, sample := range samples {
		day := sample.From.UTC().Format(dayLayout)
		byDate[day] = append(byDate[day], sample)
	}

	summaries := make([]models.DailySummary, 0, len(byDate))
	for day, group := range byDate {
		avgMix := averageCleanMix(group)

		var cleanTotal float64
		for _, avg := range avgMix {
			cleanTotal += avg
		}

		summaries = append(summaries, models.DailySummary{
			Date:                  day,
			AverageMixBySource:    avgMix,
			CleanEnergyPercentage: cleanTotal,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date < summaries[j].Date
	})

	return summaries, nil
}

// averageCleanMix averages each clean fuel's share across all samples in the
// group. The divisor is the group's total sample count: a fuel missing from
// a sample contributes zero rather than shrinking its own divisor.
func averageCleanMix(samples []models.GenerationSample) map[string]float64 {
	sums := make(map[string]float64)
	for _, sample := range samples {
		for _, share := range sample.CleanMix() {
			sums[share.Fuel] += share.Percentage
		}
	}

	count := float64(len(samples))
	averages := make(map[string]float64, len(sums))
	for fuel, sum := range sums {
		averages[fuel] = sum / count
	}
	return averages
}

// OptimalChargingWindow finds the contiguous window of the given length in
// hours, within the next two days, that maximizes the average clean-energy
// share. Ties resolve to the earliest window.
func (a *Aggregator) OptimalChargingWindow(ctx context.Context, hours int) (models.ChargingWindow, error) {
	if hours < minWindowHours || hours > maxWindowHours {
		return models.ChargingWindow{}, &InvalidWindowError{Hours: hours}
	}

	samples, err := a.fetchRange(ctx, windowLookahead)
	if err != nil {
		return models.ChargingWindow{}, err
	}

	windowSize := hours * samplesPerHour
	if len(samples) < windowSize {
		return models.ChargingWindow{}, fmt.Errorf("%w: have %d samples, need %d",
			ErrInsufficientData, len(samples), windowSize)
	}

	clean := make([]float64, len(samples))
	for i, sample := range samples {
		clean[i] = sample.CleanPercentage()
	}

	// Fixed-size sliding accumulator. Strict > keeps the earliest window
	// when two windows share the same total.
	var sum float64
	for i := 0; i < windowSize; i++ {
		sum += clean[i]
	}
	bestSum := sum
	bestStart := 0
	for i := 1; i+windowSize <= len(clean); i++ {
		sum += clean[i+windowSize-1] - clean[i-1]
		if sum > bestSum {
			bestSum = sum
			bestStart = i
		}
	}

	window := models.ChargingWindow{
		Start:                        samples[bestStart].From,
		End:                          samples[bestStart+windowSize-1].To,
		AverageCleanEnergyPercentage: bestSum / float64(windowSize),
	}

	a.logger.Debug("optimal charging window found",
		"hours", hours,
		"start", window.Start,
		"end", window.End,
		"averageCleanEnergyPercentage", window.AverageCleanEnergyPercentage)

	return window, nil
}

// fetchRange requests samples for [now, now+days) and validates the result.
func (a *Aggregator) fetchRange(ctx context.Context, days int) ([]models.GenerationSample, error) {
	from := a.clock.Now()
	to := from.AddDate(0, 0, days)

	samples, err := a.provider.FetchGenerationMix(ctx, from, to)
	if err != nil {
		a.logger.Error("generation fetch failed",
			"provider", a.provider.Name(),
			"days", days,
			"error", err)
		return nil, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}

	if len(samples) == 0 {
		return nil, ErrNoData
	}

	a.logger.Debug("generation data fetched",
		"provider", a.provider.Name(),
		"samples", len(samples),
		"days", days)

	return samples, nil
}
