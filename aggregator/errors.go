package aggregator

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData means the provider returned no samples for the requested range.
	ErrNoData = errors.New("No generation data found for the requested period.")

	// ErrInsufficientData means the provider returned data, but fewer samples
	// than the requested window requires.
	ErrInsufficientData = errors.New("Not enough data to calculate the optimal window")

	// ErrProviderUnavailable wraps a transport-level failure of the provider.
	ErrProviderUnavailable = errors.New("Failed to fetch data from CarbonIntensity API")
)

// InvalidWindowError reports a requested charging window length outside the
// supported range.
type InvalidWindowError struct {
	Hours int
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("Charging window length must be between %d and %d hours", minWindowHours, maxWindowHours)
}
