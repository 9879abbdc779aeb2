package models

import (
	"time"
)

// DailySummary holds the average clean-energy shares for one calendar day
type DailySummary struct {
	Date                  string             `json:"date"`               // calendar day, "2006-01-02" (UTC)
	AverageMixBySource    map[string]float64 `json:"averageMixBySource"` // clean fuel -> average percentage
	CleanEnergyPercentage float64            `json:"cleanEnergyPercentage"`
}

// ChargingWindow is the recommended contiguous charging period with the
// highest average clean-energy share.
type ChargingWindow struct {
	Start                        time.Time `json:"start"`
	End                          time.Time `json:"end"`
	AverageCleanEnergyPercentage float64   `json:"averageCleanEnergyPercentage"`
}
