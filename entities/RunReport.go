package entities

import "time"

// SkippedCity is a city whose air quality lookup returned a non-200 status
type SkippedCity struct {
	City       string `json:"city"`
	StatusCode int    `json:"statusCode"`
}

// RunReport summarises one pipeline run
type RunReport struct {
	StartedAt       time.Time          `json:"startedAt"`
	FinishedAt      time.Time          `json:"finishedAt"`
	DemographicRows int                `json:"demographicRows"`
	Cities          int                `json:"cities"`
	Samples         int                `json:"samples"`
	Skipped         []SkippedCity      `json:"skipped"`
	Output          string             `json:"output"`
	Quality         *DataQualityReport `json:"quality,omitempty"`
	Error           string             `json:"error,omitempty"`
}

// Succeeded reports whether the run wrote its output
func (r *RunReport) Succeeded() bool {
	return r != nil && r.Error == "" && !r.FinishedAt.IsZero()
}

// Duration returns the wall time of the run
func (r *RunReport) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
