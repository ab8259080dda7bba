package airquality

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/interfaces"
	"github.com/giygas/city-airquality/logging"
)

// Result is the outcome of one enrichment pass
type Result struct {
	Samples []entities.AirQualitySample
	Skipped []entities.SkippedCity
	Output  string
}

// Enricher looks up every city one after the other and writes the samples to Output
type Enricher struct {
	source interfaces.AirQualitySource
	output string
}

// NewEnricher creates an enricher writing to output
func NewEnricher(source interfaces.AirQualitySource, output string) *Enricher {
	return &Enricher{source: source, output: output}
}

// OrderCities returns the distinct non-empty cities in ascending order.
// This is the order requests are sent in and rows are written in.
func OrderCities(cities []string) []string {
	ordered := make([]string, 0, len(cities))
	for _, c := range cities {
		if c != "" {
			ordered = append(ordered, c)
		}
	}
	slices.Sort(ordered)
	return slices.Compact(ordered)
}

// Enrich fetches every city sequentially. Cities answered with a non-200 status
// are logged and left out; any other error stops the pass and nothing is written.
func (e *Enricher) Enrich(ctx context.Context, cities []string) (*Result, error) {
	start := time.Now()
	ordered := OrderCities(cities)

	result := &Result{
		Samples: make([]entities.AirQualitySample, 0, len(ordered)),
		Output:  e.output,
	}

	for i, city := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enrichment stopped after %d of %d cities: %w", i, len(ordered), err)
		}

		sample, err := e.source.Fetch(ctx, city)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				logging.Warn("Air quality lookup failed, skipping city",
					"city", city,
					"status", statusErr.StatusCode,
					"body", statusErr.Body)
				result.Skipped = append(result.Skipped, entities.SkippedCity{City: city, StatusCode: statusErr.StatusCode})
				continue
			}
			return nil, err
		}

		sample.City = city
		result.Samples = append(result.Samples, *sample)
		logging.Debug("Air quality sample collected", "city", city, "progress", fmt.Sprintf("%d/%d", i+1, len(ordered)))
	}

	if err := WriteCSV(e.output, result.Samples); err != nil {
		return nil, err
	}

	logging.Info("Air quality enrichment completed",
		"cities", len(ordered),
		"samples", len(result.Samples),
		"skipped", len(result.Skipped),
		"output", e.output,
		"duration", time.Since(start).String())

	return result, nil
}
