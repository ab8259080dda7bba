// Package pipeline chains the demographics loader and the air quality enricher
// into one run and reports what happened.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/giygas/city-airquality/airquality"
	"github.com/giygas/city-airquality/config"
	"github.com/giygas/city-airquality/dataset"
	"github.com/giygas/city-airquality/demographics"
	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/interfaces"
	"github.com/giygas/city-airquality/logging"
	"github.com/giygas/city-airquality/metrics"
	"github.com/giygas/city-airquality/validation"
)

// Compile-time check to ensure Pipeline implements Runner
var _ interfaces.Runner = (*Pipeline)(nil)

// Pipeline loads demographics then enriches every city with air quality data
type Pipeline struct {
	demographics interfaces.DemographicsSource
	enricher     *airquality.Enricher
}

// New creates a pipeline from its two stages
func New(demographics interfaces.DemographicsSource, enricher *airquality.Enricher) *Pipeline {
	return &Pipeline{demographics: demographics, enricher: enricher}
}

// FromConfig wires the HTTP-backed stages described by cfg
func FromConfig(cfg *config.Config) *Pipeline {
	client := &http.Client{Timeout: cfg.HTTPTimeout}
	return New(
		demographics.NewLoader(client, cfg.DemographicsURL),
		airquality.NewEnricher(airquality.NewClient(client, cfg.AirQualityURL, cfg.AirQualityAPIKey), cfg.OutputFile),
	)
}

// LoadDemographics runs the first stage only
func (p *Pipeline) LoadDemographics(ctx context.Context) (*dataset.Table, error) {
	table, err := p.demographics.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load demographics: %w", err)
	}
	return table, nil
}

// Enrich runs the second stage over the cities of table
func (p *Pipeline) Enrich(ctx context.Context, table *dataset.Table) (*airquality.Result, int, error) {
	cities, err := demographics.Cities(table)
	if err != nil {
		return nil, 0, err
	}

	result, err := p.enricher.Enrich(ctx, cities)
	if err != nil {
		return nil, len(cities), fmt.Errorf("failed to enrich air quality: %w", err)
	}
	return result, len(cities), nil
}

// Run executes both stages in sequence. The returned report is never nil and
// carries the error message when the run failed.
func (p *Pipeline) Run(ctx context.Context) (*entities.RunReport, error) {
	report := &entities.RunReport{StartedAt: time.Now()}
	logging.Info("Pipeline run started", "started_at", report.StartedAt.Format(time.RFC3339))

	err := p.run(ctx, report)
	report.FinishedAt = time.Now()

	metrics.RunDuration.Observe(report.Duration().Seconds())
	if err != nil {
		report.Error = err.Error()
		metrics.RunsTotal.WithLabelValues("error").Inc()
		return report, err
	}

	metrics.RunsTotal.WithLabelValues("success").Inc()
	logging.Info("Pipeline run completed",
		"duration", report.Duration().String(),
		"demographic_rows", report.DemographicRows,
		"cities", report.Cities,
		"samples", report.Samples,
		"skipped", len(report.Skipped),
		"output", report.Output)

	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *entities.RunReport) error {
	table, err := p.LoadDemographics(ctx)
	if err != nil {
		return err
	}
	report.DemographicRows = table.Len()

	result, cities, err := p.Enrich(ctx, table)
	report.Cities = cities
	if err != nil {
		return err
	}

	report.Samples = len(result.Samples)
	report.Skipped = result.Skipped
	report.Output = result.Output

	report.Quality = validation.ReportDataQuality(result.Samples)
	if !report.Quality.Clean() {
		logging.Warn("Air quality data has gaps",
			"without_aqi", report.Quality.WithoutAQI,
			"missing_pollutants", report.Quality.MissingPollutants,
			"invalid", report.Quality.InvalidSamples,
			"duplicates", len(report.Quality.DuplicateCities))
	}
	return nil
}
