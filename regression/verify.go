package regression

import (
	"context"
	"fmt"

	"github.com/giygas/city-airquality/airquality"
	"github.com/giygas/city-airquality/pipeline"
)

// Verify runs both scenarios in sequence and stops at the first failure:
// the demographics digest, then a full enrichment checked against PinnedAirQuality.
func Verify(ctx context.Context, p *pipeline.Pipeline, digest string) error {
	table, err := p.LoadDemographics(ctx)
	if err != nil {
		return err
	}

	if err := CheckDemographics(table, DemographicLabels, digest); err != nil {
		return fmt.Errorf("demographics scenario: %w", err)
	}

	result, _, err := p.Enrich(ctx, table)
	if err != nil {
		return err
	}

	written, err := airquality.ReadCSV(result.Output)
	if err != nil {
		return err
	}

	if err := CheckAirQuality(written, PinnedAirQuality); err != nil {
		return fmt.Errorf("air quality scenario: %w", err)
	}

	return nil
}
