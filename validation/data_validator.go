// Package validation checks the air quality samples before and after they are
// written, and summarises their data quality.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/giygas/city-airquality/entities"
)

// maxListed caps the city lists of a DataQualityReport
const maxListed = 10

var ErrInvalidSample = errors.New("invalid air quality sample")

// ValidateSample rejects samples that cannot describe a real measurement
func ValidateSample(s *entities.AirQualitySample) error {
	if s == nil {
		return fmt.Errorf("%w: nil sample", ErrInvalidSample)
	}
	if strings.TrimSpace(s.City) == "" {
		return fmt.Errorf("%w: empty city", ErrInvalidSample)
	}

	for i, v := range s.Pollutants() {
		if v != nil && *v < 0 {
			return fmt.Errorf("%w: %s has negative %s concentration %v", ErrInvalidSample, s.City, entities.AirQualityHeader[i], *v)
		}
	}
	if s.OverallAQI != nil && *s.OverallAQI < 0 {
		return fmt.Errorf("%w: %s has negative overall_aqi %v", ErrInvalidSample, s.City, *s.OverallAQI)
	}

	return nil
}

// ReportDataQuality summarises the gaps in samples
func ReportDataQuality(samples []entities.AirQualitySample) *entities.DataQualityReport {
	report := &entities.DataQualityReport{
		DuplicateCities:         []string{},
		WithoutAQICities:        []string{},
		MissingPollutantsCities: []string{},
	}

	// Check 1: every city is written once
	seen := make(map[string]bool, len(samples))
	for _, s := range samples {
		if seen[s.City] {
			report.DuplicateCities = append(report.DuplicateCities, s.City)
		}
		seen[s.City] = true
	}

	for i := range samples {
		s := &samples[i]

		// Check 2: overall AQI present
		if s.OverallAQI == nil {
			report.WithoutAQI++
			if len(report.WithoutAQICities) < maxListed {
				report.WithoutAQICities = append(report.WithoutAQICities, s.City)
			}
		}

		// Check 3: every pollutant present
		for _, v := range s.Pollutants() {
			if v == nil {
				report.MissingPollutants++
				if len(report.MissingPollutantsCities) < maxListed {
					report.MissingPollutantsCities = append(report.MissingPollutantsCities, s.City)
				}
				break
			}
		}

		// Check 4: plausible values
		if ValidateSample(s) != nil {
			report.InvalidSamples++
		}
	}

	return report
}
