package validation

import (
	"errors"
	"testing"

	"github.com/giygas/city-airquality/entities"
)

func fp(v float64) *float64 { return &v }

func full(city string) entities.AirQualitySample {
	return entities.AirQualitySample{
		CO: fp(250.34), NO2: fp(3.43), O3: fp(167.37), SO2: fp(2.92),
		PM25: fp(17.78), PM10: fp(26.26), OverallAQI: fp(220), City: city,
	}
}

func TestValidateSample(t *testing.T) {
	negativeCO := full("Perris")
	negativeCO.CO = fp(-1)
	negativeAQI := full("Perris")
	negativeAQI.OverallAQI = fp(-3)
	partial := entities.AirQualitySample{City: "Mobile"}
	complete := full("Perris")

	tests := []struct {
		name    string
		sample  *entities.AirQualitySample
		wantErr bool
	}{
		{"complete sample", &complete, false},
		{"missing values are allowed", &partial, false},
		{"nil", nil, true},
		{"empty city", &entities.AirQualitySample{City: "  "}, true},
		{"negative concentration", &negativeCO, true},
		{"negative aqi", &negativeAQI, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSample(tt.sample)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSample) {
					t.Errorf("expected ErrInvalidSample, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestReportDataQuality(t *testing.T) {
	noAQI := full("Norman")
	noAQI.OverallAQI = nil
	noPM := full("Hoover")
	noPM.PM10 = nil
	negative := full("Muncie")
	negative.SO2 = fp(-0.5)

	report := ReportDataQuality([]entities.AirQualitySample{
		full("Perris"), noAQI, noPM, negative, full("Perris"),
	})

	if got := report.DuplicateCities; len(got) != 1 || got[0] != "Perris" {
		t.Errorf("DuplicateCities = %v, want [Perris]", got)
	}
	if report.WithoutAQI != 1 || report.WithoutAQICities[0] != "Norman" {
		t.Errorf("WithoutAQI = %d %v", report.WithoutAQI, report.WithoutAQICities)
	}
	if report.MissingPollutants != 1 || report.MissingPollutantsCities[0] != "Hoover" {
		t.Errorf("MissingPollutants = %d %v", report.MissingPollutants, report.MissingPollutantsCities)
	}
	if report.InvalidSamples != 1 {
		t.Errorf("InvalidSamples = %d, want 1", report.InvalidSamples)
	}
	if report.Clean() {
		t.Error("report with gaps must not be clean")
	}
}

func TestReportDataQualityCapsLists(t *testing.T) {
	samples := make([]entities.AirQualitySample, 25)
	for i := range samples {
		samples[i] = entities.AirQualitySample{City: string(rune('A' + i))}
	}

	report := ReportDataQuality(samples)

	if report.WithoutAQI != 25 {
		t.Errorf("WithoutAQI = %d, want 25", report.WithoutAQI)
	}
	if len(report.WithoutAQICities) != maxListed {
		t.Errorf("listed %d cities, want %d", len(report.WithoutAQICities), maxListed)
	}
	if len(report.MissingPollutantsCities) != maxListed {
		t.Errorf("listed %d cities, want %d", len(report.MissingPollutantsCities), maxListed)
	}
}

func TestReportDataQualityClean(t *testing.T) {
	report := ReportDataQuality([]entities.AirQualitySample{full("Perris"), full("Mobile")})
	if !report.Clean() {
		t.Errorf("expected clean report, got %+v", report)
	}
	if !ReportDataQuality(nil).Clean() {
		t.Error("empty input is clean")
	}
}
