package entities

import (
	"strconv"
)

// AirQualityHeader is the column order of the enrichment output
var AirQualityHeader = []string{"CO", "NO2", "O3", "SO2", "PM2.5", "PM10", "overall_aqi", "city"}

// AirQualitySample is one city's air quality reading.
// A nil pointer means the API did not report that value.
type AirQualitySample struct {
	CO         *float64 `json:"CO"`
	NO2        *float64 `json:"NO2"`
	O3         *float64 `json:"O3"`
	SO2        *float64 `json:"SO2"`
	PM25       *float64 `json:"PM2.5"`
	PM10       *float64 `json:"PM10"`
	OverallAQI *float64 `json:"overall_aqi"`
	City       string   `json:"city"`
}

// Record returns the sample as CSV cells in AirQualityHeader order, nil values as empty cells
func (s AirQualitySample) Record() []string {
	return []string{
		formatFloat(s.CO),
		formatFloat(s.NO2),
		formatFloat(s.O3),
		formatFloat(s.SO2),
		formatFloat(s.PM25),
		formatFloat(s.PM10),
		formatFloat(s.OverallAQI),
		s.City,
	}
}

// Pollutants returns the six concentrations in AirQualityHeader order
func (s AirQualitySample) Pollutants() []*float64 {
	return []*float64{s.CO, s.NO2, s.O3, s.SO2, s.PM25, s.PM10}
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
