package entities

// DataQualityReport counts gaps in the written air quality samples.
// City lists are capped at the first ten offenders.
type DataQualityReport struct {
	DuplicateCities         []string `json:"duplicateCities"`
	WithoutAQI              int      `json:"withoutAqi"`
	WithoutAQICities        []string `json:"withoutAqiCities"`
	MissingPollutants       int      `json:"missingPollutants"`
	MissingPollutantsCities []string `json:"missingPollutantsCities"`
	InvalidSamples          int      `json:"invalidSamples"`
}

// Clean reports whether no gap was found
func (r *DataQualityReport) Clean() bool {
	return r != nil &&
		len(r.DuplicateCities) == 0 &&
		r.WithoutAQI == 0 &&
		r.MissingPollutants == 0 &&
		r.InvalidSamples == 0
}
