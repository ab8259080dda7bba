// Package regression holds the pinned scenarios that detect changes in the
// upstream datasets or in the cleaning and enrichment logic.
package regression

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/giygas/city-airquality/dataset"
	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/logging"
)

var ErrMismatch = errors.New("regression mismatch")

// DemographicLabels are the source row positions selected for the digest scenario
var DemographicLabels = []int{1995, 1360, 982, 2264, 2096, 1733, 1804, 2025, 2070, 507}

// Digest returns the hex SHA-256 of the UTF-8 text
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// DigestRows returns the digest of rows rendered by dataset.Table.FormatMatrix
func DigestRows(table *dataset.Table, rows []dataset.Row) string {
	return Digest(table.FormatMatrix(rows))
}

// CheckDemographics selects labels from the cleaned table and compares their digest to want.
// A mismatch reports the computed digest so it can be pinned with DEMOGRAPHICS_DIGEST.
func CheckDemographics(table *dataset.Table, labels []int, want string) error {
	rows, err := table.Loc(labels...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMismatch, err)
	}

	got := DigestRows(table, rows)
	if got != want {
		logging.Debug("Demographics digest input", "matrix", table.FormatMatrix(rows))
		return fmt.Errorf("%w: demographics digest is %s, want %s", ErrMismatch, got, want)
	}

	logging.Info("Demographics scenario passed", "rows", len(rows), "digest", got)
	return nil
}

// CheckAirQuality compares pinned samples with the written ones, keyed by city.
// Rows are written in sorted city order, so the pinned table cannot be matched
// by position; positional differences are only logged.
func CheckAirQuality(written, pinned []entities.AirQualitySample) error {
	byCity := make(map[string]entities.AirQualitySample, len(written))
	for _, s := range written {
		byCity[s.City] = s
	}

	var problems []string
	for _, want := range pinned {
		got, ok := byCity[want.City]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: missing", want.City))
			continue
		}
		if diff := diffSample(got, want); diff != "" {
			problems = append(problems, fmt.Sprintf("%s: %s", want.City, diff))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %d of %d pinned cities differ: %s", ErrMismatch, len(problems), len(pinned), strings.Join(problems, "; "))
	}

	if moved := positionDiffs(written, pinned); moved > 0 {
		logging.Warn("Pinned rows match by city but not by position",
			"moved", moved,
			"pinned", len(pinned))
	}

	logging.Info("Air quality scenario passed", "pinned", len(pinned), "written", len(written))
	return nil
}

func diffSample(got, want entities.AirQualitySample) string {
	g, w := got.Record(), want.Record()
	var diffs []string
	for i := range entities.AirQualityHeader {
		if g[i] != w[i] {
			diffs = append(diffs, fmt.Sprintf("%s=%q want %q", entities.AirQualityHeader[i], g[i], w[i]))
		}
	}
	return strings.Join(diffs, ", ")
}

func positionDiffs(written, pinned []entities.AirQualitySample) int {
	moved := 0
	for i, want := range pinned {
		if i >= len(written) || written[i].City != want.City {
			moved++
		}
	}
	return moved
}
