package airquality

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/logging"
)

// WriteCSV writes samples to path with entities.AirQualityHeader and no index
// column, replacing any previous file.
func WriteCSV(path string, samples []entities.AirQualitySample) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file %s: %w", path, cerr)
		}
	}()

	if err := encode(file, samples); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	logging.Debug("Air quality CSV written", "path", path, "rows", len(samples))
	return nil
}

func encode(w io.Writer, samples []entities.AirQualitySample) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(entities.AirQualityHeader); err != nil {
		return err
	}
	for _, s := range samples {
		if err := writer.Write(s.Record()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadCSV reads a file written by WriteCSV back into samples
func ReadCSV(path string) ([]entities.AirQualitySample, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("Failed to close air quality CSV", "error", err)
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(entities.AirQualityHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if !slices.Equal(header, entities.AirQualityHeader) {
		return nil, fmt.Errorf("unexpected header in %s: %v", path, header)
	}

	var samples []entities.AirQualitySample
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		sample, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func parseRecord(record []string) (entities.AirQualitySample, error) {
	var s entities.AirQualitySample

	floats := []**float64{&s.CO, &s.NO2, &s.O3, &s.SO2, &s.PM25, &s.PM10, &s.OverallAQI}
	for i, dst := range floats {
		if record[i] == "" {
			continue
		}
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return s, fmt.Errorf("column %s: %w", entities.AirQualityHeader[i], err)
		}
		*dst = &v
	}

	s.City = record[7]
	return s, nil
}
