// Package airquality queries the air quality API per city and writes the
// collected samples to a CSV file.
package airquality

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/interfaces"
	"github.com/giygas/city-airquality/logging"
	"github.com/giygas/city-airquality/metrics"
)

// Compile-time check to ensure Client implements AirQualitySource
var _ interfaces.AirQualitySource = (*Client)(nil)

const apiKeyHeader = "X-Api-Key"

// maxErrorBody bounds how much of a failed response ends up in the logs
const maxErrorBody = 512

// StatusError is returned by Fetch when the API answers with anything but 200
type StatusError struct {
	City       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("air quality lookup for %s: status %d - %s", e.City, e.StatusCode, e.Body)
}

// Client calls the air quality endpoint with the API key header
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey}
}

// Fetch returns the air quality sample of one city.
// Non-200 answers give a *StatusError; transport and decode failures are returned as is.
func (c *Client) Fetch(ctx context.Context, city string) (*entities.AirQualitySample, error) {
	endpoint, err := c.endpoint(city)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build air quality request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("air quality request for %s failed: %w", city, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	metrics.ObserveAirQualityStatus(response.StatusCode)

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, &StatusError{City: city, StatusCode: response.StatusCode, Body: string(bytes.TrimSpace(body))}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read air quality response for %s: %w", city, err)
	}

	sample, err := ParseSample(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode air quality response for %s: %w", city, err)
	}
	sample.City = city

	return sample, nil
}

func (c *Client) endpoint(city string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid air quality URL %q: %w", c.baseURL, err)
	}
	q := u.Query()
	q.Set("city", city)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseSample decodes an API payload. Values are read from the "data" object,
// or from the root when there is none. A pollutant may be a plain number or an
// object with a "concentration" field; absent or null values stay nil.
func ParseSample(body []byte) (*entities.AirQualitySample, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return nil, err
	}

	fields := root
	if raw, ok := root["data"]; ok {
		fields = map[string]json.RawMessage{}
		if !isNull(raw) {
			if err := json.Unmarshal(raw, &fields); err != nil {
				return nil, fmt.Errorf("data: %w", err)
			}
		}
	}

	sample := &entities.AirQualitySample{}
	targets := []struct {
		name string
		dst  **float64
	}{
		{"CO", &sample.CO},
		{"NO2", &sample.NO2},
		{"O3", &sample.O3},
		{"SO2", &sample.SO2},
		{"PM2.5", &sample.PM25},
		{"PM10", &sample.PM10},
	}

	for _, target := range targets {
		v, err := pollutant(fields[target.name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target.name, err)
		}
		*target.dst = v
	}

	aqi, err := number(fields["overall_aqi"])
	if err != nil {
		return nil, fmt.Errorf("overall_aqi: %w", err)
	}
	sample.OverallAQI = aqi

	return sample, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// pollutant accepts 250.34 or {"concentration": 250.34, "aqi": 2}
func pollutant(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	if bytes.TrimSpace(raw)[0] == '{' {
		var obj struct {
			Concentration json.RawMessage `json:"concentration"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, err
		}
		return number(obj.Concentration)
	}
	return number(raw)
}

func number(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		return nil, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
