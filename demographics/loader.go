// Package demographics downloads the US cities demographics export and cleans it
// into a dataset.Table.
package demographics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/giygas/city-airquality/dataset"
	"github.com/giygas/city-airquality/logging"
	"github.com/giygas/city-airquality/metrics"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	Separator  = ';'
	CityColumn = "City"
)

// DroppedColumns are removed from the export when present
var DroppedColumns = []string{"Race", "Count", "Number of Veterans"}

var ErrMissingColumn = errors.New("missing column")

// Loader fetches and cleans the demographics export
type Loader struct {
	client *http.Client
	url    string
}

// NewLoader creates a loader for url. A nil client uses http.DefaultClient.
func NewLoader(client *http.Client, url string) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, url: url}
}

// Load downloads the export, drops DroppedColumns and removes duplicate rows.
// Any transport, status or parse failure is returned; there is no retry.
func (l *Loader) Load(ctx context.Context) (*dataset.Table, error) {
	start := time.Now()

	body, err := l.download(ctx)
	if err != nil {
		return nil, err
	}

	table, err := dataset.ReadCSV(decode(body), Separator)
	if err != nil {
		return nil, fmt.Errorf("failed to parse demographics: %w", err)
	}
	total := table.Len()

	dropped, duplicates := Clean(table)

	metrics.DemographicsRows.Set(float64(table.Len()))
	logging.Info("Demographics loaded",
		"rows_read", total,
		"duplicates_removed", duplicates,
		"rows_kept", table.Len(),
		"columns_dropped", dropped,
		"duration", time.Since(start).String())

	return table, nil
}

func (l *Loader) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build demographics request: %w", err)
	}

	response, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", l.url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("failed to download %s: unexpected status %d", l.url, response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logging.Debug("Demographics downloaded", "bytes", len(body))
	return body, nil
}

// decode returns a UTF-8 reader over body. A leading BOM is stripped and
// payloads that are not valid UTF-8 are read as ISO-8859-1.
func decode(body []byte) io.Reader {
	if utf8.Valid(body) {
		return transform.NewReader(bytes.NewReader(body), unicode.BOMOverride(transform.Nop))
	}
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(body))
}

// Clean drops DroppedColumns and duplicate rows in place. It returns the
// columns that were present and dropped, and the number of rows removed.
func Clean(table *dataset.Table) ([]string, int) {
	dropped := table.DropColumns(DroppedColumns...)
	return dropped, table.DropDuplicates()
}

// Cities returns the distinct non-empty values of the City column
func Cities(table *dataset.Table) ([]string, error) {
	values, err := table.Distinct(CityColumn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, CityColumn)
	}

	cities := values[:0]
	for _, c := range values {
		if c != "" {
			cities = append(cities, c)
		}
	}
	return cities, nil
}
