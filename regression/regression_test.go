package regression

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giygas/city-airquality/airquality"
	"github.com/giygas/city-airquality/dataset"
	"github.com/giygas/city-airquality/demographics"
	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	assert.Equal(t, "633a1043d84de1057d170c5b75d8fd4ee8d8043bdd05840aece3ebe4c42bc522",
		Digest("[['Perris' 'California']]"))
}

func TestDigestRowsHashesTheMatrixText(t *testing.T) {
	tbl, err := dataset.ReadCSV(strings.NewReader(`City;State;Median Age;Total Population
Perris;California;27.9;68837
Mobile;Alabama;38.2;194305
`), ';')
	require.NoError(t, err)

	assert.Equal(t,
		Digest("[['Perris' 'California' 27.9 68837]\n ['Mobile' 'Alabama' 38.2 194305]]"),
		DigestRows(tbl, tbl.Rows))
	assert.NotEqual(t, DigestRows(tbl, tbl.Rows), DigestRows(tbl, tbl.Rows[:1]))
}

func table(t *testing.T) *dataset.Table {
	t.Helper()
	tbl, err := dataset.ReadCSV(strings.NewReader("City;State;Race\nPerris;California;White\nPerris;California;Asian\nMobile;Alabama;Black\n"), ';')
	require.NoError(t, err)
	demographics.Clean(tbl)
	return tbl
}

func TestCheckDemographics(t *testing.T) {
	tbl := table(t)
	want := Digest("[['Mobile' 'Alabama']\n ['Perris' 'California']]")

	assert.NoError(t, CheckDemographics(tbl, []int{2, 0}, want))

	err := CheckDemographics(tbl, []int{0, 2}, want)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.ErrorContains(t, err, Digest("[['Perris' 'California']\n ['Mobile' 'Alabama']]"),
		"the computed digest is reported")

	// label 1 was removed as a duplicate
	err = CheckDemographics(tbl, []int{1}, want)
	assert.ErrorIs(t, err, ErrMismatch)
	assert.ErrorIs(t, err, dataset.ErrUnknownLabel)
}

func TestCheckAirQualityKeyedByCity(t *testing.T) {
	written := append([]entities.AirQualitySample{}, PinnedAirQuality...)
	// reverse: same rows, different order
	for l, r := 0, len(written)-1; l < r; l, r = l+1, r-1 {
		written[l], written[r] = written[r], written[l]
	}

	assert.NoError(t, CheckAirQuality(written, PinnedAirQuality))
}

func TestCheckAirQualityMismatch(t *testing.T) {
	written := append([]entities.AirQualitySample{}, PinnedAirQuality[1:]...)
	changed := written[0]
	changed.CO = pf(1)
	written[0] = changed

	err := CheckAirQuality(written, PinnedAirQuality)
	require.ErrorIs(t, err, ErrMismatch)
	assert.Contains(t, err.Error(), "Perris: missing")
	assert.Contains(t, err.Error(), `Mount Vernon: CO="1" want "287.06"`)
}

func TestPinnedAirQualityShape(t *testing.T) {
	require.Len(t, PinnedAirQuality, 10)
	assert.Equal(t, "Perris", PinnedAirQuality[0].City)
	assert.Equal(t, 250.34, *PinnedAirQuality[0].CO)
	assert.Equal(t, 220.0, *PinnedAirQuality[0].OverallAQI)
	assert.Equal(t, "Hoover", PinnedAirQuality[9].City)
}

func TestVerify(t *testing.T) {
	var csv strings.Builder
	csv.WriteString("City;State;Count\n")
	for _, s := range PinnedAirQuality {
		fmt.Fprintf(&csv, "%s;Somewhere;1\n", s.City)
	}
	demo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(csv.String()))
	}))
	defer demo.Close()

	byCity := map[string]entities.AirQualitySample{}
	for _, s := range PinnedAirQuality {
		byCity[s.City] = s
	}
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := byCity[r.URL.Query().Get("city")]
		rec := s.Record()
		fmt.Fprintf(w, `{"data": {"CO": %s, "NO2": %s, "O3": %s, "SO2": %s, "PM2.5": %s, "PM10": %s, "overall_aqi": %s}}`,
			rec[0], rec[1], rec[2], rec[3], rec[4], rec[5], rec[6])
	}))
	defer api.Close()

	out := filepath.Join(t.TempDir(), "ciudades.csv")
	p := pipeline.New(
		demographics.NewLoader(demo.Client(), demo.URL),
		airquality.NewEnricher(airquality.NewClient(api.Client(), api.URL, "k"), out))

	digest := Digest("[['Perris' 'Somewhere']\n ['Mount Vernon' 'Somewhere']]")

	// the digest scenario only covers labels that exist in this small export
	saved := DemographicLabels
	DemographicLabels = []int{0, 1}
	defer func() { DemographicLabels = saved }()

	require.NoError(t, Verify(context.Background(), p, digest))

	err := Verify(context.Background(), p, "0000")
	assert.ErrorIs(t, err, ErrMismatch)
	assert.ErrorContains(t, err, "demographics scenario")
}
