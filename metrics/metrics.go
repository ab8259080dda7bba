// Package metrics provides Prometheus metrics for pipeline runs and the status server:
//   - cityair_runs_total: Counter with result label (success, error)
//   - cityair_run_duration_seconds: Histogram of complete pipeline runs
//   - cityair_demographics_rows: Gauge of rows kept after cleaning
//   - cityair_airquality_requests_total: Counter with status label
//   - http_request_total / http_request_duration_seconds: status server traffic
//
// All metrics are registered with the Prometheus default registry during
// package initialization.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityair_runs_total",
			Help: "Completed pipeline runs by result",
		},
		[]string{"result"},
	)

	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cityair_run_duration_seconds",
			Help:    "Duration of complete pipeline runs",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		},
	)

	DemographicsRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cityair_demographics_rows",
			Help: "Demographic rows kept after dropping columns and duplicates",
		},
	)

	AirQualityRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cityair_airquality_requests_total",
			Help: "Air quality API requests by HTTP status",
		},
		[]string{"status"},
	)

	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal)
	prometheus.MustRegister(RunDuration)
	prometheus.MustRegister(DemographicsRows)
	prometheus.MustRegister(AirQualityRequests)
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
}

// ObserveAirQualityStatus counts one air quality response
func ObserveAirQualityStatus(code int) {
	AirQualityRequests.WithLabelValues(strconv.Itoa(code)).Inc()
}
