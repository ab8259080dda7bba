package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveAirQualityStatus(t *testing.T) {
	before := testutil.ToFloat64(AirQualityRequests.WithLabelValues("404"))

	ObserveAirQualityStatus(http.StatusNotFound)
	ObserveAirQualityStatus(http.StatusNotFound)

	if got := testutil.ToFloat64(AirQualityRequests.WithLabelValues("404")) - before; got != 2 {
		t.Errorf("Expected 2 new 404 observations, got %v", got)
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/runs/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	before := testutil.ToFloat64(HTTPRequestTotals.WithLabelValues("GET", "/runs/{id}", "202"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/runs/42", nil))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d", rr.Code)
	}
	if got := testutil.ToFloat64(HTTPRequestTotals.WithLabelValues("GET", "/runs/{id}", "202")) - before; got != 1 {
		t.Errorf("Expected one request counted under the route pattern, got %v", got)
	}
}
