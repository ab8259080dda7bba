package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giygas/city-airquality/data"
	"github.com/giygas/city-airquality/entities"
)

type staticChecker struct {
	status string
	data   map[string]any
	code   int
}

func (c staticChecker) HealthCheck() (string, map[string]any, int) {
	return c.status, c.data, c.code
}

func TestFormatUptimeHuman(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{3*time.Minute + 2*time.Second, "3m 2s"},
		{2*time.Hour + 5*time.Second, "2h 0m 5s"},
		{26*time.Hour + 30*time.Minute, "1d 2h 30m 0s"},
	}
	for _, tt := range tests {
		if got := formatUptimeHuman(tt.d); got != tt.want {
			t.Errorf("formatUptimeHuman(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusCreated, map[string]int{"samples": 3})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Body.String() != `{"samples":3}` {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRespondWithJSONUnencodable(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusOK, math.Inf(1))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	store := data.NewRunContainer()
	store.SetServerStartTime(time.Now().Add(-90 * time.Second))
	checker := staticChecker{status: "degraded", data: map[string]any{"samples": 4}, code: http.StatusServiceUnavailable}

	rec := httptest.NewRecorder()
	HealthCheck(checker, store)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("status field = %q", body.Status)
	}
	if body.Uptime == "" {
		t.Error("uptime missing")
	}
	if body.Data["samples"] != float64(4) {
		t.Errorf("data = %v", body.Data)
	}
	if _, ok := body.System["goroutines"]; !ok {
		t.Error("system.goroutines missing")
	}
}

func TestLatestRunHandler(t *testing.T) {
	store := data.NewRunContainer()

	rec := httptest.NewRecorder()
	LatestRun(store)(rec, httptest.NewRequest(http.MethodGet, "/runs/latest", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	store.RecordReport(&entities.RunReport{FinishedAt: time.Now(), Error: "boom"})

	rec = httptest.NewRecorder()
	LatestRun(store)(rec, httptest.NewRequest(http.MethodGet, "/runs/latest", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report entities.RunReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Error != "boom" {
		t.Errorf("error = %q", report.Error)
	}
}
