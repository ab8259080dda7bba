// Package health derives the service health from the outcome of recent runs.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/city-airquality/interfaces"
)

// Compile-time check to ensure HealthCheckerImpl implements HealthChecker
var _ interfaces.HealthChecker = (*HealthCheckerImpl)(nil)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	store   interfaces.RunStore
	nextRun func() time.Time
	now     func() time.Time
}

// NewHealthChecker creates a new health checker. nextRun may be nil when no
// scheduler is running.
func NewHealthChecker(store interfaces.RunStore, nextRun func() time.Time) *HealthCheckerImpl {
	return &HealthCheckerImpl{
		store:   store,
		nextRun: nextRun,
		now:     time.Now,
	}
}

// HealthCheck returns the health status, its details and the matching HTTP code
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	report := h.store.GetLastReport()
	lastSuccess := h.store.GetLastSuccess()
	isRunning := h.store.IsRunning()
	now := h.now()

	data = map[string]any{
		"is_running": isRunning,
	}
	if !lastSuccess.IsZero() {
		age := now.Sub(lastSuccess)
		data["last_success"] = lastSuccess.Format(time.RFC3339)
		data["data_age_hours"] = math.Round(age.Hours()*10) / 10
	}
	if report != nil {
		data["last_run"] = report.FinishedAt.Format(time.RFC3339)
		data["samples"] = report.Samples
		data["skipped"] = len(report.Skipped)
		if report.Error != "" {
			data["last_error"] = report.Error
		}
	}
	if h.nextRun != nil {
		if next := h.nextRun(); !next.IsZero() {
			data["next_run"] = next.Format(time.RFC3339)
		}
	}
	if start := h.store.GetServerStartTime(); !start.IsZero() {
		data["uptime_seconds"] = int(now.Sub(start).Seconds())
	}

	dataAge := now.Sub(lastSuccess)

	switch {
	case report == nil && isRunning:
		status = "starting"
		httpStatus = http.StatusServiceUnavailable

	case lastSuccess.IsZero():
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case dataAge > 25*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	case !report.Succeeded():
		// a previous run is still fresh enough to serve
		status = "degraded"
		httpStatus = http.StatusOK

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	return status, data, httpStatus
}
