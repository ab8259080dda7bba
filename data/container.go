// Package data keeps the outcome of pipeline runs for the status server.
// Reads and writes go through atomic values so handlers never block a run.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/city-airquality/entities"
	"github.com/giygas/city-airquality/interfaces"
	"github.com/giygas/city-airquality/logging"
)

// Compile-time check to ensure RunContainer implements RunStore
var _ interfaces.RunStore = (*RunContainer)(nil)

// RunContainer holds the latest run report and the last successful run time
type RunContainer struct {
	lastReport      atomic.Pointer[entities.RunReport]
	lastSuccess     atomic.Value // time.Time
	running         atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewRunContainer creates an empty container
func NewRunContainer() *RunContainer {
	rc := &RunContainer{}
	rc.lastSuccess.Store(time.Time{})
	rc.serverStartTime.Store(time.Time{})
	return rc
}

// GetLastReport returns the latest report, or nil before the first run
func (rc *RunContainer) GetLastReport() *entities.RunReport {
	return rc.lastReport.Load()
}

// GetLastSuccess returns when the last successful run finished
func (rc *RunContainer) GetLastSuccess() time.Time {
	if v := rc.lastSuccess.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the last success value")
	return time.Time{}
}

// IsRunning returns true if a run is in progress
func (rc *RunContainer) IsRunning() bool {
	return rc.running.Load()
}

// SetServerStartTime sets the server start time
func (rc *RunContainer) SetServerStartTime(startTime time.Time) {
	rc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (rc *RunContainer) GetServerStartTime() time.Time {
	if v := rc.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// RecordReport stores a finished run. Only successful runs move the last success time.
func (rc *RunContainer) RecordReport(report *entities.RunReport) {
	if report == nil {
		return
	}
	rc.lastReport.Store(report)
	if report.Succeeded() {
		rc.lastSuccess.Store(report.FinishedAt)
	}
}

// BeginRun marks the start of a run.
// Returns true if the run can proceed, false if another run is in progress
func (rc *RunContainer) BeginRun() bool {
	return rc.running.CompareAndSwap(false, true)
}

// EndRun marks the end of a run
func (rc *RunContainer) EndRun() {
	rc.running.Store(false)
}
