// Package interfaces defines the contracts between the pipeline stages, the
// run store and the status server, so each piece can be tested with fakes.
package interfaces

import (
	"context"
	"time"

	"github.com/giygas/city-airquality/dataset"
	"github.com/giygas/city-airquality/entities"
)

// DemographicsSource produces the cleaned demographics table
type DemographicsSource interface {
	Load(ctx context.Context) (*dataset.Table, error)
}

// AirQualitySource looks up the air quality of one city.
// A non-200 answer is reported as *airquality.StatusError.
type AirQualitySource interface {
	Fetch(ctx context.Context, city string) (*entities.AirQualitySample, error)
}

// Runner executes one complete pipeline pass
type Runner interface {
	Run(ctx context.Context) (*entities.RunReport, error)
}

// RunStore keeps the outcome of the latest runs for the status server.
// BeginRun/EndRun guard against overlapping runs.
type RunStore interface {
	GetLastReport() *entities.RunReport
	GetLastSuccess() time.Time
	IsRunning() bool
	GetServerStartTime() time.Time

	RecordReport(report *entities.RunReport)
	BeginRun() bool
	EndRun()
}

// Scheduler triggers runs on a timetable
type Scheduler interface {
	Start() error
	Stop()
	NextRun() time.Time
}

// HealthChecker reports the service health derived from the run store
type HealthChecker interface {
	HealthCheck() (status string, details map[string]any, httpStatus int)
}
