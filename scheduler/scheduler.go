// Package scheduler runs the pipeline on a daily timetable with gocron and
// records each outcome in the run store.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/giygas/city-airquality/interfaces"
	"github.com/giygas/city-airquality/logging"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleAfter is how long without a successful run before a warning is logged
const staleAfter = 25 * time.Hour

// Scheduler triggers runs at fixed times of day
type Scheduler struct {
	store     interfaces.RunStore
	runner    interfaces.Runner
	at        string
	scheduler *gocron.Scheduler
	job       *gocron.Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler running runner at the gocron At() times in at,
// e.g. "06:00" or "06:00;18:00"
func NewScheduler(store interfaces.RunStore, runner interfaces.Runner, at string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	s := gocron.NewScheduler(time.Local)
	s.SingletonModeAll()

	return &Scheduler{
		store:     store,
		runner:    runner,
		at:        at,
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules the daily runs, triggers an initial run in the background
// and starts the staleness monitor
func (s *Scheduler) Start() error {
	job, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		if err := s.RunOnce(); err != nil {
			logging.Error("Scheduled run failed", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule runs", "error", err, "schedule", s.at)
		return fmt.Errorf("failed to schedule runs at %q: %w", s.at, err)
	}
	s.job = job

	s.scheduler.StartAsync()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.RunOnce(); err != nil {
			logging.Error("Initial run failed", "error", err)
		}
	}()

	s.startHealthMonitoring()

	logging.Info("Scheduler started", "schedule", s.at, "next_run", s.NextRun().Format(time.RFC3339))
	return nil
}

// Stop cancels any run in progress and stops the timetable
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
	s.wg.Wait()
}

// NextRun returns the next scheduled run time, zero before Start
func (s *Scheduler) NextRun() time.Time {
	if s.job == nil {
		return time.Time{}
	}
	return s.job.NextRun()
}

// RunOnce executes one run unless another one is in progress
func (s *Scheduler) RunOnce() error {
	if !s.store.BeginRun() {
		logging.Info("Run already in progress, skipping...")
		return nil
	}
	defer s.store.EndRun()

	report, err := s.runner.Run(s.ctx)
	s.store.RecordReport(report)
	if err != nil {
		return fmt.Errorf("pipeline run failed: %w", err)
	}
	return nil
}

// startHealthMonitoring warns when no run has succeeded for a while
func (s *Scheduler) startHealthMonitoring() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				last := s.store.GetLastSuccess()
				if !last.IsZero() && time.Since(last) > staleAfter {
					logging.Warn("No successful run in over 25 hours", "last_success", last.Format(time.RFC3339))
				}
			}
		}
	}()
}
