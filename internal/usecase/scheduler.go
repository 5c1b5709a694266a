package usecase

import (
	"context"
	"fmt"
	"time"

	"NewsSimplifier/internal/domain"
	"NewsSimplifier/internal/logging"
	"NewsSimplifier/internal/ports"
)

// Scheduler wires the interval driver with the pipeline use case.
type Scheduler struct {
	driver   ports.Scheduler
	pipeline *Pipeline
	lock     ports.RunLock
	logger   *logging.Logger
}

// NewScheduler returns a helper to start/stop recurring runs.
func NewScheduler(driver ports.Scheduler, pipeline *Pipeline, lock ports.RunLock, log *logging.Logger) *Scheduler {
	return &Scheduler{driver: driver, pipeline: pipeline, lock: lock, logger: log}
}

// RunOnce executes one run under the run lock. ran is false when another run holds it.
func (s *Scheduler) RunOnce(ctx context.Context, trigger time.Time) (summary domain.BatchSummary, ran bool, err error) {
	if s.pipeline == nil {
		return domain.NewBatchSummary(), false, nil
	}

	release := func() {}
	if s.lock != nil {
		var acquired bool
		release, acquired, err = s.lock.TryAcquire(ctx)
		if err != nil {
			return domain.NewBatchSummary(), false, fmt.Errorf("acquire run lock: %w", err)
		}
		if !acquired {
			s.logger.Info("run already in flight, skipping trigger", "trigger", trigger)
			return domain.NewBatchSummary(), false, nil
		}
	}
	defer release()

	summary, err = s.pipeline.Run(ctx)
	return summary, true, err
}

// Start registers the pipeline with the provided scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.driver == nil || s.pipeline == nil {
		return nil
	}

	job := func(trigger time.Time) {
		if _, _, err := s.RunOnce(ctx, trigger); err != nil {
			s.logger.Error("scheduled run failed", "error", err)
		}
	}

	return s.driver.Start(ctx, job)
}

// Stop gracefully tears down the underlying scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.driver == nil {
		return nil
	}

	return s.driver.Stop(ctx)
}
