// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/domain"
)

// LocationInitializer is the part of the location resolver the refresh job needs
type LocationInitializer interface {
	Current() domain.Location
	Initialize(ctx context.Context)
}

// Scheduler wraps a cron runner
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	logger  *logrus.Entry
}

// New creates a stopped scheduler; jobs are bounded by timeout
func New(timeout time.Duration) *Scheduler {
	logger := logrus.WithField("component", "scheduler")
	cronLogger := cron.PrintfLogger(logger)

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		timeout: timeout,
		logger:  logger,
	}
}

// ScheduleLocationRefresh re-runs the IP lookup on schedule whenever no location is stored.
// A stored location, from either source, is left alone.
func (s *Scheduler) ScheduleLocationRefresh(schedule string, locations LocationInitializer) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		RefreshLocation(ctx, locations, s.logger)
	})
	if err != nil {
		return fmt.Errorf("scheduler: invalid location refresh schedule %q: %w", schedule, err)
	}
	s.logger.WithField("schedule", schedule).Info("Location refresh scheduled")
	return nil
}

// RefreshLocation initializes the resolver when it is empty and reports whether it tried
func RefreshLocation(ctx context.Context, locations LocationInitializer, logger *logrus.Entry) bool {
	if !locations.Current().IsEmpty() {
		return false
	}
	logger.Debug("No location stored, retrying IP lookup")
	locations.Initialize(ctx)
	return true
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs until ctx expires
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Timed out waiting for scheduled jobs to finish")
	}
}
