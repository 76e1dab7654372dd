// Package scheduler runs a job at a fixed interval without ever overlapping two runs.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// Job is one scheduled run. ctx is canceled when the scheduler stops.
type Job func(ctx context.Context)

// Scheduler periodically runs a job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	log       logrus.FieldLogger
	cancel    context.CancelFunc
}

// New creates a scheduler running every interval.
func New(interval time.Duration, log logrus.FieldLogger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		scheduler: s,
		interval:  interval,
		log:       log,
	}
}

// Start schedules job and returns. The first run starts immediately; a run still in progress
// when the next one is due delays it.
func (s *Scheduler) Start(ctx context.Context, job Job) error {
	if s.interval <= 0 {
		return errors.New("scheduler: interval must be positive")
	}
	ctx, s.cancel = context.WithCancel(ctx)

	_, err := s.scheduler.Every(s.interval).Do(func() {
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		job(ctx)
		s.log.WithField("took", time.Since(start).Round(time.Millisecond)).Debug("scheduled run finished")
	})
	if err != nil {
		s.cancel()
		return err
	}

	s.log.WithField("interval", s.interval).Info("scheduler started")
	s.scheduler.StartAsync()
	return nil
}

// Stop cancels the running job, if any, and cancels future runs.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.scheduler.Stop()
}
