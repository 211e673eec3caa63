// Package monitor runs the periodic active-monitoring sweep over the
// sensor network on a cron schedule.
package monitor

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/aleRizzolo/SeaScan/core/logger"

	"log/slog"
)

// sweepTimeout bounds one scheduled sweep invocation.
const sweepTimeout = 60 * time.Second

// Scheduler triggers a sweep function on a cron schedule. An empty schedule
// disables it.
type Scheduler struct {
	schedule string
	sweep    func(ctx context.Context) error
	cron     *cron.Cron
}

// New creates a Scheduler. schedule uses the standard five-field cron
// syntax; empty means disabled.
func New(schedule string, sweep func(ctx context.Context) error) *Scheduler {
	return &Scheduler{schedule: schedule, sweep: sweep}
}

// Start registers the schedule and begins running sweeps. Disabled
// schedulers start as a no-op.
func (s *Scheduler) Start() error {
	if s.schedule == "" || s.sweep == nil {
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(s.schedule, s.run); err != nil {
		return err
	}
	s.cron = c
	c.Start()

	logger.Mon.Info("monitoring schedule started",
		slog.String("event", "start"),
		slog.String("schedule", s.schedule),
	)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	logger.Mon.Info("monitoring schedule stopped",
		slog.String("event", "stop"),
	)
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(logger.Background(), sweepTimeout)
	defer cancel()

	start := time.Now()
	err := s.sweep(ctx)
	took := time.Since(start)
	if err != nil {
		logger.Mon.Error("sweep failed",
			slog.String("event", "sweep"),
			slog.String("status", "error"),
			slog.Duration("duration", logger.RoundMS(took)),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
		return
	}
	logger.Mon.Info("sweep complete",
		slog.String("event", "sweep"),
		slog.String("status", "ok"),
		slog.Duration("duration", logger.RoundMS(took)),
	)
}
