package scheduler

import (
	"context"
	"log/slog"
	"time"

	"apod_poster/internal/domain"
)

// Runner defines the interface for one scheduled delivery.
type Runner interface {
	Run(ctx context.Context) (*domain.DeliveryStats, error)
}

type Config struct {
	Hour       int
	Minute     int
	Location   *time.Location
	RunTimeout time.Duration
	RunOnStart bool
}

// Scheduler fires the runner once per day at a fixed local time.
type Scheduler struct {
	runner Runner
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

func NewScheduler(runner Runner, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 2 * time.Minute
	}
	return &Scheduler{
		runner: runner,
		cfg:    cfg,
		now:    time.Now,
		logger: logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"time", time.Date(0, 1, 1, s.cfg.Hour, s.cfg.Minute, 0, 0, time.UTC).Format("15:04"),
		"timezone", s.cfg.Location.String(),
		"run_on_start", s.cfg.RunOnStart,
	)

	if s.cfg.RunOnStart {
		s.runOnce(ctx)
	}

	for {
		next := NextRun(s.now(), s.cfg.Hour, s.cfg.Minute, s.cfg.Location)
		s.logger.Info("next run scheduled", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	if _, err := s.runner.Run(runCtx); err != nil {
		s.logger.Error("scheduled run failed", "error", err)
	}
}

// NextRun returns the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, minute, 0, 0, loc)
	}
	return next
}
