package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-exporter/internal/weather"
)

// CycleRunner runs one acquire-and-publish cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) weather.Acquisition
}

// Scheduler runs the poll cycle at a fixed interval, starting immediately.
type Scheduler struct {
	scheduler *gocron.Scheduler
	runner    CycleRunner
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. timeout bounds each cycle.
func New(interval, timeout time.Duration, runner CycleRunner, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		runner:    runner,
		interval:  interval,
		timeout:   timeout,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 20 * time.Second
	}

	// Singleton mode skips a tick while the previous cycle is still running.
	_, err := s.scheduler.Every(interval).SingletonMode().Do(s.tick)
	if err != nil {
		return err
	}

	s.logger.Info("scheduler started", "interval", interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) tick() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.runner.RunCycle(ctx)
}
