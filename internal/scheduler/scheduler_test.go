package scheduler

import (
	"bytes"
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/weather-exporter/internal/weather"
)

type countingRunner struct {
	calls       atomic.Int32
	done        chan struct{}
	hadDeadline atomic.Bool
}

func newCountingRunner() *countingRunner {
	return &countingRunner{done: make(chan struct{}, 16)}
}

func (c *countingRunner) RunCycle(ctx context.Context) weather.Acquisition {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); ok {
		c.hadDeadline.Store(true)
	}
	c.done <- struct{}{}
	return weather.Acquisition{Reading: weather.Reading{Source: weather.SourceSynthetic}}
}

func TestTickRunsOneCycleWithDeadline(t *testing.T) {
	runner := newCountingRunner()
	s := New(time.Hour, time.Second, runner, nil)

	s.tick()

	if got := runner.calls.Load(); got != 1 {
		t.Fatalf("expected one cycle, got %d", got)
	}
	if !runner.hadDeadline.Load() {
		t.Fatalf("expected cycle context to carry a deadline")
	}
}

func TestTickLeavesCycleLoggingToRunner(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(time.Hour, time.Second, newCountingRunner(), logger)

	s.tick()

	if buf.Len() != 0 {
		t.Fatalf("expected no scheduler output per tick, got %q", buf.String())
	}
}

func TestStartRunsImmediately(t *testing.T) {
	runner := newCountingRunner()
	s := New(time.Hour, time.Second, runner, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	select {
	case <-runner.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("expected first cycle right after start")
	}
}

func TestStartRepeatsAtInterval(t *testing.T) {
	runner := newCountingRunner()
	s := New(100*time.Millisecond, time.Second, runner, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer s.Stop()

	deadline := time.After(3 * time.Second)
	for i := 0; i < 3; i++ {
		select {
		case <-runner.done:
		case <-deadline:
			t.Fatalf("expected 3 cycles, got %d", runner.calls.Load())
		}
	}
}
