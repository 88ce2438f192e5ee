// Package sweeper runs the expiration sweep on a fixed interval, independent of request
// handling.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"food-rescue/internal/pkg/clock"
	"food-rescue/internal/usecase/commands"
)

type ExpireSweeper interface {
	ExpireSweep(ctx context.Context, now time.Time) commands.SweepResult
}

type Sweeper struct {
	engine   ExpireSweeper
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func New(engine ExpireSweeper, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		engine:   engine,
		clock:    clk,
		interval: interval,
		logger:   logger.With(slog.String("component", "sweeper")),
	}
}

// Start launches the background loop. Calling Start on a running sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	done := make(chan struct{})
	s.done = done

	go func() {
		defer close(done)

		s.logger.Info("expiration sweeper started", slog.String("interval", s.interval.String()))

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("expiration sweeper stopped")
				return
			case <-ticker.C:
				s.SweepNow(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (s *Sweeper) SweepNow(ctx context.Context) commands.SweepResult {
	return s.engine.ExpireSweep(ctx, s.clock.Now())
}
