package monitor

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"vitalguard/internal/render"
)

// Ticker defines the minimal contract required by the scheduler.
type Ticker interface {
	Tick(ctx context.Context) (*render.Frame, error)
}

// Scheduler drives a Ticker at a fixed interval.
type Scheduler struct {
	ticker   Ticker
	interval time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler.
func NewScheduler(
	t Ticker,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		ticker:   t,
		interval: interval,
		logger:   logger,
	}
}

// Start ticks once immediately and then every interval until ctx is
// cancelled or the session is closed. Cancellation is only observed
// between ticks. It blocks and should typically be run in a separate
// goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if !s.runOnce(ctx) {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.runOnce(ctx) {
				return
			}
		case <-ctx.Done():
			s.logger.Debug("scheduler stopped")
			return
		}
	}
}

// runOnce performs a single tick and reports whether to keep going.
func (s *Scheduler) runOnce(ctx context.Context) bool {
	frame, err := s.ticker.Tick(ctx)
	switch {
	case errors.Is(err, ErrSessionClosed):
		s.logger.Info("scheduler stopped: session closed")
		return false
	case err != nil:
		s.logger.Warn("tick failed", zap.Error(err))
	case frame == nil:
		s.logger.Debug("monitoring paused, tick skipped")
	}
	return true
}
