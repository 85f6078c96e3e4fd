// Package scheduler drives the delivery clock: one evaluation per minute,
// matching subscription times against the current wall-clock minute in each
// subscriber's timezone.
package scheduler

import (
	"context"
	"time"

	"github.com/citydigest/citydigest/config"
	"github.com/citydigest/citydigest/internal/logger"
	"github.com/citydigest/citydigest/internal/metrics"
	"github.com/citydigest/citydigest/internal/models"
)

// DueLister is the slice of the store the scheduler needs
type DueLister interface {
	ListDueAt(ctx context.Context, now time.Time) ([]models.Subscription, error)
}

// Deliverer handles one batch of due subscriptions
type Deliverer interface {
	Dispatch(ctx context.Context, subs []models.Subscription)
}

// Scheduler evaluates due subscriptions on a fixed interval
type Scheduler struct {
	store      DueLister
	dispatcher Deliverer
	cfg        config.SchedulerConfig
}

// New creates a scheduler
func New(store DueLister, dispatcher Deliverer, cfg config.SchedulerConfig) *Scheduler {
	return &Scheduler{store: store, dispatcher: dispatcher, cfg: cfg}
}

// Run blocks until ctx is canceled. The first tick waits out the startup
// grace so storage and outbound connectivity are warm before any delivery.
// Ticks run synchronously: a slow batch delays the next tick instead of
// overlapping it.
func (s *Scheduler) Run(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(s.cfg.StartupGrace):
	}

	logger.Info("scheduler started", "tick_interval", s.cfg.TickInterval.String())

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

// tick evaluates one scheduling instant. A store failure skips the tick;
// the next minute gets a fresh chance.
func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	start := time.Now()
	defer func() { metrics.RecordTick(time.Since(start)) }()

	due, err := s.store.ListDueAt(ctx, now)
	if err != nil {
		logger.Error("due evaluation failed, skipping tick", "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	logger.Debug("tick has due subscriptions", "count", len(due))
	s.dispatcher.Dispatch(ctx, due)
}
