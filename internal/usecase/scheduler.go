package usecase

import (
	"context"
	"time"

	drepo "github.com/kola-ootro/oura-ring-data-collector/internal/domain/repository"
	applogger "github.com/kola-ootro/oura-ring-data-collector/pkg/logger"
)

// Scheduler invokes the Refresher on a fixed interval. It is a plain
// external trigger: all serialization lives inside the Refresher itself.
type Scheduler struct {
	refresher drepo.Refresher
	interval  time.Duration
	logger    *applogger.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a periodic refresh trigger.
func NewScheduler(refresher drepo.Refresher, interval time.Duration, logger *applogger.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
	}
}

// Start launches the tick loop. The first refresh fires after one interval,
// not immediately; the initial fetch is the dashboard's first-run route.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.refresher.Refresh(ctx); err != nil {
					s.logger.Error("scheduled refresh failed", applogger.Error(err))
				}
			}
		}
	}()

	s.logger.Info("scheduler started", applogger.Duration("interval_ms", s.interval))
}

// Stop cancels the tick loop and waits for it to exit.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}
