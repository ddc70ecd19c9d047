package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RenewalSweeper runs one batch of due auto-renewals.
type RenewalSweeper interface {
	ProcessDueRenewals(ctx context.Context, limit int) (int, error)
}

// RenewalScheduler periodically sweeps expired auto-renewing subscriptions and
// renews them. Per-record failures are handled inside the sweep; the scheduler
// only drives the cadence.
type RenewalScheduler struct {
	cron      *cron.Cron
	sweeper   RenewalSweeper
	batchSize int
	logger    *zap.Logger
}

// NewRenewalScheduler creates a scheduler driving the given sweeper.
func NewRenewalScheduler(sweeper RenewalSweeper, batchSize int, logger *zap.Logger) *RenewalScheduler {
	return &RenewalScheduler{
		cron:      cron.New(),
		sweeper:   sweeper,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Start registers the sweep at the given cron spec and starts the scheduler.
func (s *RenewalScheduler) Start(ctx context.Context, cronSpec string) error {
	_, err := s.cron.AddFunc(cronSpec, func() {
		if _, err := s.sweeper.ProcessDueRenewals(ctx, s.batchSize); err != nil {
			s.logger.Error("renewal sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("renewal scheduler started", zap.String("spec", cronSpec))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (s *RenewalScheduler) Stop() {
	<-s.cron.Stop().Done()
}
