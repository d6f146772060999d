package processor

import (
	"context"

	"pantry/background-worker-service/internal/app/background-worker/service"
	"pantry/pkg/logger"

	"github.com/robfig/cron/v3"
)

// CronScheduler runs the nightly recipe cost reconciliation.
type CronScheduler struct {
	cron         *cron.Cron
	reconcileSvc service.ReconcileServiceInterface
}

func NewCronScheduler(reconcileSvc service.ReconcileServiceInterface) *CronScheduler {
	return &CronScheduler{
		cron:         cron.New(),
		reconcileSvc: reconcileSvc,
	}
}

func (s *CronScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		logger.Info().Msg("Cron job triggered: reconciling recipe costs")

		if err := s.reconcileSvc.ReconcileAll(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to reconcile recipe costs")
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logger.Info().Msg("Cron scheduler started")

	return nil
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
