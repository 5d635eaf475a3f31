package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-admin/internal/logger"
	"github.com/MKhiriev/go-user-admin/internal/store"
)

// ResetCleanupWorker periodically clears expired password-reset secrets from
// the user table. The purge is hygiene only: expiry is re-checked at
// verification time, so a missed run never extends a secret's life.
type ResetCleanupWorker struct {
	repository store.UserRepository
	interval   time.Duration

	logger *logger.Logger
}

func NewResetCleanupWorker(repository store.UserRepository, interval time.Duration, logger *logger.Logger) *ResetCleanupWorker {
	return &ResetCleanupWorker{
		repository: repository,
		interval:   interval,
		logger:     logger,
	}
}

// Run executes the purge on every tick until ctx is cancelled.
func (w *ResetCleanupWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("reset cleanup worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("reset cleanup worker stopped")
			return
		case <-ticker.C:
			purged, err := w.repository.PurgeExpiredResetSecrets(ctx)
			if err != nil {
				w.logger.Error().Err(err).Msg("error occurred during expired reset-secret purge")
				continue
			}
			if purged > 0 {
				w.logger.Info().Int64("purged", purged).Msg("expired reset secrets cleared")
			}
		}
	}
}
