package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Purger removes system stats older than a number of days.
type Purger interface {
	Purge(ctx context.Context, daysToKeep int) (int64, error)
}

type StatsRetentionWorker struct {
	purger          Purger
	retentionDays   int
	cleanupInterval time.Duration
}

func NewStatsRetentionWorker(purger Purger, retentionDays int, cleanupInterval time.Duration) *StatsRetentionWorker {
	return &StatsRetentionWorker{
		purger:          purger,
		retentionDays:   retentionDays,
		cleanupInterval: cleanupInterval,
	}
}

// Start purges on every tick until ctx is cancelled. A non-positive interval
// disables the worker.
func (w *StatsRetentionWorker) Start(ctx context.Context) {
	if w.cleanupInterval <= 0 {
		return
	}

	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	log.Info().
		Dur("interval", w.cleanupInterval).
		Int("retention_days", w.retentionDays).
		Msg("stats retention worker started")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *StatsRetentionWorker) cleanup(ctx context.Context) {
	if _, err := w.purger.Purge(ctx, w.retentionDays); err != nil {
		log.Error().Err(err).Msg("failed to purge old system stats")
	}
}
