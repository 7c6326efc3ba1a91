package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes expired sessions and reports how many were dropped.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// StartSessionPurger runs purger every interval until ctx is cancelled.
func StartSessionPurger(ctx context.Context, purger Purger, interval time.Duration, logger *zap.Logger) {
	if purger == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purgeOnce(ctx, purger, logger)
			}
		}
	}()
}

func purgeOnce(ctx context.Context, purger Purger, logger *zap.Logger) {
	removed, err := purger.PurgeExpired(ctx)
	if err != nil {
		logger.Warn("session purge failed", zap.Error(err))
		return
	}
	if removed > 0 {
		logger.Info("expired sessions purged", zap.Int64("count", removed))
	}
}
