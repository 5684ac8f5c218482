package ledger

import (
	"context"
	"time"

	"scholarship-portal/internal/logger"

	"go.uber.org/zap"
)

// StartCleanupJob periodically removes records that expired more than one TTL
// ago. Fresher expired records are left for the lazy expiry check so callers
// still get an "expired" answer rather than "not found".
func (l *Ledger) StartCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("OTP cleanup job started",
		zap.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.Info("OTP cleanup job stopped")
			return
		case <-ticker.C:
			l.cleanupExpired(ctx)
		}
	}
}

func (l *Ledger) cleanupExpired(ctx context.Context) {
	cutoff := l.now().Add(-l.ttl)
	removed, err := l.Sweep(ctx, cutoff)
	if err != nil {
		logger.Error("Failed to delete expired OTP records", zap.Error(err))
		return
	}

	logger.Debug("Expired OTP records cleaned up",
		zap.Int("removed", removed),
		zap.Time("expired_before", cutoff),
	)
}
