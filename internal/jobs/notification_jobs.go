package jobs

import (
	"context"
	"time"

	"honeycomb-backend/internal/logger"
)

// CleanupNotifications deletes read notifications older than the retention
// window. Unread notifications are kept indefinitely.
func (jr *JobRunner) CleanupNotifications() {
	jr.runWithRecovery("CleanupNotifications", func() {
		ctx := context.Background()

		days := jr.config.Retention.ReadNotificationDays
		cutoff := time.Now().UTC().AddDate(0, 0, -days)

		deleted, err := jr.store.NotificationRepository.DeleteReadOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to clean up notifications", "error", err)
			return
		}

		logger.Info("Read notifications cleaned up", "deleted", deleted, "retention_days", days)
	})
}
