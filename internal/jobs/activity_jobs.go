package jobs

import (
	"context"
	"time"

	"honeycomb-backend/internal/logger"
)

// RotateActivities deletes activity entries older than the retention window.
// The stream is a rolling log, not an audit trail, so old entries just go.
func (jr *JobRunner) RotateActivities() {
	jr.runWithRecovery("RotateActivities", func() {
		ctx := context.Background()

		days := jr.config.Retention.ActivityDays
		cutoff := time.Now().UTC().AddDate(0, 0, -days)

		deleted, err := jr.store.ActivityRepository.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to rotate activities", "error", err)
			return
		}

		logger.Info("Activities rotated", "deleted", deleted, "retention_days", days)
	})
}
