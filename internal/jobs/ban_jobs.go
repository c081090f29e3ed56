package jobs

import (
	"context"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/logger"
)

// ExpireBans flips active bans past their end time to expired, records the
// transition in the activity stream and mails the affected users.
func (jr *JobRunner) ExpireBans() {
	jr.runWithRecovery("ExpireBans", func() {
		ctx := context.Background()

		expired, err := jr.store.BanRepository.ExpireDue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to expire bans", "error", err)
			return
		}

		for _, ban := range expired {
			entity := domain.EntityRef{Kind: domain.EntityProfile, ID: ban.TargetUserID}
			jr.services.Activity.Record(ctx, "ban", "expire", nil, &entity)

			target, err := jr.store.UserRepository.GetByID(ctx, ban.TargetUserID)
			if err != nil {
				logger.Error("Failed to load banned user",
					"ban_id", ban.ID,
					"user_id", ban.TargetUserID,
					"error", err)
				continue
			}

			if err := jr.services.Email.SendBanNotification(ctx, target.Email, target.DisplayName, ban.Reason, true); err != nil {
				logger.Error("Failed to send ban expiry email",
					"ban_id", ban.ID,
					"user_id", ban.TargetUserID,
					"error", err)
			}

			logger.Debug("Ban expired", "ban_id", ban.ID, "user_id", ban.TargetUserID, "track", ban.Track)
		}

		logger.Info("Bans expired", "count", len(expired))
	})
}
