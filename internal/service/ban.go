package service

import (
	"context"
	"fmt"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/logger"
	"honeycomb-backend/internal/repository"
)

type banService struct {
	banRepo  repository.BanRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	activity ActivityService
}

func NewBanService(
	banRepo repository.BanRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	activity ActivityService,
) BanService {
	return &banService{
		banRepo:  banRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		activity: activity,
	}
}

func (s *banService) CreateBan(ctx context.Context, adminID, targetUserID int32, track domain.Track, reason string, days int32, flagIDs []int32) (*domain.Ban, error) {
	admin, err := s.userRepo.GetByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if !track.Valid() {
		return nil, domain.NewValidationError("track", fmt.Sprintf("unknown track %q", track))
	}
	if err := domain.Authorize(admin, domain.CapabilityResolve, track, "bans", false); err != nil {
		return nil, err
	}
	if targetUserID == adminID {
		return nil, domain.NewValidationError("target_user_id", "cannot ban yourself")
	}
	if reason == "" {
		return nil, domain.NewValidationError("reason", "reason is required")
	}
	if days <= 0 {
		return nil, domain.NewValidationError("days", "ban duration must be at least one day")
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active, err := s.banRepo.HasActiveBan(ctx, targetUserID, now)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, domain.NewValidationError("target_user_id", "user already has an active ban")
	}

	ban := &domain.Ban{
		AdminID:      adminID,
		TargetUserID: targetUserID,
		Track:        track,
		Reason:       reason,
		StartsAt:     now,
		EndsAt:       now.AddDate(0, 0, int(days)),
		FlagIDs:      flagIDs,
	}
	if err := s.banRepo.Create(ctx, ban); err != nil {
		return nil, err
	}

	_ = s.emailSvc.SendBanNotification(ctx, target.Email, target.DisplayName, reason, false)
	note := &domain.Notification{
		UserID:  targetUserID,
		Title:   "Account restricted",
		Message: fmt.Sprintf("Your account is restricted until %s: %s", ban.EndsAt.Format("2006-01-02"), reason),
		Attributes: map[string]string{
			"type":   "BAN_CREATED",
			"ban_id": fmt.Sprintf("%d", ban.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create ban notification", "ban_id", ban.ID, "error", err)
	}

	ref := domain.EntityRef{Kind: domain.EntityProfile, ID: targetUserID}
	s.activity.Record(ctx, "ban", "create", &adminID, &ref)
	return ban, nil
}

func (s *banService) LiftBan(ctx context.Context, actorID, banID int32) (*domain.Ban, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	ban, err := s.banRepo.GetByID(ctx, banID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, domain.CapabilityResolve, ban.Track, "bans", false); err != nil {
		return nil, err
	}

	if err := s.banRepo.Lift(ctx, banID); err != nil {
		return nil, err
	}
	ban.Status = domain.BanStatusLifted

	if target, err := s.userRepo.GetByID(ctx, ban.TargetUserID); err == nil {
		_ = s.emailSvc.SendBanNotification(ctx, target.Email, target.DisplayName, ban.Reason, true)
		note := &domain.Notification{
			UserID:  ban.TargetUserID,
			Title:   "Restriction lifted",
			Message: "Your account restriction has been lifted",
			Attributes: map[string]string{
				"type":   "BAN_LIFTED",
				"ban_id": fmt.Sprintf("%d", ban.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create ban lift notification", "ban_id", ban.ID, "error", err)
		}
	}

	ref := domain.EntityRef{Kind: domain.EntityProfile, ID: ban.TargetUserID}
	s.activity.Record(ctx, "ban", "lift", &actorID, &ref)
	return ban, nil
}

func (s *banService) GetBan(ctx context.Context, actorID, banID int32) (*domain.Ban, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	ban, err := s.banRepo.GetByID(ctx, banID)
	if err != nil {
		return nil, err
	}
	isParty := ban.TargetUserID == actorID || ban.AdminID == actorID
	if err := domain.Authorize(actor, domain.CapabilityView, ban.Track, "bans", isParty); err != nil {
		return nil, err
	}
	return ban, nil
}

func (s *banService) ListBans(ctx context.Context, actorID int32, activeOnly bool, page, pageSize int32) ([]domain.Ban, int32, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	// Ban listings are staff-only; either track's list permission suffices.
	canSocial := domain.Authorize(actor, domain.CapabilityList, domain.TrackSocial, "bans", false) == nil
	canContent := domain.Authorize(actor, domain.CapabilityList, domain.TrackContent, "bans", false) == nil
	if !canSocial && !canContent {
		return nil, 0, &domain.AuthorizationError{Permission: domain.PermissionName(domain.CapabilityList, domain.TrackSocial, "bans"), Track: domain.TrackSocial}
	}
	return s.banRepo.List(ctx, activeOnly, page, pageSize)
}
