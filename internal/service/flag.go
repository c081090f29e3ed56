package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/logger"
	"honeycomb-backend/internal/markdown"
	"honeycomb-backend/internal/repository"
)

type flagService struct {
	flagRepo   repository.FlagRepository
	entityRepo repository.EntityRepository
	userRepo   repository.UserRepository
	noteRepo   repository.NotificationRepository
	emailSvc   EmailService
	activity   ActivityService
	renderer   *markdown.Renderer
}

func NewFlagService(
	flagRepo repository.FlagRepository,
	entityRepo repository.EntityRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	activity ActivityService,
	renderer *markdown.Renderer,
) FlagService {
	return &flagService{
		flagRepo:   flagRepo,
		entityRepo: entityRepo,
		userRepo:   userRepo,
		noteRepo:   noteRepo,
		emailSvc:   emailSvc,
		activity:   activity,
		renderer:   renderer,
	}
}

func (s *flagService) CreateFlag(ctx context.Context, reporterID int32, target domain.EntityRef, track domain.Track, subject, body string) (*domain.Flag, error) {
	if !track.Valid() {
		return nil, domain.NewValidationError("track", fmt.Sprintf("unknown track %q", track))
	}
	if !target.Kind.Flaggable() {
		return nil, &domain.AuthorizationError{Track: track}
	}
	if strings.TrimSpace(subject) == "" {
		return nil, domain.NewValidationError("subject", "subject is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, domain.NewValidationError("body", "body is required")
	}

	ownerID, err := s.entityRepo.ResolveOwner(ctx, target)
	if err != nil {
		return nil, err
	}
	if ownerID == reporterID {
		return nil, &domain.AuthorizationError{Track: track}
	}

	rendered, err := s.renderer.Render(body)
	if err != nil {
		return nil, err
	}

	flag := &domain.Flag{
		Target:        target,
		TargetOwnerID: ownerID,
		ReporterID:    reporterID,
		Track:         track,
		Subject:       subject,
		Body:          body,
		BodyHTML:      rendered,
	}
	if err := s.flagRepo.Create(ctx, flag); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "flag", "create", &reporterID, &target)
	return flag, nil
}

func (s *flagService) GetFlag(ctx context.Context, actorID, flagID int32) (*domain.Flag, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, domain.CapabilityView, flag.Track, "flags", flag.IsParticipant(actorID)); err != nil {
		return nil, err
	}
	return flag, nil
}

func (s *flagService) JoinFlag(ctx context.Context, actorID, flagID int32) (*domain.Flag, bool, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, false, err
	}
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, false, err
	}
	if err := domain.Authorize(actor, domain.CapabilityResolve, flag.Track, "flags", false); err != nil {
		return nil, false, err
	}
	if !flag.Active() {
		return nil, false, domain.NewValidationError("", "flag is already resolved")
	}
	if flag.IsParticipant(actorID) {
		// Joining twice is a warning for the caller, not an error.
		return flag, false, nil
	}

	if err := s.flagRepo.AddParticipant(ctx, flagID, actorID); err != nil {
		return nil, false, err
	}

	// Let the existing participants know who joined the discussion.
	for _, participantID := range flag.ParticipantIDs {
		s.notifyParticipant(ctx, participantID, flag, actor)
	}
	flag.ParticipantIDs = append(flag.ParticipantIDs, actorID)

	s.activity.Record(ctx, "flag", "join", &actorID, &flag.Target)
	return flag, true, nil
}

func (s *flagService) notifyParticipant(ctx context.Context, participantID int32, flag *domain.Flag, joiner *domain.User) {
	participant, err := s.userRepo.GetByID(ctx, participantID)
	if err != nil {
		logger.Warn("Failed to load flag participant for notification", "flag_id", flag.ID, "user_id", participantID, "error", err)
		return
	}
	_ = s.emailSvc.SendFlagJoinedNotification(ctx, participant.Email, participant.DisplayName, flag.Subject)
	note := &domain.Notification{
		UserID:  participantID,
		Title:   "Moderator joined flag",
		Message: fmt.Sprintf("%s joined the discussion on flag %q", joiner.DisplayName, flag.Subject),
		Attributes: map[string]string{
			"type":    "FLAG_JOINED",
			"flag_id": fmt.Sprintf("%d", flag.ID),
		},
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create flag join notification", "flag_id", flag.ID, "user_id", participantID, "error", err)
	}
}

func (s *flagService) ResolveFlag(ctx context.Context, actorID, flagID int32, resolution string) (*domain.Flag, error) {
	flag, err := s.flagRepo.GetByID(ctx, flagID)
	if err != nil {
		return nil, err
	}
	if !flag.IsParticipant(actorID) {
		return nil, domain.NewValidationError("", "you are not participating in this flag")
	}
	if strings.TrimSpace(resolution) == "" {
		return nil, domain.NewValidationError("resolution", "resolution text is required")
	}

	now := time.Now()
	if err := s.flagRepo.Resolve(ctx, flagID, resolution, now); err != nil {
		return nil, err
	}
	flag.Resolution = resolution
	flag.ResolvedAt = &now

	// The original reporter hears about the outcome.
	if reporter, err := s.userRepo.GetByID(ctx, flag.ReporterID); err == nil {
		_ = s.emailSvc.SendFlagResolvedNotification(ctx, reporter.Email, reporter.DisplayName, flag.Subject, resolution)
		note := &domain.Notification{
			UserID:  flag.ReporterID,
			Title:   "Flag resolved",
			Message: fmt.Sprintf("Your flag %q was resolved", flag.Subject),
			Attributes: map[string]string{
				"type":    "FLAG_RESOLVED",
				"flag_id": fmt.Sprintf("%d", flag.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create flag resolve notification", "flag_id", flag.ID, "error", err)
		}
	}

	s.activity.Record(ctx, "flag", "resolve", &actorID, &flag.Target)
	return flag, nil
}

func (s *flagService) ListFlags(ctx context.Context, actorID int32, track *domain.Track, includeInactive bool, page, pageSize int32) ([]domain.Flag, int32, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.FlagFilter{
		Track:      track,
		ActiveOnly: !includeInactive,
		Page:       page,
		PageSize:   pageSize,
	}

	if track != nil {
		if err := domain.Authorize(actor, domain.CapabilityList, *track, "flags", false); err != nil {
			return nil, 0, err
		}
		return s.flagRepo.List(ctx, filter)
	}

	// The combined listing narrows to the tracks the caller may list.
	// A caller who can list only one track sees just that track.
	canSocial := domain.Authorize(actor, domain.CapabilityList, domain.TrackSocial, "flags", false) == nil
	canContent := domain.Authorize(actor, domain.CapabilityList, domain.TrackContent, "flags", false) == nil
	switch {
	case canSocial && canContent:
		// no track filter
	case canSocial:
		t := domain.TrackSocial
		filter.Track = &t
	case canContent:
		t := domain.TrackContent
		filter.Track = &t
	default:
		return nil, 0, &domain.AuthorizationError{Permission: domain.PermissionName(domain.CapabilityList, domain.TrackSocial, "flags"), Track: domain.TrackSocial}
	}
	return s.flagRepo.List(ctx, filter)
}

func (s *flagService) ListMyFlags(ctx context.Context, actorID int32, page, pageSize int32) ([]domain.Flag, int32, error) {
	filter := repository.FlagFilter{
		ParticipantID: &actorID,
		Page:          page,
		PageSize:      pageSize,
	}
	return s.flagRepo.List(ctx, filter)
}
