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

type applicationService struct {
	appRepo  repository.ApplicationRepository
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	emailSvc EmailService
	activity ActivityService
	renderer *markdown.Renderer
}

func NewApplicationService(
	appRepo repository.ApplicationRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	activity ActivityService,
	renderer *markdown.Renderer,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		userRepo: userRepo,
		noteRepo: noteRepo,
		emailSvc: emailSvc,
		activity: activity,
		renderer: renderer,
	}
}

func (s *applicationService) CreateApplication(ctx context.Context, applicantID int32, appType domain.ApplicationType, body string) (*domain.Application, error) {
	track, ok := appType.Track()
	if !ok {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown application type %q", appType))
	}
	if strings.TrimSpace(body) == "" {
		return nil, domain.NewValidationError("body", "body is required")
	}

	rendered, err := s.renderer.Render(body)
	if err != nil {
		return nil, err
	}

	app := &domain.Application{
		Type:        appType,
		Track:       track,
		ApplicantID: applicantID,
		Body:        body,
		BodyHTML:    rendered,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.activity.Record(ctx, "application", "create", &applicantID, nil)
	return app, nil
}

func (s *applicationService) GetApplication(ctx context.Context, actorID, appID int32) (*domain.Application, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, domain.CapabilityView, app.Track, "applications", app.IsParty(actorID)); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *applicationService) ClaimApplication(ctx context.Context, actorID, appID int32) (*domain.Application, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, domain.CapabilityResolve, app.Track, "applications", false); err != nil {
		return nil, err
	}
	if app.Resolved() {
		return nil, domain.NewValidationError("", "application is already resolved")
	}

	claimed, err := s.appRepo.Claim(ctx, appID, actorID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, domain.ErrAlreadyClaimed
	}
	app.AssigneeID = &actorID

	if applicant, err := s.userRepo.GetByID(ctx, app.ApplicantID); err == nil {
		_ = s.emailSvc.SendApplicationClaimedNotification(ctx, applicant.Email, applicant.DisplayName, app.Type)
		note := &domain.Notification{
			UserID:  app.ApplicantID,
			Title:   "Application claimed",
			Message: fmt.Sprintf("%s is reviewing your %s application", actor.DisplayName, app.Type),
			Attributes: map[string]string{
				"type":           "APPLICATION_CLAIMED",
				"application_id": fmt.Sprintf("%d", app.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create claim notification", "application_id", app.ID, "error", err)
		}
	}

	s.activity.Record(ctx, "application", "claim", &actorID, nil)
	return app, nil
}

func (s *applicationService) ResolveApplication(ctx context.Context, actorID, appID int32, resolution domain.ApplicationResolution) (*domain.Application, error) {
	if _, err := domain.ParseApplicationResolution(string(resolution)); err != nil {
		return nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	app, err := s.appRepo.GetByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.AssigneeID == nil || *app.AssigneeID != actorID {
		return nil, &domain.AuthorizationError{Permission: domain.PermissionName(domain.CapabilityResolve, app.Track, "applications"), Track: app.Track}
	}
	if err := domain.Authorize(actor, domain.CapabilityResolve, app.Track, "applications", false); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.appRepo.Resolve(ctx, appID, resolution, now); err != nil {
		return nil, err
	}
	app.Resolution = resolution
	app.ResolvedAt = &now

	if applicant, err := s.userRepo.GetByID(ctx, app.ApplicantID); err == nil {
		_ = s.emailSvc.SendApplicationResolvedNotification(ctx, applicant.Email, applicant.DisplayName, app.Type, resolution)
		note := &domain.Notification{
			UserID:  app.ApplicantID,
			Title:   "Application resolved",
			Message: fmt.Sprintf("Your %s application was %s", app.Type, resolution),
			Attributes: map[string]string{
				"type":           "APPLICATION_RESOLVED",
				"application_id": fmt.Sprintf("%d", app.ID),
			},
		}
		if err := s.noteRepo.Create(ctx, note); err != nil {
			logger.Warn("Failed to create resolve notification", "application_id", app.ID, "error", err)
		}
	}

	s.activity.Record(ctx, "application", "resolve", &actorID, nil)
	return app, nil
}

func (s *applicationService) ListApplications(ctx context.Context, actorID int32, track *domain.Track, includeResolved bool, page, pageSize int32) ([]domain.Application, int32, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}

	filter := repository.ApplicationFilter{
		Track:          track,
		UnresolvedOnly: !includeResolved,
		Page:           page,
		PageSize:       pageSize,
	}

	if track != nil {
		if err := domain.Authorize(actor, domain.CapabilityList, *track, "applications", false); err != nil {
			return nil, 0, err
		}
		return s.appRepo.List(ctx, filter)
	}

	canSocial := domain.Authorize(actor, domain.CapabilityList, domain.TrackSocial, "applications", false) == nil
	canContent := domain.Authorize(actor, domain.CapabilityList, domain.TrackContent, "applications", false) == nil
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
		return nil, 0, &domain.AuthorizationError{Permission: domain.PermissionName(domain.CapabilityList, domain.TrackSocial, "applications"), Track: domain.TrackSocial}
	}
	return s.appRepo.List(ctx, filter)
}

func (s *applicationService) ListParticipating(ctx context.Context, actorID int32, page, pageSize int32) ([]domain.Application, int32, error) {
	filter := repository.ApplicationFilter{
		PartyID:  &actorID,
		Page:     page,
		PageSize: pageSize,
	}
	return s.appRepo.List(ctx, filter)
}
