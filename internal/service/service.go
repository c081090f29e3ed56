package service

import (
	"context"

	"honeycomb-backend/internal/domain"
	"honeycomb-backend/internal/repository"
)

type AuthService interface {
	Signup(ctx context.Context, email, displayName, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
	Logout(ctx context.Context, userID int32) error
}

type FlagService interface {
	CreateFlag(ctx context.Context, reporterID int32, target domain.EntityRef, track domain.Track, subject, body string) (*domain.Flag, error)
	GetFlag(ctx context.Context, actorID, flagID int32) (*domain.Flag, error)
	// JoinFlag adds the caller to the participants. The bool is false when
	// the caller already participated; that is a warning, not an error.
	JoinFlag(ctx context.Context, actorID, flagID int32) (*domain.Flag, bool, error)
	ResolveFlag(ctx context.Context, actorID, flagID int32, resolution string) (*domain.Flag, error)
	ListFlags(ctx context.Context, actorID int32, track *domain.Track, includeInactive bool, page, pageSize int32) ([]domain.Flag, int32, error)
	ListMyFlags(ctx context.Context, actorID int32, page, pageSize int32) ([]domain.Flag, int32, error)
}

type ApplicationService interface {
	CreateApplication(ctx context.Context, applicantID int32, appType domain.ApplicationType, body string) (*domain.Application, error)
	GetApplication(ctx context.Context, actorID, appID int32) (*domain.Application, error)
	ClaimApplication(ctx context.Context, actorID, appID int32) (*domain.Application, error)
	ResolveApplication(ctx context.Context, actorID, appID int32, resolution domain.ApplicationResolution) (*domain.Application, error)
	ListApplications(ctx context.Context, actorID int32, track *domain.Track, includeResolved bool, page, pageSize int32) ([]domain.Application, int32, error)
	ListParticipating(ctx context.Context, actorID int32, page, pageSize int32) ([]domain.Application, int32, error)
}

type BanService interface {
	CreateBan(ctx context.Context, adminID, targetUserID int32, track domain.Track, reason string, days int32, flagIDs []int32) (*domain.Ban, error)
	LiftBan(ctx context.Context, actorID, banID int32) (*domain.Ban, error)
	GetBan(ctx context.Context, actorID, banID int32) (*domain.Ban, error)
	ListBans(ctx context.Context, actorID int32, activeOnly bool, page, pageSize int32) ([]domain.Ban, int32, error)
}

type ActivityService interface {
	// Record appends one activity entry. Tags outside the fixed taxonomy
	// are dropped without error; failures are logged, never surfaced.
	Record(ctx context.Context, domainName, action string, actorID *int32, entity *domain.EntityRef)
	Stream(ctx context.Context, filter repository.ActivityFilter) ([]domain.Activity, error)
	SiteStats(ctx context.Context) (*domain.SiteStats, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendFlagJoinedNotification(ctx context.Context, email, name, subject string) error
	SendFlagResolvedNotification(ctx context.Context, email, name, subject, resolution string) error
	SendApplicationClaimedNotification(ctx context.Context, email, name string, appType domain.ApplicationType) error
	SendApplicationResolvedNotification(ctx context.Context, email, name string, appType domain.ApplicationType, resolution domain.ApplicationResolution) error
	SendBanNotification(ctx context.Context, email, name, reason string, lifted bool) error
}
