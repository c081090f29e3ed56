package repository

import (
	"context"
	"time"

	"honeycomb-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// FlagFilter narrows flag listings. Track and ParticipantID are optional;
// ActiveOnly keeps only flags with resolved_at IS NULL.
type FlagFilter struct {
	Track         *domain.Track
	ActiveOnly    bool
	ParticipantID *int32
	Page          int32
	PageSize      int32
}

type FlagRepository interface {
	Create(ctx context.Context, flag *domain.Flag) error
	GetByID(ctx context.Context, id int32) (*domain.Flag, error)
	AddParticipant(ctx context.Context, flagID, userID int32) error
	// Resolve sets the resolution exactly once. Returns
	// domain.ErrAlreadyResolved when the flag was resolved before the call.
	Resolve(ctx context.Context, flagID int32, resolution string, resolvedAt time.Time) error
	List(ctx context.Context, filter FlagFilter) ([]domain.Flag, int32, error)
}

// ApplicationFilter narrows application listings. PartyID matches records
// where the user is the applicant or the assignee.
type ApplicationFilter struct {
	Track          *domain.Track
	UnresolvedOnly bool
	PartyID        *int32
	Page           int32
	PageSize       int32
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	// Claim assigns the moderator atomically: the update applies only while
	// assignee_id is still NULL. Returns false when someone claimed first.
	Claim(ctx context.Context, id, assigneeID int32) (bool, error)
	// Resolve records the outcome exactly once. Returns
	// domain.ErrAlreadyResolved when the application was resolved before.
	Resolve(ctx context.Context, id int32, resolution domain.ApplicationResolution, resolvedAt time.Time) error
	List(ctx context.Context, filter ApplicationFilter) ([]domain.Application, int32, error)
}

type BanRepository interface {
	Create(ctx context.Context, ban *domain.Ban) error
	GetByID(ctx context.Context, id int32) (*domain.Ban, error)
	// Lift moves an active ban to lifted. Returns domain.ErrAlreadyResolved
	// when the ban is no longer active.
	Lift(ctx context.Context, id int32) error
	List(ctx context.Context, activeOnly bool, page, pageSize int32) ([]domain.Ban, int32, error)
	HasActiveBan(ctx context.Context, userID int32, now time.Time) (bool, error)
	// ExpireDue flips active bans whose end time has passed to expired and
	// returns them so callers can record the transitions.
	ExpireDue(ctx context.Context, now time.Time) ([]domain.Ban, error)
}

// ActivityFilter narrows activity stream reads. All fields are optional.
type ActivityFilter struct {
	EntityKind *domain.EntityKind
	EntityID   *int32
	Type       *string
	Page       int32
	PageSize   int32
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	List(ctx context.Context, filter ActivityFilter) ([]domain.Activity, error)
	SiteStats(ctx context.Context) (*domain.SiteStats, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit int32, offset int64) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// EntityRepository resolves flaggable entity references against the content
// tables through a per-kind lookup. ResolveOwner returns domain.ErrNotFound
// when the referenced row does not exist.
type EntityRepository interface {
	ResolveOwner(ctx context.Context, ref domain.EntityRef) (int32, error)
}
