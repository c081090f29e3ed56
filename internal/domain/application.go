package domain

import (
	"fmt"
	"time"
)

// ApplicationType is the closed set of roles and privileged actions a member
// may request. Each type belongs to exactly one moderation track.
type ApplicationType string

const (
	ApplicationCreatePublisher     ApplicationType = "create_publisher"
	ApplicationClaimPublisher      ApplicationType = "claim_publisher"
	ApplicationScheduleEvent       ApplicationType = "schedule_event"
	ApplicationCreateAd            ApplicationType = "create_ad"
	ApplicationScheduleAdLifecycle ApplicationType = "schedule_ad_lifecycle"
	ApplicationSocialModerator     ApplicationType = "become_social_moderator"
	ApplicationContentModerator    ApplicationType = "become_content_moderator"
)

var applicationTracks = map[ApplicationType]Track{
	ApplicationCreatePublisher:     TrackContent,
	ApplicationClaimPublisher:      TrackContent,
	ApplicationScheduleEvent:       TrackContent,
	ApplicationCreateAd:            TrackContent,
	ApplicationScheduleAdLifecycle: TrackContent,
	ApplicationSocialModerator:     TrackSocial,
	ApplicationContentModerator:    TrackContent,
}

// Track returns the moderation track responsible for this application type.
func (t ApplicationType) Track() (Track, bool) {
	tr, ok := applicationTracks[t]
	return tr, ok
}

// ParseApplicationType validates a user-supplied application type.
func ParseApplicationType(s string) (ApplicationType, error) {
	t := ApplicationType(s)
	if _, ok := applicationTracks[t]; !ok {
		return "", NewValidationError("type", fmt.Sprintf("unknown application type %q", s))
	}
	return t, nil
}

// ApplicationResolution is the enumerated terminal outcome of an application.
type ApplicationResolution string

const (
	ResolutionAccepted ApplicationResolution = "accepted"
	ResolutionRejected ApplicationResolution = "rejected"
)

func ParseApplicationResolution(s string) (ApplicationResolution, error) {
	r := ApplicationResolution(s)
	if r != ResolutionAccepted && r != ResolutionRejected {
		return "", NewValidationError("resolution", fmt.Sprintf("resolution must be %q or %q", ResolutionAccepted, ResolutionRejected))
	}
	return r, nil
}

// Application is a member's request for a role or privileged action. It is
// claimed exactly once by a moderator (the assignee) and resolved exactly
// once by that assignee.
type Application struct {
	ID          int32                 `json:"id"`
	Type        ApplicationType       `json:"type"`
	Track       Track                 `json:"track"`
	ApplicantID int32                 `json:"applicant_id"`
	AssigneeID  *int32                `json:"assignee_id"`
	Body        string                `json:"body"`
	BodyHTML    string                `json:"body_html"`
	Resolution  ApplicationResolution `json:"resolution,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	ResolvedAt  *time.Time            `json:"resolved_at"`
}

func (a *Application) Claimed() bool {
	return a.AssigneeID != nil
}

func (a *Application) Resolved() bool {
	return a.ResolvedAt != nil
}

// IsParty reports whether userID is the applicant or the assignee.
func (a *Application) IsParty(userID int32) bool {
	if a.ApplicantID == userID {
		return true
	}
	return a.AssigneeID != nil && *a.AssigneeID == userID
}
