package domain

import "fmt"

// Track is the moderation partition every flag, application and ban belongs
// to. Each track carries its own permission set.
type Track string

const (
	TrackSocial  Track = "social"
	TrackContent Track = "content"
)

func (t Track) Valid() bool {
	return t == TrackSocial || t == TrackContent
}

// ParseTrack validates a user-supplied track value.
func ParseTrack(s string) (Track, error) {
	t := Track(s)
	if !t.Valid() {
		return "", NewValidationError("track", fmt.Sprintf("unknown track %q", s))
	}
	return t, nil
}

// Capability is an action class gated by a track permission.
type Capability string

const (
	CapabilityList    Capability = "list"
	CapabilityView    Capability = "view"
	CapabilityResolve Capability = "resolve"
)

// PermissionName composes the canonical permission string for a capability
// on a record kind within a track, e.g. "view_social_flags".
func PermissionName(cap Capability, track Track, kind string) string {
	return fmt.Sprintf("%s_%s_%s", cap, track, kind)
}

// Authorize is the single permission predicate shared by the flag,
// application and ban workflows. Superusers bypass all track checks. Staff
// holding the composed permission pass. A caller who is a direct party to
// the record (reporter, participant, applicant, assignee) may view it even
// without staff permissions. Everyone else is denied.
func Authorize(actor *User, cap Capability, track Track, kind string, isParty bool) error {
	if actor == nil {
		return &AuthorizationError{Track: track}
	}
	if actor.Superuser {
		return nil
	}
	perm := PermissionName(cap, track, kind)
	if actor.HasPermission(perm) {
		return nil
	}
	if isParty && cap == CapabilityView {
		return nil
	}
	return &AuthorizationError{Permission: perm, Track: track}
}
