package domain

import "time"

// Flag is a member's escalation of a piece of content or a profile to the
// moderators of its track. Flags are never physically deleted.
type Flag struct {
	ID             int32      `json:"id"`
	Target         EntityRef  `json:"target"`
	TargetOwnerID  int32      `json:"target_owner_id"`
	ReporterID     int32      `json:"reporter_id"`
	Track          Track      `json:"track"`
	Subject        string     `json:"subject"`
	Body           string     `json:"body"`
	BodyHTML       string     `json:"body_html"`
	Resolution     string     `json:"resolution,omitempty"`
	ParticipantIDs []int32    `json:"participant_ids"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
}

// Active reports whether the flag is still open for join and resolve.
func (f *Flag) Active() bool {
	return f.ResolvedAt == nil
}

func (f *Flag) IsParticipant(userID int32) bool {
	for _, id := range f.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
