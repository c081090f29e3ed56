package domain

import "time"

type BanStatus string

const (
	BanStatusActive  BanStatus = "active"
	BanStatusLifted  BanStatus = "lifted"
	BanStatusExpired BanStatus = "expired"
)

// Ban is a time-boxed restriction on a user. State machine:
// active -> lifted (moderator action) or active -> expired (scheduler once
// EndsAt has passed). Lifted and expired bans are terminal.
type Ban struct {
	ID           int32     `json:"id"`
	AdminID      int32     `json:"admin_id"`
	TargetUserID int32     `json:"target_user_id"`
	Track        Track     `json:"track"`
	Reason       string    `json:"reason"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Status       BanStatus `json:"status"`
	FlagIDs      []int32   `json:"flag_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Ban) Active(now time.Time) bool {
	return b.Status == BanStatusActive && now.Before(b.EndsAt)
}
