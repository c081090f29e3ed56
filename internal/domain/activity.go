package domain

import "time"

// Activity is one immutable entry in the site-wide activity stream. Entries
// are appended by mutating operations and read back newest-first; they are
// never updated or deleted by request handlers (rotation is a scheduled job).
type Activity struct {
	ID         int32       `json:"id"`
	Type       string      `json:"type"`
	ActorID    *int32      `json:"actor_id,omitempty"`
	EntityKind *EntityKind `json:"entity_kind,omitempty"`
	EntityID   *int32      `json:"entity_id,omitempty"`
	OccurredAt time.Time   `json:"time"`
}

// activityTaxonomy is the closed set of recordable type tags. Record calls
// with tags outside this set are dropped without error so evolving call
// sites never crash the write path.
var activityTaxonomy = map[string]bool{
	"user:register":       true,
	"user:login":          true,
	"user:logout":         true,
	"submission:create":   true,
	"submission:update":   true,
	"submission:delete":   true,
	"comment:create":      true,
	"comment:update":      true,
	"comment:delete":      true,
	"folder:create":       true,
	"folder:update":       true,
	"folder:delete":       true,
	"publisher:create":    true,
	"publisher:update":    true,
	"publisher:delete":    true,
	"rating:create":       true,
	"rating:update":       true,
	"rating:delete":       true,
	"tag:create":          true,
	"tag:delete":          true,
	"tag:apply":           true,
	"search:execute":      true,
	"flag:create":         true,
	"flag:join":           true,
	"flag:resolve":        true,
	"application:create":  true,
	"application:claim":   true,
	"application:resolve": true,
	"ban:create":          true,
	"ban:lift":            true,
	"ban:expire":          true,
}

// ActivityTag composes the dotted type tag for a domain and action.
func ActivityTag(domain, action string) string {
	return domain + ":" + action
}

// KnownActivityTag reports whether tag belongs to the fixed taxonomy.
func KnownActivityTag(tag string) bool {
	return activityTaxonomy[tag]
}
