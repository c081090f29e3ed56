package domain

import "fmt"

// EntityKind enumerates the content kinds a flag may target. The set is
// closed; anything outside it is rejected at flag creation.
type EntityKind string

const (
	EntitySubmission EntityKind = "submission"
	EntityComment    EntityKind = "comment"
	EntityFolder     EntityKind = "folder"
	EntityPublisher  EntityKind = "publisher"
	EntityProfile    EntityKind = "profile"
	EntityEvent      EntityKind = "event"
	EntityAd         EntityKind = "ad"
)

var flaggableKinds = map[EntityKind]bool{
	EntitySubmission: true,
	EntityComment:    true,
	EntityFolder:     true,
	EntityPublisher:  true,
	EntityProfile:    true,
	EntityEvent:      true,
	EntityAd:         true,
}

func (k EntityKind) Flaggable() bool {
	return flaggableKinds[k]
}

// ParseEntityKind validates a user-supplied entity kind.
func ParseEntityKind(s string) (EntityKind, error) {
	k := EntityKind(s)
	if !k.Flaggable() {
		return "", NewValidationError("entity_kind", fmt.Sprintf("%q is not a flaggable kind", s))
	}
	return k, nil
}

// EntityRef identifies a record of any flaggable kind. It replaces the
// unconstrained content-type/object-id generic relation with a closed tagged
// pair resolved through per-kind lookups.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   int32      `json:"id"`
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%d", r.Kind, r.ID)
}
