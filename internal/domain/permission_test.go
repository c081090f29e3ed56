package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionName(t *testing.T) {
	assert.Equal(t, "view_social_flags", PermissionName(CapabilityView, TrackSocial, "flags"))
	assert.Equal(t, "resolve_content_applications", PermissionName(CapabilityResolve, TrackContent, "applications"))
	assert.Equal(t, "list_social_bans", PermissionName(CapabilityList, TrackSocial, "bans"))
}

func TestAuthorize(t *testing.T) {
	moderator := &User{ID: 1, Permissions: []string{"view_social_flags", "resolve_social_flags"}}
	superuser := &User{ID: 2, Superuser: true}
	member := &User{ID: 3}

	t.Run("NilActorDenied", func(t *testing.T) {
		err := Authorize(nil, CapabilityView, TrackSocial, "flags", false)
		assert.True(t, IsAuthorization(err))
	})

	t.Run("SuperuserBypassesEverything", func(t *testing.T) {
		assert.NoError(t, Authorize(superuser, CapabilityResolve, TrackContent, "bans", false))
		assert.NoError(t, Authorize(superuser, CapabilityList, TrackSocial, "applications", false))
	})

	t.Run("PermissionGrants", func(t *testing.T) {
		assert.NoError(t, Authorize(moderator, CapabilityView, TrackSocial, "flags", false))
		assert.NoError(t, Authorize(moderator, CapabilityResolve, TrackSocial, "flags", false))
	})

	t.Run("WrongTrackDenied", func(t *testing.T) {
		err := Authorize(moderator, CapabilityView, TrackContent, "flags", false)
		assert.True(t, IsAuthorization(err))
	})

	t.Run("PartyMayViewOnly", func(t *testing.T) {
		assert.NoError(t, Authorize(member, CapabilityView, TrackSocial, "flags", true))
		assert.True(t, IsAuthorization(Authorize(member, CapabilityResolve, TrackSocial, "flags", true)))
		assert.True(t, IsAuthorization(Authorize(member, CapabilityList, TrackSocial, "flags", true)))
	})

	t.Run("MemberDenied", func(t *testing.T) {
		err := Authorize(member, CapabilityView, TrackSocial, "flags", false)
		assert.True(t, IsAuthorization(err))
	})
}

func TestParseTrack(t *testing.T) {
	track, err := ParseTrack("social")
	assert.NoError(t, err)
	assert.Equal(t, TrackSocial, track)

	track, err = ParseTrack("content")
	assert.NoError(t, err)
	assert.Equal(t, TrackContent, track)

	_, err = ParseTrack("moderation")
	assert.True(t, IsValidation(err))
}
