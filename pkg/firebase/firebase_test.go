package firebase

import (
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
)

func TestIdentityFromRecord(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

	record := &auth.UserRecord{
		UserInfo: &auth.UserInfo{
			UID:         "uid-1",
			DisplayName: "Ada",
			Email:       "ada@example.com",
			PhotoURL:    "https://example.com/ada.png",
		},
		UserMetadata: &auth.UserMetadata{CreationTimestamp: created.UnixMilli()},
	}

	id := identityFromRecord(record, now)

	assert.Equal(t, "uid-1", id.UID)
	assert.Equal(t, "Ada", id.DisplayName)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.Equal(t, "https://example.com/ada.png", id.PhotoURL)
	assert.True(t, created.Equal(id.CreatedAt))
	assert.Equal(t, now, id.LastSignIn)
}

func TestIdentityFromRecord_MissingFields(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

	id := identityFromRecord(&auth.UserRecord{UserInfo: &auth.UserInfo{UID: "uid-2"}}, now)

	assert.Equal(t, "uid-2", id.UID)
	assert.Empty(t, id.DisplayName)
	assert.Empty(t, id.Email)
	assert.Empty(t, id.PhotoURL)
	assert.Equal(t, now, id.CreatedAt)
	assert.Equal(t, now, id.LastSignIn)
}
