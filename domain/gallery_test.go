package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cutroom/errors"
)

func TestGallery_Add_VersionsAreGapless(t *testing.T) {
	req := require.New(t)
	gallery := NewGallery("p1")
	at := time.Now().UTC()

	for i := 1; i <= 5; i++ {
		draft := gallery.Add("clip", at)
		req.Equal(i, draft.Version)
	}

	drafts := gallery.Drafts()
	req.Len(drafts, 5)
	for i, d := range drafts {
		req.Equal(i+1, d.Version)
	}
}

func TestGallery_LockedDraftHiddenFromClient(t *testing.T) {
	req := require.New(t)
	gallery := NewGallery("P1")

	draft := gallery.Add("clip-a", time.Now().UTC())
	req.Equal(1, draft.Version)
	req.False(draft.Locked)

	locked, err := gallery.ToggleLock(draft.ID)
	req.NoError(err)
	req.True(locked.Locked)

	req.Empty(gallery.VisibleDrafts(RoleClient))

	editorView := gallery.VisibleDrafts(RoleEditor)
	req.Len(editorView, 1)
	req.Equal(1, editorView[0].Version)
	req.True(editorView[0].Locked)
}

func TestGallery_ToggleLock_IsAFlip(t *testing.T) {
	gallery := NewGallery("p1")
	draft := gallery.Add("clip", time.Now().UTC())

	once, err := gallery.ToggleLock(draft.ID)
	require.NoError(t, err)
	require.True(t, once.Locked)

	twice, err := gallery.ToggleLock(draft.ID)
	require.NoError(t, err)
	require.False(t, twice.Locked)
}

func TestGallery_ToggleLock_UnknownDraft(t *testing.T) {
	gallery := NewGallery("p1")

	_, err := gallery.ToggleLock(uuid.New())

	require.ErrorIs(t, err, errors.ErrNotFound)
}
