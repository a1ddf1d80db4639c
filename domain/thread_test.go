package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cutroom/errors"
)

func TestThread_Post_RejectsDanglingReply(t *testing.T) {
	thread := NewThread("p1")
	missing := uuid.New()

	_, err := thread.Post("client-1", RoleClient, "hello", &missing, time.Now().UTC())

	require.ErrorIs(t, err, errors.ErrInvalidReference)
	require.Empty(t, thread.Messages())
}

func TestThread_React_IsIdempotentPerParticipantAndKind(t *testing.T) {
	req := require.New(t)
	thread := NewThread("p1")
	msg, err := thread.Post("editor-1", RoleEditor, "first cut is up", nil, time.Now().UTC())
	req.NoError(err)

	first, changed, err := thread.React(msg.ID, "client-1", "heart")
	req.NoError(err)
	req.True(changed)
	req.Equal(1, first.Reactions["heart"].Count())

	// Same participant, same kind: no double increment.
	second, changed, err := thread.React(msg.ID, "client-1", "heart")
	req.NoError(err)
	req.False(changed)
	req.Equal(1, second.Reactions["heart"].Count())

	// Another participant still counts.
	third, changed, err := thread.React(msg.ID, "client-2", "heart")
	req.NoError(err)
	req.True(changed)
	req.Equal(2, third.Reactions["heart"].Count())
}

func TestThread_Unreact_RestoresPreReactStateExactly(t *testing.T) {
	req := require.New(t)
	thread := NewThread("p1")
	msg, err := thread.Post("editor-1", RoleEditor, "thoughts?", nil, time.Now().UTC())
	req.NoError(err)

	_, _, err = thread.React(msg.ID, "client-1", "thumbsUp")
	req.NoError(err)
	after, changed, err := thread.Unreact(msg.ID, "client-1", "thumbsUp")
	req.NoError(err)
	req.True(changed)

	// No residual zero-count entry.
	_, present := after.Reactions["thumbsUp"]
	req.False(present)

	// Unreacting again is a no-op.
	_, changed, err = thread.Unreact(msg.ID, "client-1", "thumbsUp")
	req.NoError(err)
	req.False(changed)
}

func TestThread_React_OnTombstoneFailsNotFound(t *testing.T) {
	thread := NewThread("p1")
	msg, err := thread.Post("client-1", RoleClient, "scrap this", nil, time.Now().UTC())
	require.NoError(t, err)

	_, _, err = thread.SoftDelete(msg.ID, "client-1", RoleClient)
	require.NoError(t, err)

	_, _, err = thread.React(msg.ID, "editor-1", "heart")
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestThread_SoftDelete_OnlyAuthorOrSystem(t *testing.T) {
	req := require.New(t)
	thread := NewThread("p1")
	msg, err := thread.Post("client-1", RoleClient, "please tighten the intro", nil, time.Now().UTC())
	req.NoError(err)

	_, _, err = thread.SoftDelete(msg.ID, "editor-1", RoleEditor)
	req.ErrorIs(err, errors.ErrForbidden)

	deleted, changed, err := thread.SoftDelete(msg.ID, "moderator", RoleSystem)
	req.NoError(err)
	req.True(changed)
	req.True(deleted.Deleted)
	req.Equal(TombstoneBody, deleted.Body)
	req.Empty(deleted.Reactions)
	req.Equal(msg.ID, deleted.ID)
}

func TestThread_ReplyChain_SurfacesTombstoneAndTerminates(t *testing.T) {
	req := require.New(t)
	thread := NewThread("p1")
	at := time.Now().UTC()

	root, err := thread.Post("client-1", RoleClient, "brief attached", nil, at)
	req.NoError(err)
	mid, err := thread.Post("editor-1", RoleEditor, "got it", &root.ID, at)
	req.NoError(err)
	leaf, err := thread.Post("client-1", RoleClient, "any update?", &mid.ID, at)
	req.NoError(err)

	// Tombstone the middle message: the chain must still terminate and
	// surface the tombstone instead of walking past it.
	_, _, err = thread.SoftDelete(mid.ID, "editor-1", RoleEditor)
	req.NoError(err)

	chain, err := thread.ReplyChain(leaf.ID)
	req.NoError(err)
	req.Len(chain, 2)
	req.Equal(leaf.ID, chain[0].ID)
	req.Equal(mid.ID, chain[1].ID)
	req.True(chain[1].Deleted)
	req.Equal(TombstoneBody, chain[1].Body)
}

func TestThread_ReplyChain_FullWalk(t *testing.T) {
	thread := NewThread("p1")
	at := time.Now().UTC()

	root, _ := thread.Post("client-1", RoleClient, "v1 notes", nil, at)
	reply, _ := thread.Post("editor-1", RoleEditor, "fixed in v2", &root.ID, at)

	chain, err := thread.ReplyChain(reply.ID)
	require.NoError(t, err)
	require.Len(t, chain, 2)
	require.Equal(t, root.ID, chain[1].ID)
}

func TestThread_Pin_NoExclusivity(t *testing.T) {
	req := require.New(t)
	thread := NewThread("p1")
	at := time.Now().UTC()
	m1, _ := thread.Post("client-1", RoleClient, "deadline friday", nil, at)
	m2, _ := thread.Post("editor-1", RoleEditor, "export settings", nil, at)

	_, changed, err := thread.SetPinned(m1.ID, true)
	req.NoError(err)
	req.True(changed)
	_, changed, err = thread.SetPinned(m2.ID, true)
	req.NoError(err)
	req.True(changed)

	// Pinning twice is a state no-op.
	_, changed, err = thread.SetPinned(m1.ID, true)
	req.NoError(err)
	req.False(changed)

	msgs := thread.Messages()
	req.True(msgs[0].Pinned)
	req.True(msgs[1].Pinned)
}
