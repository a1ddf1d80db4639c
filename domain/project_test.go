package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cutroom/domain/event"
	"cutroom/errors"
)

func TestProject_Apply_PostMessageEmitsEvent(t *testing.T) {
	req := require.New(t)
	project := NewProject("p1")
	at := time.Now().UTC()

	err := project.Apply(PostMessage{
		Project: "p1",
		Author:  "client-1",
		Role:    RoleClient,
		Body:    "can we brighten the interview shots?",
		At:      at,
	})
	req.NoError(err)

	events := project.FlushEvents()
	req.Len(events, 1)
	posted, ok := events[0].(event.MessagePosted)
	req.True(ok)
	req.Equal("p1", posted.ProjectID)
	req.Equal("client-1", posted.AuthorID)
	req.Equal(at, posted.At)

	// The outbox drains exactly once.
	req.Empty(project.FlushEvents())
}

func TestProject_Apply_RejectsForeignProjectCommand(t *testing.T) {
	project := NewProject("p1")

	err := project.Apply(AddDraft{Project: "p2", MediaRef: "clip"})

	require.ErrorIs(t, err, errors.ErrInvalidReference)
	require.Empty(t, project.FlushEvents())
}

func TestProject_Apply_FailedCommandLeavesNoTrace(t *testing.T) {
	req := require.New(t)
	project := NewProject("p1")

	err := project.Apply(MoveTask{Project: "p1", TaskID: uuid.New(), NewStatus: StatusCompleted})
	req.ErrorIs(err, errors.ErrNotFound)

	// No partial apply: no events, no state.
	req.Empty(project.FlushEvents())
	req.Empty(project.Snapshot().Tasks)
}

func TestProject_Apply_TaskMoveScenario(t *testing.T) {
	req := require.New(t)
	project := NewProject("P1")
	at := time.Now().UTC()

	err := project.Apply(CreateTask{
		Project: "P1", Name: "Rough Cut", Hours: 4, Cost: 200, DueDate: "2025-04-05", At: at,
	})
	req.NoError(err)
	created := project.FlushEvents()
	req.Len(created, 1)
	taskID := created[0].(event.TaskCreated).TaskID
	req.Equal("PENDING", created[0].(event.TaskCreated).Status)

	err = project.Apply(MoveTask{Project: "P1", TaskID: taskID, NewStatus: StatusInProgress, At: at})
	req.NoError(err)
	moved := project.FlushEvents()
	req.Len(moved, 1)
	evt := moved[0].(event.TaskMoved)
	req.Equal("PENDING", evt.From)
	req.Equal("IN_PROGRESS", evt.To)

	// Reverting is allowed and emits a second audit event.
	err = project.Apply(MoveTask{Project: "P1", TaskID: taskID, NewStatus: StatusPending, At: at})
	req.NoError(err)
	reverted := project.FlushEvents()
	req.Len(reverted, 1)
	req.Equal("IN_PROGRESS", reverted[0].(event.TaskMoved).From)
	req.Equal("PENDING", reverted[0].(event.TaskMoved).To)
}

func TestProject_Apply_IdempotentReactEmitsOnce(t *testing.T) {
	req := require.New(t)
	project := NewProject("p1")

	req.NoError(project.Apply(PostMessage{Project: "p1", Author: "editor-1", Role: RoleEditor, Body: "v2 is up"}))
	msgID := project.FlushEvents()[0].(event.MessagePosted).ID

	req.NoError(project.Apply(React{Project: "p1", MessageID: msgID, Participant: "client-1", Kind: "heart"}))
	req.NoError(project.Apply(React{Project: "p1", MessageID: msgID, Participant: "client-1", Kind: "heart"}))

	events := project.FlushEvents()
	req.Len(events, 1)
	req.Equal(1, events[0].(event.ReactionAdded).Count)
}

func TestProject_Snapshot_IsIndependentCopy(t *testing.T) {
	req := require.New(t)
	project := NewProject("p1")
	req.NoError(project.Apply(PostMessage{Project: "p1", Author: "client-1", Role: RoleClient, Body: "hi"}))
	msgID := project.FlushEvents()[0].(event.MessagePosted).ID
	req.NoError(project.Apply(React{Project: "p1", MessageID: msgID, Participant: "client-1", Kind: "heart"}))
	project.FlushEvents()

	snap := project.Snapshot()
	// Tamper with the snapshot; the aggregate must not notice.
	snap.Messages[0].Body = "overwritten"
	delete(snap.Messages[0].Reactions, "heart")

	fresh := project.Snapshot()
	req.Equal("hi", fresh.Messages[0].Body)
	req.Equal(1, fresh.Messages[0].Reactions["heart"].Count())
}

func TestProject_Apply_DraftScenario(t *testing.T) {
	req := require.New(t)
	project := NewProject("P1")

	req.NoError(project.Apply(AddDraft{Project: "P1", MediaRef: "clip-a"}))
	added := project.FlushEvents()[0].(event.DraftAdded)
	req.Equal(1, added.Version)

	req.NoError(project.Apply(ToggleLock{Project: "P1", DraftID: added.DraftID}))
	toggled := project.FlushEvents()[0].(event.DraftLockToggled)
	req.True(toggled.Locked)

	req.Empty(project.VisibleDrafts(RoleClient))
	editorView := project.VisibleDrafts(RoleEditor)
	req.Len(editorView, 1)
	req.True(editorView[0].Locked)
}

func TestProject_Apply_CommandShapeIsValidated(t *testing.T) {
	project := NewProject("p1")

	// Empty body fails shape validation before reaching the thread.
	err := project.Apply(PostMessage{Project: "p1", Author: "client-1", Role: RoleClient})
	require.Error(t, err)
	require.Empty(t, project.FlushEvents())

	// Bad due date format is rejected too.
	err = project.Apply(CreateTask{Project: "p1", Name: "Cut", DueDate: "05/04/2025"})
	require.Error(t, err)
}

func TestProject_Apply_ShapeFailureCarriesErrorKind(t *testing.T) {
	project := NewProject("P1")

	// A malformed command must still map to one of the enumerated error
	// kinds, never a bare validator error.
	cases := []Command{
		PostMessage{Project: "P1", Author: "c1", Role: RoleClient},
		React{Project: "P1", MessageID: uuid.New(), Participant: "c1"},
		CreateTask{Project: "P1", Name: "Cut", DueDate: "05/04/2025"},
		AddDraft{Project: "P1"},
	}
	for _, cmd := range cases {
		err := project.Apply(cmd)
		require.ErrorIs(t, err, errors.ErrInvalidReference, "%T", cmd)
	}
	require.Empty(t, project.FlushEvents())
}
