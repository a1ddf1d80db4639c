package runtime

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"cutroom/domain"
	"cutroom/domain/event"
)

type Sink struct {
}

func (s Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	return nil
}

func TestRegistry_Subscribe_One_Project_One_Participant(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()
	projectID := domain.ProjectID("wedding-teaser")
	sink := Sink{}

	// Given no participant is connected
	// And no project feed exists
	req.Empty(registry.sessions)
	req.Empty(registry.members)

	// When a participant follows a project
	registry.Subscribe(participantID, projectID, sink)

	// Then
	req.Len(registry.sessions, 1)
	req.Equal(sink, registry.sessions[participantID])

	req.Len(registry.members, 1)
	req.Contains(registry.members[projectID], participantID)

	req.Len(registry.GetSinksForProject(projectID), 1)
}

func TestRegistry_Subscribe_One_Project_Multiple_Participants(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID1 := uuid.NewString()
	participantID2 := uuid.NewString()
	projectID := domain.ProjectID("promo-spot")
	sink1 := Sink{}
	sink2 := Sink{}

	// When participants follow a project
	registry.Subscribe(participantID1, projectID, sink1)
	registry.Subscribe(participantID2, projectID, sink2)

	// Then
	req.Len(registry.sessions, 2)
	req.Len(registry.members[projectID], 2)
	req.Len(registry.GetSinksForProject(projectID), 2)
}

func TestRegistry_Unsubscribe_One_Project_One_Participant(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()
	projectID := domain.ProjectID("docu-edit")
	sink := Sink{}

	// Given a participant follows a project
	registry.Subscribe(participantID, projectID, sink)

	// When the participant disconnects
	registry.Unsubscribe(participantID, projectID)

	// Then no participant left
	// And the feed doesn't exist anymore
	req.Empty(registry.sessions)
	req.Empty(registry.members)

	// And no connected participant left in the project
	req.Nil(registry.GetSinksForProject(projectID))
}

func TestRegistry_Unsubscribe_One_Project_Multiple_Participants(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID1 := uuid.NewString()
	participantID2 := uuid.NewString()
	projectID := domain.ProjectID("docu-edit")

	// Given two participants following a project
	registry.Subscribe(participantID1, projectID, Sink{})
	registry.Subscribe(participantID2, projectID, Sink{})

	// When one disconnects
	registry.Unsubscribe(participantID1, projectID)

	// Then the other keeps receiving
	req.Len(registry.sessions, 1)
	req.Len(registry.members[projectID], 1)
	req.Len(registry.GetSinksForProject(projectID), 1)
}

func TestRegistry_Unsubscribe_Keeps_Session_For_Other_Projects(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	participantID := uuid.NewString()
	weddingID := domain.ProjectID("wedding-teaser")
	promoID := domain.ProjectID("promo-spot")
	sink := Sink{}

	// Given one participant following two projects
	registry.Subscribe(participantID, weddingID, sink)
	registry.Subscribe(participantID, promoID, sink)

	// When they leave one of them
	registry.Unsubscribe(participantID, weddingID)

	// Then the connection stays up for the other feed
	req.Len(registry.sessions, 1)
	req.Nil(registry.GetSinksForProject(weddingID))
	req.Len(registry.GetSinksForProject(promoID), 1)

	// And leaving the last project drops the session
	registry.Unsubscribe(participantID, promoID)
	req.Empty(registry.sessions)
	req.Empty(registry.members)
}

func TestRegistry_GetSinksForProject_Unknown(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.Nil(registry.GetSinksForProject(domain.ProjectID("ghost-project")))
}
