// Package domain contains the core concepts of the collaboration model:
// the per-project message thread, task board, draft gallery and file
// library, composed by the Project aggregate. No runtime, network, or UI
// logic should be added here.
package domain

// ParticipantID is an opaque reference supplied by the auth collaborator.
// Participants are referenced, never owned, by collaboration entities.
type ParticipantID string

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleEditor Role = "EDITOR"
	RoleSystem Role = "SYSTEM"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleEditor, RoleSystem:
		return true
	}
	return false
}

type Participant struct {
	ID   ParticipantID
	Role Role
}
