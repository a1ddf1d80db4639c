package runtime

import (
	"sync"

	"cutroom/contract"
	"cutroom/domain"
)

type set map[string]struct{}

// Registry tracks which participants are connected and which project feed
// they follow. A participant's connection (sink) is managed in a single
// place even when they follow several projects.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink // participant -> sink
	members  map[domain.ProjectID]set      // project -> participants
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
		members:  make(map[domain.ProjectID]set),
	}
}

// GetSinksForProject resolves the active sinks of everyone following a
// project. Returns nil when the project has no followers.
func (r *Registry) GetSinksForProject(projectID domain.ProjectID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	followers, ok := r.members[projectID]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for participantID := range followers {
		if sink, exists := r.sessions[participantID]; exists {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// Subscribe registers a participant's connection and attaches them to a
// project feed, initializing the member set on first use.
func (r *Registry) Subscribe(participantID string, projectID domain.ProjectID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[participantID] = sink
	if _, ok := r.members[projectID]; !ok {
		r.members[projectID] = make(set)
	}
	r.members[projectID][participantID] = struct{}{}
}

// Unsubscribe detaches the participant from one project feed, removing empty
// member sets so the map does not grow forever. The session is kept alive as
// long as the participant still follows another project; it is dropped with
// the last membership.
func (r *Registry) Unsubscribe(participantID string, projectID domain.ProjectID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if followers, ok := r.members[projectID]; ok {
		delete(followers, participantID)
		if len(followers) == 0 {
			delete(r.members, projectID)
		}
	}
	for _, followers := range r.members {
		if _, still := followers[participantID]; still {
			return
		}
	}
	delete(r.sessions, participantID)
}
