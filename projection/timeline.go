// Package projection builds local read models from observed events.
// Projections handle ordering and folding only; they never emit events or
// talk to the UI directly.
package projection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cutroom/domain/event"
)

// Entry is one line of a project's activity feed.
type Entry struct {
	ProjectID string
	Kind      string
	Summary   string
	At        time.Time
}

// Timeline folds domain events into a per-project activity feed. It
// implements contract.EventSink and is safe for concurrent use: the fanout
// writes while the debug server reads.
type Timeline struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewTimeline() *Timeline {
	return &Timeline{entries: make(map[string][]Entry)}
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	summary := summarize(e)
	if summary == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[e.Project()] = append(t.entries[e.Project()], Entry{
		ProjectID: e.Project(),
		Kind:      e.Name(),
		Summary:   summary,
		At:        e.OccurredAt(),
	})
	return nil
}

// Entries returns a copy of one project's feed in arrival order.
func (t *Timeline) Entries(projectID string) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries[projectID]))
	copy(out, t.entries[projectID])
	return out
}

func summarize(e event.DomainEvent) string {
	switch evt := e.(type) {
	case event.SanitizedMessage:
		return fmt.Sprintf("%s (%s) wrote: %s", evt.AuthorID, evt.AuthorRole, evt.Body)
	case event.ReactionAdded:
		return fmt.Sprintf("%s reacted %s", evt.ParticipantID, evt.Kind)
	case event.ReactionRemoved:
		return fmt.Sprintf("%s removed %s", evt.ParticipantID, evt.Kind)
	case event.MessagePinned:
		if evt.Pinned {
			return fmt.Sprintf("message %s pinned", evt.MessageID)
		}
		return fmt.Sprintf("message %s unpinned", evt.MessageID)
	case event.MessageDeleted:
		return fmt.Sprintf("message %s deleted by %s", evt.MessageID, evt.RequestedBy)
	case event.TaskCreated:
		return fmt.Sprintf("task %q created", evt.TaskName)
	case event.TaskMoved:
		return fmt.Sprintf("task %s moved %s -> %s", evt.TaskID, evt.From, evt.To)
	case event.DraftAdded:
		return fmt.Sprintf("draft v%d added", evt.Version)
	case event.DraftLockToggled:
		if evt.Locked {
			return fmt.Sprintf("draft %s locked", evt.DraftID)
		}
		return fmt.Sprintf("draft %s unlocked", evt.DraftID)
	case event.FileUploaded:
		return fmt.Sprintf("file %q uploaded (%s)", evt.FileName, evt.Category)
	case event.FileVersionAppended:
		return fmt.Sprintf("file %s now at v%d", evt.FileID, evt.Version)
	}
	// Raw MessagePosted is skipped: the sanitized copy follows it.
	return ""
}
