package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cutroom/errors"
)

type Draft struct {
	ID        uuid.UUID
	ProjectID ProjectID
	// Version is engine-assigned, strictly increasing per project from 1.
	// Callers never supply it.
	Version   int
	MediaRef  string
	Locked    bool
	CreatedAt time.Time
}

// Gallery owns the ordered draft versions of one project. Locking a draft
// hides it from the client-facing view; the editor view always sees it.
type Gallery struct {
	project ProjectID
	drafts  []*Draft
	byID    map[uuid.UUID]*Draft
}

func NewGallery(project ProjectID) *Gallery {
	return &Gallery{
		project: project,
		byID:    make(map[uuid.UUID]*Draft),
	}
}

// Add appends the next draft version. Drafts are never removed, so the
// current maximum is simply the log length; the aggregate serializes calls
// per project, which is what makes this read-then-assign safe.
func (g *Gallery) Add(mediaRef string, at time.Time) Draft {
	draft := &Draft{
		ID:        uuid.New(),
		ProjectID: g.project,
		Version:   len(g.drafts) + 1,
		MediaRef:  mediaRef,
		CreatedAt: at,
	}
	g.drafts = append(g.drafts, draft)
	g.byID[draft.ID] = draft
	return *draft
}

func (g *Gallery) ToggleLock(id uuid.UUID) (Draft, error) {
	draft, ok := g.byID[id]
	if !ok {
		return Draft{}, fmt.Errorf("draft %s: %w", id, errors.ErrNotFound)
	}
	draft.Locked = !draft.Locked
	return *draft, nil
}

// VisibleDrafts filters out locked drafts for clients; editors and SYSTEM
// see everything.
func (g *Gallery) VisibleDrafts(viewer Role) []Draft {
	var out []Draft
	for _, d := range g.drafts {
		if d.Locked && viewer == RoleClient {
			continue
		}
		out = append(out, *d)
	}
	return out
}

func (g *Gallery) Drafts() []Draft {
	out := make([]Draft, 0, len(g.drafts))
	for _, d := range g.drafts {
		out = append(out, *d)
	}
	return out
}
