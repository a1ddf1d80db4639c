package domain

import "time"

// Snapshot is an immutable, internally consistent read view of one
// project's full collaboration state. Every slice and map is an independent
// copy; callers must never see a partial update mid-command, and mutating a
// snapshot never reaches the aggregate.
type Snapshot struct {
	Project  ProjectID
	TakenAt  time.Time
	Messages []Message
	Tasks    []Task
	Drafts   []Draft
	Files    []UploadedFile
}

func (p *Project) Snapshot() Snapshot {
	return Snapshot{
		Project:  p.ID,
		TakenAt:  time.Now().UTC(),
		Messages: p.thread.Messages(),
		Tasks:    p.board.Tasks(),
		Drafts:   p.gallery.Drafts(),
		Files:    p.library.Files(),
	}
}
