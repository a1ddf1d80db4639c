// Package event defines the immutable facts emitted by the project
// aggregate. Events describe state changes for persistence and propagation;
// they are not required for the mutation's own correctness.
package event

import (
	"time"

	"github.com/google/uuid"
)

type DomainEvent interface {
	// Project returns the id of the project the event belongs to.
	Project() string
	// Name returns the stable event name used by journal consumers.
	Name() string
	OccurredAt() time.Time
}

type MessagePosted struct {
	ID         uuid.UUID
	ProjectID  string
	AuthorID   string
	AuthorRole string
	Body       string
	ReplyTo    *uuid.UUID
	At         time.Time
}

func (e MessagePosted) Project() string       { return e.ProjectID }
func (e MessagePosted) Name() string          { return "MessagePosted" }
func (e MessagePosted) OccurredAt() time.Time { return e.At }

// SanitizedMessage is the moderated copy of a MessagePosted that reaches
// sinks and subscribers: the body has been censored and language-tagged.
type SanitizedMessage struct {
	ID         uuid.UUID
	ProjectID  string
	AuthorID   string
	AuthorRole string
	Body       string
	Language   string
	ReplyTo    *uuid.UUID
	At         time.Time
}

func (e SanitizedMessage) Project() string       { return e.ProjectID }
func (e SanitizedMessage) Name() string          { return "SanitizedMessage" }
func (e SanitizedMessage) OccurredAt() time.Time { return e.At }

type ReactionAdded struct {
	ProjectID     string
	MessageID     uuid.UUID
	ParticipantID string
	Kind          string
	Count         int
	At            time.Time
}

func (e ReactionAdded) Project() string       { return e.ProjectID }
func (e ReactionAdded) Name() string          { return "ReactionAdded" }
func (e ReactionAdded) OccurredAt() time.Time { return e.At }

type ReactionRemoved struct {
	ProjectID     string
	MessageID     uuid.UUID
	ParticipantID string
	Kind          string
	Count         int
	At            time.Time
}

func (e ReactionRemoved) Project() string       { return e.ProjectID }
func (e ReactionRemoved) Name() string          { return "ReactionRemoved" }
func (e ReactionRemoved) OccurredAt() time.Time { return e.At }

// MessagePinned covers both pin and unpin; Pinned carries the new state.
type MessagePinned struct {
	ProjectID string
	MessageID uuid.UUID
	Pinned    bool
	At        time.Time
}

func (e MessagePinned) Project() string       { return e.ProjectID }
func (e MessagePinned) Name() string          { return "MessagePinned" }
func (e MessagePinned) OccurredAt() time.Time { return e.At }

type MessageDeleted struct {
	ProjectID   string
	MessageID   uuid.UUID
	RequestedBy string
	At          time.Time
}

func (e MessageDeleted) Project() string       { return e.ProjectID }
func (e MessageDeleted) Name() string          { return "MessageDeleted" }
func (e MessageDeleted) OccurredAt() time.Time { return e.At }

type TaskCreated struct {
	ProjectID string
	TaskID    uuid.UUID
	TaskName  string
	Status    string
	Hours     float64
	Cost      float64
	DueDate   string
	At        time.Time
}

func (e TaskCreated) Project() string       { return e.ProjectID }
func (e TaskCreated) Name() string          { return "TaskCreated" }
func (e TaskCreated) OccurredAt() time.Time { return e.At }

type TaskMoved struct {
	ProjectID string
	TaskID    uuid.UUID
	From      string
	To        string
	At        time.Time
}

func (e TaskMoved) Project() string       { return e.ProjectID }
func (e TaskMoved) Name() string          { return "TaskMoved" }
func (e TaskMoved) OccurredAt() time.Time { return e.At }

type DraftAdded struct {
	ProjectID string
	DraftID   uuid.UUID
	Version   int
	MediaRef  string
	At        time.Time
}

func (e DraftAdded) Project() string       { return e.ProjectID }
func (e DraftAdded) Name() string          { return "DraftAdded" }
func (e DraftAdded) OccurredAt() time.Time { return e.At }

type DraftLockToggled struct {
	ProjectID string
	DraftID   uuid.UUID
	Locked    bool
	At        time.Time
}

func (e DraftLockToggled) Project() string       { return e.ProjectID }
func (e DraftLockToggled) Name() string          { return "DraftLockToggled" }
func (e DraftLockToggled) OccurredAt() time.Time { return e.At }

type FileUploaded struct {
	ProjectID string
	FileID    uuid.UUID
	FileName  string
	Category  string
	At        time.Time
}

func (e FileUploaded) Project() string       { return e.ProjectID }
func (e FileUploaded) Name() string          { return "FileUploaded" }
func (e FileUploaded) OccurredAt() time.Time { return e.At }

type FileVersionAppended struct {
	ProjectID  string
	FileID     uuid.UUID
	Version    int
	ContentRef string
	At         time.Time
}

func (e FileVersionAppended) Project() string       { return e.ProjectID }
func (e FileVersionAppended) Name() string          { return "FileVersionAppended" }
func (e FileVersionAppended) OccurredAt() time.Time { return e.At }
