package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"cutroom/errors"
)

var validate = validator.New()

// Command is the vocabulary the UI collaborator speaks. Every mutation of a
// project's collaboration state travels through one of these.
type Command interface {
	ProjectID() ProjectID
}

// ValidateCommand checks command shape before it reaches an engine. Engine
// invariants (dangling references, unknown ids, enum values) are enforced by
// the engines themselves. Every failure, shape or invariant, carries one of
// the error kinds of cutroom/errors.
func ValidateCommand(cmd Command) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("command shape: %v: %w", err, errors.ErrInvalidReference)
	}
	return nil
}

type PostMessage struct {
	Project ProjectID     `validate:"required"`
	Author  ParticipantID `validate:"required"`
	Role    Role          `validate:"required,oneof=CLIENT EDITOR SYSTEM"`
	Body    string        `validate:"required,max=4000"`
	ReplyTo *uuid.UUID
	At      time.Time
}

func (c PostMessage) ProjectID() ProjectID { return c.Project }

type React struct {
	Project     ProjectID     `validate:"required"`
	MessageID   uuid.UUID     `validate:"required"`
	Participant ParticipantID `validate:"required"`
	Kind        ReactionKind  `validate:"required,max=32"`
	At          time.Time
}

func (c React) ProjectID() ProjectID { return c.Project }

type Unreact struct {
	Project     ProjectID     `validate:"required"`
	MessageID   uuid.UUID     `validate:"required"`
	Participant ParticipantID `validate:"required"`
	Kind        ReactionKind  `validate:"required,max=32"`
	At          time.Time
}

func (c Unreact) ProjectID() ProjectID { return c.Project }

type Pin struct {
	Project   ProjectID `validate:"required"`
	MessageID uuid.UUID `validate:"required"`
	At        time.Time
}

func (c Pin) ProjectID() ProjectID { return c.Project }

type Unpin struct {
	Project   ProjectID `validate:"required"`
	MessageID uuid.UUID `validate:"required"`
	At        time.Time
}

func (c Unpin) ProjectID() ProjectID { return c.Project }

type SoftDelete struct {
	Project     ProjectID     `validate:"required"`
	MessageID   uuid.UUID     `validate:"required"`
	RequestedBy ParticipantID `validate:"required"`
	Role        Role          `validate:"required,oneof=CLIENT EDITOR SYSTEM"`
	At          time.Time
}

func (c SoftDelete) ProjectID() ProjectID { return c.Project }

type CreateTask struct {
	Project ProjectID `validate:"required"`
	Name    string    `validate:"required,max=200"`
	Hours   float64   `validate:"gte=0"`
	Cost    float64   `validate:"gte=0"`
	DueDate string    `validate:"omitempty,datetime=2006-01-02"`
	At      time.Time
}

func (c CreateTask) ProjectID() ProjectID { return c.Project }

type MoveTask struct {
	Project   ProjectID `validate:"required"`
	TaskID    uuid.UUID `validate:"required"`
	NewStatus Status    `validate:"required"`
	At        time.Time
}

func (c MoveTask) ProjectID() ProjectID { return c.Project }

type AddDraft struct {
	Project  ProjectID `validate:"required"`
	MediaRef string    `validate:"required"`
	At       time.Time
}

func (c AddDraft) ProjectID() ProjectID { return c.Project }

type ToggleLock struct {
	Project ProjectID `validate:"required"`
	DraftID uuid.UUID `validate:"required"`
	At      time.Time
}

func (c ToggleLock) ProjectID() ProjectID { return c.Project }

type UploadFile struct {
	Project    ProjectID `validate:"required"`
	Name       string    `validate:"required,max=255"`
	Category   Category  // empty defaults to RAW
	ContentRef string    `validate:"required"`
	At         time.Time
}

func (c UploadFile) ProjectID() ProjectID { return c.Project }

type AppendVersion struct {
	Project    ProjectID `validate:"required"`
	FileID     uuid.UUID `validate:"required"`
	ContentRef string    `validate:"required"`
	At         time.Time
}

func (c AppendVersion) ProjectID() ProjectID { return c.Project }
