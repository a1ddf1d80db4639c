package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cutroom/domain/event"
	"cutroom/errors"
)

// ProjectID is the partition key for all engines: one client, one editor,
// one collaboration state.
type ProjectID string

// Project composes the four engines into one consistent per-project state
// and is their sole mutation entry point. Commands are validated before any
// state is touched, so a failed command leaves the project exactly as it
// was. Events land in an outbox drained by FlushEvents.
//
// Project is not safe for concurrent use; the runtime serializes all
// commands for one project through a dedicated worker.
type Project struct {
	ID      ProjectID
	thread  *Thread
	board   *Board
	gallery *Gallery
	library *Library
	outbox  []event.DomainEvent
}

func NewProject(id ProjectID) *Project {
	return &Project{
		ID:      id,
		thread:  NewThread(id),
		board:   NewBoard(id),
		gallery: NewGallery(id),
		library: NewLibrary(id),
	}
}

// Apply routes a command to its owning engine. Either the full mutation
// (state change plus event emission) happens, or none of it does.
func (p *Project) Apply(cmd Command) error {
	if cmd.ProjectID() != p.ID {
		return fmt.Errorf("command for project %q applied to %q: %w",
			cmd.ProjectID(), p.ID, errors.ErrInvalidReference)
	}
	if err := ValidateCommand(cmd); err != nil {
		return err
	}

	switch c := cmd.(type) {
	case PostMessage:
		msg, err := p.thread.Post(c.Author, c.Role, c.Body, c.ReplyTo, stamp(c.At))
		if err != nil {
			return err
		}
		p.emit(event.MessagePosted{
			ID:         msg.ID,
			ProjectID:  string(p.ID),
			AuthorID:   string(msg.AuthorID),
			AuthorRole: string(msg.AuthorRole),
			Body:       msg.Body,
			ReplyTo:    msg.ReplyTo,
			At:         msg.CreatedAt,
		})

	case React:
		msg, changed, err := p.thread.React(c.MessageID, c.Participant, c.Kind)
		if err != nil {
			return err
		}
		if changed {
			p.emit(event.ReactionAdded{
				ProjectID:     string(p.ID),
				MessageID:     msg.ID,
				ParticipantID: string(c.Participant),
				Kind:          string(c.Kind),
				Count:         msg.Reactions[c.Kind].Count(),
				At:            stamp(c.At),
			})
		}

	case Unreact:
		msg, changed, err := p.thread.Unreact(c.MessageID, c.Participant, c.Kind)
		if err != nil {
			return err
		}
		if changed {
			p.emit(event.ReactionRemoved{
				ProjectID:     string(p.ID),
				MessageID:     msg.ID,
				ParticipantID: string(c.Participant),
				Kind:          string(c.Kind),
				Count:         msg.Reactions[c.Kind].Count(),
				At:            stamp(c.At),
			})
		}

	case Pin:
		msg, changed, err := p.thread.SetPinned(c.MessageID, true)
		if err != nil {
			return err
		}
		if changed {
			p.emit(event.MessagePinned{
				ProjectID: string(p.ID),
				MessageID: msg.ID,
				Pinned:    true,
				At:        stamp(c.At),
			})
		}

	case Unpin:
		msg, changed, err := p.thread.SetPinned(c.MessageID, false)
		if err != nil {
			return err
		}
		if changed {
			p.emit(event.MessagePinned{
				ProjectID: string(p.ID),
				MessageID: msg.ID,
				Pinned:    false,
				At:        stamp(c.At),
			})
		}

	case SoftDelete:
		msg, changed, err := p.thread.SoftDelete(c.MessageID, c.RequestedBy, c.Role)
		if err != nil {
			return err
		}
		if changed {
			p.emit(event.MessageDeleted{
				ProjectID:   string(p.ID),
				MessageID:   msg.ID,
				RequestedBy: string(c.RequestedBy),
				At:          stamp(c.At),
			})
		}

	case CreateTask:
		task := p.board.Create(c.Name, c.Hours, c.Cost, c.DueDate, stamp(c.At))
		p.emit(event.TaskCreated{
			ProjectID: string(p.ID),
			TaskID:    task.ID,
			TaskName:  task.Name,
			Status:    string(task.Status),
			Hours:     task.Hours,
			Cost:      task.Cost,
			DueDate:   task.DueDate,
			At:        task.CreatedAt,
		})

	case MoveTask:
		task, from, err := p.board.Move(c.TaskID, c.NewStatus, stamp(c.At))
		if err != nil {
			return err
		}
		p.emit(event.TaskMoved{
			ProjectID: string(p.ID),
			TaskID:    task.ID,
			From:      string(from),
			To:        string(task.Status),
			At:        task.StatusChangedAt,
		})

	case AddDraft:
		draft := p.gallery.Add(c.MediaRef, stamp(c.At))
		p.emit(event.DraftAdded{
			ProjectID: string(p.ID),
			DraftID:   draft.ID,
			Version:   draft.Version,
			MediaRef:  draft.MediaRef,
			At:        draft.CreatedAt,
		})

	case ToggleLock:
		draft, err := p.gallery.ToggleLock(c.DraftID)
		if err != nil {
			return err
		}
		p.emit(event.DraftLockToggled{
			ProjectID: string(p.ID),
			DraftID:   draft.ID,
			Locked:    draft.Locked,
			At:        stamp(c.At),
		})

	case UploadFile:
		file, err := p.library.Upload(c.Name, c.Category, c.ContentRef, stamp(c.At))
		if err != nil {
			return err
		}
		p.emit(event.FileUploaded{
			ProjectID: string(p.ID),
			FileID:    file.ID,
			FileName:  file.Name,
			Category:  string(file.Category),
			At:        file.UploadedAt,
		})

	case AppendVersion:
		file, err := p.library.AppendVersion(c.FileID, c.ContentRef, stamp(c.At))
		if err != nil {
			return err
		}
		last := file.Versions[len(file.Versions)-1]
		p.emit(event.FileVersionAppended{
			ProjectID:  string(p.ID),
			FileID:     file.ID,
			Version:    last.Version,
			ContentRef: last.ContentRef,
			At:         last.UploadedAt,
		})

	default:
		return fmt.Errorf("unknown command %T: %w", cmd, errors.ErrInvalidReference)
	}
	return nil
}

// FlushEvents drains the outbox, preserving program order.
func (p *Project) FlushEvents() []event.DomainEvent {
	out := p.outbox
	p.outbox = nil
	return out
}

func (p *Project) emit(e event.DomainEvent) {
	p.outbox = append(p.outbox, e)
}

// Queries. All return independent copies; none touch the outbox.

func (p *Project) ReplyChain(id uuid.UUID) ([]Message, error) { return p.thread.ReplyChain(id) }

func (p *Project) TasksByStatus(status Status) ([]Task, error) { return p.board.TasksByStatus(status) }

func (p *Project) VisibleDrafts(viewer Role) []Draft { return p.gallery.VisibleDrafts(viewer) }

func (p *Project) FilesByCategory(category Category) ([]UploadedFile, error) {
	return p.library.FilesByCategory(category)
}

func stamp(at time.Time) time.Time {
	if at.IsZero() {
		return time.Now().UTC()
	}
	return at.UTC()
}
