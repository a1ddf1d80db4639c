package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"cutroom/errors"
)

// TombstoneBody replaces the body of a soft-deleted message. The id is
// retained so replies referencing the message still resolve.
const TombstoneBody = "[message deleted]"

// ReactionKind is an open string enum ("heart", "thumbsUp", ...).
type ReactionKind string

// Reaction tracks which participants reacted with one kind. The count is
// always len(By); it never survives at zero (the entry is removed instead).
type Reaction struct {
	By map[ParticipantID]struct{}
}

func (r Reaction) Count() int { return len(r.By) }

type Message struct {
	ID         uuid.UUID
	ProjectID  ProjectID
	AuthorID   ParticipantID
	AuthorRole Role
	Body       string
	ReplyTo    *uuid.UUID
	Pinned     bool
	Deleted    bool
	Reactions  map[ReactionKind]Reaction
	CreatedAt  time.Time
}

func (m Message) clone() Message {
	out := m
	if m.ReplyTo != nil {
		id := *m.ReplyTo
		out.ReplyTo = &id
	}
	if m.Reactions != nil {
		out.Reactions = make(map[ReactionKind]Reaction, len(m.Reactions))
		for kind, r := range m.Reactions {
			by := make(map[ParticipantID]struct{}, len(r.By))
			for p := range r.By {
				by[p] = struct{}{}
			}
			out.Reactions[kind] = Reaction{By: by}
		}
	}
	return out
}

// Thread owns the ordered message log of one project: replies, pins,
// reactions, soft deletes. Appends only, never reorders.
type Thread struct {
	project  ProjectID
	messages []*Message
	byID     map[uuid.UUID]*Message
}

func NewThread(project ProjectID) *Thread {
	return &Thread{
		project: project,
		byID:    make(map[uuid.UUID]*Message),
	}
}

// Post appends a message to the log. A reply must resolve to an existing
// message of the same project; dangling references are rejected, not
// silently dropped. Since ids are engine-assigned and a message can only
// reference an already-existing one, reply chains can never cycle.
func (t *Thread) Post(author ParticipantID, role Role, body string, replyTo *uuid.UUID, at time.Time) (Message, error) {
	if replyTo != nil {
		if _, ok := t.byID[*replyTo]; !ok {
			return Message{}, fmt.Errorf("reply to unknown message %s: %w", replyTo, errors.ErrInvalidReference)
		}
	}
	msg := &Message{
		ID:         uuid.New(),
		ProjectID:  t.project,
		AuthorID:   author,
		AuthorRole: role,
		Body:       body,
		CreatedAt:  at,
	}
	if replyTo != nil {
		id := *replyTo
		msg.ReplyTo = &id
	}
	t.messages = append(t.messages, msg)
	t.byID[msg.ID] = msg
	return msg.clone(), nil
}

// React adds a participant to a reaction kind. Reacting twice with the same
// kind by the same participant is a no-op; the returned bool reports whether
// state changed. Tombstones cannot be reacted to.
func (t *Thread) React(id uuid.UUID, participant ParticipantID, kind ReactionKind) (Message, bool, error) {
	msg, err := t.live(id)
	if err != nil {
		return Message{}, false, err
	}
	if msg.Reactions == nil {
		msg.Reactions = make(map[ReactionKind]Reaction)
	}
	r, ok := msg.Reactions[kind]
	if !ok {
		r = Reaction{By: make(map[ParticipantID]struct{})}
		msg.Reactions[kind] = r
	}
	if _, already := r.By[participant]; already {
		return msg.clone(), false, nil
	}
	r.By[participant] = struct{}{}
	return msg.clone(), true, nil
}

// Unreact removes a participant from a reaction kind, deleting the kind
// entry entirely when its count reaches zero. Removing a reaction that was
// never added is a no-op.
func (t *Thread) Unreact(id uuid.UUID, participant ParticipantID, kind ReactionKind) (Message, bool, error) {
	msg, err := t.live(id)
	if err != nil {
		return Message{}, false, err
	}
	r, ok := msg.Reactions[kind]
	if !ok {
		return msg.clone(), false, nil
	}
	if _, present := r.By[participant]; !present {
		return msg.clone(), false, nil
	}
	delete(r.By, participant)
	if len(r.By) == 0 {
		delete(msg.Reactions, kind)
	}
	return msg.clone(), true, nil
}

// SetPinned flips the pin flag. Multiple pinned messages are allowed;
// consumers choose how many to surface. The bool reports a state change.
func (t *Thread) SetPinned(id uuid.UUID, pinned bool) (Message, bool, error) {
	msg, ok := t.byID[id]
	if !ok {
		return Message{}, false, fmt.Errorf("message %s: %w", id, errors.ErrNotFound)
	}
	if msg.Pinned == pinned {
		return msg.clone(), false, nil
	}
	msg.Pinned = pinned
	return msg.clone(), true, nil
}

// SoftDelete tombstones a message: the body is replaced with TombstoneBody,
// reactions are cleared, the id is retained. Only the original author or
// SYSTEM may delete. Deleting a tombstone again is a no-op.
func (t *Thread) SoftDelete(id uuid.UUID, requestedBy ParticipantID, requesterRole Role) (Message, bool, error) {
	msg, ok := t.byID[id]
	if !ok {
		return Message{}, false, fmt.Errorf("message %s: %w", id, errors.ErrNotFound)
	}
	if requestedBy != msg.AuthorID && requesterRole != RoleSystem {
		return Message{}, false, fmt.Errorf("participant %s cannot delete message of %s: %w",
			requestedBy, msg.AuthorID, errors.ErrForbidden)
	}
	if msg.Deleted {
		return msg.clone(), false, nil
	}
	msg.Deleted = true
	msg.Body = TombstoneBody
	msg.Reactions = nil
	return msg.clone(), true, nil
}

// ReplyChain walks reply links starting at id: the message itself, then its
// parent, and so on. The walk stops when a message has no parent or when a
// tombstone is reached; the tombstone is surfaced, not skipped. Cyclic
// references are impossible at write time, so the walk is bounded by the
// message count.
func (t *Thread) ReplyChain(id uuid.UUID) ([]Message, error) {
	msg, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("message %s: %w", id, errors.ErrNotFound)
	}
	var chain []Message
	for {
		chain = append(chain, msg.clone())
		if msg.Deleted || msg.ReplyTo == nil {
			return chain, nil
		}
		msg, ok = t.byID[*msg.ReplyTo]
		if !ok {
			// Unreachable under the write-time invariant; fail loudly anyway.
			return nil, fmt.Errorf("broken reply link: %w", errors.ErrInvalidReference)
		}
	}
}

// Messages returns the ordered log as independent copies.
func (t *Thread) Messages() []Message {
	out := make([]Message, 0, len(t.messages))
	for _, m := range t.messages {
		out = append(out, m.clone())
	}
	return out
}

func (t *Thread) live(id uuid.UUID) (*Message, error) {
	msg, ok := t.byID[id]
	if !ok || msg.Deleted {
		return nil, fmt.Errorf("message %s: %w", id, errors.ErrNotFound)
	}
	return msg, nil
}
