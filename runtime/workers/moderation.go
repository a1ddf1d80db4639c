package workers

import (
	"context"
	"log/slog"

	"github.com/abadojack/whatlanggo"

	"cutroom/contract"
	"cutroom/domain/event"
	"cutroom/moderation"
)

var _ contract.Worker = (*ModerationWorker)(nil)

// ModerationWorker sits between the project workers and the fanout. Raw
// MessagePosted events are censored and language-tagged into
// SanitizedMessage; every other event passes through untouched. The
// aggregate keeps the body exactly as posted; moderation only shapes what
// subscribers and the journal see.
type ModerationWorker struct {
	moderator moderation.Moderator
	raw       chan event.DomainEvent
	events    chan event.DomainEvent
	log       *slog.Logger
}

func NewModerationWorker(moderator moderation.Moderator,
	raw, events chan event.DomainEvent, log *slog.Logger) *ModerationWorker {
	return &ModerationWorker{moderator: moderator, raw: raw, events: events, log: log}
}

func (w *ModerationWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case e, ok := <-w.raw:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			out := e
			if posted, isMessage := e.(event.MessagePosted); isMessage {
				out = w.sanitize(posted)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case w.events <- out:
			}
		}
	}
}

func (w *ModerationWorker) sanitize(posted event.MessagePosted) event.SanitizedMessage {
	info := whatlanggo.Detect(posted.Body)
	return event.SanitizedMessage{
		ID:         posted.ID,
		ProjectID:  posted.ProjectID,
		AuthorID:   posted.AuthorID,
		AuthorRole: posted.AuthorRole,
		Body:       w.moderator.Censor(posted.Body),
		Language:   info.Lang.Iso6391(),
		ReplyTo:    posted.ReplyTo,
		At:         posted.At,
	}
}
