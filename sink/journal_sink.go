package sink

import (
	"context"
	"log/slog"

	"cutroom/domain/event"
	"cutroom/repositories"
)

// JournalSink persists every committed domain event to the BadgerDB journal.
// Raw MessagePosted events are skipped: the sanitized copy carries the same
// fields plus the censored body and language tag.
type JournalSink struct {
	repository repositories.IJournalRepository
	log        *slog.Logger
}

func NewJournalSink(repository repositories.IJournalRepository, log *slog.Logger) JournalSink {
	return JournalSink{repository: repository, log: log}
}

func (j JournalSink) Consume(_ context.Context, e event.DomainEvent) error {
	if _, raw := e.(event.MessagePosted); raw {
		return nil
	}
	return j.repository.Append(e)
}
