package sink

import (
	"context"
	"fmt"
	"log/slog"

	"cutroom/domain/event"
	"cutroom/repositories"
)

// SearchSink feeds sanitized message bodies into the Bluge index so threads
// stay searchable. Other events carry no free text worth indexing.
type SearchSink struct {
	index repositories.IMessageIndex
	log   *slog.Logger
}

func NewSearchSink(index repositories.IMessageIndex, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.DomainEvent) error {
	switch evt := e.(type) {
	case event.SanitizedMessage:
		return s.index.Index(toIndexedMessage(evt))
	default:
		s.log.Debug(fmt.Sprintf("Not indexed event : %v", evt))
		return nil
	}
}

func toIndexedMessage(evt event.SanitizedMessage) repositories.IndexedMessage {
	return repositories.IndexedMessage{
		ID:       evt.ID,
		Project:  evt.ProjectID,
		Author:   evt.AuthorID,
		Body:     evt.Body,
		Language: evt.Language,
		At:       evt.At,
	}
}
