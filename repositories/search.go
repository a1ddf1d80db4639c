//go:generate go run go.uber.org/mock/mockgen -source=search.go -destination=../mocks/mock_message_index.go -package=mocks
package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
)

type IMessageIndex interface {
	Index(msg IndexedMessage) error
	Search(ctx context.Context, projectID, terms string, limit int) ([]IndexedMessage, error)
}

// IndexedMessage is the searchable shape of a sanitized project message.
type IndexedMessage struct {
	ID       uuid.UUID
	Project  string
	Author   string
	Body     string
	Language string
	At       time.Time
}

// MessageIndex maintains a Bluge full-text index over sanitized message
// bodies so dashboards can search a project's thread. Indexing is driven by
// the search sink; tombstoned or raw bodies never reach it.
type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

func (m *MessageIndex) Index(msg IndexedMessage) error {
	doc := bluge.NewDocument(msg.ID.String()).
		AddField(bluge.NewKeywordField("project", msg.Project).StoreValue()).
		AddField(bluge.NewKeywordField("author", msg.Author).StoreValue()).
		AddField(bluge.NewTextField("body", msg.Body).StoreValue()).
		AddField(bluge.NewKeywordField("language", msg.Language).StoreValue()).
		AddField(bluge.NewDateTimeField("at", msg.At).StoreValue())
	return m.writer.Update(doc.ID(), doc)
}

// Search matches terms against message bodies within one project.
func (m *MessageIndex) Search(ctx context.Context, projectID, terms string, limit int) ([]IndexedMessage, error) {
	reader, err := m.writer.Reader()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("body")).
		AddMust(bluge.NewTermQuery(projectID).SetField("project"))

	it, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, err
	}

	var out []IndexedMessage
	for {
		match, err := it.Next()
		if err != nil {
			return nil, err
		}
		if match == nil {
			return out, nil
		}
		var msg IndexedMessage
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				if id, parseErr := uuid.Parse(string(value)); parseErr == nil {
					msg.ID = id
				}
			case "project":
				msg.Project = string(value)
			case "author":
				msg.Author = string(value)
			case "body":
				msg.Body = string(value)
			case "language":
				msg.Language = string(value)
			case "at":
				if at, parseErr := bluge.DecodeDateTime(value); parseErr == nil {
					msg.At = at
				}
			}
			return true
		})
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
}
