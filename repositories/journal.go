//go:generate go run go.uber.org/mock/mockgen -source=journal.go -destination=../mocks/mock_journal_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"cutroom/domain/event"
)

type IJournalRepository interface {
	Append(e event.DomainEvent) error
	List(projectID string, cursor *string) ([]EventRecord, *string, error)
}

// EventRecord is the persisted shape of one domain event. Payload keeps the
// event's full field set as JSON so consumers with no knowledge of the Go
// types can still replay the journal.
type EventRecord struct {
	ID        uuid.UUID       `json:"id"`
	ProjectID string          `json:"project_id"`
	Kind      string          `json:"kind"`
	At        time.Time       `json:"at"`
	Payload   json.RawMessage `json:"payload"`
}

// JournalRepository persists domain events in BadgerDB. The key is
// formatted as "evt:{project}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using a UUID as collision disconnector if two
//     events land on the same nanosecond.
type JournalRepository struct {
	db        *badger.DB
	log       *slog.Logger
	pageLimit *int
}

func NewJournalRepository(db *badger.DB, log *slog.Logger, pageLimit *int) JournalRepository {
	return JournalRepository{db: db, log: log, pageLimit: pageLimit}
}

func (j JournalRepository) Append(e event.DomainEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	record := EventRecord{
		ID:        uuid.New(),
		ProjectID: e.Project(),
		Kind:      e.Name(),
		At:        e.OccurredAt(),
		Payload:   payload,
	}
	bytes, err := json.Marshal(record)
	if err != nil {
		return err
	}

	key := fmt.Sprintf("evt:%s:%019d:%s", record.ProjectID, record.At.UnixNano(), record.ID)
	return j.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// List retrieves a project's events newest-first using a prefix scan.
// Thanks to the padded timestamp in the key, events are naturally sorted by
// time; the returned cursor resumes the scan on the next page.
func (j JournalRepository) List(projectID string, cursor *string) ([]EventRecord, *string, error) {
	var raw [][]byte
	var lastKey string
	var limitHit bool
	err := j.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("evt:%s:", projectID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible key, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if j.pageLimit != nil && len(raw) == *j.pageLimit {
				j.log.Debug(fmt.Sprintf("Page limit of %d events reached", *j.pageLimit))
				limitHit = true
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			if err := item.Value(func(value []byte) error {
				raw = append(raw, append([]byte{}, value...))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	records := make([]EventRecord, 0, len(raw))
	for _, b := range raw {
		var record EventRecord
		if err = json.Unmarshal(b, &record); err != nil {
			return nil, nil, err
		}
		records = append(records, record)
	}
	if !limitHit {
		// Scan exhausted the prefix, nothing left to resume.
		return records, nil, nil
	}
	return records, &lastKey, nil
}
