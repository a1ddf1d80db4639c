package repositories

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	db "github.com/mama165/sdk-go/database"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"cutroom/domain/event"
)

func TestJournalRepository_Append_List_Roundtrip(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewJournalRepository(badgerDB, log, lo.ToPtr(50))

	posted := event.SanitizedMessage{
		ID:         uuid.New(),
		ProjectID:  "wedding-teaser",
		AuthorID:   "client-1",
		AuthorRole: "CLIENT",
		Body:       "first cut is up",
		Language:   "en",
		At:         time.Now().UTC(),
	}
	req.NoError(repo.Append(posted))

	records, cursor, err := repo.List("wedding-teaser", nil)
	req.NoError(err)
	req.Nil(cursor)
	req.Len(records, 1)
	req.Equal("SanitizedMessage", records[0].Kind)
	req.Equal("wedding-teaser", records[0].ProjectID)

	var payload event.SanitizedMessage
	req.NoError(json.Unmarshal(records[0].Payload, &payload))
	req.Equal(posted.ID, payload.ID)
	req.Equal("first cut is up", payload.Body)
}

func TestJournalRepository_List_NewestFirst(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewJournalRepository(badgerDB, log, lo.ToPtr(50))

	base := time.Now().UTC()
	var taskIDs []uuid.UUID
	for i := 0; i < 5; i++ {
		id := uuid.New()
		taskIDs = append(taskIDs, id)
		req.NoError(repo.Append(event.TaskMoved{
			ProjectID: "promo-spot",
			TaskID:    id,
			From:      "PENDING",
			To:        "IN_PROGRESS",
			At:        base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, _, err := repo.List("promo-spot", nil)
	req.NoError(err)
	req.Len(records, 5)

	var first, last event.TaskMoved
	req.NoError(json.Unmarshal(records[0].Payload, &first))
	req.NoError(json.Unmarshal(records[4].Payload, &last))
	req.Equal(taskIDs[4], first.TaskID, "newest should come first")
	req.Equal(taskIDs[0], last.TaskID)
}

func TestJournalRepository_List_ProjectIsolation(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewJournalRepository(badgerDB, log, lo.ToPtr(50))

	req.NoError(repo.Append(event.DraftAdded{
		ProjectID: "project-a", DraftID: uuid.New(), Version: 1, At: time.Now().UTC(),
	}))
	req.NoError(repo.Append(event.DraftAdded{
		ProjectID: "project-b", DraftID: uuid.New(), Version: 1, At: time.Now().UTC(),
	}))

	records, _, err := repo.List("project-a", nil)
	req.NoError(err)
	req.Len(records, 1)
	req.Equal("project-a", records[0].ProjectID)
}

func TestJournalRepository_List_Pagination(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewJournalRepository(badgerDB, log, lo.ToPtr(2))
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		req.NoError(repo.Append(event.FileUploaded{
			ProjectID: "docu-edit",
			FileID:    uuid.New(),
			FileName:  fmt.Sprintf("reel-%d.mp4", i),
			Category:  "RAW",
			At:        base.Add(time.Duration(i) * time.Second),
		}))
	}

	page1, cursor1, err := repo.List("docu-edit", nil)
	req.NoError(err)
	req.Len(page1, 2)
	req.NotNil(cursor1)

	page2, cursor2, err := repo.List("docu-edit", cursor1)
	req.NoError(err)
	req.Len(page2, 2)
	req.NotNil(cursor2)

	page3, cursor3, err := repo.List("docu-edit", cursor2)
	req.NoError(err)
	req.Len(page3, 1)
	req.Nil(cursor3, "last page should have nil cursor")

	seen := make(map[uuid.UUID]bool)
	for _, r := range append(append(page1, page2...), page3...) {
		req.False(seen[r.ID], "no duplicates across pages")
		seen[r.ID] = true
	}
}

func TestJournalRepository_List_EmptyProject(t *testing.T) {
	req := require.New(t)
	_, log, badgerDB, blugeWriter, err := db.SetupBenchmark(t.TempDir())
	req.NoError(err)
	defer db.CleanupDB(badgerDB, blugeWriter)

	repo := NewJournalRepository(badgerDB, log, lo.ToPtr(50))

	records, cursor, err := repo.List("nonexistent-project", nil)
	req.NoError(err)
	req.Empty(records)
	req.Nil(cursor)
}
