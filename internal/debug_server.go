package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"cutroom/auth"
)

// Accounts is the slice of the auth service the debug server exposes:
// register an account, then trade credentials for a participant token.
type Accounts interface {
	Register(req auth.RegisterRequest) (string, error)
	Login(email, password string) (string, error)
}

// SearchFunc resolves a full-text query over one project's messages.
type SearchFunc func(ctx context.Context, projectID, terms string) (any, error)

type InspectRow struct {
	Key       string `json:"key"`
	Kind      string `json:"kind"`
	Timestamp string `json:"timestamp"`
	EntityID  string `json:"entity_id"`
	Project   string `json:"project"`
	Detail    string `json:"detail"`
}

type RowMapper func(key string, val []byte) InspectRow
type StatsProvider func() map[string]any

type PageData struct {
	Prefix string         `json:"prefix"`
	Items  []InspectRow   `json:"items"`
	Stats  map[string]any `json:"stats"`
}

// DebugServerOptions selects which endpoints the debug server mounts; nil
// members are skipped.
type DebugServerOptions struct {
	Mapper   RowMapper
	Stats    StatsProvider
	Accounts Accounts
	Search   SearchFunc
}

// StartDebugServer exposes the raw journal, live pipeline stats, account
// registration and message search over HTTP for local inspection. Not meant
// to face anything but localhost.
func StartDebugServer(db *badger.DB, port int, endpoint string, opts DebugServerOptions) {
	mux := http.NewServeMux()

	mapper := opts.Mapper
	if mapper == nil {
		mapper = DefaultMapper
	}
	statsProvider := opts.Stats

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = "evt:"
		}

		data := PageData{
			Prefix: prefix,
			Stats:  make(map[string]any),
		}

		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		_ = db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
				item := it.Item()
				_ = item.Value(func(val []byte) error {
					data.Items = append(data.Items, mapper(string(item.Key()), val))
					return nil
				})
			}
			return nil
		})

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(data)
	})

	if opts.Accounts != nil {
		mux.HandleFunc(endpoint+"/register", func(w http.ResponseWriter, r *http.Request) {
			var req auth.RegisterRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			participantID, err := opts.Accounts.Register(req)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			writeJSON(w, map[string]string{"participant_id": participantID})
		})

		mux.HandleFunc(endpoint+"/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			token, err := opts.Accounts.Login(req.Email, req.Password)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			writeJSON(w, map[string]string{"token": token})
		})
	}

	if opts.Search != nil {
		mux.HandleFunc(endpoint+"/search", func(w http.ResponseWriter, r *http.Request) {
			projectID := r.URL.Query().Get("project")
			terms := r.URL.Query().Get("q")
			results, err := opts.Search(r.Context(), projectID, terms)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, results)
		})
	}

	go func() {
		_ = http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)
	}()
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(body)
}

// DefaultMapper decodes the journal key scheme
// "evt:{project}:{timestamp_padded}:{uuid}".
func DefaultMapper(key string, val []byte) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{
		Key:       key,
		Kind:      "RAW",
		Timestamp: "--:--:--",
		EntityID:  "--------",
		Project:   "default",
		Detail:    "Size: " + strconv.Itoa(len(val)) + " bytes",
	}

	if len(parts) >= 4 {
		row.Project = parts[1]
		if tsNano, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			row.Timestamp = time.Unix(0, tsNano).Format("15:04:05")
		}
		row.EntityID = parts[3]
		if len(row.EntityID) > 8 {
			row.EntityID = row.EntityID[:8]
		}
	}
	return row
}
