package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"gastos/internal/app/client/config"
	"gastos/internal/domain/expense"
	"gastos/internal/domain/sync"
)

func newTestEngine(t *testing.T, handler http.Handler) (*SyncEngine, *Store, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress: strings.TrimPrefix(srv.URL, "http://"),
		SyncTimeout:   5,
	}
	log := slog.Default()
	store := NewStore(NewMemoryKV(), log)
	httpClient := newHTTPClient(cfg, log)
	httpClient.SetToken("test-token")

	engine := NewSyncEngine(store, httpClient, 5*time.Second, log)
	return engine, store, srv
}

func seedLocal(t *testing.T, store *Store) {
	t.Helper()
	ts := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveExpenses([]expense.Expense{
		{ID: "42", Product: "Coffee", Price: 3.5, Category: "Food", Timestamp: ts},
		{ID: "0f8fad5b-d9cb-469f-a165-70867728950e", Product: "Bread", Price: 2, Category: "Food", Timestamp: ts.Add(time.Hour)},
	}))
	require.NoError(t, store.SavePendingDeletions(map[string]struct{}{"7": {}}))
}

func TestSyncEngine_FullRoundTrip(t *testing.T) {
	var pushed sync.PushRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/api/sync/replace-all-client-data", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&pushed))
		json.NewEncoder(w).Encode(sync.PushResponse{CreatedCount: 1, UpdatedCount: 1})
	})
	mux.HandleFunc("/api/sync/get-all-server-data", func(w http.ResponseWriter, r *http.Request) {
		deleted := "2026-03-11T00:00:00Z"
		json.NewEncoder(w).Encode(sync.PullResponse{
			Expenses: []sync.PullExpense{
				{ID: 43, ProductName: "Cinema", Price: "8", Category: "Leisure", Timestamp: "2026-03-12T20:00:00Z"},
				{ID: 7, ProductName: "Gone", Price: "1", Category: "Food", Timestamp: "2026-03-01T10:00:00Z", DeletedAt: &deleted},
				{ID: 44, ProductName: "Broken", Price: "not-a-number", Category: "Food", Timestamp: "2026-03-12T20:00:00Z"},
			},
			Categories:      []sync.PullCategory{{ID: 1, Name: "Leisure"}},
			ServerTimestamp: "2026-03-14T09:00:00Z",
		})
	})

	engine, store, _ := newTestEngine(t, mux)
	seedLocal(t, store)

	result, err := engine.Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Pushed)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Pulled, "soft-deleted and malformed records are filtered")
	assert.Equal(t, 1, result.Dropped)

	// The push carried both locals with the right identifier fields.
	require.Len(t, pushed.Expenses, 2)
	require.NotNil(t, pushed.Expenses[0].ID)
	assert.Equal(t, "42", *pushed.Expenses[0].ID)
	require.NotNil(t, pushed.Expenses[1].LocalID)

	// Local state is wholesale replaced by the server's version.
	got := store.Expenses()
	require.Len(t, got, 1)
	assert.Equal(t, "43", got[0].ID)
	assert.Equal(t, "Cinema", got[0].Product)

	assert.Equal(t, expense.Registry{expense.DefaultCategory, "Leisure"}, store.Categories())
	assert.Empty(t, store.PendingDeletions(), "tombstones clear after a full success")
	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), store.LastSync().UTC())
}

func TestSyncEngine_PushFailureLeavesStateUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sync/replace-all-client-data", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	})
	mux.HandleFunc("/api/sync/get-all-server-data", func(w http.ResponseWriter, r *http.Request) {
		t.Error("pull must not be attempted after a failed push")
	})

	engine, store, _ := newTestEngine(t, mux)
	seedLocal(t, store)
	before := store.Expenses()

	_, err := engine.Sync(context.Background())

	var pushErr *sync.PushError
	require.ErrorAs(t, err, &pushErr)
	assert.Equal(t, http.StatusInternalServerError, pushErr.Status)
	assert.Equal(t, "boom", pushErr.Message)

	assert.Equal(t, before, store.Expenses())
	assert.Contains(t, store.PendingDeletions(), "7", "tombstones survive for retry")
}

func TestSyncEngine_PullFailureLeavesStateUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sync/replace-all-client-data", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sync.PushResponse{})
	})
	mux.HandleFunc("/api/sync/get-all-server-data", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	engine, store, _ := newTestEngine(t, mux)
	seedLocal(t, store)
	before := store.Expenses()

	_, err := engine.Sync(context.Background())

	var pullErr *sync.PullError
	require.ErrorAs(t, err, &pullErr)
	assert.Equal(t, http.StatusBadGateway, pullErr.Status)

	assert.Equal(t, before, store.Expenses())
	assert.Contains(t, store.PendingDeletions(), "7")
}

func TestSyncEngine_MalformedPullResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sync/replace-all-client-data", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sync.PushResponse{})
	})
	mux.HandleFunc("/api/sync/get-all-server-data", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	engine, store, _ := newTestEngine(t, mux)
	seedLocal(t, store)
	before := store.Expenses()

	_, err := engine.Sync(context.Background())

	var pullErr *sync.PullError
	require.ErrorAs(t, err, &pullErr)
	assert.Equal(t, before, store.Expenses())
}

func TestSyncEngine_SecondSyncWhileRunning(t *testing.T) {
	engine, _, _ := newTestEngine(t, http.NewServeMux())

	engine.mu.Lock()
	engine.inFlight = true
	engine.mu.Unlock()

	_, err := engine.Sync(context.Background())
	assert.ErrorIs(t, err, sync.ErrInProgress)
}

func TestSyncEngine_Idempotent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sync/replace-all-client-data", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sync.PushResponse{})
	})
	mux.HandleFunc("/api/sync/get-all-server-data", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sync.PullResponse{
			Expenses: []sync.PullExpense{
				{ID: 1, ProductName: "Coffee", Price: "3.5", Category: "Food", Timestamp: "2026-03-12T20:00:00Z"},
			},
			ServerTimestamp: "2026-03-14T09:00:00Z",
		})
	})

	engine, store, _ := newTestEngine(t, mux)

	_, err := engine.Sync(context.Background())
	require.NoError(t, err)
	first := store.Expenses()

	_, err = engine.Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, store.Expenses(), "an unchanged dataset syncs to the same state")
}
