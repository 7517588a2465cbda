package client

import (
	"context"
	gosync "sync"
	"time"

	"golang.org/x/exp/slog"

	"gastos/internal/domain/expense"
	"gastos/internal/domain/sync"
)

// SyncEngine performs the two-phase replace-all exchange with the server:
// push the complete local expense set, then pull the server's authoritative
// state and overwrite the Local Record Store with it. Last writer wins;
// concurrent edits from two devices between syncs are resolved by whichever
// device pushes last. That is the accepted contract of the protocol, not a
// defect.
type SyncEngine struct {
	store      *Store
	httpClient *httpClient
	log        *slog.Logger
	timeout    time.Duration

	mu       gosync.Mutex
	inFlight bool
	lastSync time.Time
}

// SyncResult describes one completed synchronization.
type SyncResult struct {
	Pushed          int           `json:"pushed"`
	Created         int           `json:"created"`
	Updated         int           `json:"updated"`
	Pulled          int           `json:"pulled"`
	Dropped         int           `json:"dropped"`
	ServerTimestamp time.Time     `json:"server_timestamp"`
	Duration        time.Duration `json:"duration"`
}

func NewSyncEngine(store *Store, httpClient *httpClient, timeout time.Duration, log *slog.Logger) *SyncEngine {
	return &SyncEngine{
		store:      store,
		httpClient: httpClient,
		log:        log.With("component", "sync_engine"),
		timeout:    timeout,
	}
}

// Sync runs one full push+pull round-trip. A second invocation while one is
// running fails with sync.ErrInProgress. On push failure nothing is pulled
// and local state is byte-for-byte unchanged; on pull failure local data and
// the pending-deletion set survive for a safe retry. Tombstones are cleared
// only after both phases succeeded.
func (s *SyncEngine) Sync(ctx context.Context) (*SyncResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, sync.ErrInProgress
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	start := time.Now()
	result := &SyncResult{}

	// Phase one: push the complete local set.
	expenses := s.store.Expenses()
	req := sync.PushRequest{Expenses: make([]sync.PushExpense, 0, len(expenses))}
	for _, e := range expenses {
		req.Expenses = append(req.Expenses, sync.WirePayload(e))
	}

	s.log.Info("push started", "expenses", len(req.Expenses))
	pushCtx, cancelPush := context.WithTimeout(ctx, s.timeout)
	pushResp, err := s.httpClient.PushReplaceAll(pushCtx, req)
	cancelPush()
	if err != nil {
		s.log.Error("push failed", "error", err)
		return nil, err
	}
	result.Pushed = len(req.Expenses)
	result.Created = pushResp.CreatedCount
	result.Updated = pushResp.UpdatedCount

	// Phase two: pull the authoritative state.
	s.log.Info("pull started")
	pullCtx, cancelPull := context.WithTimeout(ctx, s.timeout)
	pullResp, err := s.httpClient.PullAll(pullCtx)
	cancelPull()
	if err != nil {
		s.log.Error("pull failed, local data and tombstones retained", "error", err)
		return nil, err
	}

	if err := s.applyPull(pullResp, result); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	s.mu.Lock()
	s.lastSync = time.Now()
	s.mu.Unlock()

	s.log.Info("sync finished",
		"pushed", result.Pushed,
		"pulled", result.Pulled,
		"dropped", result.Dropped,
		"duration", result.Duration,
	)
	return result, nil
}

// applyPull replaces the entire local collection with the server's state.
// The overwrite happens only after the whole response parsed, so a broken
// response never leaves the store half-written.
func (s *SyncEngine) applyPull(resp *sync.PullResponse, result *SyncResult) error {
	incoming := make([]expense.Expense, 0, len(resp.Expenses))
	for _, rec := range resp.Expenses {
		if rec.DeletedAt != nil {
			continue
		}
		e, err := sync.FromWireExpense(rec)
		if err != nil {
			s.log.Warn("dropping malformed server record", "server_id", rec.ID, "error", err)
			result.Dropped++
			continue
		}
		incoming = append(incoming, e)
	}
	expense.SortNewestFirst(incoming)

	names := make([]string, 0, len(resp.Categories))
	for _, c := range resp.Categories {
		names = append(names, c.Name)
	}
	registry := expense.BuildRegistry(names, incoming)

	serverTime, err := sync.ParseServerTime(resp.ServerTimestamp)
	if err != nil {
		return &sync.PullError{Err: err}
	}

	if err := s.store.SaveExpenses(incoming); err != nil {
		return err
	}
	if err := s.store.SaveCategories(registry); err != nil {
		return err
	}
	if err := s.store.SaveLastSync(serverTime); err != nil {
		return err
	}
	// Both phases succeeded: tombstones are resolved.
	if err := s.store.SavePendingDeletions(map[string]struct{}{}); err != nil {
		return err
	}

	result.Pulled = len(incoming)
	result.ServerTimestamp = serverTime
	return nil
}

// IsSyncing reports whether a synchronization is currently running.
func (s *SyncEngine) IsSyncing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// LastSync returns the local wall-clock time of the last successful sync.
func (s *SyncEngine) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}
