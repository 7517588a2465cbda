package client

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/slog"

	"gastos/internal/domain/expense"
)

// Persisted keys. Each is read and written independently; there is no
// cross-key transaction.
const (
	keyExpenses         = "expenses"
	keyCategories       = "categories"
	keyLastSync         = "lastSyncTimestamp"
	keyPendingDeletions = "deletedServerExpenseIds"
	keyCurrentUser      = "currentUser"
)

// Session is the persisted auth state of the client.
type Session struct {
	Login string `json:"login"`
	Token string `json:"token"`
}

// Store is the typed Local Record Store: JSON-hydrated values over the raw
// KV. Timestamps cross the boundary as RFC 3339 strings and come back as
// real time.Time values. A corrupt entry is logged and treated as absent,
// never surfaced as an error to the caller.
type Store struct {
	kv  KV
	log *slog.Logger
}

func NewStore(kv KV, log *slog.Logger) *Store {
	return &Store{
		kv:  kv,
		log: log.With("component", "local_store"),
	}
}

// Expenses returns the persisted expense collection, empty when absent.
func (s *Store) Expenses() []expense.Expense {
	var out []expense.Expense
	if !s.readJSON(keyExpenses, &out) {
		return []expense.Expense{}
	}
	return out
}

func (s *Store) SaveExpenses(expenses []expense.Expense) error {
	return s.writeJSON(keyExpenses, expenses)
}

// Categories returns the category registry. The default sentinel is always
// present.
func (s *Store) Categories() expense.Registry {
	var out expense.Registry
	if !s.readJSON(keyCategories, &out) || len(out) == 0 {
		return expense.Registry{expense.DefaultCategory}
	}
	if !out.Contains(expense.DefaultCategory) {
		out = out.WithCategory(expense.DefaultCategory)
	}
	return out
}

func (s *Store) SaveCategories(categories expense.Registry) error {
	return s.writeJSON(keyCategories, categories)
}

// LastSync returns the server clock of the most recent successful pull, or
// the zero time when the client has never synced.
func (s *Store) LastSync() time.Time {
	var out time.Time
	if !s.readJSON(keyLastSync, &out) {
		return time.Time{}
	}
	return out
}

func (s *Store) SaveLastSync(ts time.Time) error {
	return s.writeJSON(keyLastSync, ts)
}

// PendingDeletions returns the tombstone set: server identifiers deleted
// locally since the last successful sync.
func (s *Store) PendingDeletions() map[string]struct{} {
	var ids []string
	out := map[string]struct{}{}
	if !s.readJSON(keyPendingDeletions, &ids) {
		return out
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s *Store) SavePendingDeletions(ids map[string]struct{}) error {
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)
	return s.writeJSON(keyPendingDeletions, sorted)
}

// CurrentUser returns the persisted session, if any.
func (s *Store) CurrentUser() (Session, bool) {
	var out Session
	if !s.readJSON(keyCurrentUser, &out) || out.Token == "" {
		return Session{}, false
	}
	return out, true
}

func (s *Store) SaveCurrentUser(session Session) error {
	return s.writeJSON(keyCurrentUser, session)
}

func (s *Store) ClearCurrentUser() error {
	return s.kv.Delete(keyCurrentUser)
}

func (s *Store) readJSON(key string, dest any) bool {
	raw, found, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("failed to read key, using fallback", "key", key, "error", err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.log.Warn("corrupt value, using fallback", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) writeJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	return s.kv.Set(key, string(raw))
}
