package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/exp/slog"

	"gastos/internal/app/client/config"
	"gastos/internal/domain/expense"
	"gastos/internal/domain/sync"
)

// App ties the Local Record Store, the HTTP client and the sync engine
// together behind the operations the CLI exposes.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	store      *Store
	httpClient *httpClient
	engine     *SyncEngine
}

func New(cfg *config.Config, log *slog.Logger) *App {
	var kv KV
	sqlite, err := NewSQLiteKV(cfg.DataPath)
	if err != nil {
		log.Error("failed to open local database, falling back to in-memory store", "path", cfg.DataPath, "error", err)
		kv = NewMemoryKV()
	} else {
		kv = sqlite
	}

	store := NewStore(kv, log)
	httpClient := newHTTPClient(cfg, log)
	if session, ok := store.CurrentUser(); ok {
		httpClient.SetToken(session.Token)
	}

	timeout := time.Duration(cfg.SyncTimeout) * time.Second

	return &App{
		Config:     cfg,
		Logger:     log,
		store:      store,
		httpClient: httpClient,
		engine:     NewSyncEngine(store, httpClient, timeout, log),
	}
}

func (a *App) Close() error {
	return a.store.kv.Close()
}

// AddExpense records a new expense with a fresh client identifier.
func (a *App) AddExpense(product string, price float64, category string, ts time.Time) (expense.Expense, error) {
	e, err := expense.New(product, price, category, ts)
	if err != nil {
		return expense.Expense{}, err
	}

	expenses := append(a.store.Expenses(), e)
	expense.SortNewestFirst(expenses)
	if err := a.store.SaveExpenses(expenses); err != nil {
		return expense.Expense{}, err
	}

	categories := a.store.Categories()
	if !categories.Contains(e.Category) {
		if err := a.store.SaveCategories(categories.WithCategory(e.Category)); err != nil {
			return expense.Expense{}, err
		}
	}
	return e, nil
}

// UpdateExpense overwrites the fields of an existing expense, keeping its
// identifier so the server updates the same row on the next sync.
func (a *App) UpdateExpense(id, product string, price float64, category string, ts time.Time) (expense.Expense, error) {
	expenses := a.store.Expenses()
	idx := -1
	for i, e := range expenses {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return expense.Expense{}, expense.ErrNotFound
	}

	updated := expense.Expense{
		ID:        id,
		Product:   product,
		Price:     price,
		Category:  expense.NormalizeCategory(category),
		Timestamp: ts,
	}
	if err := updated.Validate(); err != nil {
		return expense.Expense{}, err
	}

	expenses[idx] = updated
	expense.SortNewestFirst(expenses)
	if err := a.store.SaveExpenses(expenses); err != nil {
		return expense.Expense{}, err
	}

	categories := a.store.Categories()
	if !categories.Contains(updated.Category) {
		if err := a.store.SaveCategories(categories.WithCategory(updated.Category)); err != nil {
			return expense.Expense{}, err
		}
	}
	return updated, nil
}

// DeleteExpense removes an expense locally. Server-assigned identifiers are
// tombstoned so the deletion survives the next pull; client identifiers the
// server has never seen vanish outright.
func (a *App) DeleteExpense(id string) error {
	expenses := a.store.Expenses()
	remaining := make([]expense.Expense, 0, len(expenses))
	found := false
	for _, e := range expenses {
		if e.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, e)
	}
	if !found {
		return expense.ErrNotFound
	}

	if err := a.store.SaveExpenses(remaining); err != nil {
		return err
	}
	if sync.IsServerID(id) {
		pending := a.store.PendingDeletions()
		pending[id] = struct{}{}
		if err := a.store.SavePendingDeletions(pending); err != nil {
			return err
		}
	}
	return nil
}

// ListExpenses returns the local collection filtered, newest first.
func (a *App) ListExpenses(f expense.Filter) []expense.Expense {
	return expense.Apply(a.store.Expenses(), f)
}

func (a *App) Categories() expense.Registry {
	return a.store.Categories()
}

// DeleteCategory removes a category and every expense bearing it. The
// default category is permanent and cannot be removed.
func (a *App) DeleteCategory(name string) (int, error) {
	name = expense.NormalizeCategory(name)
	if name == expense.DefaultCategory {
		return 0, fmt.Errorf("category %q cannot be deleted", expense.DefaultCategory)
	}

	categories := a.store.Categories()
	if !categories.Contains(name) {
		return 0, expense.ErrNotFound
	}

	expenses := a.store.Expenses()
	remaining := make([]expense.Expense, 0, len(expenses))
	pending := a.store.PendingDeletions()
	removed := 0
	for _, e := range expenses {
		if e.Category != name {
			remaining = append(remaining, e)
			continue
		}
		removed++
		if sync.IsServerID(e.ID) {
			pending[e.ID] = struct{}{}
		}
	}

	if err := a.store.SaveExpenses(remaining); err != nil {
		return 0, err
	}
	if err := a.store.SaveCategories(categories.WithoutCategory(name)); err != nil {
		return 0, err
	}
	if err := a.store.SavePendingDeletions(pending); err != nil {
		return 0, err
	}
	return removed, nil
}

// ImportCSV merges valid rows from r into the local collection.
func (a *App) ImportCSV(r io.Reader) (*expense.ImportResult, error) {
	result, err := expense.ImportCSV(r, a.Logger)
	if err != nil {
		return nil, err
	}
	if len(result.Imported) == 0 {
		return result, nil
	}

	expenses := append(a.store.Expenses(), result.Imported...)
	expense.SortNewestFirst(expenses)
	if err := a.store.SaveExpenses(expenses); err != nil {
		return nil, err
	}

	categories := a.store.Categories()
	for _, e := range result.Imported {
		if !categories.Contains(e.Category) {
			categories = categories.WithCategory(e.Category)
		}
	}
	if err := a.store.SaveCategories(categories); err != nil {
		return nil, err
	}
	return result, nil
}

// ExportCSV writes the filtered local collection to w.
func (a *App) ExportCSV(w io.Writer, f expense.Filter) (int, error) {
	expenses := expense.Apply(a.store.Expenses(), f)
	if err := expense.ExportCSV(w, expenses); err != nil {
		return 0, err
	}
	return len(expenses), nil
}

// Login authenticates against the server and persists the session locally.
func (a *App) Login(ctx context.Context, login, password string) error {
	token, err := a.httpClient.Login(ctx, login, password)
	if err != nil {
		return err
	}
	a.httpClient.SetToken(token)
	return a.store.SaveCurrentUser(Session{Login: login, Token: token})
}

func (a *App) Register(ctx context.Context, login, password string) error {
	return a.httpClient.Register(ctx, login, password)
}

// Logout revokes the server session and tears down all per-user sync state.
// Expense data stays on the device.
func (a *App) Logout(ctx context.Context) error {
	if _, ok := a.store.CurrentUser(); !ok {
		return sync.ErrNotAuthenticated
	}

	if err := a.httpClient.Logout(ctx); err != nil {
		a.Logger.Warn("server-side logout failed, clearing local session anyway", "error", err)
	}
	a.httpClient.SetToken("")

	if err := a.store.ClearCurrentUser(); err != nil {
		return err
	}
	if err := a.store.SaveLastSync(time.Time{}); err != nil {
		return err
	}
	return a.store.SavePendingDeletions(map[string]struct{}{})
}

// CurrentUser returns the persisted session, if any.
func (a *App) CurrentUser() (Session, bool) {
	return a.store.CurrentUser()
}

// Sync pushes the full local collection and replaces it with the server's
// authoritative state.
func (a *App) Sync(ctx context.Context) (*SyncResult, error) {
	if _, ok := a.store.CurrentUser(); !ok {
		return nil, sync.ErrNotAuthenticated
	}
	return a.engine.Sync(ctx)
}

func (a *App) LastSync() time.Time {
	return a.store.LastSync()
}

// CheckConnection verifies the server is reachable.
func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}
