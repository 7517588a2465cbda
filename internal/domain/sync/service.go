package sync

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/slog"

	"gastos/internal/domain/expense"
)

// Servicer is the server-side sync service contract.
type Servicer interface {
	// ReplaceAll applies a complete client-side expense set: rows named by
	// server id are updated, rows carrying only a client token are
	// inserted, and rows absent from the payload are soft-deleted.
	ReplaceAll(ctx context.Context, userID int, req PushRequest) (*PushResponse, error)

	// FetchAll returns the user's complete authoritative state.
	FetchAll(ctx context.Context, userID int) (*PullResponse, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "sync_service"),
	}
}

func (s *Service) ReplaceAll(ctx context.Context, userID int, req PushRequest) (*PushResponse, error) {
	existing, err := s.repo.ListRows(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	byID := make(map[int64]Row, len(existing))
	for _, row := range existing {
		byID[row.ID] = row
	}

	resp := &PushResponse{}
	seen := make(map[int64]struct{}, len(req.Expenses))
	var categories []string

	for _, item := range req.Expenses {
		row, err := rowFromPush(userID, item)
		if err != nil {
			s.log.Warn("rejecting pushed expense", "user_id", userID, "error", err)
			// A malformed update must not count as absence: keep the
			// stored row instead of soft-deleting it.
			if item.ID != nil {
				if id, perr := strconv.ParseInt(*item.ID, 10, 64); perr == nil {
					seen[id] = struct{}{}
				}
			}
			continue
		}
		categories = append(categories, row.Category)

		if item.ID != nil {
			id, err := strconv.ParseInt(*item.ID, 10, 64)
			if err == nil {
				if current, ok := byID[id]; ok && current.DeletedAt == nil {
					row.ID = id
					if err := s.repo.UpdateRow(ctx, row); err != nil {
						return nil, fmt.Errorf("update row %d: %w", id, err)
					}
					seen[id] = struct{}{}
					resp.UpdatedCount++
					continue
				}
			}
			// Unknown or already-deleted server id: fall through and
			// recreate so the client's row is not silently lost.
		}

		id, err := s.repo.InsertRow(ctx, row)
		if err != nil {
			return nil, fmt.Errorf("insert row: %w", err)
		}
		seen[id] = struct{}{}
		resp.CreatedCount++
	}

	// Absence from a full-replace payload means the client deleted the row.
	var toDelete []int64
	for id, row := range byID {
		if _, ok := seen[id]; ok || row.DeletedAt != nil {
			continue
		}
		toDelete = append(toDelete, id)
	}
	if len(toDelete) > 0 {
		if err := s.repo.SoftDeleteRows(ctx, userID, toDelete); err != nil {
			return nil, fmt.Errorf("soft delete rows: %w", err)
		}
	}

	if len(categories) > 0 {
		if err := s.repo.UpsertCategories(ctx, userID, categories); err != nil {
			return nil, fmt.Errorf("upsert categories: %w", err)
		}
	}

	s.log.Info("replace-all applied",
		"user_id", userID,
		"created", resp.CreatedCount,
		"updated", resp.UpdatedCount,
		"deleted", len(toDelete),
	)
	return resp, nil
}

func (s *Service) FetchAll(ctx context.Context, userID int) (*PullResponse, error) {
	rows, err := s.repo.ListRows(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list rows: %w", err)
	}

	categories, err := s.repo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	serverTime, err := s.repo.ServerTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("server time: %w", err)
	}

	resp := &PullResponse{
		Expenses:        make([]PullExpense, 0, len(rows)),
		Categories:      categories,
		ServerTimestamp: serverTime.UTC().Format(timeLayout),
	}

	names := map[string]struct{}{}
	for _, row := range rows {
		resp.Expenses = append(resp.Expenses, row.Wire())
		if row.DeletedAt == nil {
			names[row.ProductName] = struct{}{}
		}
	}
	for name := range names {
		resp.ProductNames = append(resp.ProductNames, name)
	}
	sort.Strings(resp.ProductNames)

	return resp, nil
}

func rowFromPush(userID int, item PushExpense) (Row, error) {
	product := strings.TrimSpace(item.Product)
	if product == "" {
		return Row{}, fmt.Errorf("missing product name")
	}
	if item.Price <= 0 {
		return Row{}, fmt.Errorf("non-positive price %v", item.Price)
	}
	ts, err := ParseServerTime(item.Timestamp)
	if err != nil {
		return Row{}, err
	}

	return Row{
		UserID:      userID,
		LocalID:     item.LocalID,
		ProductName: product,
		Price:       item.Price,
		Category:    expense.NormalizeCategory(item.Category),
		Timestamp:   ts,
	}, nil
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
