package sync

import (
	"context"
	"time"
)

// Repository is the persistence contract for the server-side sync service.
type Repository interface {
	// ListRows returns every expense row of the user, soft-deleted included.
	ListRows(ctx context.Context, userID int) ([]Row, error)

	// InsertRow stores a new row and returns its server identifier.
	InsertRow(ctx context.Context, row Row) (int64, error)

	// UpdateRow overwrites the mutable fields of an existing row.
	UpdateRow(ctx context.Context, row Row) error

	// SoftDeleteRows marks the given rows of the user as deleted.
	SoftDeleteRows(ctx context.Context, userID int, ids []int64) error

	// UpsertCategories adds the names to the user's category registry.
	UpsertCategories(ctx context.Context, userID int, names []string) error

	// ListCategories returns the user's category registry.
	ListCategories(ctx context.Context, userID int) ([]PullCategory, error)

	// ServerTime returns the database clock.
	ServerTime(ctx context.Context) (time.Time, error)
}
