package postgres

import (
	"context"
	"time"

	"golang.org/x/exp/slog"

	"gastos/internal/domain/sync"
)

// ExpenseRepository persists the per-user expense rows the sync service
// diffs against. Deletion is soft so pulling clients observe removed rows.
type ExpenseRepository struct {
	db  *Storage
	log *slog.Logger
}

func NewExpenseRepository(db *Storage, log *slog.Logger) *ExpenseRepository {
	return &ExpenseRepository{
		db:  db,
		log: log,
	}
}

func (r *ExpenseRepository) ListRows(ctx context.Context, userID int) ([]sync.Row, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, user_id, local_id, product_name, price, category, timestamp, updated_at, deleted_at
         FROM expenses WHERE user_id = $1 ORDER BY timestamp DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sync.Row
	for rows.Next() {
		var row sync.Row
		if err := rows.Scan(&row.ID, &row.UserID, &row.LocalID, &row.ProductName,
			&row.Price, &row.Category, &row.Timestamp, &row.UpdatedAt, &row.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ExpenseRepository) InsertRow(ctx context.Context, row sync.Row) (int64, error) {
	var id int64
	err := r.db.Pool().QueryRow(ctx,
		`INSERT INTO expenses (user_id, local_id, product_name, price, category, timestamp)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		row.UserID, row.LocalID, row.ProductName, row.Price, row.Category, row.Timestamp).
		Scan(&id)
	return id, err
}

func (r *ExpenseRepository) UpdateRow(ctx context.Context, row sync.Row) error {
	_, err := r.db.Pool().Exec(ctx,
		`UPDATE expenses
         SET product_name = $1, price = $2, category = $3, timestamp = $4, updated_at = NOW()
         WHERE id = $5 AND user_id = $6`,
		row.ProductName, row.Price, row.Category, row.Timestamp, row.ID, row.UserID)
	return err
}

func (r *ExpenseRepository) SoftDeleteRows(ctx context.Context, userID int, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Pool().Exec(ctx,
		`UPDATE expenses SET deleted_at = NOW(), updated_at = NOW()
         WHERE user_id = $1 AND id = ANY($2) AND deleted_at IS NULL`,
		userID, ids)
	return err
}

func (r *ExpenseRepository) UpsertCategories(ctx context.Context, userID int, names []string) error {
	if len(names) == 0 {
		return nil
	}
	_, err := r.db.Pool().Exec(ctx,
		`INSERT INTO categories (user_id, name)
         SELECT $1, unnest($2::text[])
         ON CONFLICT (user_id, name) DO NOTHING`,
		userID, names)
	return err
}

func (r *ExpenseRepository) ListCategories(ctx context.Context, userID int) ([]sync.PullCategory, error) {
	rows, err := r.db.Pool().Query(ctx,
		`SELECT id, name FROM categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sync.PullCategory
	for rows.Next() {
		var c sync.PullCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ExpenseRepository) ServerTime(ctx context.Context) (time.Time, error) {
	var ts time.Time
	err := r.db.Pool().QueryRow(ctx, `SELECT NOW()`).Scan(&ts)
	return ts, err
}
