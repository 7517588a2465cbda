package sync

import "time"

// Row is one server-side expense row. Deletion is soft: the row stays with
// DeletedAt set so pulling clients can observe it.
type Row struct {
	ID          int64
	UserID      int
	LocalID     *string
	ProductName string
	Price       float64
	Category    string
	Timestamp   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// Wire converts the row to its pull representation.
func (r Row) Wire() PullExpense {
	out := PullExpense{
		ID:          r.ID,
		LocalID:     r.LocalID,
		ProductName: r.ProductName,
		Price:       formatPrice(r.Price),
		Category:    r.Category,
		Timestamp:   r.Timestamp.UTC().Format(timeLayout),
		UpdatedAt:   r.UpdatedAt.UTC().Format(timeLayout),
	}
	if r.DeletedAt != nil {
		deleted := r.DeletedAt.UTC().Format(timeLayout)
		out.DeletedAt = &deleted
	}
	return out
}
