package expense

import "errors"

var (
	ErrEmptyProduct     = errors.New("product name is required")
	ErrNonPositivePrice = errors.New("price must be greater than zero")
	ErrEmptyCategory    = errors.New("category is required")
	ErrInvalidTimestamp = errors.New("timestamp is invalid")
	ErrNotFound         = errors.New("expense not found")
)
