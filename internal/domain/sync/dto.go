package sync

import "time"

// Wire format of the replace-all protocol. Field names follow the service
// contract, quirks included: the push side sends "product" and a numeric
// price, the pull side returns "productName" and a string price.

const timeLayout = time.RFC3339

// PushExpense is one expense as transmitted during push. Exactly one of ID
// and LocalID is set.
type PushExpense struct {
	ID        *string `json:"id"`
	LocalID   *string `json:"local_id"`
	Product   string  `json:"product"`
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Timestamp string  `json:"timestamp"`
}

// PushRequest carries the complete client-side expense set so the server
// can diff, not an incremental delta.
type PushRequest struct {
	Expenses []PushExpense `json:"expenses"`
}

// PushResponse reports what the server did with the pushed set.
type PushResponse struct {
	CreatedCount int `json:"created_count"`
	UpdatedCount int `json:"updated_count"`
}

// PullExpense is one expense row as returned by the server, including rows
// it has soft-deleted (DeletedAt set) which clients filter out.
type PullExpense struct {
	ID          int64   `json:"id"`
	LocalID     *string `json:"local_id"`
	ProductName string  `json:"productName"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	Timestamp   string  `json:"timestamp"`
	UpdatedAt   string  `json:"updated_at"`
	DeletedAt   *string `json:"deleted_at"`
}

// PullCategory is one entry of the server's category registry.
type PullCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// PullResponse is the server's complete authoritative state.
type PullResponse struct {
	Expenses        []PullExpense  `json:"expenses"`
	Categories      []PullCategory `json:"categories"`
	ProductNames    []string       `json:"productNames"`
	ServerTimestamp string         `json:"server_timestamp"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token used on the sync endpoints.
type LoginResponse struct {
	Token string `json:"token"`
	Error string `json:"error,omitempty"`
}
