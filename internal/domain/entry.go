package domain

import "time"

// Entry is an immutable ledger record of a balance change.
type Entry struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	Amount      int64     `json:"amount"` // can be negative or positive
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostResult is the outcome of a ledger post.
type PostResult struct {
	Account Account `json:"account"`
	Entry   Entry   `json:"entry"`
}
