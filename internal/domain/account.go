// Package domain provides definitions of all wallet entities and their errors.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCurrencyAlreadyExists indicates that the user already holds an account in the currency.
	ErrCurrencyAlreadyExists = errors.New("account currency already exists")
	// ErrInsufficientLimit indicates that a post would take the balance below the account limit.
	ErrInsufficientLimit = errors.New("insufficient limit")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrAccountOwnerMismatch indicates that the account belongs to another user.
	ErrAccountOwnerMismatch = errors.New("account owner mismatch")
)

// Account holds the balance of a user in a single asset.
//
// Balance and Limit are integer minor units; Limit may be negative to allow an overdraft.
type Account struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Currency  string    `json:"currency"`
	Scale     int32     `json:"scale"`
	Balance   int64     `json:"balance"`
	Limit     int64     `json:"limit"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to open an account.
type CreateAccountParams struct {
	UserID   string `json:"user_id"`
	Currency string `json:"currency"`
	Scale    int32  `json:"scale"`
	Limit    int64  `json:"limit"`
}
