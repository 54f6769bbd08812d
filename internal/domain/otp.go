package domain

import (
	"errors"
	"time"
)

var (
	// ErrActiveOTPExists indicates that the user already has an unused, unexpired code.
	ErrActiveOTPExists = errors.New("active otp already exists")
	// ErrOTPNotFound indicates that the user has no active code.
	ErrOTPNotFound = errors.New("otp not found")
	// ErrOTPMismatch indicates that the entered code does not match the active one.
	ErrOTPMismatch = errors.New("otp mismatch")
)

// OTP is a single-use authorization code.
type OTP struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	AccountID int64     `json:"account_id"`
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the code can still authorize at now.
func (o OTP) Active(now time.Time) bool {
	return !o.Used && o.ExpiresAt.After(now)
}

// CreateOTPParams is the data persisted for a newly issued code.
type CreateOTPParams struct {
	UserID    string
	AccountID int64
	Code      string
	ExpiresAt time.Time
}
