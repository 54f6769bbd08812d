// Package tokenpkg verifies and issues the bearer tokens carried by wallet users.
package tokenpkg

import (
	"fmt"
	"time"
)

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific user and duration.
	CreateToken(userID string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// Token kinds accepted by NewMaker.
const (
	KindPaseto = "paseto"
	KindJWT    = "jwt"
)

// NewMaker returns the maker of the given kind.
func NewMaker(kind, key string) (Maker, error) {
	switch kind {
	case KindPaseto, "":
		return NewPasetoMaker(key)
	case KindJWT:
		return NewJWTMaker(key)
	}

	return nil, fmt.Errorf("unknown token kind %q", kind)
}
