package domain

import "errors"

var (
	// ErrValidation indicates a malformed protocol payload.
	ErrValidation = errors.New("validation failed")
	// ErrTimeout indicates that no callback arrived within the budget.
	ErrTimeout = errors.New("callback timeout")
	// ErrGateway indicates that a downstream protocol call failed.
	ErrGateway = errors.New("gateway error")
	// ErrInvalidState indicates that the flow is not in the state the operation requires.
	ErrInvalidState = errors.New("invalid transaction state")
	// ErrInvalidOwner indicates that the user is unauthorized to act on the resource.
	ErrInvalidOwner = errors.New("unauthorized owner")
)
