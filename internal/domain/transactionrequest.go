package domain

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrTransactionRequestNotFound indicates that the transaction request is not found.
	ErrTransactionRequestNotFound = errors.New("transaction request not found")
	// ErrTransactionRequestExists indicates a duplicate inbound transaction request.
	ErrTransactionRequestExists = errors.New("transaction request already exists")
)

// Status is the lifecycle of a transaction request as seen by its sender.
type Status string

// Transaction request statuses.
const (
	StatusReceived Status = "RECEIVED"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// State is a step of the payment flow driven for a transaction request.
type State string

// Flow states. SETTLED, REVERTED and REJECTED are terminal.
const (
	StateReceived               State = "RECEIVED"
	StateQuoted                 State = "QUOTED"
	StateQuoteReceived          State = "QUOTE_RECEIVED"
	StateAuthorizationRequested State = "AUTHORIZATION_REQUESTED"
	StateAuthorized             State = "AUTHORIZED"
	StateTransferInitiated      State = "TRANSFER_INITIATED"
	StateSettled                State = "SETTLED"
	StateReverted               State = "REVERTED"
	StateRejected               State = "REJECTED"
)

// Terminal reports whether no further transition may leave s.
func (s State) Terminal() bool {
	return s == StateSettled || s == StateReverted || s == StateRejected
}

// TransactionRequest is a request, received from a payee, for one of our users to pay.
type TransactionRequest struct {
	ID              string          `json:"transaction_request_id"`
	UserID          string          `json:"user_id"`
	AccountID       int64           `json:"account_id"`
	Payer           Party           `json:"payer"`
	Payee           Party           `json:"payee"`
	Amount          Money           `json:"amount"`
	TransactionType TransactionType `json:"transaction_type"`
	Status          Status          `json:"status"`
	State           State           `json:"state"`
	Snapshot        json.RawMessage `json:"-"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionRequestParams is the inbound POST /transactionRequests body.
type TransactionRequestParams struct {
	TransactionRequestID string          `json:"transactionRequestId" binding:"required,uuid"`
	Payee                Party           `json:"payee" binding:"required"`
	Payer                Party           `json:"payer" binding:"required"`
	Amount               Money           `json:"amount" binding:"required"`
	TransactionType      TransactionType `json:"transactionType" binding:"required"`
	Note                 string          `json:"note,omitempty" binding:"omitempty,max=128"`
	Expiration           string          `json:"expiration,omitempty" binding:"omitempty,fspdatetime"`
	ExtensionList        *ExtensionList  `json:"extensionList,omitempty" binding:"omitempty"`
}

// CreateTransactionRequestParams is the data persisted for a newly received transaction request.
type CreateTransactionRequestParams struct {
	ID              string
	UserID          string
	AccountID       int64
	Payer           Party
	Payee           Party
	Amount          Money
	TransactionType TransactionType
	Snapshot        json.RawMessage
}
