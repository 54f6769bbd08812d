package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrAlreadyReverted indicates that the transfer has already been compensated.
	ErrAlreadyReverted = errors.New("transfer already reverted")
	// ErrTransferFailed indicates that the counterparty aborted the transfer.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrInvalidFulfilment indicates that a fulfilment does not match its condition.
	ErrInvalidFulfilment = errors.New("invalid fulfilment")
	// ErrTransferExpired indicates a transfer prepared after its expiration.
	ErrTransferExpired = errors.New("transfer expired")
	// ErrTransferExists indicates that a transfer with the same id is already recorded.
	ErrTransferExists = errors.New("transfer already exists")
)

// Direction tells whether a transfer debited or credited the wallet account.
type Direction string

// Transfer directions.
const (
	DirectionOutbound Direction = "OUTBOUND"
	DirectionInbound  Direction = "INBOUND"
)

// Transfer states reported by the scheme.
const (
	TransferStateReceived  = "RECEIVED"
	TransferStateReserved  = "RESERVED"
	TransferStateCommitted = "COMMITTED"
	TransferStateAborted   = "ABORTED"
)

// Transfer records money moved for a transaction.
type Transfer struct {
	ID                   string    `json:"transfer_id"`
	TransactionID        string    `json:"transaction_id"`
	TransactionRequestID string    `json:"transaction_request_id,omitempty"`
	QuoteID              string    `json:"quote_id"`
	AccountID            int64     `json:"account_id"`
	Amount               int64     `json:"amount"`
	Direction            Direction `json:"direction"`
	IlpPacket            string    `json:"-"`
	Condition            string    `json:"condition"`
	Fulfilment           string    `json:"fulfilment,omitempty"`
	Expiration           time.Time `json:"expiration"`
	State                State     `json:"state"`
	Reverted             bool      `json:"reverted"`
	CreatedAt            time.Time `json:"created_at"`
}

// CreateTransferParams is the complete input of a transfer record.
//
// Every field is required; a transfer is never initiated from a partial body.
type CreateTransferParams struct {
	ID                   string
	TransactionID        string
	TransactionRequestID string
	QuoteID              string
	AccountID            int64
	Amount               int64
	Direction            Direction
	IlpPacket            string
	Condition            string
	Fulfilment           string
	Expiration           time.Time
	State                State
	Description          string
}

// Validate reports the first missing field of the transfer body.
func (p CreateTransferParams) Validate() error {
	missing := ""

	switch {
	case p.ID == "":
		missing = "transfer id"
	case p.TransactionID == "":
		missing = "transaction id"
	case p.QuoteID == "":
		missing = "quote id"
	case p.AccountID == 0:
		missing = "account id"
	case p.Amount <= 0:
		missing = "amount"
	case p.Direction == "":
		missing = "direction"
	case p.IlpPacket == "":
		missing = "ilp packet"
	case p.Condition == "":
		missing = "condition"
	case p.Expiration.IsZero():
		missing = "expiration"
	case p.State == "":
		missing = "state"
	case p.Direction == DirectionOutbound && p.TransactionRequestID == "":
		missing = "transaction request id"
	}

	if missing != "" {
		return fmt.Errorf("%w: transfer %s is required", ErrValidation, missing)
	}

	return nil
}

// TransferPrepare is the POST /transfers body.
type TransferPrepare struct {
	TransferID    string         `json:"transferId" binding:"required,uuid"`
	PayerFsp      string         `json:"payerFsp" binding:"required,min=1,max=32"`
	PayeeFsp      string         `json:"payeeFsp" binding:"required,min=1,max=32"`
	Amount        Money          `json:"amount" binding:"required"`
	IlpPacket     string         `json:"ilpPacket" binding:"required,ilppacket"`
	Condition     string         `json:"condition" binding:"required,ilpcondition"`
	Expiration    string         `json:"expiration" binding:"required,fspdatetime"`
	ExtensionList *ExtensionList `json:"extensionList,omitempty" binding:"omitempty"`
}

// TransferFulfil is the PUT /transfers/{id} body.
type TransferFulfil struct {
	Fulfilment         string         `json:"fulfilment,omitempty" binding:"omitempty,ilpcondition"`
	CompletedTimestamp string         `json:"completedTimestamp,omitempty" binding:"omitempty,fspdatetime"`
	TransferState      string         `json:"transferState" binding:"required,oneof=RECEIVED RESERVED COMMITTED ABORTED"`
	ExtensionList      *ExtensionList `json:"extensionList,omitempty" binding:"omitempty"`
}

// TransferResult is what a transfer callback resolves to: a fulfil or an error.
type TransferResult struct {
	Fulfil *TransferFulfil
	Error  *ErrorInformation
}

// Final reports whether the result ends the transfer. RECEIVED and RESERVED
// fulfils are progress reports and settle nothing.
func (r TransferResult) Final() bool {
	if r.Error != nil {
		return true
	}

	return r.Fulfil != nil &&
		(r.Fulfil.TransferState == TransferStateCommitted || r.Fulfil.TransferState == TransferStateAborted)
}

// Committed reports whether the counterparty committed the transfer.
func (r TransferResult) Committed() bool {
	return r.Error == nil && r.Fulfil != nil && r.Fulfil.TransferState == TransferStateCommitted
}
