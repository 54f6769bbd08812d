package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrQuoteNotFound indicates that the quote is not found.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrQuoteExpired indicates that the quote can no longer be used.
	ErrQuoteExpired = errors.New("quote expired")
	// ErrQuoteRejected indicates that the counterparty answered the quote with an error.
	ErrQuoteRejected = errors.New("quote rejected")
	// ErrInvalidQuoteResponse indicates a quote response that breaks the scheme format rules.
	ErrInvalidQuoteResponse = fmt.Errorf("%w: invalid quote response", ErrValidation)
)

// AmountTypeReceive means the payee receives the quoted amount and fees are added on top.
const AmountTypeReceive = "RECEIVE"

// QuoteRequest is the POST /quotes body, both sent and received.
type QuoteRequest struct {
	QuoteID              string          `json:"quoteId" binding:"required,uuid"`
	TransactionID        string          `json:"transactionId" binding:"required,uuid"`
	TransactionRequestID string          `json:"transactionRequestId,omitempty" binding:"omitempty,uuid"`
	Payee                Party           `json:"payee" binding:"required"`
	Payer                Party           `json:"payer" binding:"required"`
	AmountType           string          `json:"amountType" binding:"required,oneof=SEND RECEIVE"`
	Amount               Money           `json:"amount" binding:"required"`
	Fees                 *Money          `json:"fees,omitempty" binding:"omitempty"`
	TransactionType      TransactionType `json:"transactionType" binding:"required"`
	Note                 string          `json:"note,omitempty" binding:"omitempty,max=128"`
	Expiration           string          `json:"expiration,omitempty" binding:"omitempty,fspdatetime"`
	ExtensionList        *ExtensionList  `json:"extensionList,omitempty" binding:"omitempty"`
}

// QuoteResponse is the PUT /quotes/{id} body.
type QuoteResponse struct {
	TransferAmount     Money          `json:"transferAmount" binding:"required"`
	PayeeReceiveAmount *Money         `json:"payeeReceiveAmount,omitempty" binding:"omitempty"`
	PayeeFspFee        *Money         `json:"payeeFspFee,omitempty" binding:"omitempty"`
	PayeeFspCommission *Money         `json:"payeeFspCommission,omitempty" binding:"omitempty"`
	Expiration         string         `json:"expiration" binding:"required,fspdatetime"`
	GeoCode            *GeoCode       `json:"geoCode,omitempty" binding:"omitempty"`
	IlpPacket          string         `json:"ilpPacket" binding:"required,ilppacket"`
	Condition          string         `json:"condition" binding:"required,ilpcondition"`
	ExtensionList      *ExtensionList `json:"extensionList,omitempty" binding:"omitempty"`
}

// Quote is a priced proposal for a transfer.
type Quote struct {
	ID                   string        `json:"quote_id"`
	TransactionID        string        `json:"transaction_id"`
	TransactionRequestID string        `json:"transaction_request_id,omitempty"`
	Inbound              bool          `json:"inbound"`
	Expiration           time.Time     `json:"expiration"`
	Request              QuoteRequest  `json:"request"`
	Outcome              *QuoteOutcome `json:"outcome,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
}

// Outcome kinds stored with a quote.
const (
	OutcomeResponse = "response"
	OutcomeError    = "error"
)

// QuoteOutcome is the answer attached to a quote: exactly one of Response or Error is set.
type QuoteOutcome struct {
	Response *QuoteResponse
	Error    *ErrorInformation
}

type taggedOutcome struct {
	Type     string            `json:"type"`
	Response *QuoteResponse    `json:"response,omitempty"`
	Error    *ErrorInformation `json:"error,omitempty"`
}

// MarshalJSON encodes the outcome as a tagged variant.
func (o QuoteOutcome) MarshalJSON() ([]byte, error) {
	switch {
	case o.Response != nil && o.Error == nil:
		return json.Marshal(taggedOutcome{Type: OutcomeResponse, Response: o.Response})
	case o.Error != nil && o.Response == nil:
		return json.Marshal(taggedOutcome{Type: OutcomeError, Error: o.Error})
	}

	return nil, fmt.Errorf("%w: quote outcome must hold exactly one of response or error", ErrValidation)
}

// UnmarshalJSON decodes a tagged variant produced by MarshalJSON.
func (o *QuoteOutcome) UnmarshalJSON(data []byte) error {
	var t taggedOutcome
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}

	switch t.Type {
	case OutcomeResponse:
		if t.Response == nil {
			return fmt.Errorf("%w: response outcome without body", ErrValidation)
		}

		*o = QuoteOutcome{Response: t.Response}
	case OutcomeError:
		if t.Error == nil {
			return fmt.Errorf("%w: error outcome without body", ErrValidation)
		}

		*o = QuoteOutcome{Error: t.Error}
	default:
		return fmt.Errorf("%w: unknown quote outcome %q", ErrValidation, t.Type)
	}

	return nil
}

// EncodeQuoteRequest serializes the full quote sent or received, for replay and audit.
func EncodeQuoteRequest(q QuoteRequest) (json.RawMessage, error) {
	return json.Marshal(q)
}

// DecodeQuoteRequest restores a quote snapshot.
func DecodeQuoteRequest(snapshot []byte) (QuoteRequest, error) {
	var q QuoteRequest
	err := json.Unmarshal(snapshot, &q)

	return q, err
}

// CreateQuoteParams is the data persisted for a new quote.
type CreateQuoteParams struct {
	Inbound    bool
	Expiration time.Time
	Request    QuoteRequest
}
