// Package ilp derives the interledger artifacts that bind a transfer to its quote.
//
// The packet is the base64url encoded transaction. The fulfilment is a keyed
// hash of the packet and the condition is the SHA-256 of the fulfilment, so
// everything can be recomputed from the packet and the secret for audit.
package ilp

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-petr/pet-wallet/internal/domain"
)

// ErrEmptySecret indicates a Builder without a fulfilment secret.
var ErrEmptySecret = errors.New("ilp: empty fulfilment secret")

var enc = base64.RawURLEncoding

// Transaction is the payload carried inside the ILP packet.
type Transaction struct {
	TransactionID        string                 `json:"transactionId"`
	QuoteID              string                 `json:"quoteId"`
	TransactionRequestID string                 `json:"transactionRequestId,omitempty"`
	Payee                domain.Party           `json:"payee"`
	Payer                domain.Party           `json:"payer"`
	Amount               domain.Money           `json:"amount"`
	TransactionType      domain.TransactionType `json:"transactionType"`
	Note                 string                 `json:"note,omitempty"`
}

// TransactionFromQuote builds the packet payload of a quote request.
func TransactionFromQuote(q domain.QuoteRequest) Transaction {
	return Transaction{
		TransactionID:        q.TransactionID,
		QuoteID:              q.QuoteID,
		TransactionRequestID: q.TransactionRequestID,
		Payee:                q.Payee,
		Payer:                q.Payer,
		Amount:               q.Amount,
		TransactionType:      q.TransactionType,
		Note:                 q.Note,
	}
}

// Builder produces packets, fulfilments and conditions with one secret.
type Builder struct {
	secret []byte
}

// NewBuilder returns a Builder keyed with secret.
func NewBuilder(secret string) (*Builder, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	return &Builder{secret: []byte(secret)}, nil
}

// Packet encodes the transaction.
func (b *Builder) Packet(t Transaction) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("ilp: encode transaction: %w", err)
	}

	return enc.EncodeToString(data), nil
}

// Fulfilment derives the preimage released by the payee for packet.
func (b *Builder) Fulfilment(packet string) string {
	mac := hmac.New(sha256.New, b.secret)
	mac.Write([]byte(packet))

	return enc.EncodeToString(mac.Sum(nil))
}

// Condition derives the condition of packet.
func (b *Builder) Condition(packet string) string {
	return ConditionOf(b.Fulfilment(packet))
}

// Build returns packet and condition for t.
func (b *Builder) Build(t Transaction) (packet, condition string, err error) {
	packet, err = b.Packet(t)
	if err != nil {
		return "", "", err
	}

	return packet, b.Condition(packet), nil
}

// ConditionOf hashes a fulfilment into its 43 character condition.
func ConditionOf(fulfilment string) string {
	preimage, err := enc.DecodeString(fulfilment)
	if err != nil {
		preimage = []byte(fulfilment)
	}

	sum := sha256.Sum256(preimage)

	return enc.EncodeToString(sum[:])
}

// Verify reports whether fulfilment satisfies condition.
func Verify(fulfilment, condition string) bool {
	return subtle.ConstantTimeCompare([]byte(ConditionOf(fulfilment)), []byte(condition)) == 1
}

// DecodePacket restores the transaction of packet.
func DecodePacket(packet string) (Transaction, error) {
	var t Transaction

	data, err := enc.DecodeString(packet)
	if err != nil {
		return t, fmt.Errorf("%w: ilp packet is not base64url", domain.ErrValidation)
	}

	if err := json.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("%w: ilp packet does not hold a transaction", domain.ErrValidation)
	}

	return t, nil
}
