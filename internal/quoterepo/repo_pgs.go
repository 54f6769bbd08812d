// Package quoterepo manages repository layer of quotes and their outcomes.
package quoterepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
)

// ErrOutcomeExists indicates a second outcome for a quote that already has one.
var ErrOutcomeExists = errors.New("quote outcome already recorded")

// RepoPGS facilitates quote repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns quote RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const columns = `id, transaction_id, COALESCE(transaction_request_id::text, ''), inbound, expiration, snapshot, outcome, created_at`

func scan(row interface{ Scan(...any) error }) (domain.Quote, error) {
	var (
		q        domain.Quote
		snapshot []byte
		outcome  []byte
	)

	err := row.Scan(
		&q.ID,
		&q.TransactionID,
		&q.TransactionRequestID,
		&q.Inbound,
		&q.Expiration,
		&snapshot,
		&outcome,
		&q.CreatedAt,
	)
	if err != nil {
		return q, err
	}

	q.Request, err = domain.DecodeQuoteRequest(snapshot)
	if err != nil {
		return q, err
	}

	if len(outcome) > 0 {
		var o domain.QuoteOutcome
		if err := json.Unmarshal(outcome, &o); err != nil {
			return q, err
		}

		q.Outcome = &o
	}

	return q, nil
}

const createQuery = `
INSERT INTO quotes
    (id, transaction_id, transaction_request_id, inbound, expiration, snapshot)
VALUES
    ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6)
RETURNING ` + columns

// Create stores the quote with a snapshot of the full request.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateQuoteParams) (domain.Quote, error) {
	l := zerolog.Ctx(ctx)

	snapshot, err := domain.EncodeQuoteRequest(arg.Request)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Quote{}, errorspkg.ErrInternal
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Request.QuoteID,
		arg.Request.TransactionID,
		arg.Request.TransactionRequestID,
		arg.Inbound,
		arg.Expiration.UTC(),
		string(snapshot),
	)

	q, err := scan(row)
	if err != nil {
		l.Error().Err(err).Send()

		switch dbpkg.ConstraintName(err) {
		case "quotes_pkey", "quotes_transaction_id_key":
			return domain.Quote{}, domain.ErrValidation
		case "quotes_transaction_request_id_fkey":
			return domain.Quote{}, domain.ErrTransactionRequestNotFound
		}

		return domain.Quote{}, errorspkg.ErrInternal
	}

	return q, nil
}

func (r *RepoPGS) getBy(ctx context.Context, query string, arg any) (domain.Quote, error) {
	l := zerolog.Ctx(ctx)

	q, err := scan(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Quote{}, domain.ErrQuoteNotFound
		}

		l.Error().Err(err).Send()

		return domain.Quote{}, errorspkg.ErrInternal
	}

	return q, nil
}

// Get returns the quote with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Quote, error) {
	return r.getBy(ctx, `SELECT `+columns+` FROM quotes WHERE id = $1`, id)
}

// GetByTransactionID returns the quote priced for the transaction.
func (r *RepoPGS) GetByTransactionID(ctx context.Context, transactionID string) (domain.Quote, error) {
	return r.getBy(ctx, `SELECT `+columns+` FROM quotes WHERE transaction_id = $1`, transactionID)
}

// GetLatestByTransactionRequest returns the most recent quote of a transaction request.
func (r *RepoPGS) GetLatestByTransactionRequest(ctx context.Context, transactionRequestID string) (domain.Quote, error) {
	return r.getBy(ctx, `SELECT `+columns+`
FROM quotes
WHERE transaction_request_id = $1
ORDER BY created_at DESC
LIMIT 1`, transactionRequestID)
}

const setOutcomeQuery = `
UPDATE quotes
SET outcome = $2
WHERE id = $1 AND outcome IS NULL
`

// SetOutcome attaches the response or error to the quote.
//
// A quote holds at most one outcome; later ones fail with ErrOutcomeExists.
func (r *RepoPGS) SetOutcome(ctx context.Context, id string, outcome domain.QuoteOutcome) error {
	l := zerolog.Ctx(ctx)

	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, setOutcomeQuery, id, string(data))
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return err
		}

		return ErrOutcomeExists
	}

	return nil
}
