// Package txrequestrepo manages repository layer of transaction requests.
package txrequestrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
)

// RepoPGS facilitates transaction request repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction request RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const columns = `id, user_id, account_id, payer, payee, currency, amount, transaction_type, status, state, snapshot, created_at, updated_at`

func scan(row interface{ Scan(...any) error }) (domain.TransactionRequest, error) {
	var (
		tr                         domain.TransactionRequest
		payer, payee, txType, snap []byte
	)

	err := row.Scan(
		&tr.ID,
		&tr.UserID,
		&tr.AccountID,
		&payer,
		&payee,
		&tr.Amount.Currency,
		&tr.Amount.Amount,
		&txType,
		&tr.Status,
		&tr.State,
		&snap,
		&tr.CreatedAt,
		&tr.UpdatedAt,
	)
	if err != nil {
		return tr, err
	}

	if err := json.Unmarshal(payer, &tr.Payer); err != nil {
		return tr, fmt.Errorf("decode payer: %w", err)
	}

	if err := json.Unmarshal(payee, &tr.Payee); err != nil {
		return tr, fmt.Errorf("decode payee: %w", err)
	}

	if err := json.Unmarshal(txType, &tr.TransactionType); err != nil {
		return tr, fmt.Errorf("decode transaction type: %w", err)
	}

	tr.Snapshot = json.RawMessage(snap)

	return tr, nil
}

const createQuery = `
INSERT INTO transaction_requests
    (id, user_id, account_id, payer, payee, currency, amount, transaction_type, status, state, snapshot)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING ` + columns

// Create stores a newly received request in RECEIVED.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionRequestParams) (domain.TransactionRequest, error) {
	l := zerolog.Ctx(ctx)

	payer, err := json.Marshal(arg.Payer)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionRequest{}, errorspkg.ErrInternal
	}

	payee, err := json.Marshal(arg.Payee)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionRequest{}, errorspkg.ErrInternal
	}

	txType, err := json.Marshal(arg.TransactionType)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.TransactionRequest{}, errorspkg.ErrInternal
	}

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ID,
		arg.UserID,
		arg.AccountID,
		string(payer),
		string(payee),
		arg.Amount.Currency,
		arg.Amount.Amount,
		string(txType),
		string(domain.StatusReceived),
		string(domain.StateReceived),
		string(arg.Snapshot),
	)

	tr, err := scan(row)
	if err != nil {
		l.Error().Err(err).Send()

		switch dbpkg.ConstraintName(err) {
		case "transaction_requests_pkey":
			return domain.TransactionRequest{}, domain.ErrTransactionRequestExists
		case "transaction_requests_account_id_fkey":
			return domain.TransactionRequest{}, domain.ErrAccountNotFound
		}

		return domain.TransactionRequest{}, errorspkg.ErrInternal
	}

	return tr, nil
}

const getQuery = `SELECT ` + columns + ` FROM transaction_requests WHERE id = $1`

// Get returns the transaction request with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.TransactionRequest, error) {
	l := zerolog.Ctx(ctx)

	tr, err := scan(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.TransactionRequest{}, domain.ErrTransactionRequestNotFound
		}

		l.Error().Err(err).Send()

		return domain.TransactionRequest{}, errorspkg.ErrInternal
	}

	return tr, nil
}

const listPendingQuery = `
SELECT ` + columns + `
FROM transaction_requests
WHERE user_id = $1 AND state NOT IN ('SETTLED', 'REVERTED', 'REJECTED')
ORDER BY created_at
`

// ListPending returns the user's requests that have not reached a terminal state.
func (r *RepoPGS) ListPending(ctx context.Context, userID string) ([]domain.TransactionRequest, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listPendingQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionRequest{}

	for rows.Next() {
		tr, err := scan(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, tr)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Transition moves the request to state to when it is currently in one of from.
//
// An empty status leaves the status unchanged. It fails with
// domain.ErrInvalidState when the request is not in any of from, which turns
// duplicate and out of order callbacks into no-ops.
func (r *RepoPGS) Transition(ctx context.Context, id string, from []domain.State, to domain.State, status domain.Status) error {
	l := zerolog.Ctx(ctx)

	if len(from) == 0 {
		return domain.ErrInvalidState
	}

	args := []any{id, string(to), string(status)}
	placeholders := make([]string, len(from))

	for i, s := range from {
		args = append(args, string(s))
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}

	query := `
UPDATE transaction_requests
SET state = $2, status = COALESCE(NULLIF($3, ''), status), updated_at = now()
WHERE id = $1 AND state IN (` + strings.Join(placeholders, ", ") + `)`

	res, err := r.db.ExecContext(ctx, query, args...)
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
		return domain.ErrInvalidState
	}

	return nil
}
