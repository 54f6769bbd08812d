// Package transferrepo manages repository layer of transfers.
//
// Money only moves together with a transfer record: Initiate posts the debit
// or credit in the transaction that inserts the transfer, and Revert posts the
// compensation in the transaction that flips the reverted flag.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/ledgerrepo"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns transfer RepoPGS bound to an open transaction, for reads.
func NewTxRepoPGS(tx dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: tx}
}

const columns = `id, transaction_id, COALESCE(transaction_request_id::text, ''), quote_id, account_id, amount,
	direction, ilp_packet, condition, fulfilment, expiration, state, reverted, created_at`

func scan(row interface{ Scan(...any) error }) (domain.Transfer, error) {
	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.TransactionID,
		&t.TransactionRequestID,
		&t.QuoteID,
		&t.AccountID,
		&t.Amount,
		&t.Direction,
		&t.IlpPacket,
		&t.Condition,
		&t.Fulfilment,
		&t.Expiration,
		&t.State,
		&t.Reverted,
		&t.CreatedAt,
	)

	return t, err
}

const createQuery = `
INSERT INTO transfers
    (id, transaction_id, transaction_request_id, quote_id, account_id, amount,
     direction, ilp_packet, condition, fulfilment, expiration, state)
VALUES
    ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + columns

// Initiate records the transfer and posts its ledger effect atomically.
//
// Outbound transfers debit the account, inbound ones credit it. An incomplete
// body fails with domain.ErrValidation before anything is written.
func (r *RepoPGS) Initiate(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, domain.PostResult, error) {
	l := zerolog.Ctx(ctx)

	if err := arg.Validate(); err != nil {
		return domain.Transfer{}, domain.PostResult{}, err
	}

	amount := arg.Amount
	if arg.Direction == domain.DirectionOutbound {
		amount = -amount
	}

	var (
		t    domain.Transfer
		post domain.PostResult
	)

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		var err error

		t, err = scan(tx.QueryRowContext(ctx, createQuery,
			arg.ID,
			arg.TransactionID,
			arg.TransactionRequestID,
			arg.QuoteID,
			arg.AccountID,
			arg.Amount,
			string(arg.Direction),
			arg.IlpPacket,
			arg.Condition,
			arg.Fulfilment,
			arg.Expiration.UTC(),
			string(arg.State),
		))
		if err != nil {
			l.Error().Err(err).Send()

			switch dbpkg.ConstraintName(err) {
			case "transfers_pkey":
				return domain.ErrTransferExists
			case "transfers_account_id_fkey":
				return domain.ErrAccountNotFound
			case "transfers_quote_id_fkey":
				return domain.ErrQuoteNotFound
			case "transfers_amount_check":
				return domain.ErrInvalidAmount
			}

			return errorspkg.ErrInternal
		}

		post, err = ledgerrepo.NewTxRepoPGS(tx).Post(ctx, arg.AccountID, amount, arg.Description)

		return err
	})
	if err != nil {
		return domain.Transfer{}, domain.PostResult{}, err
	}

	return t, post, nil
}

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	t, err := scan(r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM transfers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrTransferNotFound
		}

		l.Error().Err(err).Send()

		return domain.Transfer{}, errorspkg.ErrInternal
	}

	return t, nil
}

const revertQuery = `
UPDATE transfers
SET reverted = true
WHERE id = $1 AND reverted = false
RETURNING account_id, amount, direction
`

// Revert compensates the transfer exactly once.
//
// The flag flip and the compensating post share a transaction, so a crash
// leaves either both or neither. A second call fails with domain.ErrAlreadyReverted.
func (r *RepoPGS) Revert(ctx context.Context, id, description string) (domain.PostResult, error) {
	l := zerolog.Ctx(ctx)

	var post domain.PostResult

	err := dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
		var (
			accountID, amount int64
			direction         domain.Direction
		)

		err := tx.QueryRowContext(ctx, revertQuery, id).Scan(&accountID, &amount, &direction)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				if _, getErr := NewTxRepoPGS(tx).Get(ctx, id); getErr != nil {
					return getErr
				}

				return domain.ErrAlreadyReverted
			}

			l.Error().Err(err).Send()

			return errorspkg.ErrInternal
		}

		if direction == domain.DirectionInbound {
			amount = -amount
		}

		post, err = ledgerrepo.NewTxRepoPGS(tx).Post(ctx, accountID, amount, description)

		return err
	})
	if err != nil {
		return domain.PostResult{}, err
	}

	return post, nil
}

const commitQuery = `
UPDATE transfers
SET state = 'COMMITTED', fulfilment = $2
WHERE id = $1 AND reverted = false AND state <> 'COMMITTED'
`

// Commit marks an unreverted transfer committed with its fulfilment.
//
// It reports false when the transfer was already committed or reverted.
func (r *RepoPGS) Commit(ctx context.Context, id, fulfilment string) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, commitQuery, id, fulfilment)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return n == 1, nil
}
