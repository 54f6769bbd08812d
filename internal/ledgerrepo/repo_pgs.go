// Package ledgerrepo posts balance changes: the account update and its entry
// are written atomically under a row lock on the account.
package ledgerrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/entryrepo"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
)

var postsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wallet_ledger_posts_total",
	Help: "Ledger posts by result",
}, []string{"result"})

// RepoPGS facilitates ledger repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns ledger RepoPGS that runs every post in its own transaction.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

// NewTxRepoPGS returns ledger RepoPGS bound to an open transaction.
//
// Posts join the caller's transaction so they commit or roll back with it.
func NewTxRepoPGS(tx dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: tx,
	}
}

const lockAccountQuery = `
SELECT balance, credit_limit
FROM accounts
WHERE id = $1
FOR UPDATE
`

const setBalanceQuery = `
UPDATE accounts
SET balance = $2
WHERE id = $1
RETURNING id, user_id, currency, scale, balance, credit_limit, created_at
`

// Post applies amount to the account and appends the matching entry.
//
// It fails with domain.ErrInsufficientLimit when the new balance would fall
// below the account limit and with domain.ErrInvalidAmount when it would not
// fit an int64. Failed posts are not retried.
func (r *RepoPGS) Post(ctx context.Context, accountID, amount int64, description string) (domain.PostResult, error) {
	if amount == 0 {
		return domain.PostResult{}, domain.ErrInvalidAmount
	}

	var (
		result domain.PostResult
		err    error
	)

	if r.conn == nil {
		result, err = post(ctx, r.db, accountID, amount, description)
	} else {
		err = dbpkg.ExecTx(ctx, r.conn, func(tx *sql.Tx) error {
			result, err = post(ctx, tx, accountID, amount, description)
			return err
		})
	}

	switch {
	case err == nil:
		postsTotal.WithLabelValues("ok").Inc()
	case errors.Is(err, domain.ErrInsufficientLimit):
		postsTotal.WithLabelValues("insufficient_limit").Inc()
	default:
		postsTotal.WithLabelValues("error").Inc()
	}

	if err != nil && !isDomainError(err) {
		zerolog.Ctx(ctx).Error().Err(err).Int64("account_id", accountID).Msg("ledger post failed")
		return domain.PostResult{}, errorspkg.ErrInternal
	}

	return result, err
}

func post(ctx context.Context, db dbpkg.SQLInterface, accountID, amount int64, description string) (domain.PostResult, error) {
	var balance, limit int64

	err := db.QueryRowContext(ctx, lockAccountQuery, accountID).Scan(&balance, &limit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.PostResult{}, domain.ErrAccountNotFound
		}

		return domain.PostResult{}, err
	}

	newBalance := balance + amount
	if (amount > 0) != (newBalance > balance) {
		return domain.PostResult{}, domain.ErrInvalidAmount
	}

	if newBalance < limit {
		return domain.PostResult{}, domain.ErrInsufficientLimit
	}

	var a domain.Account

	err = db.QueryRowContext(ctx, setBalanceQuery, accountID, newBalance).Scan(
		&a.ID,
		&a.UserID,
		&a.Currency,
		&a.Scale,
		&a.Balance,
		&a.Limit,
		&a.CreatedAt,
	)
	if err != nil {
		return domain.PostResult{}, err
	}

	e, err := entryrepo.NewRepoPGS(db).Create(ctx, accountID, amount, description)
	if err != nil {
		return domain.PostResult{}, err
	}

	return domain.PostResult{Account: a, Entry: e}, nil
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInsufficientLimit) ||
		errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, errorspkg.ErrInternal)
}
