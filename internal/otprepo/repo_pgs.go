// Package otprepo manages repository layer of one-time passcodes.
package otprepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/errorspkg"
)

// RepoPGS facilitates otp repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns otp RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    otps (user_id, account_id, code, expires_at)
VALUES
    ($1, $2, $3, $4)
RETURNING id, user_id, account_id, code, expires_at, used, created_at
`

// Create stores the code. Expiry is kept as epoch seconds.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateOTPParams) (domain.OTP, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.UserID, arg.AccountID, arg.Code, arg.ExpiresAt.Unix())

	o, err := scanOTP(row)
	if err != nil {
		l.Error().Err(err).Send()

		if dbpkg.ConstraintName(err) == "otps_account_id_fkey" {
			return domain.OTP{}, domain.ErrAccountNotFound
		}

		return domain.OTP{}, errorspkg.ErrInternal
	}

	return o, nil
}

const getActiveQuery = `
SELECT id, user_id, account_id, code, expires_at, used, created_at
FROM otps
WHERE user_id = $1 AND used = false AND expires_at > $2
ORDER BY id DESC
LIMIT 1
`

// GetActive returns the user's unused code that has not expired at now.
func (r *RepoPGS) GetActive(ctx context.Context, userID string, now time.Time) (domain.OTP, error) {
	l := zerolog.Ctx(ctx)

	o, err := scanOTP(r.db.QueryRowContext(ctx, getActiveQuery, userID, now.Unix()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.OTP{}, domain.ErrOTPNotFound
		}

		l.Error().Err(err).Send()

		return domain.OTP{}, errorspkg.ErrInternal
	}

	return o, nil
}

const markUsedQuery = `
UPDATE otps
SET used = true
WHERE id = $1 AND used = false
`

// MarkUsed flips the used flag once; it reports whether a row changed.
func (r *RepoPGS) MarkUsed(ctx context.Context, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, markUsedQuery, id)
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

func scanOTP(row interface{ Scan(...any) error }) (domain.OTP, error) {
	var (
		o         domain.OTP
		expiresAt int64
	)

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.AccountID,
		&o.Code,
		&expiresAt,
		&o.Used,
		&o.CreatedAt,
	)
	if err != nil {
		return domain.OTP{}, err
	}

	o.ExpiresAt = time.Unix(expiresAt, 0).UTC()

	return o, nil
}
