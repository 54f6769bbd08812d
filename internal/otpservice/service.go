// Package otpservice issues and checks the one-time passcodes that authorize payments.
//
// At most one code per user is active. The rule is checked before a new code
// is stored, so two concurrent Issue calls for one user may both succeed.
package otpservice

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
)

//go:generate mockgen -source service.go -destination service_mock.go -package otpservice

const codeLength = 4

// Repo provides data access layer interface needed by otp service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateOTPParams) (domain.OTP, error)
	GetActive(ctx context.Context, userID string, now time.Time) (domain.OTP, error)
	MarkUsed(ctx context.Context, id int64) (bool, error)
}

// AccountRepo resolves the account a code is issued for.
type AccountRepo interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
}

// Service facilitates otp service layer logic.
type Service struct {
	repo     Repo
	accounts AccountRepo
	ttl      time.Duration
	now      func() time.Time
	code     func() string
}

// New returns otp service issuing codes valid for ttl.
func New(repo Repo, accounts AccountRepo, ttl time.Duration) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		ttl:      ttl,
		now:      time.Now,
		code:     func() string { return randompkg.Digits(codeLength) },
	}
}

// Issue creates a new code for the user's account.
//
// It fails with domain.ErrActiveOTPExists while another code is active.
func (s *Service) Issue(ctx context.Context, userID string, accountID int64) (domain.OTP, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.OTP{}, err
	}

	if account.UserID != userID {
		return domain.OTP{}, domain.ErrInvalidOwner
	}

	now := s.now()

	_, err = s.repo.GetActive(ctx, userID, now)
	switch {
	case err == nil:
		return domain.OTP{}, domain.ErrActiveOTPExists
	case !errors.Is(err, domain.ErrOTPNotFound):
		return domain.OTP{}, err
	}

	return s.repo.Create(ctx, domain.CreateOTPParams{
		UserID:    userID,
		AccountID: accountID,
		Code:      s.code(),
		ExpiresAt: now.Add(s.ttl),
	})
}

// GetActive returns the user's active code or domain.ErrOTPNotFound.
func (s *Service) GetActive(ctx context.Context, userID string) (domain.OTP, error) {
	return s.repo.GetActive(ctx, userID, s.now())
}

// Consume marks the active code used. Without an active code it does nothing.
func (s *Service) Consume(ctx context.Context, userID string) error {
	otp, err := s.repo.GetActive(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return nil
		}

		return err
	}

	changed, err := s.repo.MarkUsed(ctx, otp.ID)
	if err != nil {
		return err
	}

	if !changed {
		zerolog.Ctx(ctx).Warn().Int64("otp_id", otp.ID).Msg("otp consumed concurrently")
	}

	return nil
}

// Verify compares code with the user's active code.
//
// A user without an active code always fails with domain.ErrOTPMismatch.
func (s *Service) Verify(ctx context.Context, userID, code string) error {
	otp, err := s.repo.GetActive(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return domain.ErrOTPMismatch
		}

		return err
	}

	if otp.Code != code {
		return domain.ErrOTPMismatch
	}

	return nil
}
