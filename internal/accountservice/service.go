// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
)

//go:generate mockgen -source service.go -destination service_mock.go -package accountservice

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Account, error)
}

// EntryRepo provides read access to ledger entries.
type EntryRepo interface {
	List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Entry, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo    Repo
	entries EntryRepo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo, er EntryRepo) *Service {
	return &Service{repo: ar, entries: er}
}

// Create opens an account for the user in currency.
//
// Accounts start without overdraft; credit limits are granted outside the user API.
func (s *Service) Create(ctx context.Context, userID, currency string) (domain.Account, error) {
	return s.repo.Create(ctx, domain.CreateAccountParams{
		UserID:   userID,
		Currency: currency,
		Scale:    currencypkg.Scale(currency),
	})
}

// Get returns the user's account with the given id.
func (s *Service) Get(ctx context.Context, userID string, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if account.UserID != userID {
		return domain.Account{}, domain.ErrInvalidOwner
	}

	return account, nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListEntries returns a page of the account's ledger entries.
func (s *Service) ListEntries(ctx context.Context, userID string, accountID int64, pageSize, pageID int32) ([]domain.Entry, error) {
	if _, err := s.Get(ctx, userID, accountID); err != nil {
		return nil, err
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.entries.List(ctx, accountID, limit, offset)
}
