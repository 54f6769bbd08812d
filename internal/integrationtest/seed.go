package integrationtest

import (
	"context"
	"testing"

	"github.com/go-petr/pet-wallet/internal/accountrepo"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
	"github.com/go-petr/pet-wallet/pkg/dbpkg"
	"github.com/go-petr/pet-wallet/pkg/randompkg"
)

// SeedAccount opens a zero balance account for a random user.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, currency string, limit int64) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		UserID:   randompkg.Owner(),
		Currency: currency,
		Scale:    currencypkg.Scale(currency),
		Limit:    limit,
	}

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SumEntries returns the sum of all entries of the account.
func SumEntries(t *testing.T, db dbpkg.SQLInterface, accountID int64) int64 {
	t.Helper()

	var sum int64

	err := db.QueryRowContext(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM entries WHERE account_id = $1`, accountID).Scan(&sum)
	if err != nil {
		t.Fatalf("sum entries of account %d returned error: %v", accountID, err)
	}

	return sum
}
