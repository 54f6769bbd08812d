//go:build integration

package accountrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/go-petr/pet-wallet/internal/accountrepo"
	"github.com/go-petr/pet-wallet/internal/domain"
	"github.com/go-petr/pet-wallet/internal/integrationtest"
	"github.com/go-petr/pet-wallet/pkg/currencypkg"
)

var dbSource string

func TestMain(m *testing.M) {
	ctx := context.Background()

	pg, err := integrationtest.StartPostgres(ctx)
	if err != nil {
		log.Fatal("cannot start postgres:", err)
	}

	dbSource = pg.Source

	code := m.Run()

	if err := pg.Terminate(ctx); err != nil {
		log.Print("cannot terminate postgres:", err)
	}

	os.Exit(code)
}

func TestCreate(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbSource)
	repo := accountrepo.NewRepoPGS(tx)

	existing := integrationtest.SeedAccount(t, tx, currencypkg.USD, 0)

	testCases := []struct {
		name    string
		arg     domain.CreateAccountParams
		want    domain.Account
		wantErr error
	}{
		{
			name: "OK",
			arg:  domain.CreateAccountParams{UserID: existing.UserID, Currency: currencypkg.EUR, Scale: 2, Limit: -100},
			want: domain.Account{UserID: existing.UserID, Currency: currencypkg.EUR, Scale: 2, Limit: -100},
		},
		{
			name:    "ErrCurrencyAlreadyExists",
			arg:     domain.CreateAccountParams{UserID: existing.UserID, Currency: currencypkg.USD, Scale: 2},
			wantErr: domain.ErrCurrencyAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.Create(context.Background(), tc.arg)
			if err != tc.wantErr {
				t.Fatalf("repo.Create(ctx, %+v) returned error: %v, want %v", tc.arg, err, tc.wantErr)
			}

			ignoreFields := cmpopts.IgnoreFields(domain.Account{}, "ID", "CreatedAt")
			if diff := cmp.Diff(tc.want, got, ignoreFields); diff != "" {
				t.Errorf("repo.Create(ctx, %+v) returned unexpected difference (-want +got):\n%s", tc.arg, diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbSource)
	repo := accountrepo.NewRepoPGS(tx)

	want := integrationtest.SeedAccount(t, tx, currencypkg.USD, 0)

	got, err := repo.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf("repo.Get(ctx, %v) returned error: %v", want.ID, err)
	}

	if diff := cmp.Diff(want, got, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("repo.Get(ctx, %v) returned unexpected difference (-want +got):\n%s", want.ID, diff)
	}

	if _, err := repo.Get(context.Background(), want.ID+1000); err != domain.ErrAccountNotFound {
		t.Errorf("repo.Get(ctx, missing) returned error: %v, want %v", err, domain.ErrAccountNotFound)
	}
}

func TestGetByUserCurrencyAndList(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbSource)
	repo := accountrepo.NewRepoPGS(tx)
	ctx := context.Background()

	usd := integrationtest.SeedAccount(t, tx, currencypkg.USD, 0)

	eur, err := repo.Create(ctx, domain.CreateAccountParams{UserID: usd.UserID, Currency: currencypkg.EUR, Scale: 2})
	if err != nil {
		t.Fatalf("repo.Create() returned error: %v", err)
	}

	got, err := repo.GetByUserCurrency(ctx, usd.UserID, currencypkg.EUR)
	if err != nil {
		t.Fatalf("repo.GetByUserCurrency() returned error: %v", err)
	}

	if got.ID != eur.ID {
		t.Errorf("got.ID = %v, want %v", got.ID, eur.ID)
	}

	if _, err := repo.GetByUserCurrency(ctx, usd.UserID, currencypkg.UGX); err != domain.ErrAccountNotFound {
		t.Errorf("repo.GetByUserCurrency(ctx, user, UGX) returned error: %v, want %v", err, domain.ErrAccountNotFound)
	}

	list, err := repo.ListByUser(ctx, usd.UserID)
	if err != nil {
		t.Fatalf("repo.ListByUser() returned error: %v", err)
	}

	if diff := cmp.Diff([]domain.Account{usd, eur}, list, cmpopts.EquateApproxTime(0)); diff != "" {
		t.Errorf("repo.ListByUser() returned unexpected difference (-want +got):\n%s", diff)
	}
}
