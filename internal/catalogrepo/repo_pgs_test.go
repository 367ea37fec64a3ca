//go:build integration

package catalogrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/catalogrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/test"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/configpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name        string
		wantService func(tx *sql.Tx) domain.Service
		wantErr     error
	}{
		{
			name: "OK",
			wantService: func(tx *sql.Tx) domain.Service {
				return domain.Service{
					Name:        randompkg.String(10),
					Description: randompkg.String(20),
					Price:       randompkg.MoneyAmountBetween(1, 500),
					Currency:    currencypkg.RUB,
					CreatedAt:   time.Now().UTC().Truncate(time.Second),
				}
			},
		},
		{
			name: "ConstraintViolation:services_price_check",
			wantService: func(tx *sql.Tx) domain.Service {
				return domain.Service{
					Name:     randompkg.String(10),
					Price:    "0.50",
					Currency: currencypkg.RUB,
				}
			},
			wantErr: domain.ErrServicePriceTooLow,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tx := dbpkg.SetupTX(t, dbDriver, dbSource)
			want := tc.wantService(tx)
			catalogRepo := catalogrepo.NewRepoPGS(tx)

			arg := domain.CreateServiceParams{
				Name:        want.Name,
				Description: want.Description,
				Price:       want.Price,
				Currency:    want.Currency,
			}

			got, err := catalogRepo.Create(context.Background(), arg)
			if err != nil {
				if err == tc.wantErr {
					return
				}
				t.Fatalf(`catalogRepo.Create(context.Background(), %+v) returned error: %v`, arg, err)
			}

			ignoreFields := cmpopts.IgnoreFields(domain.Service{}, "ID", "CreatedAt")
			if diff := cmp.Diff(want, got, ignoreFields); diff != "" {
				t.Errorf(`catalogRepo.Create(context.Background(), %+v) returned unexpected difference (-want +got):\n%s"`,
					arg, diff)
			}

			if got.ID == 0 {
				t.Error("got.ID = 0, want non-zero")
			}
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	want := test.SeedRUBService(t, tx)
	catalogRepo := catalogrepo.NewRepoPGS(tx)

	got, err := catalogRepo.Get(context.Background(), want.ID)
	if err != nil {
		t.Fatalf(`catalogRepo.Get(context.Background(), %v) returned error: %v`, want.ID, err)
	}

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
		t.Errorf(`catalogRepo.Get(context.Background(), %v) returned unexpected difference (-want +got):\n%s"`,
			want.ID, diff)
	}

	if _, err := catalogRepo.Get(context.Background(), -100500); err != domain.ErrServiceNotFound {
		t.Errorf(`catalogRepo.Get(context.Background(), -100500) returned error %v, want %v`,
			err, domain.ErrServiceNotFound)
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)

	test.SeedService(t, tx, "10", currencypkg.RUB)
	usdService := test.SeedService(t, tx, "10", currencypkg.USD)

	catalogRepo := catalogrepo.NewRepoPGS(tx)

	all, err := catalogRepo.List(context.Background(), "", 100, 0)
	if err != nil {
		t.Fatalf(`catalogRepo.List(context.Background(), "", 100, 0) returned error: %v`, err)
	}

	if len(all) != 2 {
		t.Errorf("len(all) = %v, want 2", len(all))
	}

	usdOnly, err := catalogRepo.List(context.Background(), currencypkg.USD, 100, 0)
	if err != nil {
		t.Fatalf(`catalogRepo.List(context.Background(), %v, 100, 0) returned error: %v`,
			currencypkg.USD, err)
	}

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff([]domain.Service{usdService}, usdOnly, compareCreatedAt); diff != "" {
		t.Errorf(`catalogRepo.List(context.Background(), %v, 100, 0) returned unexpected difference (-want +got):\n%s"`,
			currencypkg.USD, diff)
	}
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	service := test.SeedRUBService(t, tx)
	catalogRepo := catalogrepo.NewRepoPGS(tx)

	arg := domain.UpdateServiceParams{
		Name:        "updated name",
		Description: "updated description",
		Price:       "42",
		Currency:    currencypkg.USD,
	}

	got, err := catalogRepo.Update(context.Background(), service.ID, arg)
	if err != nil {
		t.Fatalf(`catalogRepo.Update(context.Background(), %v, %+v) returned error: %v`,
			service.ID, arg, err)
	}

	want := domain.Service{
		ID:          service.ID,
		Name:        arg.Name,
		Description: arg.Description,
		Price:       arg.Price,
		Currency:    arg.Currency,
		CreatedAt:   service.CreatedAt,
	}

	compareCreatedAt := cmpopts.EquateApproxTime(time.Second)
	if diff := cmp.Diff(want, got, compareCreatedAt); diff != "" {
		t.Errorf(`catalogRepo.Update(context.Background(), %v, %+v) returned unexpected difference (-want +got):\n%s"`,
			service.ID, arg, diff)
	}

	if _, err := catalogRepo.Update(context.Background(), -100500, arg); err != domain.ErrServiceNotFound {
		t.Errorf(`catalogRepo.Update(context.Background(), -100500, %+v) returned error %v, want %v`,
			arg, err, domain.ErrServiceNotFound)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	service := test.SeedRUBService(t, tx)
	catalogRepo := catalogrepo.NewRepoPGS(tx)

	if err := catalogRepo.Delete(context.Background(), service.ID); err != nil {
		t.Fatalf(`catalogRepo.Delete(context.Background(), %v) returned error: %v`, service.ID, err)
	}

	if _, err := catalogRepo.Get(context.Background(), service.ID); err != domain.ErrServiceNotFound {
		t.Errorf(`catalogRepo.Get(context.Background(), %v) returned error %v, want %v`,
			service.ID, err, domain.ErrServiceNotFound)
	}

	if err := catalogRepo.Delete(context.Background(), service.ID); err != domain.ErrServiceNotFound {
		t.Errorf(`catalogRepo.Delete(context.Background(), %v) returned error %v, want %v`,
			service.ID, err, domain.ErrServiceNotFound)
	}
}
