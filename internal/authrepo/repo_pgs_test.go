//go:build integration

package authrepo_test

import (
	"context"
	"database/sql"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/authrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/test"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/configpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/passpkg"
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

func seedCode(t *testing.T, tx *sql.Tx, email string) domain.ConfirmationCode {
	t.Helper()

	hash, err := passpkg.Hash(randompkg.Digits(6))
	if err != nil {
		t.Fatalf("passpkg.Hash returned error: %v", err)
	}

	arg := domain.CreateConfirmationCodeParams{
		ID:        uuid.New(),
		Email:     email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(10 * time.Minute).UTC(),
	}

	authRepo := authrepo.NewRepoPGS(tx)

	code, err := authRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf(`authRepo.Create(context.Background(), %+v) returned error: %v`, arg, err)
	}

	return code
}

func TestCreate(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		t.Parallel()

		tx := dbpkg.SetupTX(t, dbDriver, dbSource)
		user := test.SeedUser(t, tx)

		got := seedCode(t, tx, user.Email)

		if got.Email != user.Email {
			t.Errorf("got.Email = %v, want %v", got.Email, user.Email)
		}

		if got.CreatedAt.IsZero() {
			t.Error("got.CreatedAt is zero, want non-zero")
		}
	})

	t.Run("ConstraintViolation:confirmation_codes_email_fkey", func(t *testing.T) {
		t.Parallel()

		tx := dbpkg.SetupTX(t, dbDriver, dbSource)
		authRepo := authrepo.NewRepoPGS(tx)

		arg := domain.CreateConfirmationCodeParams{
			ID:        uuid.New(),
			Email:     "nosuch@email.com",
			CodeHash:  "hash",
			ExpiresAt: time.Now().Add(time.Minute),
		}

		if _, err := authRepo.Create(context.Background(), arg); err != domain.ErrUserNotFound {
			t.Errorf(`authRepo.Create(context.Background(), %+v) returned error %v, want %v`,
				arg, err, domain.ErrUserNotFound)
		}
	})
}

func TestGetLatest(t *testing.T) {
	t.Run("ReturnsNewestCode", func(t *testing.T) {
		t.Parallel()

		tx := dbpkg.SetupTX(t, dbDriver, dbSource)
		user := test.SeedUser(t, tx)

		seedCode(t, tx, user.Email)
		want := seedCode(t, tx, user.Email)

		authRepo := authrepo.NewRepoPGS(tx)

		got, err := authRepo.GetLatest(context.Background(), user.Email)
		if err != nil {
			t.Fatalf(`authRepo.GetLatest(context.Background(), %v) returned error: %v`, user.Email, err)
		}

		compareTime := cmpopts.EquateApproxTime(time.Second)
		if diff := cmp.Diff(want, got, compareTime); diff != "" {
			t.Errorf(`authRepo.GetLatest(context.Background(), %v) returned unexpected difference (-want +got):\n%s"`,
				user.Email, diff)
		}
	})

	t.Run("ErrConfirmationCodeNotFound", func(t *testing.T) {
		t.Parallel()

		tx := dbpkg.SetupTX(t, dbDriver, dbSource)
		user := test.SeedUser(t, tx)
		authRepo := authrepo.NewRepoPGS(tx)

		if _, err := authRepo.GetLatest(context.Background(), user.Email); err != domain.ErrConfirmationCodeNotFound {
			t.Errorf(`authRepo.GetLatest(context.Background(), %v) returned error %v, want %v`,
				user.Email, err, domain.ErrConfirmationCodeNotFound)
		}
	})
}

func TestDeleteByEmail(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	user := test.SeedUser(t, tx)

	seedCode(t, tx, user.Email)
	seedCode(t, tx, user.Email)

	authRepo := authrepo.NewRepoPGS(tx)

	if err := authRepo.DeleteByEmail(context.Background(), user.Email); err != nil {
		t.Fatalf(`authRepo.DeleteByEmail(context.Background(), %v) returned error: %v`, user.Email, err)
	}

	if _, err := authRepo.GetLatest(context.Background(), user.Email); err != domain.ErrConfirmationCodeNotFound {
		t.Errorf(`authRepo.GetLatest(context.Background(), %v) returned error %v, want %v`,
			user.Email, err, domain.ErrConfirmationCodeNotFound)
	}
}
