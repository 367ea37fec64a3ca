// Package test provides shared test helpers.
package test

import (
	"context"
	"testing"

	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/accountrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/actionrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/catalogrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/domain"
	"github.com/DenisSivko/autumn-2021-intern-assignment/internal/userrepo"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/currencypkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/dbpkg"
	"github.com/DenisSivko/autumn-2021-intern-assignment/pkg/randompkg"
)

// SeedUser creates a random user inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	return SeedUserWithRole(t, tx, domain.RoleUser)
}

// SeedUserWithRole creates a random user with the given role inside a test transaction.
func SeedUserWithRole(t *testing.T, tx dbpkg.SQLInterface, role string) domain.User {
	t.Helper()

	arg := domain.CreateUserParams{
		Username: randompkg.Owner(),
		Email:    randompkg.Email(),
		Role:     role,
	}

	userRepo := userrepo.NewRepoPGS(tx)

	user, err := userRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates an account with the given balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, username, balance string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(context.Background(), username, balance)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %v, %v) returned error: %v",
			username, balance, err)
	}

	return account
}

// SeedAccountWith1000RUBBalance creates an account with 1000 RUB on balance
// inside a test transaction.
func SeedAccountWith1000RUBBalance(t *testing.T, tx dbpkg.SQLInterface, username string) domain.Account {
	t.Helper()

	return SeedAccount(t, tx, username, "1000")
}

// SeedService creates a catalog entry with the given price inside a test transaction.
func SeedService(t *testing.T, tx dbpkg.SQLInterface, price, currency string) domain.Service {
	t.Helper()

	arg := domain.CreateServiceParams{
		Name:        randompkg.String(10),
		Description: randompkg.String(20),
		Price:       price,
		Currency:    currency,
	}

	catalogRepo := catalogrepo.NewRepoPGS(tx)

	service, err := catalogRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("catalogRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return service
}

// SeedAction credits the account and records the action inside a test transaction.
func SeedAction(t *testing.T, tx dbpkg.SQLInterface, amount string, accountID int32) domain.Action {
	t.Helper()

	actionRepo := actionrepo.NewTxRepoPGS(tx)

	action, err := actionRepo.Create(context.Background(), amount, accountID)
	if err != nil {
		t.Fatalf("actionRepo.Create(context.Background(), %v, %v) returned error: %v",
			amount, accountID, err)
	}

	return action
}

// SeedActions creates actions with random amounts inside a test transaction.
func SeedActions(t *testing.T, tx dbpkg.SQLInterface, count, accountID int32) []domain.Action {
	t.Helper()

	actions := make([]domain.Action, count)

	for i := range actions {
		actions[i] = SeedAction(t, tx, randompkg.MoneyAmountBetween(1, 1000), accountID)
	}

	return actions
}

// SeedRUBService creates a RUB catalog entry with a random price inside a
// test transaction.
func SeedRUBService(t *testing.T, tx dbpkg.SQLInterface) domain.Service {
	t.Helper()

	return SeedService(t, tx, randompkg.MoneyAmountBetween(1, 500), currencypkg.RUB)
}
