// Package helpers provides seed functions used in integration tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/rib-bank/internal/accountrepo"
	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/internal/entryrepo"
	"github.com/go-petr/rib-bank/internal/userrepo"
	"github.com/go-petr/rib-bank/pkg/dbpkg"
	"github.com/go-petr/rib-bank/pkg/passpkg"
	"github.com/go-petr/rib-bank/pkg/randompkg"
)

// SeedCustomer inserts a random user with its customer payload.
func SeedCustomer(t *testing.T, db dbpkg.SQLInterface) (domain.User, domain.Customer) {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	arg := domain.CreateCustomerParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FirstName:      randompkg.Owner(),
		LastName:       randompkg.Owner(),
		Email:          randompkg.Email(),
		IdentityNumber: randompkg.IdentityNumber(),
		BirthDate:      time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC),
		PostalAddress:  "12 rue des Orangers, Casablanca",
	}

	userRepo := userrepo.NewTxRepoPGS(db)

	user, customer, err := userRepo.CreateCustomer(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.CreateCustomer(context.Background(), %v) returned error: %v", arg, err)
	}

	return user, customer
}

// SeedAccount opens a random account with the given balance for the customer.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, customerID int64, balance string) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), randompkg.RIB(), balance, customerID)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), rib, %v, %v) returned error: %v",
			balance, customerID, err)
	}

	return account
}

// SeedEntry appends a ledger entry to the given account.
func SeedEntry(t *testing.T, db dbpkg.SQLInterface, rib, amount, direction, username string, date time.Time) domain.Entry {
	t.Helper()

	entryRepo := entryrepo.NewRepoPGS(db)

	entry, err := entryRepo.Create(context.Background(), rib, amount, direction, username, date)
	if err != nil {
		t.Fatalf("entryRepo.Create(context.Background(), %v, %v, %v, %v, %v) returned error: %v",
			rib, amount, direction, username, date, err)
	}

	return entry
}
