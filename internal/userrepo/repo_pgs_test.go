//go:build integration

package userrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/internal/integrationtest/helpers"
	"github.com/go-petr/rib-bank/internal/userrepo"
	"github.com/go-petr/rib-bank/pkg/configpkg"
	"github.com/go-petr/rib-bank/pkg/dbpkg"
	"github.com/go-petr/rib-bank/pkg/passpkg"
	"github.com/go-petr/rib-bank/pkg/randompkg"
	"github.com/stretchr/testify/require"
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

func customerParams(t *testing.T) domain.CreateCustomerParams {
	t.Helper()

	hashedPassword, err := passpkg.Hash(randompkg.String(10))
	require.NoError(t, err)

	return domain.CreateCustomerParams{
		Username:       randompkg.Owner(),
		HashedPassword: hashedPassword,
		FirstName:      randompkg.Owner(),
		LastName:       randompkg.Owner(),
		Email:          randompkg.Email(),
		IdentityNumber: randompkg.IdentityNumber(),
		BirthDate:      time.Date(1985, 11, 2, 0, 0, 0, 0, time.UTC),
		PostalAddress:  "45 avenue Hassan II, Rabat",
	}
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewTxRepoPGS(tx)

	arg := customerParams(t)

	user, customer, err := repo.CreateCustomer(context.Background(), arg)
	require.NoError(t, err)

	require.NotZero(t, user.ID)
	require.Equal(t, arg.Username, user.Username)
	require.Equal(t, arg.HashedPassword, user.HashedPassword)
	require.Equal(t, arg.Email, user.Email)
	require.Equal(t, domain.RoleCustomer, user.Role)
	require.WithinDuration(t, time.Now(), user.CreatedAt, time.Minute)

	require.Equal(t, user.ID, customer.UserID)
	require.Equal(t, arg.Username, customer.Username)
	require.Equal(t, arg.IdentityNumber, customer.IdentityNumber)
	require.True(t, customer.BirthDate.Equal(arg.BirthDate))
	require.Equal(t, arg.PostalAddress, customer.PostalAddress)
}

func TestCreateCustomerDuplicates(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewTxRepoPGS(tx)

	arg := customerParams(t)

	_, _, err := repo.CreateCustomer(context.Background(), arg)
	require.NoError(t, err)

	dup := customerParams(t)
	dup.Username = arg.Username
	_, _, err = repo.CreateCustomer(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	dup = customerParams(t)
	dup.Email = arg.Email
	_, _, err = repo.CreateCustomer(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateCustomerDuplicateIdentityNumber(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewTxRepoPGS(tx)

	arg := customerParams(t)

	_, _, err := repo.CreateCustomer(context.Background(), arg)
	require.NoError(t, err)

	dup := customerParams(t)
	dup.IdentityNumber = arg.IdentityNumber
	_, _, err = repo.CreateCustomer(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrIdentityNumberAlreadyExists)
}

func TestGetUser(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewTxRepoPGS(tx)

	want, _ := helpers.SeedCustomer(t, tx)

	got, err := repo.GetUser(context.Background(), want.Username)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = repo.GetUser(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetCustomerByUsername(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewTxRepoPGS(tx)

	user, want := helpers.SeedCustomer(t, tx)

	got, err := repo.GetCustomerByUsername(context.Background(), user.Username)
	require.NoError(t, err)
	require.Equal(t, want.UserID, got.UserID)
	require.Equal(t, want.IdentityNumber, got.IdentityNumber)
	require.Equal(t, want.Username, got.Username)

	_, err = repo.GetCustomerByUsername(context.Background(), "nobody")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestGetCustomerByIdentityNumber(t *testing.T) {
	t.Parallel()

	tx := dbpkg.SetupTX(t, dbDriver, dbSource)
	repo := userrepo.NewTxRepoPGS(tx)

	_, want := helpers.SeedCustomer(t, tx)

	got, err := repo.GetCustomerByIdentityNumber(context.Background(), want.IdentityNumber)
	require.NoError(t, err)
	require.Equal(t, want.UserID, got.UserID)
	require.Equal(t, want.Username, got.Username)

	_, err = repo.GetCustomerByIdentityNumber(context.Background(), "XX000000")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
