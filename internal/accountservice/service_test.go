package accountservice

import (
	"context"
	"testing"
	"time"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	rib := randompkg.RIB()
	identityNumber := randompkg.IdentityNumber()

	customer := domain.Customer{
		UserID:         3,
		Username:       randompkg.Owner(),
		IdentityNumber: identityNumber,
	}

	created := domain.Account{
		RIB:        rib,
		Balance:    "1000",
		Status:     domain.StatusOpened,
		CustomerID: customer.UserID,
		CreatedAt:  time.Now().Truncate(time.Second).UTC(),
	}

	testCases := []struct {
		name          string
		rib           string
		balance       string
		buildStubs    func(repo *MockRepo, cr *MockCustomerRepo)
		checkResponse func(t *testing.T, res domain.Account, err error)
	}{
		{
			name:    "InvalidRIB",
			rib:     "MA-malformed",
			balance: "1000",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidRIB)
			},
		},
		{
			name:    "MalformedBalance",
			rib:     rib,
			balance: "lots",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidAmount)
			},
		},
		{
			name:    "NegativeBalance",
			rib:     rib,
			balance: "-1",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrNegativeBalance)
			},
		},
		{
			name:    "CustomerNotFound",
			rib:     rib,
			balance: "1000",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).
					Return(domain.Customer{}, domain.ErrCustomerNotFound)
				repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrCustomerNotFound)
			},
		},
		{
			name:    "DuplicateRIB",
			rib:     rib,
			balance: "1000",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).Return(customer, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(rib), gomock.Eq("1000"), gomock.Eq(customer.UserID)).
					Times(1).
					Return(domain.Account{}, domain.ErrRIBAlreadyExists)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrRIBAlreadyExists)
			},
		},
		{
			name:    "EmptyBalanceDefaultsToZero",
			rib:     rib,
			balance: "",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).Return(customer, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(rib), gomock.Eq("0"), gomock.Eq(customer.UserID)).
					Times(1).
					Return(domain.Account{RIB: rib, Balance: "0", Status: domain.StatusOpened, CustomerID: customer.UserID}, nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, "0", res.Balance)
			},
		},
		{
			name:    "OK",
			rib:     rib,
			balance: "1000",
			buildStubs: func(repo *MockRepo, cr *MockCustomerRepo) {
				cr.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
					Times(1).Return(customer, nil)
				repo.EXPECT().Create(gomock.Any(), gomock.Eq(rib), gomock.Eq("1000"), gomock.Eq(customer.UserID)).
					Times(1).Return(created, nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, created, res)
				require.Equal(t, domain.StatusOpened, res.Status)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			customerRepo := NewMockCustomerRepo(ctrl)
			tc.buildStubs(repo, customerRepo)

			service := New(repo, customerRepo)

			res, err := service.Create(context.Background(), tc.rib, identityNumber, tc.balance)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestSetStatus(t *testing.T) {
	rib := randompkg.RIB()

	testCases := []struct {
		name          string
		status        string
		buildStubs    func(repo *MockRepo)
		checkResponse func(t *testing.T, res domain.Account, err error)
	}{
		{
			name:   "UnknownStatus",
			status: "FROZEN",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrInvalidStatus)
			},
		},
		{
			name:   "AccountNotFound",
			status: domain.StatusBlocked,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Eq(rib), gomock.Eq(domain.StatusBlocked)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.Empty(t, res)
				require.ErrorIs(t, err, domain.ErrAccountNotFound)
			},
		},
		{
			name:   "OK",
			status: domain.StatusBlocked,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().SetStatus(gomock.Any(), gomock.Eq(rib), gomock.Eq(domain.StatusBlocked)).
					Times(1).
					Return(domain.Account{RIB: rib, Balance: "100", Status: domain.StatusBlocked}, nil)
			},
			checkResponse: func(t *testing.T, res domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, domain.StatusBlocked, res.Status)
				require.Equal(t, "100", res.Balance)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, NewMockCustomerRepo(ctrl))

			res, err := service.SetStatus(context.Background(), rib, tc.status)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestListForCustomer(t *testing.T) {
	identityNumber := randompkg.IdentityNumber()
	customer := domain.Customer{UserID: 3, IdentityNumber: identityNumber}

	accounts := []domain.Account{
		{RIB: randompkg.RIB(), Balance: "100", Status: domain.StatusOpened, CustomerID: 3},
		{RIB: randompkg.RIB(), Balance: "200", Status: domain.StatusBlocked, CustomerID: 3},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	customerRepo := NewMockCustomerRepo(ctrl)

	customerRepo.EXPECT().GetCustomerByIdentityNumber(gomock.Any(), gomock.Eq(identityNumber)).
		Times(1).Return(customer, nil)
	repo.EXPECT().ListForCustomer(gomock.Any(), gomock.Eq(customer.UserID)).
		Times(1).Return(accounts, nil)

	service := New(repo, customerRepo)

	res, err := service.ListForCustomer(context.Background(), identityNumber)
	require.NoError(t, err)
	require.Equal(t, accounts, res)
}
