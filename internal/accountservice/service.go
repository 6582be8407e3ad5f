// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/ribpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, rib, balance string, customerID int64) (domain.Account, error)
	Get(ctx context.Context, rib string) (domain.Account, error)
	SetStatus(ctx context.Context, rib, status string) (domain.Account, error)
	ListForCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}

// CustomerRepo provides customer lookup interface needed by account service layer.
type CustomerRepo interface {
	GetCustomerByIdentityNumber(ctx context.Context, identityNumber string) (domain.Customer, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo         Repo
	customerRepo CustomerRepo
}

// New returns account service struct to manage account business logic.
func New(ar Repo, cr CustomerRepo) *Service {
	return &Service{
		repo:         ar,
		customerRepo: cr,
	}
}

// Create opens an account with the given RIB for the customer with the given
// identity number. The account starts with status OPENED and the given
// balance, or zero when balance is empty.
func (s *Service) Create(ctx context.Context, rib, identityNumber, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !ribpkg.Valid(rib) {
		return domain.Account{}, domain.ErrInvalidRIB
	}

	if balance == "" {
		balance = "0"
	}

	balanceDecimal, err := decimal.NewFromString(balance)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if balanceDecimal.IsNegative() {
		return domain.Account{}, domain.ErrNegativeBalance
	}

	customer, err := s.customerRepo.GetCustomerByIdentityNumber(ctx, identityNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, err
	}

	account, err := s.repo.Create(ctx, rib, balance, customer.UserID)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given RIB.
func (s *Service) Get(ctx context.Context, rib string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, rib)
	if err != nil {
		return account, err
	}

	return account, nil
}

// SetStatus applies a status transition to the account with the given RIB.
// The transfer engine reads the new status as a gate; balances are untouched.
func (s *Service) SetStatus(ctx context.Context, rib, status string) (domain.Account, error) {
	if !domain.ValidStatus(status) {
		return domain.Account{}, domain.ErrInvalidStatus
	}

	account, err := s.repo.SetStatus(ctx, rib, status)
	if err != nil {
		return account, err
	}

	return account, nil
}

// ListForCustomer returns the accounts owned by the customer with the given
// identity number.
func (s *Service) ListForCustomer(ctx context.Context, identityNumber string) ([]domain.Account, error) {
	customer, err := s.customerRepo.GetCustomerByIdentityNumber(ctx, identityNumber)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.ListForCustomer(ctx, customer.UserID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
