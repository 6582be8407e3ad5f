// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/moneypkg"
	"github.com/go-petr/rib-bank/pkg/ribpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, username string, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// AccountService provides account service layer interface needed by transfer service layer.
type AccountService interface {
	Get(ctx context.Context, rib string) (domain.Account, error)
}

// UserService provides user service layer interface needed by transfer service layer.
type UserService interface {
	Get(ctx context.Context, username string) (domain.UserWithoutPassword, error)
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService AccountService
	userService    UserService
}

// New returns transfer service struct to manage transfer business logic.
func New(tr Repo, as AccountService, us UserService) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		userService:    us,
	}
}

// validRequest checks the transfer request in a fixed order; the first
// failing check wins and nothing is mutated before all checks pass.
func (s *Service) validRequest(ctx context.Context, username string, arg domain.CreateTransferParams) error {
	l := zerolog.Ctx(ctx)

	amountDecimal, err := decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", arg.Amount).Msg("non-positive amount")
		return domain.ErrInvalidAmount
	}

	if !ribpkg.Valid(arg.SourceRIB) {
		return fmt.Errorf("source RIB %q: %w", arg.SourceRIB, domain.ErrInvalidRIB)
	}

	if !ribpkg.Valid(arg.DestinationRIB) {
		return fmt.Errorf("destination RIB %q: %w", arg.DestinationRIB, domain.ErrInvalidRIB)
	}

	if arg.SourceRIB == arg.DestinationRIB {
		return domain.ErrSelfTransfer
	}

	if _, err := s.userService.Get(ctx, username); err != nil {
		l.Info().Err(err).Send()
		return err
	}

	source, err := s.accountService.Get(ctx, arg.SourceRIB)
	if err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("source account %s: %w", arg.SourceRIB, err)
		}

		return err
	}

	destination, err := s.accountService.Get(ctx, arg.DestinationRIB)
	if err != nil {
		l.Info().Err(err).Send()

		if errors.Is(err, domain.ErrAccountNotFound) {
			return fmt.Errorf("destination account %s: %w", arg.DestinationRIB, err)
		}

		return err
	}

	switch source.Status {
	case domain.StatusBlocked:
		return fmt.Errorf("source %w", domain.ErrAccountBlocked)
	case domain.StatusClosed:
		return fmt.Errorf("source %w", domain.ErrAccountClosed)
	}

	switch destination.Status {
	case domain.StatusBlocked:
		return fmt.Errorf("destination %w", domain.ErrAccountBlocked)
	case domain.StatusClosed:
		return fmt.Errorf("destination %w", domain.ErrAccountClosed)
	}

	balance, err := decimal.NewFromString(source.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	// Exact-balance transfers are allowed; an OPENED account may reach 0.
	if balance.LessThan(amountDecimal) {
		return fmt.Errorf("%w: current balance %s, requested %s",
			domain.ErrInsufficientFunds, moneypkg.Display(balance), moneypkg.Display(amountDecimal))
	}

	return nil
}

// Transfer checks if the transfer request is valid and then settles it.
// A validation failure is terminal for the request; nothing is retried.
func (s *Service) Transfer(ctx context.Context, username string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	if err := s.validRequest(ctx, username, arg); err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.Transfer(ctx, username, arg)
	if err != nil {
		return result, err
	}

	return result, nil
}
