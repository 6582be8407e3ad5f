// Package transferrepo manages repository layer of transfer settlement.
package transferrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-petr/rib-bank/internal/accountrepo"
	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/internal/entryrepo"
	"github.com/go-petr/rib-bank/pkg/errorspkg"
	"github.com/go-petr/rib-bank/pkg/moneypkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	conn *sql.DB
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		conn: db,
	}
}

// Transfer settles a money movement between two accounts.
//
// It locks both account rows, validates status gates and funds under the
// lock, appends the DEBIT and CREDIT entries stamped with one shared logical
// date and the acting user, and updates both balances within a single db
// transaction. Either all four effects commit or none do.
func (r *RepoPGS) Transfer(ctx context.Context, username string, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)
	entryRepo := entryrepo.NewRepoPGS(tx)

	// To avoid deadlocks acquire row locks in consistent RIB order
	var source, destination domain.Account
	if arg.SourceRIB < arg.DestinationRIB {
		source, err = accountRepo.GetForUpdate(ctx, arg.SourceRIB)
		if err == nil {
			destination, err = accountRepo.GetForUpdate(ctx, arg.DestinationRIB)
		}
	} else {
		destination, err = accountRepo.GetForUpdate(ctx, arg.DestinationRIB)
		if err == nil {
			source, err = accountRepo.GetForUpdate(ctx, arg.SourceRIB)
		}
	}

	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if err := checkGates(source, destination, arg.Amount); err != nil {
		l.Info().Err(err).Send()
		return result, err
	}

	date := time.Now().UTC()

	result.DebitEntry, err = entryRepo.Create(ctx, arg.SourceRIB, arg.Amount, domain.DirectionDebit, username, date)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	result.CreditEntry, err = entryRepo.Create(ctx, arg.DestinationRIB, arg.Amount, domain.DirectionCredit, username, date)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	// Balance updates follow the same RIB order as the locks
	if arg.SourceRIB < arg.DestinationRIB {
		result.SourceAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.SourceRIB)
		if err == nil {
			result.DestinationAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.DestinationRIB)
		}
	} else {
		result.DestinationAccount, err = accountRepo.AddBalance(ctx, arg.Amount, arg.DestinationRIB)
		if err == nil {
			result.SourceAccount, err = accountRepo.AddBalance(ctx, "-"+arg.Amount, arg.SourceRIB)
		}
	}

	if err != nil {
		l.Error().Err(err).Send()
		return result, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	return result, nil
}

// checkGates re-validates status gates and funds while both rows are locked.
// The service layer has already validated the request; a failure here means
// a concurrent settlement or status change won the race.
func checkGates(source, destination domain.Account, amount string) error {
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

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.ErrInvalidAmount
	}

	balance, err := decimal.NewFromString(source.Balance)
	if err != nil {
		return errorspkg.ErrInternal
	}

	if balance.LessThan(amountDecimal) {
		return fmt.Errorf("%w: current balance %s, requested %s",
			domain.ErrInsufficientFunds, moneypkg.Display(balance), moneypkg.Display(amountDecimal))
	}

	return nil
}
