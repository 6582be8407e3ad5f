// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/dbpkg"
	"github.com/go-petr/rib-bank/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (rib, balance, customer_id)
VALUES
    ($1, $2, $3)
RETURNING rib, balance, status, customer_id, created_at
`

// Create creates the account with status OPENED and then returns it.
func (r *RepoPGS) Create(ctx context.Context, rib, balance string, customerID int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, rib, balance, customerID)

	var a domain.Account

	err := row.Scan(
		&a.RIB,
		&a.Balance,
		&a.Status,
		&a.CustomerID,
		&a.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_pkey":
				return a, domain.ErrRIBAlreadyExists
			case "accounts_customer_id_fkey":
				return a, domain.ErrCustomerNotFound
			case "accounts_balance_check":
				return a, domain.ErrNegativeBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	rib, balance, status, customer_id, created_at
FROM accounts
WHERE rib = $1
`

// Get returns the account with the given RIB.
func (r *RepoPGS) Get(ctx context.Context, rib string) (domain.Account, error) {
	return r.get(ctx, getQuery, rib)
}

const getForUpdateQuery = getQuery + `
FOR UPDATE
`

// GetForUpdate returns the account with the given RIB holding a write lock
// on its row until the surrounding transaction commits.
func (r *RepoPGS) GetForUpdate(ctx context.Context, rib string) (domain.Account, error) {
	return r.get(ctx, getForUpdateQuery, rib)
}

func (r *RepoPGS) get(ctx context.Context, query, rib string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, query, rib)

	var a domain.Account

	err := row.Scan(
		&a.RIB,
		&a.Balance,
		&a.Status,
		&a.CustomerID,
		&a.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE rib = $2
RETURNING rib, balance, status, customer_id, created_at
`

// AddBalance changes the account's balance and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount, rib string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, rib)

	var a domain.Account

	err := row.Scan(
		&a.RIB,
		&a.Balance,
		&a.Status,
		&a.CustomerID,
		&a.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const setStatusQuery = `
UPDATE accounts
SET status = $1
WHERE rib = $2
RETURNING rib, balance, status, customer_id, created_at
`

// SetStatus changes the account's status and returns the changed account.
// Balances are never touched here; the transfer engine reads the new status
// as a gate on its next settlement.
func (r *RepoPGS) SetStatus(ctx context.Context, rib, status string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, setStatusQuery, status, rib)

	var a domain.Account

	err := row.Scan(
		&a.RIB,
		&a.Balance,
		&a.Status,
		&a.CustomerID,
		&a.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_status_check" {
				return a, domain.ErrInvalidStatus
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listForCustomerQuery = `
SELECT
	rib, balance, status, customer_id, created_at
FROM accounts
WHERE customer_id = $1
ORDER BY created_at, rib
`

// ListForCustomer returns all accounts owned by the given customer in a
// stable enumeration order.
func (r *RepoPGS) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForCustomerQuery, customerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.RIB, &a.Balance, &a.Status, &a.CustomerID, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
