// Package userrepo manages repository layer of users and customers.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/dbpkg"
	"github.com/go-petr/rib-bank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns user RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns user RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createUserQuery = `
INSERT INTO users (
    username,
    hashed_password,
    first_name,
    last_name,
    email,
    role
) VALUES (
    $1, $2, $3, $4, $5, $6
) RETURNING id, username, hashed_password, first_name, last_name, email, role, created_at
`

const createCustomerQuery = `
INSERT INTO customers (
    user_id,
    identity_number,
    birth_date,
    postal_address
) VALUES (
    $1, $2, $3, $4
) RETURNING user_id, identity_number, birth_date, postal_address
`

// CreateCustomer creates the user row with role CUSTOMER together with its
// customer payload and returns both. Both inserts commit as one unit.
func (r *RepoPGS) CreateCustomer(ctx context.Context, arg domain.CreateCustomerParams) (domain.User, domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	var (
		u domain.User
		c domain.Customer
	)

	db := r.db

	var tx *sql.Tx

	if r.conn != nil {
		var err error

		tx, err = r.conn.BeginTx(ctx, nil)
		if err != nil {
			l.Error().Err(err).Send()
			return u, c, errorspkg.ErrInternal
		}

		defer func() {
			_ = tx.Rollback()
		}()

		db = tx
	}

	row := db.QueryRowContext(ctx, createUserQuery,
		arg.Username,
		arg.HashedPassword,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		domain.RoleCustomer,
	)

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "users_username_key":
				return u, c, domain.ErrUsernameAlreadyExists
			case "users_email_key":
				return u, c, domain.ErrEmailAlreadyExists
			}
		}

		return u, c, errorspkg.ErrInternal
	}

	row = db.QueryRowContext(ctx, createCustomerQuery,
		u.ID,
		arg.IdentityNumber,
		arg.BirthDate,
		arg.PostalAddress,
	)

	err = row.Scan(
		&c.UserID,
		&c.IdentityNumber,
		&c.BirthDate,
		&c.PostalAddress,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "customers_identity_number_key" {
				return u, c, domain.ErrIdentityNumberAlreadyExists
			}
		}

		return u, c, errorspkg.ErrInternal
	}

	c.Username = u.Username

	if tx != nil {
		if err := tx.Commit(); err != nil {
			l.Error().Err(err).Send()
			return u, c, errorspkg.ErrInternal
		}
	}

	return u, c, nil
}

const getUserQuery = `
SELECT
	id,
	username,
	hashed_password,
	first_name,
	last_name,
	email,
	role,
	created_at
FROM users
WHERE username = $1
`

// GetUser returns the user with the given username.
func (r *RepoPGS) GetUser(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getUserQuery, username)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.HashedPassword,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const getCustomerByUsernameQuery = `
SELECT
	c.user_id,
	u.username,
	c.identity_number,
	c.birth_date,
	c.postal_address
FROM customers c
JOIN users u ON u.id = c.user_id
WHERE u.username = $1
`

// GetCustomerByUsername returns the customer payload for the given username.
func (r *RepoPGS) GetCustomerByUsername(ctx context.Context, username string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getCustomerByUsernameQuery, username)

	var c domain.Customer

	err := row.Scan(
		&c.UserID,
		&c.Username,
		&c.IdentityNumber,
		&c.BirthDate,
		&c.PostalAddress,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const getCustomerByIdentityNumberQuery = `
SELECT
	c.user_id,
	u.username,
	c.identity_number,
	c.birth_date,
	c.postal_address
FROM customers c
JOIN users u ON u.id = c.user_id
WHERE c.identity_number = $1
`

// GetCustomerByIdentityNumber returns the customer payload for the given identity number.
func (r *RepoPGS) GetCustomerByIdentityNumber(ctx context.Context, identityNumber string) (domain.Customer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getCustomerByIdentityNumberQuery, identityNumber)

	var c domain.Customer

	err := row.Scan(
		&c.UserID,
		&c.Username,
		&c.IdentityNumber,
		&c.BirthDate,
		&c.PostalAddress,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return c, domain.ErrCustomerNotFound
		}

		return c, errorspkg.ErrInternal
	}

	return c, nil
}
