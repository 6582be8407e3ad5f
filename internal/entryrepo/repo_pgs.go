// Package entryrepo manages repository layer of ledger entries.
package entryrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/pkg/dbpkg"
	"github.com/go-petr/rib-bank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates entry repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns entry RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    entries (account_rib, amount, direction, username, date)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, account_rib, amount, direction, username, date, created_at
`

// Create appends the entry to the ledger and then returns it.
// Entries are immutable; there is no update or delete.
func (r *RepoPGS) Create(ctx context.Context, rib, amount, direction, username string, date time.Time) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, rib, amount, direction, username, date)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.AccountRIB,
		&e.Amount,
		&e.Direction,
		&e.Username,
		&e.Date,
		&e.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "entries_account_rib_fkey":
				return e, domain.ErrAccountNotFound
			case "entries_username_fkey":
				return e, domain.ErrUserNotFound
			case "entries_amount_check":
				return e, domain.ErrInvalidAmount
			}
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const getQuery = `
SELECT id, account_rib, amount, direction, username, date, created_at FROM entries
WHERE id = $1 LIMIT 1
`

// Get returns the entry with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var e domain.Entry

	err := row.Scan(
		&e.ID,
		&e.AccountRIB,
		&e.Amount,
		&e.Direction,
		&e.Username,
		&e.Date,
		&e.CreatedAt,
	)
	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return e, domain.ErrEntryNotFound
		}

		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listByAccountQuery = `
SELECT id, account_rib, amount, direction, username, date, created_at FROM entries
WHERE account_rib = $1
ORDER BY date DESC, id DESC
LIMIT $2 OFFSET $3
`

// ListByAccount returns entries of the given account ordered by logical date
// descending. The secondary id ordering keeps pages stable across calls.
func (r *RepoPGS) ListByAccount(ctx context.Context, rib string, limit, offset int32) ([]domain.Entry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByAccountQuery, rib, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Entry{}

	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(
			&e.ID,
			&e.AccountRIB,
			&e.Amount,
			&e.Direction,
			&e.Username,
			&e.Date,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
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

const countByAccountQuery = `
SELECT count(*) FROM entries
WHERE account_rib = $1
`

// CountByAccount returns the total number of entries of the given account.
func (r *RepoPGS) CountByAccount(ctx context.Context, rib string) (int64, error) {
	l := zerolog.Ctx(ctx)

	var count int64

	err := r.db.QueryRowContext(ctx, countByAccountQuery, rib).Scan(&count)
	if err != nil {
		l.Error().Err(err).Send()
		return 0, errorspkg.ErrInternal
	}

	return count, nil
}

const lastCreatedAtQuery = `
SELECT max(created_at) FROM entries
WHERE account_rib = $1
`

// LastCreatedAt returns the creation time of the newest entry of the given
// account. The second return value is false when the account has no entries.
func (r *RepoPGS) LastCreatedAt(ctx context.Context, rib string) (time.Time, bool, error) {
	l := zerolog.Ctx(ctx)

	var last sql.NullTime

	err := r.db.QueryRowContext(ctx, lastCreatedAtQuery, rib).Scan(&last)
	if err != nil {
		l.Error().Err(err).Send()
		return time.Time{}, false, errorspkg.ErrInternal
	}

	return last.Time, last.Valid, nil
}
