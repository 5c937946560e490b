// Package repository provides PostgreSQL persistence for the portfolio entities.
//
// Every repository receives its *sql.DB explicitly and keeps no state between
// calls. Writes against a missing id report ErrNotFound instead of failing.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate key")

const uniqueViolation = "23505"

// duplicate maps a unique violation reported by Postgres onto ErrDuplicate.
func duplicate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// psql builds statements with $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// assignments collects the SET clause of a partial update in call order.
// Column names always come from constants in this package.
type assignments []assignment

type assignment struct {
	column string
	value  any
}

func (a *assignments) add(column string, value any) {
	*a = append(*a, assignment{column: column, value: value})
}

// updateQuery renders `UPDATE table SET ... , updated_at = now() WHERE id = $n RETURNING columns`.
func (a assignments) updateQuery(table string, id int64, returning string, touch bool) (string, []any, error) {
	b := psql.Update(table)
	for _, as := range a {
		b = b.Set(as.column, as.value)
	}
	if touch {
		b = b.Set("updated_at", sq.Expr("now()"))
	}
	query, args, err := b.Where(sq.Eq{"id": id}).Suffix("RETURNING " + returning).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build update %s: %w", table, err)
	}
	return query, args, nil
}

// notFound maps sql.ErrNoRows onto ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// deleteByID removes one row and reports ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db *sql.DB, table string, id int64) error {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
