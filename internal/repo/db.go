// Package repo contains all database access logic for the portfolio API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping. This package is
// the single place where display field names (demoUrl, readTime, order) are
// mapped to storage columns (demo_url, read_time, order_index).
package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/cyberfolio/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// mapWriteError translates a unique constraint violation into
// domain.ErrDuplicateKey, keeping the constraint name for the log.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return err
}

// column maps one settable field of a patch type P to its storage column.
// The tables built from it are ordinary Go code over typed struct fields, so a
// renamed field fails to compile instead of silently not mapping.
type column[P any] struct {
	name  string
	set   string // SET fragment; empty means "name = @name"
	value func(P) (any, bool)
}

func (c column[P]) assignment() string {
	if c.set != "" {
		return c.set
	}
	return c.name + " = @" + c.name
}

// field builds a column whose value is present when the patch pointer is non-nil.
func field[P, T any](name string, get func(P) *T) column[P] {
	return column[P]{
		name: name,
		value: func(p P) (any, bool) {
			v := get(p)
			if v == nil {
				return nil, false
			}
			return *v, true
		},
	}
}

// listField is field for text[] columns. A present-but-nil slice is written
// as an empty array rather than NULL.
func listField[P any](name string, get func(P) *[]string) column[P] {
	return column[P]{
		name: name,
		value: func(p P) (any, bool) {
			v := get(p)
			if v == nil {
				return nil, false
			}
			return nonNil(*v), true
		},
	}
}

// updatedAtField maps the caller-supplied updatedAt. Storage has no trigger, so
// the value is written as given, clamped so updated_at never precedes
// created_at when the app and database clocks disagree.
func updatedAtField[P any](get func(P) *time.Time) column[P] {
	c := field("updated_at", get)
	c.set = "updated_at = GREATEST(@updated_at, created_at)"
	return c
}

// buildUpdate renders an UPDATE ... SET for the present fields of patch,
// returning the full row. Returns domain.ErrEmptyUpdate when no column is set.
func buildUpdate[P any](table string, cols []column[P], patch P, id, returning string) (string, pgx.NamedArgs, error) {
	args := pgx.NamedArgs{"id": id}
	var sets []string
	for _, c := range cols {
		v, ok := c.value(patch)
		if !ok {
			continue
		}
		sets = append(sets, c.assignment())
		args[c.name] = v
	}
	if len(sets) == 0 {
		return "", nil, domain.ErrEmptyUpdate
	}

	q := "UPDATE " + table + "\n\t\tSET " + strings.Join(sets, ",\n\t\t    ") +
		"\n\t\tWHERE id = @id\n\t\tRETURNING " + returning
	return q, args, nil
}

// nonNil returns s, or an empty slice when s is nil, so text[] NOT NULL
// columns never receive NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
