// Package testutil holds the Postgres helpers shared by integration tests.
// Every helper that needs a database reads TEST_DATABASE_URL and skips the
// calling test when it is unset.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/pkordes/cyberfolio/migrations"
)

// Tables are the tables created by the embedded migrations.
var Tables = []string{"projects", "blog_posts"}

// DSN returns TEST_DATABASE_URL or skips t.
func DSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}

// NewPool returns a pinged pool closed at test cleanup.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := pgxpool.New(context.Background(), DSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// NewTx begins a transaction that is rolled back at test cleanup, so a
// repository built on it leaves no rows behind. When tables are named they
// are emptied inside the transaction first.
func NewTx(t *testing.T, tables ...string) pgx.Tx {
	t.Helper()
	ctx := context.Background()
	tx, err := NewPool(t).Begin(ctx)
	if err != nil {
		t.Fatalf("testutil.NewTx: begin: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	for _, table := range tables {
		if _, err := tx.Exec(ctx, "DELETE FROM "+pgx.Identifier{table}.Sanitize()); err != nil {
			t.Fatalf("testutil.NewTx: empty %s: %v", table, err)
		}
	}
	return tx
}

// NewSQLDB is NewPool for database/sql callers such as goose.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLDB(DSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// OpenSQLDB opens and pings a database/sql handle over the pgx driver.
func OpenSQLDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

// NewMigrator returns a goose provider over the embedded migrations.
func NewMigrator(db *sql.DB) (*goose.Provider, error) {
	return goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
}

// Migrate applies every pending migration to the database at dsn.
// It is meant for TestMain, where no *testing.T exists.
func Migrate(ctx context.Context, dsn string) error {
	db, err := OpenSQLDB(dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := NewMigrator(db)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := p.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
