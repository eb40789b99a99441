// Package sqlstore holds the database/sql repositories. The same SQL runs on
// Postgres (lib/pq) and SQLite (modernc.org/sqlite); the few dialect
// differences are handled by Driver.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func ParseDriver(name string) (Driver, error) {
	switch Driver(name) {
	case DriverPostgres, DriverSQLite:
		return Driver(name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// rowLock is appended to SELECTs that must hold the row until commit. SQLite
// has no row locks; its single connection already serializes transactions.
func (d Driver) rowLock() string {
	if d == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

type Store struct {
	db     *sql.DB
	driver Driver
}

// Open connects to the database and verifies the connection. SQLite is
// limited to one open connection with WAL, a busy timeout and foreign keys.
func Open(ctx context.Context, driver Driver, dsn string) (*Store, error) {
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if err := applyPragmas(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Driver() Driver {
	return s.driver
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
