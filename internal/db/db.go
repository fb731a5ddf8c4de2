package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Database holds the catalog's SQL connection pool.
type Database struct {
	*sql.DB
	Driver string
}

// New opens, configures, and verifies a connection pool for the given driver
// ("mysql" or "sqlite"). It returns an error if opening or pinging fails.
func New(driver, dsn string, maxOpen, maxIdle int, connMaxLifetime time.Duration) (*Database, error) {
	switch driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if driver == "mysql" {
		normalised, err := normaliseMySQLDSN(dsn)
		if err != nil {
			return nil, err
		}
		dsn = normalised
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	if driver == "sqlite" {
		// a single writer avoids SQLITE_BUSY on concurrent registrations
		maxOpen = 1
		maxIdle = 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)

	if err := db.Ping(); err != nil {
		if cErr := db.Close(); cErr != nil {
			return nil, cErr
		}
		return nil, err
	}
	return &Database{DB: db, Driver: driver}, nil
}

// normaliseMySQLDSN forces parseTime and UTC so DATETIME columns scan into
// time.Time whatever the operator put in DB_DSN.
func normaliseMySQLDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse DB_DSN: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}
