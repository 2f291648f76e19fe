package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Open connects to the film store and verifies the connection.
//
// For SQLite the dsn is a file path.  The pool is capped at a single
// connection: SQLite admits one writer at a time, and holding exactly one
// handle makes that explicit instead of surfacing SQLITE_BUSY under load.
// busy_timeout covers the seed tool touching the same file.
func Open(driver, dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch driver {
	case DriverSQLite:
		abs, absErr := filepath.Abs(strings.TrimSpace(dsn))
		if absErr != nil {
			return nil, fmt.Errorf("resolve sqlite path: %w", absErr)
		}
		db, err = sqlx.Open(DriverSQLite, fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", abs))
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	case DriverMySQL:
		cfg, parseErr := mysql.ParseDSN(dsn)
		if parseErr != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", parseErr)
		}
		// RowsAffected must count matched rows, otherwise a PUT that
		// changes nothing would look like a missing film.
		cfg.ClientFoundRows = true
		db, err = sqlx.Open(DriverMySQL, cfg.FormatDSN())
		if err != nil {
			return nil, err
		}
		// Pool settings
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(30 * time.Minute)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
