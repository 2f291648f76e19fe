package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteFilmsTable = `CREATE TABLE IF NOT EXISTS films (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nom TEXT,
	dateDeSortie TEXT,
	realisateur TEXT,
	note REAL,
	notePublic REAL,
	compagnie TEXT,
	description TEXT,
	origine TEXT,
	lienImage TEXT
)`

const mysqlFilmsTable = `CREATE TABLE IF NOT EXISTS films (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	nom TEXT NULL,
	dateDeSortie TEXT NULL,
	realisateur TEXT NULL,
	note DOUBLE NULL,
	notePublic DOUBLE NULL,
	compagnie TEXT NULL,
	description TEXT NULL,
	origine VARCHAR(191) NULL,
	lienImage TEXT NULL
) CHARACTER SET utf8mb4`

// EnsureSchema creates the films table if it does not exist.  It is safe to
// call on every start.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	stmt := sqliteFilmsTable
	if db.DriverName() == DriverMySQL {
		stmt = mysqlFilmsTable
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create films table: %w", err)
	}
	return nil
}
