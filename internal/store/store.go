// Package store persists simulation runs and their sampled primary vertices
// in sqlite. The schema is managed by golang-migrate from embedded migrations.
package store

import (
	"database/sql"
	"embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/bhackett1/OptSimple/internal/timeutil"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=5000",
	"PRAGMA synchronous=NORMAL",
	"PRAGMA temp_store=MEMORY",
	"PRAGMA foreign_keys=ON",
}

type DB struct {
	*sql.DB
	clock timeutil.Clock
}

// Open opens or creates the database at path and migrates it to the latest
// schema version.
func Open(path string) (*DB, error) {
	db, err := OpenWithoutMigrations(path)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenWithoutMigrations opens the database at path and applies the
// connection pragmas but leaves the schema untouched.
func OpenWithoutMigrations(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Per-connection pragmas such as foreign_keys need a single connection.
	sqlDB.SetMaxOpenConns(1)
	for _, pragma := range pragmas {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return &DB{DB: sqlDB, clock: timeutil.RealClock{}}, nil
}

// SetClock replaces the clock used for run timestamps.
func (db *DB) SetClock(c timeutil.Clock) { db.clock = c }
