// Package sqlite applies the embedded schema migrations for the profit
// reporting bot's SQLite database.
package sqlite

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// Migrate applies any pending migrations in order. Safe to run on every
// startup.
func Migrate(db *sql.DB) error {
	m := sqlmigrator.New(db, darwin.SqliteDialect{})

	return m.Migrate(migrationFiles, "sql")
}
