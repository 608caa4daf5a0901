package database

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/planfact/planfact-bot/internal/domain/entity"
	"github.com/planfact/planfact-bot/migrator/sqlite"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "Failed to create test database")

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err, "Failed to enable foreign keys")

	// Run migrations to create tables
	err = sqlite.Migrate(sqlDB)
	require.NoError(t, err, "Failed to run migrations on test database")

	return &DB{conn: sqlDB}
}

// SeedOfficeWithGeo creates one office, one geo and one user for tests that
// need a linked account.
func SeedOfficeWithGeo(t *testing.T, db *DB, officeName, geoName, slackUserID string) (*entity.Office, *entity.Geo, *entity.User) {
	t.Helper()

	office := &entity.Office{Name: officeName}
	require.NoError(t, newOfficeRepo(db.conn).Create(office))

	geo := &entity.Geo{Name: geoName, OfficeID: office.ID}
	require.NoError(t, newGeoRepo(db.conn).Create(geo))

	user := &entity.User{SlackUserID: slackUserID, Name: "Test User", OfficeID: office.ID}
	require.NoError(t, newUserRepo(db.conn).Create(user))

	return office, geo, user
}

// Date builds a midnight UTC date for tests.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
