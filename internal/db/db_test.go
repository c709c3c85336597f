package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const memoryDSN = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

func TestMigrations_SQLite(t *testing.T) {
	conn, err := Init(DriverSQLite, memoryDSN)
	require.NoError(t, err)
	defer Close(conn)

	require.NoError(t, RunMigrations(conn.DB, DriverSQLite))

	version, err := Version(conn.DB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	for _, table := range []string{"users", "goals", "weekly_progress"} {
		var name string
		err := conn.Get(&name, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table)
		assert.NoError(t, err, "table %s should exist", table)
	}

	require.NoError(t, MigrateDown(conn.DB, DriverSQLite))

	version, err = Version(conn.DB, DriverSQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
}

func TestMigrations_Idempotent(t *testing.T) {
	conn, err := Init(DriverSQLite, memoryDSN)
	require.NoError(t, err)
	defer Close(conn)

	require.NoError(t, RunMigrations(conn.DB, DriverSQLite))
	assert.NoError(t, RunMigrations(conn.DB, DriverSQLite), "running up twice is a no-op")
}

func TestGetDialect(t *testing.T) {
	assert.Equal(t, "sqlite3", getDialect("sqlite"))
	assert.Equal(t, "postgres", getDialect("pgx"))
	assert.Equal(t, "postgres", getDialect("postgres"))
	assert.Equal(t, "mysql", getDialect("mysql"))
}

func TestEnsureSQLiteDir(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, ensureSQLiteDir("file:"+dir+"/nested/app.db?_pragma=foreign_keys(1)"))
	assert.DirExists(t, dir+"/nested")

	assert.NoError(t, ensureSQLiteDir(":memory:"))
}
