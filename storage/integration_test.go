package storage

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func skipUnlessIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run")
	}
}

func pingDatabase(t *testing.T, config Config) {
	t.Helper()
	db, err := Connect(config)
	require.NoError(t, err, "failed to connect to %s database", config.Driver)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
	require.NoError(t, sqlDB.Close())
}

// TestSQLiteConnection tests connecting to a SQLite database
func TestSQLiteConnection(t *testing.T) {
	skipUnlessIntegration(t)
	pingDatabase(
		t, Config{
			Driver:  DriverSQLite,
			DataDir: t.TempDir(),
		},
	)
}

// TestMySQLConnection tests connecting to a MySQL database
func TestMySQLConnection(t *testing.T) {
	skipUnlessIntegration(t)
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("Skipping MySQL test. Set MYSQL_DSN environment variable")
	}
	pingDatabase(
		t, Config{
			Driver: DriverMySQL,
			DSN:    dsn,
		},
	)
}

// TestPostgresConnection tests connecting to a PostgreSQL database
func TestPostgresConnection(t *testing.T) {
	skipUnlessIntegration(t)
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("Skipping PostgreSQL test. Set POSTGRES_DSN environment variable")
	}
	pingDatabase(
		t, Config{
			Driver: DriverPostgres,
			DSN:    dsn,
		},
	)
}

func newSQLiteStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(
		Config{
			Driver:    DriverSQLite,
			DataDir:   t.TempDir(),
			UsersHash: testHashParams,
		},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// TestSQLiteBackends runs the shared backend tests on gorm with sqlite
func TestSQLiteBackends(t *testing.T) {
	skipUnlessIntegration(t)
	s := newSQLiteStorage(t)
	backs, err := LoadStorageBackends(Config{Driver: DriverSQLite, DataDir: t.TempDir(), UsersHash: testHashParams})
	require.NoError(t, err)
	testBackends(t, backs)

	t.Run(
		"legacy hash upgrade", func(t *testing.T) {
			testLegacyHashUpgrade(t, s.UsersStorage())
		},
	)
}
