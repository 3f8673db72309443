// Package dbtest opens a migrated in-memory SQLite database for repository tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"laudos-api/config"
	"laudos-api/internal/infrastructure/db"
)

func Open(t *testing.T) *db.Database {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(db.SQLiteDSN(":memory:")), &gorm.Config{
		Logger: db.NewLogger(zap.NewNop()),
	})
	require.NoError(t, err)

	d, err := db.Wrap(gdb, config.DriverSQLite)
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every new connection would see a fresh empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(context.Background(), zap.NewNop(), d))
	t.Cleanup(d.Close)

	return d
}
