// Package testutil holds fixtures shared by repository and HTTP tests.
package testutil

import (
	"testing"

	"gorm.io/gorm"

	"scorekeeper/internal/config"
	"scorekeeper/internal/db"
	"scorekeeper/pkg/logger"
)

// OpenDB returns a migrated, private in-memory SQLite database.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	gormDB, err := db.Open(config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	}, logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gormDB)
	})

	if err := db.Migrate(gormDB); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return gormDB
}
