// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fakestore/internal/config"
	"fakestore/internal/database"
)

// Open opens a private in-memory SQLite database with the schema migrated.
// It is closed when the test finishes.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", uuid.NewString())
	db, err := database.Open(config.DBConfig{Driver: "sqlite", DSN: dsn}, logger.Silent)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
