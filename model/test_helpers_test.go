package model

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an isolated in-memory SQLite database and migrates the
// given models, or every owned model when none are passed.
func setupTestDB(t *testing.T, name string, models ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if len(models) == 0 {
		models = AllModels()
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return db
}
