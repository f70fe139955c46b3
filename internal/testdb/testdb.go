// Package testdb opens throwaway sqlite databases for package tests.
package testdb

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kellyworkos00-droid/fairm/configs"
	"gorm.io/gorm"
)

var seq atomic.Int64

// Open returns a migrated in-memory database private to t.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := &configs.Config{
		AppEnv:   "test",
		DBDriver: "sqlite",
		DBSource: fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1)),
	}
	db, err := configs.ConnectionDB(cfg)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := configs.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
