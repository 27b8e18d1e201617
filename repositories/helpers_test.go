package repositories

import (
	"io"
	"testing"

	"etkinlik-api/config"
	"etkinlik-api/database"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newTestDB returns a migrated and seeded in-memory database.
// Event categories get ids 1..6, venue categories 1..4.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize(config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"}, logger.Silent)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	log := quietLogger()
	if err := database.Migrate(db, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedData(db, log); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func countRows(t *testing.T, db *gorm.DB, table string, where string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := db.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
