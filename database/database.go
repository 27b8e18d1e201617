// File: /database/database.go
package database

import (
	"fmt"
	"strings"
	"time"

	"etkinlik-api/config"
	"etkinlik-api/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(cfg config.DatabaseConfig, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.URL,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	default:
		dialector = mysql.Open(cfg.URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.Driver == "sqlite" && strings.Contains(cfg.URL, ":memory:") {
		// every connection would see its own empty database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		return db, nil
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)

	return db, nil
}

func Migrate(db *gorm.DB, log *logrus.Logger) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.Category{},
		&models.VenueCategory{},
		&models.Event{},
		&models.EventCategory{},
		&models.PendingEvent{},
		&models.PendingEventCategory{},
		&models.Venue{},
		&models.VenueCategoryLink{},
		&models.PendingVenue{},
		&models.PendingVenueCategoryLink{},
		&models.User{},
		&models.Favorite{},
		&models.Review{},
		&models.Announcement{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	addCustomIndexes(db, log)
	return backfillVenueLinks(db, log)
}

// backfillVenueLinks gives venues that only carry the legacy category_id a
// matching row in the link table.
func backfillVenueLinks(db *gorm.DB, log *logrus.Logger) error {
	res := db.Exec(`INSERT INTO venue_category_links (venue_id, category_id)
		SELECT v.id, v.category_id FROM venues v
		JOIN venue_categories c ON c.id = v.category_id
		WHERE NOT EXISTS (SELECT 1 FROM venue_category_links l WHERE l.venue_id = v.id)`)
	if res.Error != nil {
		return fmt.Errorf("backfill venue category links: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		log.WithField("venues", res.RowsAffected).Info("linked legacy venue categories")
	}
	return nil
}

func addCustomIndexes(db *gorm.DB, log *logrus.Logger) {
	indexes := []struct {
		table string
		name  string
		stmt  string
	}{
		{"events", "idx_events_active_start", "CREATE INDEX idx_events_active_start ON events(is_active, start_date)"},
		{"pending_events", "idx_pending_events_status_created", "CREATE INDEX idx_pending_events_status_created ON pending_events(status, created_at)"},
		{"pending_venues", "idx_pending_venues_status_created", "CREATE INDEX idx_pending_venues_status_created ON pending_venues(status, created_at)"},
		{"reviews", "idx_reviews_event_created", "CREATE INDEX idx_reviews_event_created ON reviews(event_id, created_at)"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			continue
		}
		if err := db.Exec(idx.stmt).Error; err != nil {
			log.WithError(err).WithField("index", idx.name).Warn("could not create index")
		}
	}
}

// SeedData fills the category tables on an empty database so the submission
// forms have something to offer.
func SeedData(db *gorm.DB, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("categories already present, skipping seed")
		return nil
	}

	eventCategories := []models.Category{
		{Name: "konser", DisplayName: "Konser", Color: "#e74c3c", Icon: "music", SortOrder: 1, IsActive: true},
		{Name: "tiyatro", DisplayName: "Tiyatro", Color: "#8e44ad", Icon: "theater", SortOrder: 2, IsActive: true},
		{Name: "sergi", DisplayName: "Sergi", Color: "#2980b9", Icon: "art", SortOrder: 3, IsActive: true},
		{Name: "spor", DisplayName: "Spor", Color: "#27ae60", Icon: "sport", SortOrder: 4, IsActive: true},
		{Name: "cocuk", DisplayName: "Çocuk/Aile", Color: "#f39c12", Icon: "child", SortOrder: 5, IsActive: true},
		{Name: "egitim", DisplayName: "Eğitim/Atölye", Color: "#16a085", Icon: "book", SortOrder: 6, IsActive: true},
	}
	if err := db.Create(&eventCategories).Error; err != nil {
		return fmt.Errorf("seed event categories: %w", err)
	}

	venueCategories := []models.VenueCategory{
		{Category: models.Category{Name: "kafe", DisplayName: "Kafe", Color: "#a0522d", Icon: "coffee", SortOrder: 1, IsActive: true}},
		{Category: models.Category{Name: "restoran", DisplayName: "Restoran", Color: "#c0392b", Icon: "food", SortOrder: 2, IsActive: true}},
		{Category: models.Category{Name: "kultur-merkezi", DisplayName: "Kültür/Merkezi", Color: "#2c3e50", Icon: "building", SortOrder: 3, IsActive: true}},
		{Category: models.Category{Name: "park", DisplayName: "Park", Color: "#2ecc71", Icon: "tree", SortOrder: 4, IsActive: true}},
	}
	if err := db.Create(&venueCategories).Error; err != nil {
		return fmt.Errorf("seed venue categories: %w", err)
	}

	log.WithFields(logrus.Fields{
		"event_categories": len(eventCategories),
		"venue_categories": len(venueCategories),
	}).Info("database seeded with default categories")
	return nil
}
