package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CollectionStatus lets polling clients skip a refetch when nothing changed.
type CollectionStatus struct {
	Count       int64      `json:"count"`
	LastUpdated *time.Time `json:"lastUpdated"`
}

var syncCollections = []struct {
	key   string
	table string
}{
	{"events", "events"},
	{"venues", "venues"},
	{"categories", "categories"},
	{"venueCategories", "venue_categories"},
	{"pendingEvents", "pending_events"},
	{"pendingVenues", "pending_venues"},
	{"announcements", "announcements"},
}

type SyncRepository struct {
	db *gorm.DB
}

func NewSyncRepository(db *gorm.DB) *SyncRepository {
	return &SyncRepository{db: db}
}

func (r *SyncRepository) Status(ctx context.Context) (map[string]CollectionStatus, error) {
	out := make(map[string]CollectionStatus, len(syncCollections))
	db := r.db.WithContext(ctx)

	for _, col := range syncCollections {
		var status CollectionStatus
		if err := db.Table(col.table).Count(&status.Count).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", col.table, err)
		}

		if status.Count > 0 {
			var latest struct{ UpdatedAt time.Time }
			err := db.Table(col.table).
				Select("updated_at").
				Order("updated_at DESC").
				Limit(1).
				Scan(&latest).Error
			if err != nil {
				return nil, fmt.Errorf("latest %s: %w", col.table, err)
			}
			if !latest.UpdatedAt.IsZero() {
				t := latest.UpdatedAt
				status.LastUpdated = &t
			}
		}
		out[col.key] = status
	}
	return out, nil
}
