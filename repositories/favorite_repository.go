package repositories

import (
	"context"
	"fmt"

	"etkinlik-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// EventIDs returns the user's favorite event ids in ascending order.
func (r *FavoriteRepository) EventIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("event_id ASC").
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return ids, nil
}

// Events returns the active favorite events, most recently favorited first.
func (r *FavoriteRepository) Events(ctx context.Context, userID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Joins("JOIN favorites f ON f.event_id = events.id").
		Where("f.user_id = ? AND events.is_active = ?", userID, true).
		Order("f.created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list favorite events: %w", err)
	}

	ids := make([]uint, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	byEvent, err := eventLinks.load(r.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	for i := range events {
		events[i].Categories = nonNil(byEvent[events[i].ID])
	}
	return events, nil
}

// Add is idempotent: favoriting an event twice keeps a single row.
func (r *FavoriteRepository) Add(ctx context.Context, userID, eventID uint) error {
	fav := models.Favorite{UserID: userID, EventID: eventID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	return nil
}

// Favorable keeps the ids that belong to existing active events.
func (r *FavoriteRepository) Favorable(ctx context.Context, eventIDs []uint) ([]uint, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id IN ? AND is_active = ?", eventIDs, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("check favorite events: %w", err)
	}
	return ids, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, eventID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&models.Favorite{}).Error
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) RemoveAllForUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
		return fmt.Errorf("remove favorites: %w", err)
	}
	return nil
}
