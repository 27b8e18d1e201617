package repositories

import (
	"context"
	"fmt"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

type EventFilter struct {
	ActiveOnly  bool
	CategoryID  uint
	Featured    *bool
	Search      string
	From        string // YYYY-MM-DD, inclusive
	To          string
	Page        int
	Limit       int
	NewestFirst bool
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context, f EventFilter) ([]models.Event, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Event{})

	if f.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if f.CategoryID != 0 {
		query = query.Where("id IN (?)", r.db.Table(eventLinks.table).Select("event_id").Where("category_id = ?", f.CategoryID))
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}
	if f.From != "" {
		query = query.Where("start_date >= ?", f.From)
	}
	if f.To != "" {
		query = query.Where("start_date <= ?", f.To)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	if f.NewestFirst {
		query = query.Order("created_at DESC").Order("id DESC")
	} else {
		query = query.Order("start_date ASC").Order("start_time ASC").Order("id ASC")
	}
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if err := r.attachCategories(ctx, events); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepository) Get(ctx context.Context, id uint, activeOnly bool) (*models.Event, error) {
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var event models.Event
	if err := query.First(&event, id).Error; err != nil {
		return nil, notFound(err)
	}

	events := []models.Event{event}
	if err := r.attachCategories(ctx, events); err != nil {
		return nil, err
	}
	return &events[0], nil
}

// Create inserts the event and its category links in one transaction.
func (r *EventRepository) Create(ctx context.Context, event *models.Event, categoryIDs []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategories(tx, models.EventCategoryTable, categoryIDs); err != nil {
			return err
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		return eventLinks.insert(tx, event.ID, categoryIDs)
	})
	if err != nil {
		return err
	}
	events := []models.Event{*event}
	if err := r.attachCategories(ctx, events); err != nil {
		return err
	}
	event.Categories = events[0].Categories
	return nil
}

type EventUpdate struct {
	Content     models.EventContent
	CategoryIDs []uint
	IsActive    *bool
	IsFeatured  *bool
}

func (r *EventRepository) Update(ctx context.Context, id uint, u EventUpdate) (*models.Event, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureCategories(tx, models.EventCategoryTable, u.CategoryIDs); err != nil {
			return err
		}

		event.EventContent = u.Content
		if u.IsActive != nil {
			event.IsActive = *u.IsActive
		}
		if u.IsFeatured != nil {
			event.IsFeatured = *u.IsFeatured
		}
		// Save writes zero values too, so cleared optional fields really clear.
		if err := tx.Save(&event).Error; err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		return eventLinks.replace(tx, id, u.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id, false)
}

func (r *EventRepository) SetStatus(ctx context.Context, id uint, isActive, isFeatured *bool) (*models.Event, error) {
	updates := map[string]interface{}{}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if isFeatured != nil {
		updates["is_featured"] = *isFeatured
	}

	res := r.db.WithContext(ctx).Model(&models.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update event status: %w", res.Error)
	}
	return r.Get(ctx, id, false)
}

// Delete removes the event together with its links, favorites and reviews.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Event{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := eventLinks.deleteFor(tx, id); err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		return nil
	})
}

// WithinBox returns active events with coordinates inside b that have not
// ended before from (YYYY-MM-DD). An empty from skips the date check.
func (r *EventRepository) WithinBox(ctx context.Context, b GeoBox, from string) ([]models.Event, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat).
		Where("longitude BETWEEN ? AND ?", b.MinLng, b.MaxLng)
	if from != "" {
		query = query.Where("start_date >= ? OR end_date >= ?", from, from)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("events within box: %w", err)
	}
	if err := r.attachCategories(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) attachCategories(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]uint, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	byEvent, err := eventLinks.load(r.db.WithContext(ctx), ids)
	if err != nil {
		return err
	}
	for i := range events {
		events[i].Categories = byEvent[events[i].ID]
		if events[i].Categories == nil {
			events[i].Categories = []models.CategorySummary{}
		}
	}
	return nil
}
