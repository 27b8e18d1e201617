package repositories

import (
	"context"
	"fmt"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

// PendingRepository stores public submissions and moves them into the live
// tables. Approve and reject each run in a single transaction: a submission is
// either fully promoted (row + category links) or left untouched.
type PendingRepository struct {
	db *gorm.DB
}

func NewPendingRepository(db *gorm.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

// =====================================================
// PENDING EVENTS
// =====================================================

// ListPendingEvents returns drafts newest first, each with its own categories.
func (r *PendingRepository) ListPendingEvents(ctx context.Context) ([]models.PendingEvent, error) {
	var rows []models.PendingEvent
	err := r.db.WithContext(ctx).
		Where("status = ?", models.SubmissionStatusPending).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list pending events: %w", err)
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	byID, err := pendingEventLinks.load(r.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Categories = nonNil(byID[rows[i].ID])
	}
	return rows, nil
}

func (r *PendingRepository) GetPendingEvent(ctx context.Context, id uint) (*models.PendingEvent, error) {
	var row models.PendingEvent
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFound(err)
	}
	byID, err := pendingEventLinks.load(r.db.WithContext(ctx), []uint{id})
	if err != nil {
		return nil, err
	}
	row.Categories = nonNil(byID[id])
	return &row, nil
}

func (r *PendingRepository) CreatePendingEvent(ctx context.Context, content models.EventContent, categoryIDs []uint) (*models.PendingEvent, error) {
	row := models.PendingEvent{
		EventContent: content,
		Status:       models.SubmissionStatusPending,
		IsActive:     true,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategories(tx, models.EventCategoryTable, categoryIDs); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert pending event: %w", err)
		}
		return pendingEventLinks.insert(tx, row.ID, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetPendingEvent(ctx, row.ID)
}

// UpdatePendingEvent edits a draft in place during review. No state change.
func (r *PendingRepository) UpdatePendingEvent(ctx context.Context, id uint, content models.EventContent, categoryIDs []uint) (*models.PendingEvent, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.PendingEvent
		if err := tx.First(&row, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureCategories(tx, models.EventCategoryTable, categoryIDs); err != nil {
			return err
		}
		row.EventContent = content
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("update pending event: %w", err)
		}
		return pendingEventLinks.replace(tx, id, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetPendingEvent(ctx, id)
}

// ApproveEvent promotes a draft into a live event. The new event copies every
// content field, is active and not featured, and gets the draft's category set.
// The draft and its category rows are gone afterwards.
func (r *PendingRepository) ApproveEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending models.PendingEvent
		if err := tx.First(&pending, id).Error; err != nil {
			return notFound(err)
		}

		event = models.Event{
			EventContent: pending.EventContent,
			IsActive:     true,
			IsFeatured:   false,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("insert event: %w", err)
		}

		// zero category rows is accepted here; the count is enforced at submission time
		categoryIDs, err := pendingEventLinks.categoryIDs(tx, id)
		if err != nil {
			return err
		}
		if err := eventLinks.insert(tx, event.ID, categoryIDs); err != nil {
			return err
		}

		if err := pendingEventLinks.deleteFor(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&models.PendingEvent{}, id).Error; err != nil {
			return fmt.Errorf("delete pending event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	byID, err := eventLinks.load(r.db.WithContext(ctx), []uint{event.ID})
	if err != nil {
		return nil, err
	}
	event.Categories = nonNil(byID[event.ID])
	return &event, nil
}

// RejectEvent discards a draft. Rejecting an id that no longer exists is not an error.
func (r *PendingRepository) RejectEvent(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := pendingEventLinks.deleteFor(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&models.PendingEvent{}, id).Error; err != nil {
			return fmt.Errorf("delete pending event: %w", err)
		}
		return nil
	})
}

// =====================================================
// PENDING VENUES
// =====================================================

func (r *PendingRepository) ListPendingVenues(ctx context.Context) ([]models.PendingVenue, error) {
	var rows []models.PendingVenue
	err := r.db.WithContext(ctx).
		Where("status = ?", models.SubmissionStatusPending).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list pending venues: %w", err)
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	byID, err := pendingVenueLinks.load(r.db.WithContext(ctx), ids)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Categories = nonNil(byID[rows[i].ID])
	}
	return rows, nil
}

func (r *PendingRepository) GetPendingVenue(ctx context.Context, id uint) (*models.PendingVenue, error) {
	var row models.PendingVenue
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, notFound(err)
	}
	byID, err := pendingVenueLinks.load(r.db.WithContext(ctx), []uint{id})
	if err != nil {
		return nil, err
	}
	row.Categories = nonNil(byID[id])
	return &row, nil
}

func (r *PendingRepository) CreatePendingVenue(ctx context.Context, content models.VenueContent, categoryIDs []uint) (*models.PendingVenue, error) {
	if content.Rating == 0 {
		content.Rating = models.DefaultVenueRating
	}
	row := models.PendingVenue{
		VenueContent: content,
		CategoryID:   primaryCategory(categoryIDs),
		Status:       models.SubmissionStatusPending,
		IsActive:     true,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategories(tx, models.VenueCategoryTable, categoryIDs); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("insert pending venue: %w", err)
		}
		return pendingVenueLinks.insert(tx, row.ID, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetPendingVenue(ctx, row.ID)
}

func (r *PendingRepository) UpdatePendingVenue(ctx context.Context, id uint, content models.VenueContent, categoryIDs []uint) (*models.PendingVenue, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.PendingVenue
		if err := tx.First(&row, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureCategories(tx, models.VenueCategoryTable, categoryIDs); err != nil {
			return err
		}
		if content.Rating == 0 {
			content.Rating = models.DefaultVenueRating
		}
		row.VenueContent = content
		row.CategoryID = primaryCategory(categoryIDs)
		if err := tx.Save(&row).Error; err != nil {
			return fmt.Errorf("update pending venue: %w", err)
		}
		return pendingVenueLinks.replace(tx, id, categoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.GetPendingVenue(ctx, id)
}

// ApproveVenue mirrors ApproveEvent for venue submissions.
func (r *PendingRepository) ApproveVenue(ctx context.Context, id uint) (*models.Venue, error) {
	var venue models.Venue
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending models.PendingVenue
		if err := tx.First(&pending, id).Error; err != nil {
			return notFound(err)
		}

		categoryIDs, err := pendingVenueLinks.categoryIDs(tx, id)
		if err != nil {
			return err
		}

		venue = models.Venue{
			VenueContent: pending.VenueContent,
			CategoryID:   pending.CategoryID,
			IsActive:     true,
			IsFeatured:   false,
		}
		if venue.CategoryID == nil {
			venue.CategoryID = primaryCategory(categoryIDs)
		}
		if err := tx.Create(&venue).Error; err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		if err := venueLinks.insert(tx, venue.ID, categoryIDs); err != nil {
			return err
		}

		if err := pendingVenueLinks.deleteFor(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&models.PendingVenue{}, id).Error; err != nil {
			return fmt.Errorf("delete pending venue: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	byID, err := venueLinks.load(r.db.WithContext(ctx), []uint{venue.ID})
	if err != nil {
		return nil, err
	}
	venue.Categories = nonNil(byID[venue.ID])
	return &venue, nil
}

func (r *PendingRepository) RejectVenue(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := pendingVenueLinks.deleteFor(tx, id); err != nil {
			return err
		}
		if err := tx.Delete(&models.PendingVenue{}, id).Error; err != nil {
			return fmt.Errorf("delete pending venue: %w", err)
		}
		return nil
	})
}

func nonNil(c []models.CategorySummary) []models.CategorySummary {
	if c == nil {
		return []models.CategorySummary{}
	}
	return c
}
