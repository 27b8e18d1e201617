package repositories

import (
	"context"
	"fmt"
	"time"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) List(ctx context.Context) ([]models.Announcement, error) {
	var items []models.Announcement
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

// Active returns announcements that are switched on and whose window contains now.
// A missing bound leaves that side of the window open.
func (r *AnnouncementRepository) Active(ctx context.Context, now time.Time) ([]models.Announcement, error) {
	var items []models.Announcement
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", now).
		Where("end_date IS NULL OR end_date >= ?", now).
		Order("created_at DESC").Order("id DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list active announcements: %w", err)
	}
	return items, nil
}

func (r *AnnouncementRepository) Get(ctx context.Context, id uint) (*models.Announcement, error) {
	var item models.Announcement
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *AnnouncementRepository) Create(ctx context.Context, item *models.Announcement) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (r *AnnouncementRepository) Update(ctx context.Context, id uint, in models.Announcement) (*models.Announcement, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.ID = item.ID
	in.CreatedAt = item.CreatedAt
	if err := r.db.WithContext(ctx).Save(&in).Error; err != nil {
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return &in, nil
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete announcement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateExpired switches off active announcements whose end date has passed.
func (r *AnnouncementRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
		Updates(map[string]interface{}{"is_active": false, "updated_at": now})
	if res.Error != nil {
		return 0, fmt.Errorf("deactivate announcements: %w", res.Error)
	}
	return res.RowsAffected, nil
}
