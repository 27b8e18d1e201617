package repositories

import (
	"context"
	"errors"
	"fmt"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

var ErrAlreadyReviewed = errors.New("user already reviewed this event")

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// ForEvent returns the event's reviews newest first plus their average.
func (r *ReviewRepository) ForEvent(ctx context.Context, eventID uint) ([]models.Review, models.ReviewSummary, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").Order("id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, models.ReviewSummary{}, fmt.Errorf("list reviews: %w", err)
	}

	var summary models.ReviewSummary
	err = r.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("event_id = ?", eventID).
		Scan(&summary).Error
	if err != nil {
		return nil, models.ReviewSummary{}, fmt.Errorf("summarize reviews: %w", err)
	}
	return reviews, summary, nil
}

func (r *ReviewRepository) List(ctx context.Context, page, limit int) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, total, nil
}

// Create enforces one review per user name per event, and one per account
// when the review carries a user id.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		query := tx.Model(&models.Review{}).Where("event_id = ?", review.EventID)
		if review.UserID != nil {
			query = query.Where("user_name = ? OR user_id = ?", review.UserName, *review.UserID)
		} else {
			query = query.Where("user_name = ?", review.UserName)
		}
		err := query.Count(&count).Error
		if err != nil {
			return fmt.Errorf("check review: %w", err)
		}
		if count > 0 {
			return ErrAlreadyReviewed
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
		return nil
	})
}

func (r *ReviewRepository) Get(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &review, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
