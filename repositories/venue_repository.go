package repositories

import (
	"context"
	"fmt"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

type VenueFilter struct {
	ActiveOnly bool
	CategoryID uint
	Featured   *bool
	Search     string
	Page       int
	Limit      int
}

type VenueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) List(ctx context.Context, f VenueFilter) ([]models.Venue, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Venue{})

	if f.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if f.CategoryID != 0 {
		query = query.Where("id IN (?)", r.db.Table(venueLinks.table).Select("venue_id").Where("category_id = ?", f.CategoryID))
	}
	if f.Featured != nil {
		query = query.Where("is_featured = ?", *f.Featured)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ? OR address LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count venues: %w", err)
	}

	query = query.Order("is_featured DESC").Order("name ASC")
	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var venues []models.Venue
	if err := query.Find(&venues).Error; err != nil {
		return nil, 0, fmt.Errorf("list venues: %w", err)
	}
	if err := r.attachCategories(ctx, venues); err != nil {
		return nil, 0, err
	}
	return venues, total, nil
}

func (r *VenueRepository) Get(ctx context.Context, id uint, activeOnly bool) (*models.Venue, error) {
	query := r.db.WithContext(ctx)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var venue models.Venue
	if err := query.First(&venue, id).Error; err != nil {
		return nil, notFound(err)
	}
	venues := []models.Venue{venue}
	if err := r.attachCategories(ctx, venues); err != nil {
		return nil, err
	}
	return &venues[0], nil
}

func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue, categoryIDs []uint) error {
	venue.CategoryID = primaryCategory(categoryIDs)
	if venue.Rating == 0 {
		venue.Rating = models.DefaultVenueRating
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategories(tx, models.VenueCategoryTable, categoryIDs); err != nil {
			return err
		}
		if err := tx.Create(venue).Error; err != nil {
			return fmt.Errorf("insert venue: %w", err)
		}
		return venueLinks.insert(tx, venue.ID, categoryIDs)
	})
	if err != nil {
		return err
	}

	venues := []models.Venue{*venue}
	if err := r.attachCategories(ctx, venues); err != nil {
		return err
	}
	venue.Categories = venues[0].Categories
	return nil
}

type VenueUpdate struct {
	Content     models.VenueContent
	CategoryIDs []uint
	IsActive    *bool
	IsFeatured  *bool
}

func (r *VenueRepository) Update(ctx context.Context, id uint, u VenueUpdate) (*models.Venue, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, id).Error; err != nil {
			return notFound(err)
		}
		if err := ensureCategories(tx, models.VenueCategoryTable, u.CategoryIDs); err != nil {
			return err
		}

		venue.VenueContent = u.Content
		if venue.Rating == 0 {
			venue.Rating = models.DefaultVenueRating
		}
		venue.CategoryID = primaryCategory(u.CategoryIDs)
		if u.IsActive != nil {
			venue.IsActive = *u.IsActive
		}
		if u.IsFeatured != nil {
			venue.IsFeatured = *u.IsFeatured
		}
		if err := tx.Save(&venue).Error; err != nil {
			return fmt.Errorf("update venue: %w", err)
		}
		return venueLinks.replace(tx, id, u.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id, false)
}

func (r *VenueRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Venue{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete venue: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return venueLinks.deleteFor(tx, id)
	})
}

func (r *VenueRepository) attachCategories(ctx context.Context, venues []models.Venue) error {
	if len(venues) == 0 {
		return nil
	}
	ids := make([]uint, len(venues))
	for i := range venues {
		ids[i] = venues[i].ID
	}
	byVenue, err := venueLinks.load(r.db.WithContext(ctx), ids)
	if err != nil {
		return err
	}
	for i := range venues {
		venues[i].Categories = byVenue[venues[i].ID]
		if venues[i].Categories == nil {
			venues[i].Categories = []models.CategorySummary{}
		}
	}
	return nil
}

// GeoBox is a latitude/longitude rectangle, bounds inclusive.
type GeoBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// WithinBox returns active venues with coordinates inside b.
func (r *VenueRepository) WithinBox(ctx context.Context, b GeoBox) ([]models.Venue, error) {
	var venues []models.Venue
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", b.MinLat, b.MaxLat).
		Where("longitude BETWEEN ? AND ?", b.MinLng, b.MaxLng).
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("venues within box: %w", err)
	}
	if err := r.attachCategories(ctx, venues); err != nil {
		return nil, err
	}
	return venues, nil
}

func primaryCategory(ids []uint) *uint {
	if len(ids) == 0 {
		return nil
	}
	first := ids[0]
	return &first
}
