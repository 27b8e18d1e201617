package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

var (
	ErrInvalidOrder     = errors.New("invalid category order")
	ErrInvalidDirection = errors.New("direction must be up or down")
	ErrCategoryExists   = errors.New("category name already exists")
)

const (
	MoveUp   = "up"
	MoveDown = "down"
)

// CategoryRepository serves both tag tables; the table name picks which one.
type CategoryRepository struct {
	db    *gorm.DB
	table string
	links []linkSpec
	// tables whose legacy category_id column points here
	primaryRefs []string
}

func NewCategoryRepository(db *gorm.DB, table string) *CategoryRepository {
	r := &CategoryRepository{db: db, table: table}
	switch table {
	case models.VenueCategoryTable:
		r.links = []linkSpec{venueLinks, pendingVenueLinks}
		r.primaryRefs = []string{"venues", "pending_venues"}
	default:
		r.links = []linkSpec{eventLinks, pendingEventLinks}
	}
	return r
}

func (r *CategoryRepository) Table() string { return r.table }

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]models.Category, error) {
	query := r.db.WithContext(ctx).Table(r.table)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var categories []models.Category
	if err := query.Order("sort_order ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table, err)
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Take(&category).Error; err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

// Create appends the category after the current last one unless a sort order is given.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureUniqueName(tx, category.Name, 0); err != nil {
			return err
		}
		if category.SortOrder == 0 {
			var last struct{ Last int }
			if err := tx.Table(r.table).Select("COALESCE(MAX(sort_order), 0) AS last").Scan(&last).Error; err != nil {
				return fmt.Errorf("read max sort order: %w", err)
			}
			category.SortOrder = last.Last + 1
		}
		if err := tx.Table(r.table).Create(category).Error; err != nil {
			return fmt.Errorf("insert %s: %w", r.table, err)
		}
		return nil
	})
}

// Update rewrites the editable fields. isActive is left alone when nil.
func (r *CategoryRepository) Update(ctx context.Context, id uint, in models.Category, isActive *bool) (*models.Category, error) {
	updates := map[string]interface{}{
		"name":         in.Name,
		"display_name": in.DisplayName,
		"color":        in.Color,
		"icon":         in.Icon,
		"description":  in.Description,
		"updated_at":   time.Now(),
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if in.SortOrder != 0 {
		updates["sort_order"] = in.SortOrder
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Category
		if err := tx.Table(r.table).Where("id = ?", id).Take(&existing).Error; err != nil {
			return notFound(err)
		}
		if err := r.ensureUniqueName(tx, in.Name, id); err != nil {
			return err
		}
		if err := tx.Table(r.table).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update %s: %w", r.table, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *CategoryRepository) ensureUniqueName(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	err := tx.Table(r.table).Where("name = ? AND id <> ?", name, exceptID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("check category name: %w", err)
	}
	if count > 0 {
		return ErrCategoryExists
	}
	return nil
}

// Delete removes the category and every association pointing at it.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("DELETE FROM "+r.table+" WHERE id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete %s: %w", r.table, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		for _, l := range r.links {
			if err := tx.Exec("DELETE FROM "+l.table+" WHERE category_id = ?", id).Error; err != nil {
				return fmt.Errorf("delete %s: %w", l.table, err)
			}
		}
		for _, t := range r.primaryRefs {
			if err := tx.Table(t).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
				return fmt.Errorf("clear %s.category_id: %w", t, err)
			}
		}
		return nil
	})
}

// Reorder rewrites sort_order as 1..N following the order of ids. Categories
// missing from ids keep their relative order and are numbered after the listed
// ones. Any unknown or repeated id, or a failed write, leaves the previous
// order in place.
func (r *CategoryRepository) Reorder(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return ErrInvalidOrder
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == 0 {
			return ErrInvalidOrder
		}
		seen[id] = struct{}{}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategories(tx, r.table, ids); err != nil {
			return err
		}
		var rest []uint
		err := tx.Table(r.table).
			Where("id NOT IN ?", ids).
			Order("sort_order ASC").Order("id ASC").
			Pluck("id", &rest).Error
		if err != nil {
			return fmt.Errorf("read remaining %s: %w", r.table, err)
		}
		full := append(append(make([]uint, 0, len(ids)+len(rest)), ids...), rest...)

		now := time.Now()
		for i, id := range full {
			err := tx.Table(r.table).Where("id = ?", id).
				Updates(map[string]interface{}{"sort_order": i + 1, "updated_at": now}).Error
			if err != nil {
				return fmt.Errorf("reorder %s: %w", r.table, err)
			}
		}
		return nil
	})
}

// Move swaps the category with its neighbour in the current order.
// Moving the first one up or the last one down changes nothing.
func (r *CategoryRepository) Move(ctx context.Context, id uint, direction string) ([]models.Category, error) {
	if direction != MoveUp && direction != MoveDown {
		return nil, ErrInvalidDirection
	}

	categories, err := r.List(ctx, false)
	if err != nil {
		return nil, err
	}

	pos := -1
	for i := range categories {
		if categories[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, ErrNotFound
	}

	target := pos - 1
	if direction == MoveDown {
		target = pos + 1
	}
	if target < 0 || target >= len(categories) {
		return categories, nil
	}

	ids := make([]uint, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}
	ids[pos], ids[target] = ids[target], ids[pos]

	if err := r.Reorder(ctx, ids); err != nil {
		return nil, err
	}
	return r.List(ctx, false)
}
