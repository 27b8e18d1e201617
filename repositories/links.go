package repositories

import (
	"errors"
	"fmt"

	"etkinlik-api/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrUnknownCategory = errors.New("unknown category")
)

// linkSpec describes one owner<->category join table.
type linkSpec struct {
	table         string
	ownerColumn   string
	categoryTable string
}

var (
	eventLinks        = linkSpec{"event_categories", "event_id", models.EventCategoryTable}
	pendingEventLinks = linkSpec{"pending_event_categories", "pending_event_id", models.EventCategoryTable}
	venueLinks        = linkSpec{"venue_category_links", "venue_id", models.VenueCategoryTable}
	pendingVenueLinks = linkSpec{"pending_venue_category_links", "pending_venue_id", models.VenueCategoryTable}
)

type categoryRow struct {
	OwnerID     uint
	ID          uint
	Name        string
	DisplayName string
	Color       string
	Icon        string
}

// load fetches the categories of every owner in ids with a single join query.
func (s linkSpec) load(db *gorm.DB, ids []uint) (map[uint][]models.CategorySummary, error) {
	out := make(map[uint][]models.CategorySummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []categoryRow
	err := db.Table(s.table+" AS l").
		Select("l."+s.ownerColumn+" AS owner_id, c.id, c.name, c.display_name, c.color, c.icon").
		Joins("JOIN "+s.categoryTable+" AS c ON c.id = l.category_id").
		Where("l."+s.ownerColumn+" IN ?", ids).
		Order("c.sort_order ASC, c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.table, err)
	}

	for _, row := range rows {
		out[row.OwnerID] = append(out[row.OwnerID], models.CategorySummary{
			ID:          row.ID,
			Name:        row.Name,
			DisplayName: row.DisplayName,
			Color:       row.Color,
			Icon:        row.Icon,
		})
	}
	return out, nil
}

func (s linkSpec) categoryIDs(tx *gorm.DB, ownerID uint) ([]uint, error) {
	var ids []uint
	err := tx.Table(s.table).
		Where(s.ownerColumn+" = ?", ownerID).
		Order("category_id ASC").
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table, err)
	}
	return ids, nil
}

func (s linkSpec) insert(tx *gorm.DB, ownerID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		rows = append(rows, map[string]interface{}{
			s.ownerColumn: ownerID,
			"category_id": cid,
		})
	}
	if err := tx.Table(s.table).Create(rows).Error; err != nil {
		return fmt.Errorf("write %s: %w", s.table, err)
	}
	return nil
}

func (s linkSpec) deleteFor(tx *gorm.DB, ownerID uint) error {
	if err := tx.Exec("DELETE FROM "+s.table+" WHERE "+s.ownerColumn+" = ?", ownerID).Error; err != nil {
		return fmt.Errorf("delete %s: %w", s.table, err)
	}
	return nil
}

func (s linkSpec) replace(tx *gorm.DB, ownerID uint, categoryIDs []uint) error {
	if err := s.deleteFor(tx, ownerID); err != nil {
		return err
	}
	return s.insert(tx, ownerID, categoryIDs)
}

// ensureCategories fails with ErrUnknownCategory when any id is missing from table.
func ensureCategories(db *gorm.DB, table string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := db.Table(table).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if count != int64(len(ids)) {
		return ErrUnknownCategory
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
