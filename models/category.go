package models

import "time"

const (
	EventCategoryTable = "categories"
	VenueCategoryTable = "venue_categories"
)

// Category is a tag for events. Venue tags use the same shape in their own table.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	DisplayName string    `json:"displayName" gorm:"not null;size:255"` // "/" separates display lines
	Color       string    `json:"color" gorm:"size:32"`
	Icon        string    `json:"icon" gorm:"size:64"`
	SortOrder   int       `json:"sortOrder" gorm:"not null;index"`
	IsActive    bool      `json:"isActive" gorm:"not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Category) TableName() string { return EventCategoryTable }

// VenueCategory only exists so the venue tag table migrates with its own index names.
type VenueCategory struct {
	Category
}

func (VenueCategory) TableName() string { return VenueCategoryTable }

// CategorySummary is what listings attach to an event or venue.
type CategorySummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
}

// CategoryOrder is one entry of a reorder request.
type CategoryOrder struct {
	ID        uint `json:"id" binding:"required"`
	SortOrder int  `json:"sortOrder"`
}
