package models

import "time"

const (
	AspectSquare   = "square"
	AspectWide     = "wide"
	AspectTall     = "tall"
	AspectOriginal = "original"
)

type Announcement struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	Title            string     `json:"title" gorm:"not null;size:255"`
	Message          string     `json:"message" gorm:"type:text"` // may contain markup, rendered as-is by the client
	ImageURL         string     `json:"imageUrl" gorm:"column:image_url;size:1000"`
	ImageAspectRatio string     `json:"imageAspectRatio" gorm:"size:20"`
	ButtonText       string     `json:"buttonText" gorm:"size:100"`
	ButtonURL        string     `json:"buttonUrl" gorm:"column:button_url;size:1000"`
	IsActive         bool       `json:"isActive" gorm:"not null;index"`
	ShowOnce         bool       `json:"showOnce" gorm:"not null"`
	StartDate        *time.Time `json:"startDate"`
	EndDate          *time.Time `json:"endDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// VisibleAt reports whether the announcement should be shown at t.
func (a Announcement) VisibleAt(t time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartDate != nil && t.Before(*a.StartDate) {
		return false
	}
	if a.EndDate != nil && t.After(*a.EndDate) {
		return false
	}
	return true
}
