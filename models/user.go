// File: /models/user.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"not null;size:255"`
	Email           string         `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone           string         `json:"phone" gorm:"size:50"`
	Password        string         `json:"-" gorm:"not null;size:255"`
	BirthYear       *int           `json:"birthYear"`
	Gender          string         `json:"gender" gorm:"size:20"`
	District        string         `json:"district" gorm:"size:100"`
	Interests       datatypes.JSON `json:"interests"`
	IsActive        bool           `json:"isActive" gorm:"not null"`
	EmailVerified   bool           `json:"emailVerified" gorm:"not null"`
	ProfileImageURL string         `json:"profileImageUrl" gorm:"column:profile_image_url;size:1000"`
	LastLoginAt     *time.Time     `json:"lastLoginAt"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// Favorite is one event on a user's server-side favorite set.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;uniqueIndex:uk_favorites_user_event"`
	EventID   uint      `json:"eventId" gorm:"not null;uniqueIndex:uk_favorites_user_event;index"`
	CreatedAt time.Time `json:"createdAt"`
}
