package models

import "time"

const DefaultVenueRating = 4.0

// VenueContent is copied verbatim when a pending venue is approved.
type VenueContent struct {
	Name           string   `json:"name" gorm:"not null;size:255" binding:"required,max=255"`
	Description    string   `json:"description" gorm:"type:text"`
	Address        string   `json:"address" gorm:"size:500"`
	Phone          string   `json:"phone" gorm:"size:50"`
	Phone2         string   `json:"phone2" gorm:"size:50"`
	Email          string   `json:"email" gorm:"size:255" binding:"omitempty,email"`
	Website        string   `json:"website" gorm:"size:1000"`
	Capacity       *int     `json:"capacity" binding:"omitempty,min=0"`
	Amenities      string   `json:"amenities" gorm:"type:text"`
	ImageURL       string   `json:"imageUrl" gorm:"column:image_url;size:1000"`
	ImageURL2      string   `json:"imageUrl2" gorm:"column:image_url2;size:1000"`
	ImageURL3      string   `json:"imageUrl3" gorm:"column:image_url3;size:1000"`
	Latitude       *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" binding:"omitempty,longitude"`
	OpeningHours   string   `json:"openingHours" gorm:"size:500"`
	Rating         float64  `json:"rating" binding:"omitempty,min=0,max=5"`
	SubmitterName  string   `json:"submitterName" gorm:"size:255"`
	SubmitterEmail string   `json:"submitterEmail" gorm:"size:255" binding:"omitempty,email"`
	SubmitterPhone string   `json:"submitterPhone" gorm:"size:50"`
}

type Venue struct {
	ID uint `json:"id" gorm:"primaryKey"`
	VenueContent
	// CategoryID mirrors the first entry of the category links for older clients.
	CategoryID *uint     `json:"categoryId" gorm:"index"`
	IsActive   bool      `json:"isActive" gorm:"not null;index"`
	IsFeatured bool      `json:"isFeatured" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Categories []CategorySummary `json:"categories" gorm:"-"`
}

type VenueCategoryLink struct {
	VenueID    uint `json:"venueId" gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `json:"categoryId" gorm:"primaryKey;autoIncrement:false;index"`
}

type PendingVenue struct {
	ID uint `json:"id" gorm:"primaryKey"`
	VenueContent
	CategoryID *uint     `json:"categoryId"`
	Status     string    `json:"status" gorm:"not null;size:20;index"`
	IsActive   bool      `json:"isActive" gorm:"not null"`
	IsFeatured bool      `json:"isFeatured" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Categories []CategorySummary `json:"categories" gorm:"-"`
}

type PendingVenueCategoryLink struct {
	PendingVenueID uint `json:"pendingVenueId" gorm:"primaryKey;autoIncrement:false"`
	CategoryID     uint `json:"categoryId" gorm:"primaryKey;autoIncrement:false"`
}
