package models

import "time"

const (
	SubmissionStatusPending = "pending"
)

// EventContent holds every field that is copied verbatim when a pending
// submission is promoted to a live event.
type EventContent struct {
	Title            string    `json:"title" gorm:"not null;size:255" binding:"required,max=255"`
	Description      string    `json:"description" gorm:"type:text"`
	StartDate        string    `json:"startDate" gorm:"not null;size:10;index" binding:"required,datetime=2006-01-02"`
	EndDate          string    `json:"endDate" gorm:"size:10" binding:"omitempty,datetime=2006-01-02"`
	StartTime        string    `json:"startTime" gorm:"size:5" binding:"omitempty,datetime=15:04"`
	EndTime          string    `json:"endTime" gorm:"size:5" binding:"omitempty,datetime=15:04"`
	Location         string    `json:"location" gorm:"size:255"`
	Address          string    `json:"address" gorm:"size:500"`
	Latitude         *float64  `json:"latitude" binding:"omitempty,latitude"`
	Longitude        *float64  `json:"longitude" binding:"omitempty,longitude"`
	OrganizerName    string    `json:"organizerName" gorm:"size:255"`
	OrganizerContact string    `json:"organizerContact" gorm:"size:255"`
	Capacity         *int      `json:"capacity" binding:"omitempty,min=0"`
	Price            string    `json:"price" gorm:"size:100"`
	ImageURL         string    `json:"imageUrl" gorm:"column:image_url;size:1000"`
	ImageURL2        string    `json:"imageUrl2" gorm:"column:image_url2;size:1000"`
	ImageURL3        string    `json:"imageUrl3" gorm:"column:image_url3;size:1000"`
	MediaFiles       MediaList `json:"mediaFiles" gorm:"type:text" binding:"omitempty,dive"`
	WebsiteURL       string    `json:"websiteUrl" gorm:"column:website_url;size:1000"`
	TicketURL        string    `json:"ticketUrl" gorm:"column:ticket_url;size:1000"`
	Tags             TagList   `json:"tags" gorm:"type:text"`
	ParticipantType  string    `json:"participantType" gorm:"size:100"`
	SubmitterName    string    `json:"submitterName" gorm:"size:255"`
	SubmitterEmail   string    `json:"submitterEmail" gorm:"size:255" binding:"omitempty,email"`
	SubmitterPhone   string    `json:"submitterPhone" gorm:"size:50"`
}

type Event struct {
	ID uint `json:"id" gorm:"primaryKey"`
	EventContent
	IsActive   bool      `json:"isActive" gorm:"not null;index"`
	IsFeatured bool      `json:"isFeatured" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Categories []CategorySummary `json:"categories" gorm:"-"`
}

// EventCategory links a live event to one of its 1-3 categories.
type EventCategory struct {
	EventID    uint `json:"eventId" gorm:"primaryKey;autoIncrement:false"`
	CategoryID uint `json:"categoryId" gorm:"primaryKey;autoIncrement:false;index"`
}

type PendingEvent struct {
	ID uint `json:"id" gorm:"primaryKey"`
	EventContent
	Status     string    `json:"status" gorm:"not null;size:20;index"`
	IsActive   bool      `json:"isActive" gorm:"not null"`
	IsFeatured bool      `json:"isFeatured" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Categories []CategorySummary `json:"categories" gorm:"-"`
}

type PendingEventCategory struct {
	PendingEventID uint `json:"pendingEventId" gorm:"primaryKey;autoIncrement:false"`
	CategoryID     uint `json:"categoryId" gorm:"primaryKey;autoIncrement:false"`
}
