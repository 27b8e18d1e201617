package models

import "time"

type Review struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	EventID     uint    `json:"eventId" gorm:"not null;index"`
	Rating      int     `json:"rating" gorm:"not null"`
	Comment     *string `json:"comment" gorm:"type:text"`
	IsAnonymous bool    `json:"isAnonymous" gorm:"not null"`
	UserName    string  `json:"userName" gorm:"not null;size:255;index"`
	// UserID is set when the review was written with a user token.
	UserID    *uint     `json:"userId,omitempty" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicName hides the reviewer for anonymous reviews.
func (r Review) PublicName() string {
	if r.IsAnonymous {
		return "Anonim"
	}
	return r.UserName
}

type ReviewSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}
