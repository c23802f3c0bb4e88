package models

import (
	"time"

	"github.com/google/uuid"
)

// Event status values
const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
)

// Event is a single concert. ExternalID carries the catalog's own identifier
// and is the dedup key on re-sync; attributes are never refreshed afterwards.
type Event struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ExternalID *string    `gorm:"uniqueIndex" json:"external_id"`
	ArtistName string     `gorm:"not null" json:"artist_name"`
	Genre      *string    `json:"genre"`
	VenueID    *uuid.UUID `gorm:"type:uuid" json:"venue_id"`
	Venue      *Venue     `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
	EventDate  time.Time  `gorm:"not null" json:"event_date"`
	URL        *string    `json:"url"`
	Status     string     `gorm:"not null;default:'active'" json:"status"`
	CreatedAt  time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}
