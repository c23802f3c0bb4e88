package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceEntry is one append-only observation of an event's price range.
// History accumulates indefinitely; entries are never deduplicated or updated.
type PriceEntry struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EventID        uuid.UUID `gorm:"type:uuid;not null;index" json:"event_id"`
	Event          Event     `gorm:"foreignKey:EventID" json:"event,omitempty"`
	MinPrice       *float64  `gorm:"type:numeric(10,2)" json:"min_price"`
	MaxPrice       *float64  `gorm:"type:numeric(10,2)" json:"max_price"`
	AvgPrice       *float64  `gorm:"type:numeric(10,2)" json:"avg_price"`
	Source         string    `gorm:"not null" json:"source"`
	ListingType    *string   `json:"listing_type"`
	SectionDetails []byte    `gorm:"type:jsonb" json:"section_details,omitempty"`
	RecordedAt     time.Time `gorm:"not null;default:now()" json:"recorded_at"`
}

func (PriceEntry) TableName() string {
	return "price_history"
}
