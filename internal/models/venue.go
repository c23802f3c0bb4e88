package models

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a physical concert location. The sync worker identifies venues by
// their (name, city) pair since the catalog provides no stable venue key.
type Venue struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	City      *string   `json:"city"`
	State     *string   `json:"state"`
	Latitude  *float64  `gorm:"type:double precision" json:"latitude"`
	Longitude *float64  `gorm:"type:double precision" json:"longitude"`
	Timezone  *string   `json:"timezone"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
}

func (Venue) TableName() string {
	return "venues"
}
