package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// EventFilter narrows an event search. Zero values mean "no filter".
type EventFilter struct {
	Query    string
	Genre    string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// VenueFilter narrows a venue search
type VenueFilter struct {
	Query  string
	Limit  int
	Offset int
}

// Store is the storage backend for both the sync worker and the read API.
// The sync worker only uses the lookup/insert operations; handlers use the
// search and list operations.
type Store interface {
	// Sync worker operations
	FindVenueByNameCity(ctx context.Context, name, city string) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	FindEventByExternalID(ctx context.Context, externalID string) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	CreatePriceEntry(ctx context.Context, entry *models.PriceEntry) error

	// Read API operations
	SearchEvents(ctx context.Context, filter EventFilter) ([]models.Event, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	ListPriceHistory(ctx context.Context, eventID uuid.UUID) ([]models.PriceEntry, error)
	EventsByArtist(ctx context.Context, artistName string, now time.Time) ([]models.Event, error)
	SearchVenues(ctx context.Context, filter VenueFilter) ([]models.Venue, error)
	SearchVenuesNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.Venue, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error)
}
