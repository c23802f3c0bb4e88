package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
)

// GormStore implements Store on top of a GORM PostgreSQL connection
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given database connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindVenueByNameCity looks up a venue by its exact (name, city) pair.
// The match is case-sensitive and an empty city string never matches a NULL
// city column.
func (s *GormStore) FindVenueByNameCity(ctx context.Context, name, city string) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).
		Where("name = ? AND city = ?", name, city).
		First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}
	return &venue, nil
}

func (s *GormStore) CreateVenue(ctx context.Context, venue *models.Venue) error {
	if err := s.db.WithContext(ctx).Create(venue).Error; err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

func (s *GormStore) FindEventByExternalID(ctx context.Context, externalID string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find event: %w", err)
	}
	return &event, nil
}

func (s *GormStore) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (s *GormStore) CreatePriceEntry(ctx context.Context, entry *models.PriceEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create price entry: %w", err)
	}
	return nil
}

// SearchEvents returns active events matching the filter, ordered by event
// date ascending with the venue preloaded
func (s *GormStore) SearchEvents(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	query := s.db.WithContext(ctx).
		Preload("Venue").
		Where("status = ?", models.EventStatusActive)

	if filter.Query != "" {
		query = query.Where("artist_name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Genre != "" {
		query = query.Where("genre ILIKE ?", "%"+filter.Genre+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("event_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("event_date <= ?", *filter.DateTo)
	}

	var events []models.Event
	err := query.
		Order("event_date ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	return events, nil
}

func (s *GormStore) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Venue").
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// ListPriceHistory returns the full price history for an event, oldest first
func (s *GormStore) ListPriceHistory(ctx context.Context, eventID uuid.UUID) ([]models.PriceEntry, error) {
	var entries []models.PriceEntry
	err := s.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("recorded_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list price history: %w", err)
	}
	return entries, nil
}

// EventsByArtist returns upcoming active events whose artist name contains
// the given name, ordered by event date ascending
func (s *GormStore) EventsByArtist(ctx context.Context, artistName string, now time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).
		Preload("Venue").
		Where("artist_name ILIKE ?", "%"+artistName+"%").
		Where("status = ?", models.EventStatusActive).
		Where("event_date >= ?", now).
		Order("event_date ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artist events: %w", err)
	}
	return events, nil
}

// SearchVenues returns venues matching the query against name or city,
// ordered by name
func (s *GormStore) SearchVenues(ctx context.Context, filter VenueFilter) ([]models.Venue, error) {
	query := s.db.WithContext(ctx).Model(&models.Venue{})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ?", pattern, pattern)
	}

	var venues []models.Venue
	err := query.
		Order("name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	return venues, nil
}

// SearchVenuesNearby returns venues within radiusMeters of the given point,
// nearest first. Venues without coordinates are excluded.
func (s *GormStore) SearchVenuesNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.Venue, error) {
	var venues []models.Venue
	err := s.db.WithContext(ctx).Raw(`
		SELECT *
		FROM venues
		WHERE latitude IS NOT NULL
		  AND longitude IS NOT NULL
		  AND ST_DWithin(
			ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography,
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography,
			?
		  )
		ORDER BY ST_SetSRID(ST_MakePoint(longitude, latitude), 4326)::geography <->
			ST_SetSRID(ST_MakePoint(?, ?), 4326)::geography
		LIMIT ?
	`, lon, lat, radiusMeters, lon, lat, limit).Scan(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby venues: %w", err)
	}
	return venues, nil
}

func (s *GormStore) GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	var venue models.Venue
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&venue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}
