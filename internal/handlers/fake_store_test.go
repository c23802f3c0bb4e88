package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
)

// fakeStore implements store.Store with per-method hooks. Unset hooks return
// empty results so each test wires only the calls it cares about.
type fakeStore struct {
	searchEventsFn       func(ctx context.Context, filter store.EventFilter) ([]models.Event, error)
	getEventFn           func(ctx context.Context, id uuid.UUID) (*models.Event, error)
	listPriceHistoryFn   func(ctx context.Context, eventID uuid.UUID) ([]models.PriceEntry, error)
	eventsByArtistFn     func(ctx context.Context, artistName string, now time.Time) ([]models.Event, error)
	searchVenuesFn       func(ctx context.Context, filter store.VenueFilter) ([]models.Venue, error)
	searchVenuesNearbyFn func(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.Venue, error)
	getVenueFn           func(ctx context.Context, id uuid.UUID) (*models.Venue, error)
}

func (f *fakeStore) FindVenueByNameCity(context.Context, string, string) (*models.Venue, error) {
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateVenue(context.Context, *models.Venue) error { return nil }

func (f *fakeStore) FindEventByExternalID(context.Context, string) (*models.Event, error) {
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateEvent(context.Context, *models.Event) error { return nil }

func (f *fakeStore) CreatePriceEntry(context.Context, *models.PriceEntry) error { return nil }

func (f *fakeStore) SearchEvents(ctx context.Context, filter store.EventFilter) ([]models.Event, error) {
	if f.searchEventsFn == nil {
		return nil, nil
	}
	return f.searchEventsFn(ctx, filter)
}

func (f *fakeStore) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	if f.getEventFn == nil {
		return nil, store.ErrNotFound
	}
	return f.getEventFn(ctx, id)
}

func (f *fakeStore) ListPriceHistory(ctx context.Context, eventID uuid.UUID) ([]models.PriceEntry, error) {
	if f.listPriceHistoryFn == nil {
		return nil, nil
	}
	return f.listPriceHistoryFn(ctx, eventID)
}

func (f *fakeStore) EventsByArtist(ctx context.Context, artistName string, now time.Time) ([]models.Event, error) {
	if f.eventsByArtistFn == nil {
		return nil, nil
	}
	return f.eventsByArtistFn(ctx, artistName, now)
}

func (f *fakeStore) SearchVenues(ctx context.Context, filter store.VenueFilter) ([]models.Venue, error) {
	if f.searchVenuesFn == nil {
		return nil, nil
	}
	return f.searchVenuesFn(ctx, filter)
}

func (f *fakeStore) SearchVenuesNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]models.Venue, error) {
	if f.searchVenuesNearbyFn == nil {
		return nil, nil
	}
	return f.searchVenuesNearbyFn(ctx, lat, lon, radiusMeters, limit)
}

func (f *fakeStore) GetVenue(ctx context.Context, id uuid.UUID) (*models.Venue, error) {
	if f.getVenueFn == nil {
		return nil, store.ErrNotFound
	}
	return f.getVenueFn(ctx, id)
}
