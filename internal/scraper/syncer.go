package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
	"github.com/shellmatthewk/concert-ticket-checker/internal/ticketmaster"
	"github.com/shellmatthewk/concert-ticket-checker/internal/utils"
)

const (
	// SourceLabel tags every price entry recorded from this catalog
	SourceLabel = "Ticketmaster"

	listingTypePrimary = "primary"

	// pause between catalog pages, a courtesy rate limit
	defaultPageDelay = 200 * time.Millisecond
)

// Catalog fetches one page of events from the external ticketing catalog
type Catalog interface {
	FetchEvents(ctx context.Context, params ticketmaster.SearchParams) ([]ticketmaster.Event, error)
}

// Storage is the subset of store operations the syncer needs
type Storage interface {
	FindVenueByNameCity(ctx context.Context, name, city string) (*models.Venue, error)
	CreateVenue(ctx context.Context, venue *models.Venue) error
	FindEventByExternalID(ctx context.Context, externalID string) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	CreatePriceEntry(ctx context.Context, entry *models.PriceEntry) error
}

// Options are the filters for one sync run. MaxPages defaults to 1.
type Options struct {
	Keyword   string
	City      string
	StateCode string
	MaxPages  int
}

// Summary reports what one sync run created. Counts can be lower than the
// number of catalog records observed; per-record failures only show in logs.
type Summary struct {
	VenuesCreated  int
	EventsCreated  int
	PricesRecorded int
}

// Syncer ingests events, venues and price snapshots from the catalog into
// storage. It runs single-threaded: events are processed strictly in order so
// venue lookups observe venues inserted earlier in the same run. Venue dedup
// is lookup-then-insert with no unique constraint behind it, so concurrent
// sync runs over overlapping data can create duplicate venues; the worker is
// designed to run as one scheduled job at a time.
type Syncer struct {
	catalog   Catalog
	store     Storage
	logger    *zap.Logger
	pageDelay time.Duration
}

// NewSyncer creates a sync worker with its collaborators injected
func NewSyncer(catalog Catalog, storage Storage, logger *zap.Logger) *Syncer {
	return &Syncer{
		catalog:   catalog,
		store:     storage,
		logger:    logger,
		pageDelay: defaultPageDelay,
	}
}

// Run fetches up to opts.MaxPages catalog pages and ingests every event.
// A catalog fetch failure aborts the whole run with no partial summary.
// Per-record storage failures are logged and absorbed; they reduce the counts
// but never abort the batch. An empty page ends paging early.
func (s *Syncer) Run(ctx context.Context, opts Options) (Summary, error) {
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var summary Summary

	for page := 0; page < maxPages; page++ {
		events, err := s.catalog.FetchEvents(ctx, ticketmaster.SearchParams{
			Keyword:   opts.Keyword,
			City:      opts.City,
			StateCode: opts.StateCode,
			Page:      page,
		})
		if err != nil {
			return Summary{}, fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
		}

		if len(events) == 0 {
			break
		}

		for i := range events {
			if err := s.processEvent(ctx, &events[i], &summary); err != nil {
				s.logger.Error("Error processing event",
					zap.String("event", events[i].Name),
					zap.Error(err),
				)
			}
		}

		if page < maxPages-1 {
			select {
			case <-time.After(s.pageDelay):
			case <-ctx.Done():
				return Summary{}, ctx.Err()
			}
		}
	}

	s.logger.Info("Sync complete",
		zap.Int("venues_created", summary.VenuesCreated),
		zap.Int("events_created", summary.EventsCreated),
		zap.Int("prices_recorded", summary.PricesRecorded),
	)

	return summary, nil
}

// processEvent resolves one catalog entry into venue, event and price rows.
// A returned error means the entry was skipped entirely; errors on individual
// steps that should not block the rest of the entry are logged here instead.
func (s *Syncer) processEvent(ctx context.Context, ev *ticketmaster.Event, summary *Summary) error {
	venueID := s.resolveVenue(ctx, ev, summary)

	artistName := ev.FirstAttractionName()
	if artistName == "" {
		artistName = ev.Name
	}

	var genre *string
	if name := ev.FirstGenreName(); name != "" {
		genre = &name
	}

	var eventID uuid.UUID

	existing, err := s.store.FindEventByExternalID(ctx, ev.ID)
	switch {
	case err == nil:
		// Seen before: reuse the identity, no attribute refresh
		eventID = existing.ID

	case errors.Is(err, store.ErrNotFound):
		eventDate, dateErr := parseEventDate(ev.Dates.Start)
		if dateErr != nil {
			return dateErr
		}

		externalID := ev.ID
		var url *string
		if ev.URL != "" {
			url = &ev.URL
		}

		record := &models.Event{
			ExternalID: &externalID,
			ArtistName: artistName,
			Genre:      genre,
			VenueID:    venueID,
			EventDate:  eventDate,
			URL:        url,
			Status:     models.EventStatusActive,
		}
		if err := s.store.CreateEvent(ctx, record); err != nil {
			s.logger.Error("Failed to insert event",
				zap.String("event", ev.Name),
				zap.Error(err),
			)
			// Skip the entry; no price snapshot without a resolved event
			return nil
		}
		eventID = record.ID
		summary.EventsCreated++

	default:
		return fmt.Errorf("event lookup failed: %w", err)
	}

	priceRange := ev.FirstPriceRange()
	if priceRange == nil {
		return nil
	}

	minPrice := priceRange.Min
	maxPrice := priceRange.Max
	avgPrice := (minPrice + maxPrice) / 2
	listingType := listingTypePrimary

	entry := &models.PriceEntry{
		EventID:     eventID,
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		AvgPrice:    &avgPrice,
		Source:      SourceLabel,
		ListingType: &listingType,
	}
	if err := s.store.CreatePriceEntry(ctx, entry); err != nil {
		s.logger.Error("Failed to insert price entry",
			zap.String("event", ev.Name),
			zap.Error(err),
		)
		return nil
	}
	summary.PricesRecorded++

	return nil
}

// resolveVenue returns the storage identity for the entry's first embedded
// venue, inserting it when unseen. Any failure leaves the event without a
// venue reference rather than blocking its creation.
func (s *Syncer) resolveVenue(ctx context.Context, ev *ticketmaster.Event, summary *Summary) *uuid.UUID {
	venue := ev.FirstVenue()
	if venue == nil {
		return nil
	}

	// Lookup always uses the city string, empty when the catalog omits it.
	// The insert below stores NULL for an absent city, so a city-less venue
	// never matches its own earlier insert. Quirk preserved from the original
	// ingestion behavior.
	cityName := ""
	if venue.City != nil {
		cityName = venue.City.Name
	}

	existing, err := s.store.FindVenueByNameCity(ctx, venue.Name, cityName)
	if err == nil {
		return &existing.ID
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("Failed to look up venue",
			zap.String("venue", venue.Name),
			zap.Error(err),
		)
		return nil
	}

	var lat, lon *float64
	if venue.Location != nil {
		lat, lon = utils.ParsePoint(venue.Location.Latitude, venue.Location.Longitude)
	}

	var city, state, timezone *string
	if cityName != "" {
		city = &cityName
	}
	if venue.State != nil && venue.State.StateCode != "" {
		state = &venue.State.StateCode
	}
	if venue.Timezone != "" {
		timezone = &venue.Timezone
	}

	record := &models.Venue{
		Name:      venue.Name,
		City:      city,
		State:     state,
		Latitude:  lat,
		Longitude: lon,
		Timezone:  timezone,
	}
	if err := s.store.CreateVenue(ctx, record); err != nil {
		s.logger.Error("Failed to insert venue",
			zap.String("venue", venue.Name),
			zap.Error(err),
		)
		return nil
	}
	summary.VenuesCreated++

	return &record.ID
}

// parseEventDate prefers the precise timestamp and falls back to the
// date-only field when the catalog omits it
func parseEventDate(start ticketmaster.StartDate) (time.Time, error) {
	if start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, start.DateTime); err == nil {
			return t, nil
		}
	}
	if start.LocalDate != "" {
		if t, err := time.Parse("2006-01-02", start.LocalDate); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("event has no parseable start date (dateTime=%q, localDate=%q)",
		start.DateTime, start.LocalDate)
}
