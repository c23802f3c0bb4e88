package handlers

import (
	"context"
	"math"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
)

func newVenuesApp(s store.Store) *fiber.App {
	app := fiber.New()
	h := NewVenuesHandler(s, zap.NewNop())
	app.Get("/venues", h.SearchVenues)
	app.Get("/venues/nearby", h.NearbyVenues)
	app.Get("/venues/:id", h.GetVenue)
	return app
}

func TestSearchVenues(t *testing.T) {
	t.Parallel()

	t.Run("name search without coordinates", func(t *testing.T) {
		t.Parallel()

		var gotFilter store.VenueFilter
		nearbyCalled := false
		s := &fakeStore{
			searchVenuesFn: func(_ context.Context, filter store.VenueFilter) ([]models.Venue, error) {
				gotFilter = filter
				return []models.Venue{{ID: uuid.New(), Name: "Garden Hall"}}, nil
			},
			searchVenuesNearbyFn: func(context.Context, float64, float64, float64, int) ([]models.Venue, error) {
				nearbyCalled = true
				return nil, nil
			},
		}

		status, body := doRequest(t, newVenuesApp(s), http.MethodGet, "/venues?query=garden&limit=7")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if gotFilter.Query != "garden" || gotFilter.Limit != 7 {
			t.Errorf("unexpected filter: %+v", gotFilter)
		}
		if nearbyCalled {
			t.Errorf("expected plain search, not geo search")
		}
		if body["count"].(float64) != 1 {
			t.Errorf("expected count 1, got %v", body["count"])
		}
	})

	t.Run("coordinates switch to geo search", func(t *testing.T) {
		t.Parallel()

		var gotLat, gotLon, gotRadius float64
		var gotLimit int
		s := &fakeStore{
			searchVenuesNearbyFn: func(_ context.Context, lat, lon, radiusMeters float64, limit int) ([]models.Venue, error) {
				gotLat, gotLon, gotRadius, gotLimit = lat, lon, radiusMeters, limit
				return nil, nil
			},
		}

		status, _ := doRequest(t, newVenuesApp(s), http.MethodGet, "/venues?lat=40.7&lon=-74.0&radius=10&limit=5")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if gotLat != 40.7 || gotLon != -74.0 || gotLimit != 5 {
			t.Errorf("unexpected geo args: lat=%v lon=%v limit=%d", gotLat, gotLon, gotLimit)
		}
		if math.Abs(gotRadius-10*metersPerMile) > 0.01 {
			t.Errorf("expected radius %v meters, got %v", 10*metersPerMile, gotRadius)
		}
	})

	t.Run("radius defaults to fifty miles", func(t *testing.T) {
		t.Parallel()

		var gotRadius float64
		s := &fakeStore{
			searchVenuesNearbyFn: func(_ context.Context, _, _, radiusMeters float64, _ int) ([]models.Venue, error) {
				gotRadius = radiusMeters
				return nil, nil
			},
		}

		status, _ := doRequest(t, newVenuesApp(s), http.MethodGet, "/venues?lat=40.7&lon=-74.0")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if math.Abs(gotRadius-50*metersPerMile) > 0.01 {
			t.Errorf("expected default radius %v meters, got %v", 50*metersPerMile, gotRadius)
		}
	})

	t.Run("rejects half a coordinate pair", func(t *testing.T) {
		t.Parallel()

		for _, target := range []string{"/venues?lat=40.7", "/venues?lon=-74.0"} {
			status, _ := doRequest(t, newVenuesApp(&fakeStore{}), http.MethodGet, target)
			if status != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", target, status)
			}
		}
	})

	t.Run("rejects out-of-range coordinates and radius", func(t *testing.T) {
		t.Parallel()

		targets := []string{
			"/venues?lat=91&lon=0",
			"/venues?lat=0&lon=181",
			"/venues?lat=40.7&lon=-74.0&radius=0.5",
			"/venues?lat=40.7&lon=-74.0&radius=501",
		}
		for _, target := range targets {
			status, _ := doRequest(t, newVenuesApp(&fakeStore{}), http.MethodGet, target)
			if status != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", target, status)
			}
		}
	})
}

func TestNearbyVenues(t *testing.T) {
	t.Parallel()

	t.Run("requires coordinates", func(t *testing.T) {
		t.Parallel()

		status, body := doRequest(t, newVenuesApp(&fakeStore{}), http.MethodGet, "/venues/nearby")
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
		if body["error"] == "" {
			t.Errorf("expected error message")
		}
	})

	t.Run("returns venues around the point", func(t *testing.T) {
		t.Parallel()

		s := &fakeStore{
			searchVenuesNearbyFn: func(context.Context, float64, float64, float64, int) ([]models.Venue, error) {
				return []models.Venue{{ID: uuid.New(), Name: "Near Hall"}, {ID: uuid.New(), Name: "Far Hall"}}, nil
			},
		}

		status, body := doRequest(t, newVenuesApp(s), http.MethodGet, "/venues/nearby?lat=40.7&lon=-74.0")
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if body["count"].(float64) != 2 {
			t.Errorf("expected count 2, got %v", body["count"])
		}
	})
}

func TestGetVenue(t *testing.T) {
	t.Parallel()

	t.Run("returns the venue", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		s := &fakeStore{
			getVenueFn: func(_ context.Context, got uuid.UUID) (*models.Venue, error) {
				if got != id {
					t.Errorf("expected lookup for %s, got %s", id, got)
				}
				return &models.Venue{ID: id, Name: "Garden Hall"}, nil
			},
		}

		status, body := doRequest(t, newVenuesApp(s), http.MethodGet, "/venues/"+id.String())
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		data := body["data"].(map[string]any)
		if data["name"] != "Garden Hall" {
			t.Errorf("unexpected payload: %v", data)
		}
	})

	t.Run("invalid id returns 400", func(t *testing.T) {
		t.Parallel()

		status, _ := doRequest(t, newVenuesApp(&fakeStore{}), http.MethodGet, "/venues/not-a-uuid")
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		t.Parallel()

		status, _ := doRequest(t, newVenuesApp(&fakeStore{}), http.MethodGet, "/venues/"+uuid.NewString())
		if status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
	})
}
