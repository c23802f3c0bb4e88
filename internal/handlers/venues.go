package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
)

const metersPerMile = 1609.34

// VenuesHandler serves the venue search endpoints
type VenuesHandler struct {
	Store  store.Store
	Logger *zap.Logger
}

// NewVenuesHandler creates a venues handler with dependencies
func NewVenuesHandler(s store.Store, logger *zap.Logger) *VenuesHandler {
	return &VenuesHandler{
		Store:  s,
		Logger: logger,
	}
}

// SearchVenues handles GET /venues
// Query parameters: query, limit, offset. When lat and lon are given the
// search switches to a geo search around that point.
func (h *VenuesHandler) SearchVenues(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	offset, err := parseOffset(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lat, lon, hasPoint, err := parseLatLon(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if hasPoint {
		return h.nearby(c, lat, lon, limit)
	}

	venues, err := h.Store.SearchVenues(c.Context(), store.VenueFilter{
		Query:  c.Query("query"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.Logger.Error("Failed to search venues", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch venues",
		})
	}
	if venues == nil {
		venues = []models.Venue{}
	}

	return c.JSON(fiber.Map{
		"data":  venues,
		"count": len(venues),
	})
}

// NearbyVenues handles GET /venues/nearby; lat and lon are required
func (h *VenuesHandler) NearbyVenues(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lat, lon, hasPoint, err := parseLatLon(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !hasPoint {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "lat and lon are required for nearby search",
		})
	}

	return h.nearby(c, lat, lon, limit)
}

func (h *VenuesHandler) nearby(c *fiber.Ctx, lat, lon float64, limit int) error {
	radiusMiles, err := parseRadiusMiles(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	venues, err := h.Store.SearchVenuesNearby(c.Context(), lat, lon, radiusMiles*metersPerMile, limit)
	if err != nil {
		h.Logger.Error("Failed to search nearby venues",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch venues",
		})
	}
	if venues == nil {
		venues = []models.Venue{}
	}

	return c.JSON(fiber.Map{
		"data":  venues,
		"count": len(venues),
	})
}

// GetVenue handles GET /venues/:id
func (h *VenuesHandler) GetVenue(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	venue, err := h.Store.GetVenue(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Venue not found",
			})
		}
		h.Logger.Error("Failed to get venue",
			zap.String("venue_id", id.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch venue",
		})
	}

	return c.JSON(fiber.Map{"data": venue})
}
