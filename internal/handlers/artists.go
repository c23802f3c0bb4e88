package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
)

// ArtistsHandler serves artist tour comparison lookups
type ArtistsHandler struct {
	Store  store.Store
	Logger *zap.Logger
}

// NewArtistsHandler creates an artists handler with dependencies
func NewArtistsHandler(s store.Store, logger *zap.Logger) *ArtistsHandler {
	return &ArtistsHandler{
		Store:  s,
		Logger: logger,
	}
}

// GetArtistEvents handles GET /artists/:name/events, listing the artist's
// upcoming active events across all venues
func (h *ArtistsHandler) GetArtistEvents(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "artist name is required",
		})
	}

	events, err := h.Store.EventsByArtist(c.Context(), name, time.Now().UTC())
	if err != nil {
		h.Logger.Error("Failed to fetch artist events",
			zap.String("artist", name),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch artist events",
		})
	}
	if events == nil {
		events = []models.Event{}
	}

	return c.JSON(fiber.Map{
		"data":        events,
		"count":       len(events),
		"artist_name": name,
	})
}
