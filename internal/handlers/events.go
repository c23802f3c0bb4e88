package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
)

// EventsHandler serves the event search and price history endpoints
type EventsHandler struct {
	Store  store.Store
	Logger *zap.Logger
}

// NewEventsHandler creates an events handler with dependencies
func NewEventsHandler(s store.Store, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{
		Store:  s,
		Logger: logger,
	}
}

// EventWithHistory is the response shape for GET /events/:id/prices
type EventWithHistory struct {
	models.Event
	PriceHistory []models.PriceEntry `json:"price_history"`
}

// SearchEvents handles GET /events
// Query parameters:
//   - query (optional): substring match on artist name
//   - genre (optional): substring match on genre
//   - dateFrom, dateTo (optional): RFC 3339 bounds on event date
//   - limit (optional, default 20, max 100), offset (optional, default 0)
func (h *EventsHandler) SearchEvents(c *fiber.Ctx) error {
	limit, err := parseLimit(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	offset, err := parseOffset(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dateFrom, err := parseDate(c, "dateFrom")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	dateTo, err := parseDate(c, "dateTo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	filter := store.EventFilter{
		Query:    c.Query("query"),
		Genre:    c.Query("genre"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Limit:    limit,
		Offset:   offset,
	}

	events, err := h.Store.SearchEvents(c.Context(), filter)
	if err != nil {
		h.Logger.Error("Failed to search events", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch events",
		})
	}
	if events == nil {
		events = []models.Event{}
	}

	return c.JSON(fiber.Map{
		"data":  events,
		"count": len(events),
	})
}

// GetEvent handles GET /events/:id
func (h *EventsHandler) GetEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	event, err := h.Store.GetEvent(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		h.Logger.Error("Failed to get event",
			zap.String("event_id", id.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	return c.JSON(fiber.Map{"data": event})
}

// GetEventPrices handles GET /events/:id/prices, returning the event together
// with its full price history, oldest entry first
func (h *EventsHandler) GetEventPrices(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "id must be a valid UUID",
		})
	}

	event, err := h.Store.GetEvent(c.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Event not found",
			})
		}
		h.Logger.Error("Failed to get event",
			zap.String("event_id", id.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch event",
		})
	}

	history, err := h.Store.ListPriceHistory(c.Context(), id)
	if err != nil {
		h.Logger.Error("Failed to fetch price history",
			zap.String("event_id", id.String()),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch price history",
		})
	}
	if history == nil {
		history = []models.PriceEntry{}
	}

	return c.JSON(fiber.Map{
		"data": EventWithHistory{
			Event:        *event,
			PriceHistory: history,
		},
	})
}
