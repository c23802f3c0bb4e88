package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/scraper"
)

const defaultSyncMaxPages = 2

// SyncRunner runs one sync pass against the external catalog
type SyncRunner interface {
	Run(ctx context.Context, opts scraper.Options) (scraper.Summary, error)
}

// AdminHandler serves the manual sync trigger endpoint
type AdminHandler struct {
	Syncer SyncRunner
	Logger *zap.Logger
}

// NewAdminHandler creates an admin handler with dependencies
func NewAdminHandler(syncer SyncRunner, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		Syncer: syncer,
		Logger: logger,
	}
}

type syncRequestBody struct {
	Keyword   string `json:"keyword"`
	City      string `json:"city"`
	StateCode string `json:"state_code"`
	MaxPages  int    `json:"max_pages"`
}

// SyncTicketmaster handles POST /admin/sync/ticketmaster. The body is
// optional; max_pages defaults to 2. A catalog failure aborts the run and
// returns 502 with no partial counts.
func (h *AdminHandler) SyncTicketmaster(c *fiber.Ctx) error {
	var body syncRequestBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	maxPages := body.MaxPages
	if maxPages <= 0 {
		maxPages = defaultSyncMaxPages
	}

	summary, err := h.Syncer.Run(c.Context(), scraper.Options{
		Keyword:   body.Keyword,
		City:      body.City,
		StateCode: body.StateCode,
		MaxPages:  maxPages,
	})
	if err != nil {
		h.Logger.Error("Ticketmaster sync failed",
			zap.String("keyword", body.Keyword),
			zap.String("city", body.City),
			zap.Error(err),
		)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Sync failed: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Sync complete",
		"venues_created":  summary.VenuesCreated,
		"events_created":  summary.EventsCreated,
		"prices_recorded": summary.PricesRecorded,
	})
}
