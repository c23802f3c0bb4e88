package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shellmatthewk/concert-ticket-checker/internal/handlers"
	"github.com/shellmatthewk/concert-ticket-checker/internal/service"
)

// SetupRoutes configures all application routes with dependencies
func SetupRoutes(app *fiber.App, svc *service.Service) {
	healthHandler := handlers.NewHealthHandler(svc.DB, svc.RMQ)
	eventsHandler := handlers.NewEventsHandler(svc.Store, svc.Logger)
	venuesHandler := handlers.NewVenuesHandler(svc.Store, svc.Logger)
	artistsHandler := handlers.NewArtistsHandler(svc.Store, svc.Logger)
	adminHandler := handlers.NewAdminHandler(svc.Syncer, svc.Logger)

	// Health check endpoint
	app.Get("/health", healthHandler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		events := api.Group("/events")
		events.Get("/", eventsHandler.SearchEvents)
		events.Get("/:id", eventsHandler.GetEvent)
		events.Get("/:id/prices", eventsHandler.GetEventPrices)

		venues := api.Group("/venues")
		venues.Get("/", venuesHandler.SearchVenues)
		venues.Get("/nearby", venuesHandler.NearbyVenues)
		venues.Get("/:id", venuesHandler.GetVenue)

		api.Get("/artists/:name/events", artistsHandler.GetArtistEvents)

		admin := api.Group("/admin")
		admin.Post("/sync/ticketmaster", adminHandler.SyncTicketmaster)
	}
}
