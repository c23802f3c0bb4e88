package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/shellmatthewk/concert-ticket-checker/internal/database"
)

// MessageBroker is the part of the queue connection health checks need
type MessageBroker interface {
	IsHealthy() bool
}

// HealthHandler reports the health of the service's dependencies
type HealthHandler struct {
	DB     *gorm.DB
	Broker MessageBroker
}

// NewHealthHandler creates a health handler with dependencies
func NewHealthHandler(db *gorm.DB, broker MessageBroker) *HealthHandler {
	return &HealthHandler{
		DB:     db,
		Broker: broker,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles the health check endpoint
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	services := make(map[string]string)
	status := "healthy"

	if err := database.HealthCheck(ctx, h.DB); err != nil {
		services["database"] = "unhealthy: " + err.Error()
		status = "unhealthy"
	} else {
		services["database"] = "healthy"
	}

	if h.Broker == nil || !h.Broker.IsHealthy() {
		services["rabbitmq"] = "unhealthy: connection closed"
		status = "unhealthy"
	} else {
		services["rabbitmq"] = "healthy"
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  services,
	}

	if status == "unhealthy" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}

	return c.JSON(response)
}
