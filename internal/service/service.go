package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shellmatthewk/concert-ticket-checker/internal/rabbitmq"
	"github.com/shellmatthewk/concert-ticket-checker/internal/scraper"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
)

// Service holds all application dependencies
// This eliminates global state and enables proper dependency injection
type Service struct {
	DB     *gorm.DB
	Store  store.Store
	Logger *zap.Logger
	RMQ    *rabbitmq.Connection
	Syncer *scraper.Syncer
}

// NewService creates a new service instance with all dependencies
func NewService(db *gorm.DB, st store.Store, logger *zap.Logger, rmq *rabbitmq.Connection, syncer *scraper.Syncer) *Service {
	return &Service{
		DB:     db,
		Store:  st,
		Logger: logger,
		RMQ:    rmq,
		Syncer: syncer,
	}
}
