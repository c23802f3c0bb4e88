package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/config"
	"github.com/shellmatthewk/concert-ticket-checker/internal/database"
	"github.com/shellmatthewk/concert-ticket-checker/internal/logger"
	"github.com/shellmatthewk/concert-ticket-checker/internal/rabbitmq"
	"github.com/shellmatthewk/concert-ticket-checker/internal/routes"
	"github.com/shellmatthewk/concert-ticket-checker/internal/scheduler"
	"github.com/shellmatthewk/concert-ticket-checker/internal/scraper"
	"github.com/shellmatthewk/concert-ticket-checker/internal/service"
	"github.com/shellmatthewk/concert-ticket-checker/internal/store"
	"github.com/shellmatthewk/concert-ticket-checker/internal/ticketmaster"
	"github.com/shellmatthewk/concert-ticket-checker/internal/worker"
)

func main() {
	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to PostgreSQL
	db, err := database.Connect(&cfg.Database, logger.Logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, logger.Logger); err != nil {
			logger.Error("Error closing database", zap.Error(err))
		}
	}()

	// Run migrations
	if err := database.RunMigrations(&cfg.Database, logger.Logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to RabbitMQ
	rmq := rabbitmq.NewConnection(&cfg.RabbitMQ, logger.Logger)
	if err := rmq.Connect(); err != nil {
		logger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmq.Close()

	// Wire the sync worker and its collaborators
	st := store.NewGormStore(db)
	catalog := ticketmaster.NewClient(&cfg.Ticketmaster, logger.Logger)
	syncer := scraper.NewSyncer(catalog, st, logger.Logger)

	// Queue-driven sync
	syncWorker := worker.NewWorker(&cfg.Sync, rmq, syncer, logger.Logger)
	if err := syncWorker.Start(); err != nil {
		logger.Fatal("Failed to start sync worker", zap.Error(err))
	}
	defer func() {
		if err := syncWorker.Stop(); err != nil {
			logger.Error("Error stopping sync worker", zap.Error(err))
		}
	}()

	// Periodic sync
	sched := scheduler.NewScheduler(&cfg.Sync, syncer, logger.Logger)
	sched.Start()
	defer sched.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Concert Ticket Checker",
		ServerHeader: "Fiber",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigin,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Setup routes
	svc := service.NewService(db, st, logger.Logger, rmq, syncer)
	routes.SetupRoutes(app, svc)

	// Start server in a goroutine
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
