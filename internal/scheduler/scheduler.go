package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/config"
	"github.com/shellmatthewk/concert-ticket-checker/internal/scraper"
)

// SyncRunner runs one sync pass against the external catalog
type SyncRunner interface {
	Run(ctx context.Context, opts scraper.Options) (scraper.Summary, error)
}

// Scheduler runs the sync periodically with the configured default filters
type Scheduler struct {
	cfg    *config.SyncConfig
	syncer SyncRunner
	logger *zap.Logger
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a scheduler with dependencies
func NewScheduler(cfg *config.SyncConfig, syncer SyncRunner, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cfg:    cfg,
		syncer: syncer,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// Start begins the periodic sync loop. An interval of 0 disables scheduling.
func (s *Scheduler) Start() {
	if s.cfg.Interval <= 0 {
		s.logger.Info("Scheduled sync disabled")
		close(s.done)
		return
	}

	s.logger.Info("Scheduled sync enabled",
		zap.Duration("interval", s.cfg.Interval),
		zap.Int("max_pages", s.cfg.MaxPages),
	)

	go s.run()
}

// Stop cancels the loop and waits for any in-flight sync to wind down
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *Scheduler) runOnce() {
	summary, err := s.syncer.Run(s.ctx, scraper.Options{
		Keyword:   s.cfg.Keyword,
		City:      s.cfg.City,
		StateCode: s.cfg.StateCode,
		MaxPages:  s.cfg.MaxPages,
	})
	if err != nil {
		s.logger.Error("Scheduled sync failed", zap.Error(err))
		return
	}

	s.logger.Info("Scheduled sync complete",
		zap.Int("venues_created", summary.VenuesCreated),
		zap.Int("events_created", summary.EventsCreated),
		zap.Int("prices_recorded", summary.PricesRecorded),
	)
}
