package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/shellmatthewk/concert-ticket-checker/internal/config"
	"github.com/shellmatthewk/concert-ticket-checker/internal/consumer"
	"github.com/shellmatthewk/concert-ticket-checker/internal/models"
	"github.com/shellmatthewk/concert-ticket-checker/internal/rabbitmq"
	"github.com/shellmatthewk/concert-ticket-checker/internal/scraper"
)

// SyncRunner runs one sync pass against the external catalog
type SyncRunner interface {
	Run(ctx context.Context, opts scraper.Options) (scraper.Summary, error)
}

// Worker consumes sync requests from the queue, runs the sync and publishes
// the resulting summary
type Worker struct {
	cfg         *config.SyncConfig
	conn        *rabbitmq.Connection
	syncer      SyncRunner
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	consumerTag string
	started     bool
}

// NewWorker creates a new worker instance with dependencies
func NewWorker(cfg *config.SyncConfig, conn *rabbitmq.Connection, syncer SyncRunner, logger *zap.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		cfg:         cfg,
		conn:        conn,
		syncer:      syncer,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		consumerTag: fmt.Sprintf("sync-worker-%d", time.Now().Unix()),
	}
}

// Start sets QoS and starts consuming sync requests
func (w *Worker) Start() error {
	if w.cfg.RequestQueue == "" {
		return fmt.Errorf("sync request queue is required")
	}

	if err := w.conn.SetQoS(w.cfg.PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	if err := w.startConsuming(); err != nil {
		return err
	}

	w.started = true
	w.logger.Info("Sync worker started and consuming messages",
		zap.String("request_queue", w.cfg.RequestQueue),
		zap.String("consumer_tag", w.consumerTag),
	)
	return nil
}

// startConsuming registers the consumer (assumes the queue already exists)
func (w *Worker) startConsuming() error {
	messages, err := w.conn.ConsumeMessages(
		w.cfg.RequestQueue,
		w.consumerTag,
		false, // autoAck (we'll manually ACK)
		false, // exclusive
		false, // noLocal
		false, // noWait
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming from queue %s: %w", w.cfg.RequestQueue, err)
	}

	go w.processMessages(messages)

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() error {
	w.logger.Info("Stopping sync worker",
		zap.String("consumer_tag", w.consumerTag),
	)
	w.cancel()

	ch := w.conn.GetChannel()
	if ch != nil {
		if err := ch.Cancel(w.consumerTag, false); err != nil {
			w.logger.Error("Failed to cancel consumer",
				zap.String("consumer_tag", w.consumerTag),
				zap.Error(err),
			)
		}
	}

	w.logger.Info("Sync worker stopped")
	return nil
}

// processMessages drains the delivery channel, restarting the consumer if the
// channel closes underneath us
func (w *Worker) processMessages(messages <-chan amqp.Delivery) {
	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("Worker context cancelled, stopping message processing")
			return
		case msg, ok := <-messages:
			if !ok {
				w.logger.Warn("Message channel closed, attempting to restart consumer...",
					zap.String("request_queue", w.cfg.RequestQueue),
				)
				for w.started {
					select {
					case <-w.ctx.Done():
						return
					default:
					}

					time.Sleep(2 * time.Second)

					if !w.conn.IsHealthy() {
						continue
					}

					if err := w.startConsuming(); err != nil {
						w.logger.Error("Failed to restart consuming after channel close, will retry",
							zap.String("request_queue", w.cfg.RequestQueue),
							zap.Error(err),
						)
						time.Sleep(5 * time.Second)
						continue
					}

					// New processing goroutine took over
					w.logger.Info("Successfully restarted consumer after channel close",
						zap.String("request_queue", w.cfg.RequestQueue),
					)
					return
				}
				return
			}
			consumer.ProcessMessage(w.logger, w.cfg.RequestQueue, msg, w)
		}
	}
}

// HandleEvent implements the consumer.EventHandler interface
// This method is called by the abstract consumer after base64 decoding
func (w *Worker) HandleEvent(decodedMessage string) error {
	var request models.SyncRequest
	if err := json.Unmarshal([]byte(decodedMessage), &request); err != nil {
		w.logger.Error("Failed to unmarshal sync request",
			zap.Error(err),
			zap.String("decoded_message", decodedMessage),
		)
		return fmt.Errorf("failed to unmarshal sync request: %w", err)
	}

	maxPages := request.MaxPages
	if maxPages <= 0 {
		maxPages = w.cfg.MaxPages
	}

	w.logger.Info("Processing sync request",
		zap.String("keyword", request.Keyword),
		zap.String("city", request.City),
		zap.String("state_code", request.StateCode),
		zap.Int("max_pages", maxPages),
	)

	summary, err := w.syncer.Run(w.ctx, scraper.Options{
		Keyword:   request.Keyword,
		City:      request.City,
		StateCode: request.StateCode,
		MaxPages:  maxPages,
	})
	if err != nil {
		// Catalog failure: NACK so the message is dropped, not retried
		return fmt.Errorf("sync run failed: %w", err)
	}

	if err := w.publishResult(request, summary); err != nil {
		// The sync itself succeeded; losing the result message is not worth
		// re-running the whole ingestion
		w.logger.Error("Failed to publish sync result",
			zap.Error(err),
		)
	}

	return nil
}

// publishResult publishes the sync summary to the result exchange
func (w *Worker) publishResult(request models.SyncRequest, summary scraper.Summary) error {
	result := models.SyncResult{
		Keyword:        request.Keyword,
		City:           request.City,
		StateCode:      request.StateCode,
		VenuesCreated:  summary.VenuesCreated,
		EventsCreated:  summary.EventsCreated,
		PricesRecorded: summary.PricesRecorded,
		CompletedAt:    time.Now().UTC(),
	}

	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal sync result: %w", err)
	}

	err = w.conn.PublishMessage(
		w.cfg.ResultExchange,
		w.cfg.ResultRoutingKey,
		false, // mandatory
		false, // immediate
		body,
	)
	if err != nil {
		return fmt.Errorf("failed to publish to result exchange: %w", err)
	}

	return nil
}
