package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pantry/background-worker-service/internal/app/background-worker/entity"
	"pantry/background-worker-service/internal/app/background-worker/service"
	"pantry/pkg/logger"
	"pantry/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

// KafkaConsumer reads pricing events from the pricing_events topic. Offsets
// are committed only after an event has been stored, so a crash replays the
// message instead of losing it.
type KafkaConsumer struct {
	reader   *kafka.Reader
	eventSvc service.EventProcessingServiceInterface
	stopChan chan struct{}
	doneChan chan struct{}
}

func NewKafkaConsumer(
	brokers []string,
	topic string,
	groupID string,
	minBytes int,
	maxBytes int,
	eventSvc service.EventProcessingServiceInterface,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       minBytes,
		MaxBytes:       maxBytes,
		StartOffset:    kafka.LastOffset,
		ReadBackoffMin: 100 * time.Millisecond,
		ReadBackoffMax: 1 * time.Second,
	})

	return &KafkaConsumer{
		reader:   reader,
		eventSvc: eventSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start launches the consume loop in its own goroutine.
func (c *KafkaConsumer) Start(ctx context.Context) {
	logger.Info().Msg("Starting Kafka consumer...")
	go c.consume(ctx)
}

// Stop shuts the consumer down and waits for the loop to drain.
func (c *KafkaConsumer) Stop() {
	logger.Info().Msg("Stopping Kafka consumer...")
	close(c.stopChan)
	<-c.doneChan
	c.reader.Close()
	logger.Info().Msg("Kafka consumer stopped")
}

func (c *KafkaConsumer) consume(ctx context.Context) {
	defer close(c.doneChan)

	for {
		select {
		case <-c.stopChan:
			return
		default:
			readCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			message, err := c.reader.FetchMessage(readCtx)
			cancel()

			if err != nil {
				if ctx.Err() != nil {
					return
				}

				logger.Warn().Err(err).Msg("Error fetching message")
				time.Sleep(time.Second)
				continue
			}

			if err := c.processMessage(ctx, message); err != nil {
				metrics.WorkerEventsProcessed.WithLabelValues("failed").Inc()
				logger.Error().
					Err(err).
					Int64("offset", message.Offset).
					Int("partition", message.Partition).
					Msg("Error processing message")
				// No commit on failure, the message will be redelivered
			} else {
				metrics.WorkerEventsProcessed.WithLabelValues("success").Inc()
				if err := c.reader.CommitMessages(ctx, message); err != nil {
					logger.Error().Err(err).Msg("Error committing message")
				}
			}
		}
	}
}

func (c *KafkaConsumer) processMessage(ctx context.Context, message kafka.Message) error {
	var event entity.PricingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal pricing event: %w", err)
	}

	logger.Info().
		Str("event_type", event.EventType).
		Str("entity_id", event.EntityID.String()).
		Int64("offset", message.Offset).
		Int("partition", message.Partition).
		Msg("Received pricing event")

	if err := c.eventSvc.ProcessPricingEvent(ctx, &event); err != nil {
		return fmt.Errorf("failed to process pricing event: %w", err)
	}

	return nil
}

// GetStats exposes reader statistics for the health endpoint.
func (c *KafkaConsumer) GetStats() kafka.ReaderStats {
	return c.reader.Stats()
}
