package service

import (
	"context"
	"fmt"

	"pantry/background-worker-service/internal/app/background-worker/entity"
	"pantry/background-worker-service/internal/app/background-worker/repository"
	"pantry/pkg/logger"
)

// EventProcessingService appends consumed pricing events to the MongoDB
// history trail.
type EventProcessingService struct {
	historyRepo repository.HistoryRepository
}

func NewEventProcessingService(historyRepo repository.HistoryRepository) *EventProcessingService {
	return &EventProcessingService{historyRepo: historyRepo}
}

func (s *EventProcessingService) ProcessPricingEvent(ctx context.Context, event *entity.PricingEvent) error {
	record := &entity.PricingEventRecord{
		EventType: event.EventType,
		EntityID:  event.EntityID.String(),
		UserID:    event.UserID.String(),
		Total:     event.Total,
		Unit:      event.Unit,
		Timestamp: event.Timestamp,
	}

	if err := s.historyRepo.Insert(ctx, record); err != nil {
		return fmt.Errorf("failed to store pricing event: %w", err)
	}

	logger.Info().
		Str("event_type", event.EventType).
		Str("entity_id", record.EntityID).
		Float64("total", event.Total).
		Msg("Pricing event stored")

	return nil
}
