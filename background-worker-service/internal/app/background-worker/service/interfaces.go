package service

import (
	"context"

	"pantry/background-worker-service/internal/app/background-worker/entity"
)

// EventProcessingServiceInterface handles pricing events consumed from Kafka.
type EventProcessingServiceInterface interface {
	ProcessPricingEvent(ctx context.Context, event *entity.PricingEvent) error
}

// ReconcileServiceInterface repairs recipe total costs against their items.
type ReconcileServiceInterface interface {
	ReconcileAll(ctx context.Context) error
}
