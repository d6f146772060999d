package processor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"pantry/background-worker-service/internal/app/background-worker/entity"
	"pantry/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init("processor-test", "disabled")
}

// MockEventProcessingService is a testify mock for
// service.EventProcessingServiceInterface.
type MockEventProcessingService struct {
	mock.Mock
}

func (m *MockEventProcessingService) ProcessPricingEvent(ctx context.Context, event *entity.PricingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// ===================== NewKafkaConsumer Tests =====================

func TestNewKafkaConsumer(t *testing.T) {
	// Arrange
	eventSvc := new(MockEventProcessingService)

	// Act
	consumer := NewKafkaConsumer([]string{"localhost:9092"}, "pricing_events", "test-group", 1, 10e6, eventSvc)

	// Assert
	assert.NotNil(t, consumer)
	assert.NotNil(t, consumer.reader)
	assert.NotNil(t, consumer.eventSvc)
	assert.NotNil(t, consumer.stopChan)
	assert.NotNil(t, consumer.doneChan)

	// Cleanup
	consumer.reader.Close()
}

// ===================== processMessage Tests =====================

func TestKafkaConsumer_ProcessMessage_Success(t *testing.T) {
	// Arrange
	eventSvc := new(MockEventProcessingService)
	consumer := &KafkaConsumer{
		eventSvc: eventSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	ctx := context.Background()
	entityID := uuid.New()
	event := entity.PricingEvent{
		EventType: entity.EventTypeRecipeCosted,
		EntityID:  entityID,
		UserID:    uuid.New(),
		Total:     5500.0,
		Timestamp: time.Now(),
	}
	payload, _ := json.Marshal(event)

	eventSvc.On("ProcessPricingEvent", ctx, mock.MatchedBy(func(e *entity.PricingEvent) bool {
		return e.EventType == entity.EventTypeRecipeCosted && e.EntityID == entityID
	})).Return(nil)

	// Act
	err := consumer.processMessage(ctx, kafka.Message{Value: payload})

	// Assert
	require.NoError(t, err)
	eventSvc.AssertExpectations(t)
}

func TestKafkaConsumer_ProcessMessage_InvalidJSON(t *testing.T) {
	// Arrange
	eventSvc := new(MockEventProcessingService)
	consumer := &KafkaConsumer{
		eventSvc: eventSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	// Act
	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte("not json")})

	// Assert
	assert.Error(t, err)
	eventSvc.AssertNotCalled(t, "ProcessPricingEvent", mock.Anything, mock.Anything)
}

func TestKafkaConsumer_ProcessMessage_ServiceError(t *testing.T) {
	// Arrange
	eventSvc := new(MockEventProcessingService)
	consumer := &KafkaConsumer{
		eventSvc: eventSvc,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}

	ctx := context.Background()
	payload, _ := json.Marshal(entity.PricingEvent{
		EventType: entity.EventTypeInstancePriced,
		EntityID:  uuid.New(),
		UserID:    uuid.New(),
		Timestamp: time.Now(),
	})

	eventSvc.On("ProcessPricingEvent", ctx, mock.Anything).Return(assert.AnError)

	// Act
	err := consumer.processMessage(ctx, kafka.Message{Value: payload})

	// Assert
	assert.ErrorIs(t, err, assert.AnError)
}
