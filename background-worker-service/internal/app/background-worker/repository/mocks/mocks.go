package mocks

import (
	"context"

	"pantry/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockHistoryRepository is a testify mock for repository.HistoryRepository.
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Insert(ctx context.Context, record *entity.PricingEventRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByEntity(ctx context.Context, entityID string) ([]entity.PricingEventRecord, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PricingEventRecord), args.Error(1)
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int64) ([]entity.PricingEventRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PricingEventRecord), args.Error(1)
}

// MockRecipeRepository is a testify mock for repository.RecipeRepository.
// Items holds the rows RecalcTotalCost feeds to the calc callback, so tests
// exercise the real cost arithmetic.
type MockRecipeRepository struct {
	mock.Mock
	Items map[uuid.UUID][]entity.RecipeItem
}

func (m *MockRecipeRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRecipeRepository) RecalcTotalCost(ctx context.Context, recipeID uuid.UUID, calc func(items []entity.RecipeItem) float64) (float64, error) {
	args := m.Called(ctx, recipeID)
	if args.Error(1) != nil {
		return 0, args.Error(1)
	}
	return calc(m.Items[recipeID]), nil
}
