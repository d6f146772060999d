package mocks

import (
	"context"
	"time"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCategoryRepository mocks repository.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductTypeRepository mocks repository.ProductTypeRepository.
type MockProductTypeRepository struct {
	mock.Mock
}

func (m *MockProductTypeRepository) Create(ctx context.Context, productType *entity.ProductType) error {
	args := m.Called(ctx, productType)
	return args.Error(0)
}

func (m *MockProductTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) GetAll(ctx context.Context) ([]entity.ProductType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductType), args.Error(1)
}

func (m *MockProductTypeRepository) Update(ctx context.Context, productType *entity.ProductType) error {
	args := m.Called(ctx, productType)
	return args.Error(0)
}

func (m *MockProductTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductInstanceRepository mocks repository.ProductInstanceRepository.
type MockProductInstanceRepository struct {
	mock.Mock
}

func (m *MockProductInstanceRepository) Create(ctx context.Context, instance *entity.ProductInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockProductInstanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductInstance, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductInstance), args.Error(1)
}

func (m *MockProductInstanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.ProductInstance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductInstance), args.Error(1)
}

func (m *MockProductInstanceRepository) Update(ctx context.Context, instance *entity.ProductInstance) error {
	args := m.Called(ctx, instance)
	return args.Error(0)
}

func (m *MockProductInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRecipeRepository mocks repository.RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock

	// Items returned to the calc callback passed to RecalcTotalCost.
	RecalcItems []entity.RecipeItem
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) RecalcTotalCost(ctx context.Context, recipeID uuid.UUID, calc func(items []entity.RecipeItem) float64) (float64, error) {
	args := m.Called(ctx, recipeID)
	if args.Error(1) != nil {
		return 0, args.Error(1)
	}
	// Drive the real calc with the configured items, like the DB path would.
	return calc(m.RecalcItems), nil
}

// MockRecipeItemRepository mocks repository.RecipeItemRepository.
type MockRecipeItemRepository struct {
	mock.Mock
}

func (m *MockRecipeItemRepository) Create(ctx context.Context, item *entity.RecipeItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRecipeItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RecipeItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RecipeItem), args.Error(1)
}

func (m *MockRecipeItemRepository) GetByRecipeID(ctx context.Context, recipeID uuid.UUID) ([]entity.RecipeItem, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RecipeItem), args.Error(1)
}

func (m *MockRecipeItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryCache mocks util.CategoryCache.
type MockCategoryCache struct {
	mock.Mock
}

func (m *MockCategoryCache) SetCategories(ctx context.Context, categories []entity.Category, ttl time.Duration) error {
	args := m.Called(ctx, categories, ttl)
	return args.Error(0)
}

func (m *MockCategoryCache) GetCategories(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryCache) DeleteCategories(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCategoryCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher mocks the Kafka producer.
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
