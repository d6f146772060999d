package service

import (
	"context"
	"testing"

	"pantry/background-worker-service/internal/app/background-worker/entity"
	"pantry/background-worker-service/internal/app/background-worker/repository"
	"pantry/background-worker-service/internal/app/background-worker/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func gramItem(recipeID uuid.UUID, price, quantity float64) entity.RecipeItem {
	return entity.RecipeItem{
		ID:       uuid.New(),
		RecipeID: recipeID,
		Quantity: quantity,
		ProductInstance: &entity.ProductInstance{
			ID:           uuid.New(),
			Unit:         "gram",
			PricePerKilo: price,
		},
	}
}

func pieceItem(recipeID uuid.UUID, price, quantity float64) entity.RecipeItem {
	item := gramItem(recipeID, price, quantity)
	item.ProductInstance.Unit = "piece"
	return item
}

func TestReconcileService_ReconcileAll_Success(t *testing.T) {
	// Arrange
	recipeRepo := new(mocks.MockRecipeRepository)
	svc := NewReconcileService(recipeRepo)
	ctx := context.Background()

	recipe1 := uuid.New()
	recipe2 := uuid.New()

	recipeRepo.Items = map[uuid.UUID][]entity.RecipeItem{
		// 10000 * 500 / 1000 + 2000 * 3 = 11000
		recipe1: {gramItem(recipe1, 10000.0, 500.0), pieceItem(recipe1, 2000.0, 3.0)},
		// no items
		recipe2: {},
	}

	recipeRepo.On("ListIDs", ctx).Return([]uuid.UUID{recipe1, recipe2}, nil)
	recipeRepo.On("RecalcTotalCost", ctx, recipe1).Return(0.0, nil)
	recipeRepo.On("RecalcTotalCost", ctx, recipe2).Return(0.0, nil)

	// Act
	err := svc.ReconcileAll(ctx)

	// Assert
	require.NoError(t, err)
	recipeRepo.AssertExpectations(t)
}

func TestReconcileService_ReconcileAll_OneFailureDoesNotStopPass(t *testing.T) {
	// Arrange
	recipeRepo := new(mocks.MockRecipeRepository)
	svc := NewReconcileService(recipeRepo)
	ctx := context.Background()

	broken := uuid.New()
	healthy := uuid.New()

	recipeRepo.Items = map[uuid.UUID][]entity.RecipeItem{
		healthy: {gramItem(healthy, 4000.0, 250.0)},
	}

	recipeRepo.On("ListIDs", ctx).Return([]uuid.UUID{broken, healthy}, nil)
	recipeRepo.On("RecalcTotalCost", ctx, broken).Return(0.0, repository.ErrRecipeNotFound)
	recipeRepo.On("RecalcTotalCost", ctx, healthy).Return(0.0, nil)

	// Act
	err := svc.ReconcileAll(ctx)

	// Assert
	require.NoError(t, err)
	recipeRepo.AssertNumberOfCalls(t, "RecalcTotalCost", 2)
}

func TestReconcileService_ReconcileAll_ListError(t *testing.T) {
	// Arrange
	recipeRepo := new(mocks.MockRecipeRepository)
	svc := NewReconcileService(recipeRepo)
	ctx := context.Background()

	recipeRepo.On("ListIDs", ctx).Return(nil, assert.AnError)

	// Act
	err := svc.ReconcileAll(ctx)

	// Assert
	assert.ErrorIs(t, err, assert.AnError)
	recipeRepo.AssertNotCalled(t, "RecalcTotalCost", ctx, mock.Anything)
}

func TestTotalCost_Arithmetic(t *testing.T) {
	recipeID := uuid.New()

	testCases := []struct {
		name     string
		items    []entity.RecipeItem
		expected float64
	}{
		{"no items", nil, 0},
		{"gram item priced per thousand", []entity.RecipeItem{gramItem(recipeID, 10000.0, 500.0)}, 5000.0},
		{"piece item priced per unit", []entity.RecipeItem{pieceItem(recipeID, 2000.0, 3.0)}, 6000.0},
		{"mixed units", []entity.RecipeItem{gramItem(recipeID, 10000.0, 500.0), pieceItem(recipeID, 2000.0, 3.0)}, 11000.0},
		{"nil instance contributes nothing", []entity.RecipeItem{{ID: uuid.New(), RecipeID: recipeID, Quantity: 5}}, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, totalCost(tc.items), 1e-9)
		})
	}
}
