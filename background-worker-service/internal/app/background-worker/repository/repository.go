package repository

import (
	"context"
	"errors"

	"pantry/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// HistoryRepository stores consumed pricing events in MongoDB.
type HistoryRepository interface {
	// Insert appends one event to the history trail.
	Insert(ctx context.Context, record *entity.PricingEventRecord) error

	// ListByEntity returns the history of a single instance or recipe,
	// newest first.
	ListByEntity(ctx context.Context, entityID string) ([]entity.PricingEventRecord, error)

	// ListRecent returns the newest events across all entities.
	ListRecent(ctx context.Context, limit int64) ([]entity.PricingEventRecord, error)
}

// RecipeRepository gives the reconciliation job access to the pricing-service
// recipes in PostgreSQL.
type RecipeRepository interface {
	// ListIDs returns the IDs of all recipes.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// RecalcTotalCost recomputes and persists a recipe's total_cost inside
	// one transaction with the recipe row locked.
	RecalcTotalCost(ctx context.Context, recipeID uuid.UUID, calc func(items []entity.RecipeItem) float64) (float64, error)
}
