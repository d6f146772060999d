package repository

import (
	"context"
	"errors"

	"pantry/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates the PostgreSQL-backed recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	result := r.db.WithContext(ctx).
		Model(&entity.Recipe{}).
		Order("created_at").
		Pluck("id", &ids)

	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// RecalcTotalCost recomputes total_cost inside one transaction with the
// recipe row locked, the same cycle pricing-service runs on item mutations.
func (r *recipeRepository) RecalcTotalCost(ctx context.Context, recipeID uuid.UUID, calc func(items []entity.RecipeItem) float64) (float64, error) {
	var total float64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe entity.Recipe
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&recipe, "id = ?", recipeID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return result.Error
		}

		var items []entity.RecipeItem
		result = tx.Preload("ProductInstance").
			Where("recipe_id = ?", recipeID).
			Find(&items)
		if result.Error != nil {
			return result.Error
		}

		total = calc(items)

		return tx.Model(&entity.Recipe{}).
			Where("id = ?", recipeID).
			Update("total_cost", total).Error
	})

	if err != nil {
		return 0, err
	}

	return total, nil
}
