package repository

import (
	"context"
	"errors"

	"pantry/pricing-service/internal/app/pricing/entity"

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

func (r *recipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	result := r.db.WithContext(ctx).Create(recipe)
	return result.Error
}

func (r *recipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	result := r.db.WithContext(ctx).First(&recipe, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return &recipe, nil
}

func (r *recipeRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Recipe, error) {
	var recipe entity.Recipe
	result := r.db.WithContext(ctx).
		Preload("Items.ProductInstance.ProductType").
		First(&recipe, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return &recipe, nil
}

func (r *recipeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Recipe, error) {
	var recipes []entity.Recipe
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes)

	if result.Error != nil {
		return nil, result.Error
	}

	return recipes, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	result := r.db.WithContext(ctx).Model(recipe).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"name":          recipe.Name,
			"description":   recipe.Description,
			"selling_price": recipe.SellingPrice,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// Delete removes the recipe; its items go with it via CASCADE.
func (r *recipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.Recipe{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}

	return nil
}

// RecalcTotalCost runs the read-compute-write cycle for total_cost inside one
// transaction, locking the recipe row so concurrent item mutations for the
// same recipe cannot interleave their recomputations.
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
		if err := tx.Preload("ProductInstance").
			Where("recipe_id = ?", recipeID).
			Find(&items).Error; err != nil {
			return err
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
