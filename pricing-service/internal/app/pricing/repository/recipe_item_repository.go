package repository

import (
	"context"
	"errors"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type recipeItemRepository struct {
	db *gorm.DB
}

// NewRecipeItemRepository creates the PostgreSQL-backed recipe item repository.
func NewRecipeItemRepository(db *gorm.DB) RecipeItemRepository {
	return &recipeItemRepository{db: db}
}

func (r *recipeItemRepository) Create(ctx context.Context, item *entity.RecipeItem) error {
	result := r.db.WithContext(ctx).Create(item)
	return result.Error
}

func (r *recipeItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RecipeItem, error) {
	var item entity.RecipeItem
	result := r.db.WithContext(ctx).Preload("ProductInstance").First(&item, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeItemNotFound
		}
		return nil, result.Error
	}

	return &item, nil
}

func (r *recipeItemRepository) GetByRecipeID(ctx context.Context, recipeID uuid.UUID) ([]entity.RecipeItem, error) {
	var items []entity.RecipeItem
	result := r.db.WithContext(ctx).
		Preload("ProductInstance").
		Where("recipe_id = ?", recipeID).
		Find(&items)

	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

func (r *recipeItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&entity.RecipeItem{}, "id = ?", id)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrRecipeItemNotFound
	}

	return nil
}
