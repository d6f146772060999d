package repository

import (
	"context"
	"errors"

	"pantry/pricing-service/internal/app/pricing/entity"

	"github.com/google/uuid"
)

var (
	// Sentinel errors surfaced to the service layer.
	ErrCategoryNotFound        = errors.New("category not found")
	ErrProductTypeNotFound     = errors.New("product type not found")
	ErrProductInstanceNotFound = errors.New("product instance not found")
	ErrRecipeNotFound          = errors.New("recipe not found")
	ErrRecipeItemNotFound      = errors.New("recipe item not found")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductTypeRepository interface {
	Create(ctx context.Context, productType *entity.ProductType) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductType, error)
	GetAll(ctx context.Context) ([]entity.ProductType, error)
	Update(ctx context.Context, productType *entity.ProductType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductInstanceRepository interface {
	Create(ctx context.Context, instance *entity.ProductInstance) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductInstance, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.ProductInstance, error)
	Update(ctx context.Context, instance *entity.ProductInstance) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Recipe, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Recipe, error)
	Update(ctx context.Context, recipe *entity.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RecalcTotalCost loads the recipe's items inside one transaction with the
	// recipe row locked, derives the new total via calc and persists it.
	// Concurrent item mutations for the same recipe serialize on the row lock.
	RecalcTotalCost(ctx context.Context, recipeID uuid.UUID, calc func(items []entity.RecipeItem) float64) (float64, error)
}

type RecipeItemRepository interface {
	Create(ctx context.Context, item *entity.RecipeItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RecipeItem, error)
	GetByRecipeID(ctx context.Context, recipeID uuid.UUID) ([]entity.RecipeItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
